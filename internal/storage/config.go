package storage

// Config holds storage configuration
type Config struct {
	Type         string   // "local"
	Dir          string   // Root directory for stored objects
	BaseURL      string   // Server base URL used to build public URLs
	AllowedTypes []string // Accepted content types; empty accepts any
	MaxBytes     int64    // Upload size limit; 0 means unlimited
}
