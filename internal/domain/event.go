package domain

import "time"

// PlaceholderImage is the stored image reference meaning no image was uploaded.
const PlaceholderImage = "placeholderImage.png"

type Event struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`       // yyyy-mm-dd
	StartTime   string    `json:"start_time"` // HH:MM
	EndTime     string    `json:"end_time"`   // HH:MM
	Location    string    `json:"location"`
	ImageKey    string    `json:"image_key"`
	Capacity    int32     `json:"capacity"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// HasImage reports whether the event references a real uploaded image.
func (e *Event) HasImage() bool {
	return e.ImageKey != "" && e.ImageKey != PlaceholderImage
}

type EventRole struct {
	ID       int32  `json:"id"`
	EventID  int32  `json:"event_id"`
	RoleName string `json:"role_name"`
	Capacity int32  `json:"capacity"`
}

// RoleCapacity is the derived occupancy of one event role.
type RoleCapacity struct {
	ID        int32  `json:"id"`
	RoleName  string `json:"role_name"`
	Capacity  int32  `json:"capacity"`
	Filled    int32  `json:"filled"`
	Available int32  `json:"available"`
}

// EventDetails bundles an event with its roles and their occupancy.
type EventDetails struct {
	Event      Event          `json:"event"`
	Roles      []EventRole    `json:"roles"`
	Capacities []RoleCapacity `json:"capacities"`
}

// EventInput is the admin-supplied definition of an event and its roles.
type EventInput struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"max=5000"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string      `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string      `json:"end_time" validate:"required,datetime=15:04"`
	Location    string      `json:"location" validate:"required,max=300"`
	Roles       []RoleInput `json:"roles" validate:"required,min=1,dive"`
}

// Capacity bounds. MaxRoleCapacity must match the lte tag on RoleInput.
const (
	MaxRoleCapacity  = 10000
	MaxEventCapacity = 100000
)

type RoleInput struct {
	RoleName string `json:"role_name" validate:"required,max=100"`
	Capacity int32  `json:"capacity" validate:"gt=0,lte=10000"`
}
