package domain

import "time"

// UserRole is an ordered volunteer tier, with admin above every tier.
type UserRole string

const (
	UserRoleUser            UserRole = "user"
	UserRoleVolunteer       UserRole = "volunteer"
	UserRoleSeniorVolunteer UserRole = "senior_volunteer"
	UserRoleAdmin           UserRole = "admin"
)

var userRoleRank = map[UserRole]int{
	UserRoleUser:            0,
	UserRoleVolunteer:       1,
	UserRoleSeniorVolunteer: 2,
	UserRoleAdmin:           3,
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	_, ok := userRoleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above other.
func (r UserRole) AtLeast(other UserRole) bool {
	return userRoleRank[r] >= userRoleRank[other]
}

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

type User struct {
	ID            int32      `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          UserRole   `json:"role"`
	Status        UserStatus `json:"status"`
	FormCompleted bool       `json:"form_completed"`
	CreatedOn     time.Time  `json:"created_on"`
	UpdatedOn     time.Time  `json:"updated_on"`
}

// Principal is the authenticated caller of a workflow.
type Principal struct {
	UserID int32
	Role   UserRole
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == UserRoleAdmin
}
