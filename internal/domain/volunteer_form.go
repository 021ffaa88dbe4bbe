package domain

import "time"

// VolunteerForm is a user's volunteer application.
type VolunteerForm struct {
	ID                    int32         `json:"id"`
	UserID                int32         `json:"user_id"`
	FullName              string        `json:"full_name" validate:"required,max=200"`
	Phone                 string        `json:"phone" validate:"required,max=40"`
	Address               string        `json:"address" validate:"max=300"`
	EmergencyContactName  string        `json:"emergency_contact_name" validate:"required,max=200"`
	EmergencyContactPhone string        `json:"emergency_contact_phone" validate:"required,max=40"`
	Activities            []string      `json:"activities" validate:"required,min=1,dive,required"`
	Availability          []string      `json:"availability" validate:"required,min=1,dive,required"`
	Certifications        []string      `json:"certifications" validate:"dive,required"`
	Motivation            string        `json:"motivation" validate:"required,max=4000"`
	Experience            string        `json:"experience" validate:"max=4000"`
	Status                RequestStatus `json:"status"`
	CreatedOn             time.Time     `json:"created_on"`
	ReviewedOn            *time.Time    `json:"reviewed_on,omitempty"`
}
