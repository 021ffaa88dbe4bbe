package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRole struct {
	Name     string `json:"role_name" validate:"required,max=10"`
	Capacity int32  `json:"capacity" validate:"gt=0"`
}

type sampleRequest struct {
	Title string       `json:"title" validate:"required"`
	Date  string       `json:"date" validate:"required,datetime=2006-01-02"`
	Email string       `json:"email" validate:"omitempty,email"`
	Roles []sampleRole `json:"roles" validate:"required,min=1,dive"`
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestValidateStruct_Valid(t *testing.T) {
	req := sampleRequest{
		Title: "Beach cleanup",
		Date:  "2026-11-02",
		Roles: []sampleRole{{Name: "Driver", Capacity: 2}},
	}
	assert.Nil(t, ValidateStruct(&req))
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		field   string
		message string
	}{
		{
			name:    "missing title",
			req:     sampleRequest{Date: "2026-11-02", Roles: []sampleRole{{Name: "a", Capacity: 1}}},
			field:   "title",
			message: "title is required",
		},
		{
			name:    "bad date",
			req:     sampleRequest{Title: "x", Date: "02/11/2026", Roles: []sampleRole{{Name: "a", Capacity: 1}}},
			field:   "date",
			message: "date must match the layout 2006-01-02",
		},
		{
			name:    "bad email",
			req:     sampleRequest{Title: "x", Date: "2026-11-02", Email: "nope", Roles: []sampleRole{{Name: "a", Capacity: 1}}},
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "empty roles",
			req:     sampleRequest{Title: "x", Date: "2026-11-02", Roles: []sampleRole{}},
			field:   "roles",
			message: "roles must contain at least 1 item(s)",
		},
		{
			name:    "zero capacity role",
			req:     sampleRequest{Title: "x", Date: "2026-11-02", Roles: []sampleRole{{Name: "a"}}},
			field:   "capacity",
			message: "capacity must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			require.NotNil(t, verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Equal(t, tt.message, verr.Fields[0].Message)
			assert.Equal(t, tt.message, verr.Error())
		})
	}
}

func TestRequestValidationError_JoinsMessages(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Error(), "title is required")
	assert.Contains(t, verr.Error(), "; ")
}
