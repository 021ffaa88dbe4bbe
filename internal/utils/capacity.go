package utils

import (
	"github.com/Sama2511/LJM-sub000/internal/domain"
)

// ComputeRoleCapacity derives the occupancy of one role from the requests
// of its event. Only active requests for the role count as filled, and
// Available never goes below zero.
func ComputeRoleCapacity(role domain.EventRole, requests []domain.VolunteerRequest) domain.RoleCapacity {
	var filled int32
	for _, req := range requests {
		if req.RoleID != nil && *req.RoleID == role.ID && req.Status.IsActive() {
			filled++
		}
	}
	return newRoleCapacity(role, filled)
}

// ComputeEventCapacity returns one entry per role, in role order.
func ComputeEventCapacity(roles []domain.EventRole, requests []domain.VolunteerRequest) []domain.RoleCapacity {
	filled := make(map[int32]int32, len(roles))
	for _, req := range requests {
		if req.RoleID == nil || !req.Status.IsActive() {
			continue
		}
		filled[*req.RoleID]++
	}

	result := make([]domain.RoleCapacity, 0, len(roles))
	for _, role := range roles {
		result = append(result, newRoleCapacity(role, filled[role.ID]))
	}
	return result
}

// SumRoleCapacity is the event capacity implied by its roles.
func SumRoleCapacity(roles []domain.RoleInput) int32 {
	var total int32
	for _, r := range roles {
		total += r.Capacity
	}
	return total
}

func newRoleCapacity(role domain.EventRole, filled int32) domain.RoleCapacity {
	available := role.Capacity - filled
	if available < 0 {
		available = 0
	}
	return domain.RoleCapacity{
		ID:        role.ID,
		RoleName:  role.RoleName,
		Capacity:  role.Capacity,
		Filled:    filled,
		Available: available,
	}
}
