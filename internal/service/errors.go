package service

import (
	"errors"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/repository"
	"github.com/Sama2511/LJM-sub000/internal/validation"
)

func requirePrincipal(p *domain.Principal) error {
	if p == nil {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func requireAdmin(p *domain.Principal) error {
	if p == nil {
		return domain.ErrNotAuthenticated
	}
	if !p.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

// storeErr maps a repository failure onto the workflow's error. A missing
// row becomes notFound; anything else passes through as an upstream failure.
func storeErr(err error, notFound *domain.Error) error {
	if notFound != nil && errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return domain.Upstream(err)
}

func validate(v any) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return &domain.Error{Kind: domain.KindInvalid, Message: verr.Error(), Err: verr}
	}
	return nil
}
