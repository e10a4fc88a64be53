package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marketloop/storefront-backend/api/middleware"
	"github.com/marketloop/storefront-backend/pkg/enums"
	pkgerrors "github.com/marketloop/storefront-backend/pkg/errors"
)

// ActorFromRequest extracts the authenticated user id and role seeded by the
// auth middleware.
func ActorFromRequest(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	if r == nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return userID, enums.UserRole(middleware.RoleFromContext(r.Context())), nil
}

// PathUUID parses a uuid route parameter.
func PathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"field": param})
	}
	return id, nil
}
