package controllers

import (
	"net/http"

	"github.com/ghorkotha/ghorkotha-backend/api/middleware"
	"github.com/ghorkotha/ghorkotha-backend/api/responses"
	"github.com/ghorkotha/ghorkotha-backend/api/validators"
	authsvc "github.com/ghorkotha/ghorkotha-backend/internal/auth"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

// AdminLogin exchanges admin credentials for a bearer token.
func AdminLogin(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminMe echoes the identity baked into the bearer token.
func AdminMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := middleware.AdminIDFrom(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}
		email, _ := middleware.AdminEmailFrom(r.Context())

		responses.WriteSuccess(w, map[string]string{
			"admin_id": adminID.String(),
			"email":    email,
		})
	}
}
