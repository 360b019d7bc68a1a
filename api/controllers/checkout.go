package controllers

import (
	"net/http"

	"github.com/ghorkotha/ghorkotha-backend/api/responses"
	"github.com/ghorkotha/ghorkotha-backend/api/validators"
	cartsvc "github.com/ghorkotha/ghorkotha-backend/internal/cart"
	checkoutsvc "github.com/ghorkotha/ghorkotha-backend/internal/checkout"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

// Checkout turns the session's cart into a pending order and hands the
// customer a prefilled WhatsApp link.
func Checkout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := cartsvc.StoreFrom(r.Context())
		result, err := svc.Submit(r.Context(), store, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
