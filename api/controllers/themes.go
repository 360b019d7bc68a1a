package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghorkotha/ghorkotha-backend/api/middleware"
	"github.com/ghorkotha/ghorkotha-backend/api/responses"
	"github.com/ghorkotha/ghorkotha-backend/api/validators"
	themesvc "github.com/ghorkotha/ghorkotha-backend/internal/themes"
	pkgerrors "github.com/ghorkotha/ghorkotha-backend/pkg/errors"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

// ActiveTheme serves the storefront's current palette. Responses are
// explicitly uncacheable so every poll observes the freshest row; a
// cached palette would defeat the whole synchronization loop.
func ActiveTheme(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		setNoCache(w)

		theme, err := svc.GetActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// A null body means "no active theme"; the storefront falls back
		// to its built-in palette.
		responses.WriteSuccess(w, theme)
	}
}

// ThemeStylesheet serves the rendered CSS custom properties for the
// applied theme. Empty until the first palette has been applied.
func ThemeStylesheet(applier *themesvc.Applier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setNoCache(w)
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		if applier == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(applier.Stylesheet()))
	}
}

// ThemeHeartbeat marks an admin tab as present and triggers an
// immediate poll so a freshly opened dashboard syncs without waiting
// for the next tick.
func ThemeHeartbeat(presence *themesvc.Presence, poller *themesvc.Poller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if presence != nil {
			presence.Heartbeat()
		}
		if poller != nil {
			poller.Kick()
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// AdminListThemes returns every saved theme.
func AdminListThemes(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// AdminGetTheme returns one theme by id.
func AdminGetTheme(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "themeId"), "themeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, theme)
	}
}

// AdminCreateTheme persists a new theme owned by the calling admin.
func AdminCreateTheme(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		adminID, ok := middleware.AdminIDFrom(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}

		var payload themesvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Create(r.Context(), adminID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, theme)
	}
}

// AdminUpdateTheme overwrites a theme's palette.
func AdminUpdateTheme(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "themeId"), "themeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload themesvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, theme)
	}
}

// AdminDeleteTheme removes an inactive theme.
func AdminDeleteTheme(svc *themesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "themeId"), "themeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminActivateTheme flips the storefront to the selected theme and
// kicks the poller so connected storefronts pick it up right away.
func AdminActivateTheme(svc *themesvc.Service, poller *themesvc.Poller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "theme service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "themeId"), "themeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.Activate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if poller != nil {
			poller.Kick()
		}

		responses.WriteSuccess(w, theme)
	}
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
