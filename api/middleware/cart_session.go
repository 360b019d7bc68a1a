package middleware

import (
	"net/http"
	"time"

	"github.com/ghorkotha/ghorkotha-backend/api/responses"
	"github.com/ghorkotha/ghorkotha-backend/internal/cart"
	"github.com/ghorkotha/ghorkotha-backend/pkg/logger"
)

// CartSessionCookie identifies a shopper across visits.
const CartSessionCookie = "gk_cart_session"

const cartSessionTTL = 180 * 24 * time.Hour

// CartSession assigns a session cookie on first contact, restores the
// session's cart, and attaches the store to the request context.
func CartSession(sessions *cart.Sessions, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(CartSessionCookie); err == nil {
				sessionID = cookie.Value
			}
			if sessionID == "" {
				sessionID = cart.NewSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     CartSessionCookie,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(cartSessionTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			store, err := sessions.StoreFor(ctx, sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(cart.WithStore(ctx, store)))
		})
	}
}
