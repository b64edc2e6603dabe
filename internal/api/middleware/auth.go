package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guelfi/barbershop-booking/internal/api/handlers"
)

// TokenHeader carries the static anti-forgery token.
const TokenHeader = "X-Booking-Token"

const msgMissingToken = "token de reserva ausente ou inválido"

// Auth rejects requests whose X-Booking-Token does not match the configured
// value. The comparison is constant time so the token cannot be probed
// byte by byte.
func Auth(token string) mux.MiddlewareFunc {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(TokenHeader))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
