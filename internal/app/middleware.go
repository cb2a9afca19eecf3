package app

import (
	"net/http"

	"github.com/calevents/calevents/internal/config"
	"github.com/calevents/calevents/pkg/auth"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate the signed-in identity into the request context for
	// downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			identity, err := deps.AuthProvider.CurrentIdentity(ctx)
			if err == nil {
				log.Tracef("request as %s", identity.Subject)
				ctx = auth.WithIdentity(ctx, identity)
			}

			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
