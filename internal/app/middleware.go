package app

import (
	"errors"
	"net/http"

	"github.com/finboard/finboard/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	// Resolve X-User-Id header into the current user for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			userIdHeader := req.Header.Get("X-User-Id")
			ctx := req.Context()

			if userIdHeader == "" || isCreateUser(req) {
				next.ServeHTTP(w, req)
				return
			}

			u, err := deps.UserService.GetUserByUid(ctx, userIdHeader)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", userIdHeader)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	})
}

func isCreateUser(req *http.Request) bool {
	route := mux.CurrentRoute(req)
	return route != nil && route.GetName() == createUserRoute
}
