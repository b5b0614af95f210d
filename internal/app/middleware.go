package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/config"
	"github.com/zenithweb/zenith/internal/rest"
)

// SetupMiddleware wires all HTTP middlewares and returns the handler to serve.
// CORS wraps the router from the outside so preflight requests get their
// Access-Control headers even when no route method matches them.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) http.Handler {

	// Attach a correlation id to every request for logging and the audit trail.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestId := req.Header.Get("X-Request-Id")
			if requestId == "" {
				requestId = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", requestId)
			ctx := rest.WithRequestId(req.Context(), requestId)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	// Access log through logrus.
	r.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(log.StandardLogger().Writer(), next)
	})

	// Open CORS policy: any origin, method, header, with credentials.
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(string) bool { return true }),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-Id"}),
		handlers.AllowCredentials(),
	)(r)
}
