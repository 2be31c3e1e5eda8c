package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/bagdasarian/team-registration/internal/handler/response"
)

const (
	internalErrorMessage = "internal server error"
	internalErrorCode    = "INTERNAL_ERROR"
)

func Recovery(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("panic recovered",
						"error", err,
						"stack", string(debug.Stack()),
						"path", r.URL.Path,
					)

					response.JSON(w, http.StatusInternalServerError, response.Error{
						Error: internalErrorMessage,
						Code:  internalErrorCode,
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
