package middleware

import (
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes chi's access log lines through logrus.
func RequestLogger() func(http.Handler) http.Handler {
	return chiMiddleware.RequestLogger(&chiMiddleware.DefaultLogFormatter{
		Logger:  logrus.StandardLogger(),
		NoColor: true,
	})
}
