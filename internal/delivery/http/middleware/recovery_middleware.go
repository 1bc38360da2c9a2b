package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"clinic-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoveryMiddleware struct {
	log *logrus.Logger
}

func NewRecoveryMiddleware(log *logrus.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{log: log}
}

// Handle turns a panic in a handler into a 500 response.
func (m *RecoveryMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				m.log.WithFields(logrus.Fields{
					"request_id": RequestID(req.Context()),
					"panic":      fmt.Sprintf("%v", r),
					"stack":      string(stack[:n]),
				}).Error("panic recovered")

				response.InternalServerError(w, "")
			}
		}()

		next.ServeHTTP(w, req)
	})
}
