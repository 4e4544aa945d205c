package middlewares

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RequireSuperadminAPIKey guards the administrative slot endpoints. The key
// comparison is constant time.
func (m *Middlewares) RequireSuperadminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		expected := m.InternalConfig.App.SuperadminAPIKey

		if apiKey == "" || expected == "" ||
			subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("API key rejected",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(fmt.Errorf("invalid or missing api key")))
			return
		}

		next.ServeHTTP(w, r)
	})
}
