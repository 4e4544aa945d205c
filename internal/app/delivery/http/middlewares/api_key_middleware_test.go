package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-booking-service/internal/app/config"
	"clinic-booking-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequireSuperadminAPIKey(t *testing.T) {
	testAPIKey := "test-superadmin-api-key-12345"
	middlewares := New(zap.NewNop(), &config.InternalConfig{
		App: config.App{
			SuperadminAPIKey: testAPIKey,
		},
	})

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/slots", nil)
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/slots", nil)

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/slots", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for invalid API key")
	})

	t.Run("Unconfigured Key Rejects Everything", func(t *testing.T) {
		unconfigured := New(zap.NewNop(), &config.InternalConfig{})

		req := httptest.NewRequest("POST", "/api/v1/slots", nil)
		req.Header.Set(constvars.HeaderAPIKey, "")

		rr := httptest.NewRecorder()
		unconfigured.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized when no key is configured")
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/slots", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-SUPERADMIN-API-KEY-12345")

		rr := httptest.NewRecorder()
		middlewares.RequireSuperadminAPIKey(testHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for case-mismatched API key")
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := New(zap.NewNop(), &config.InternalConfig{})

	t.Run("Generates Request ID When Absent", func(t *testing.T) {
		var seenRequestID string
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/slots", nil))

		assert.NotEmpty(t, seenRequestID, "request ID should be generated")
		assert.Equal(t, seenRequestID, rr.Header().Get(constvars.HeaderRequestID), "request ID should be echoed in the response header")
	})

	t.Run("Preserves Incoming Request ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/slots", nil)
		req.Header.Set(constvars.HeaderRequestID, "incoming-request-id")

		var seenRequestID string
		handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "incoming-request-id", seenRequestID)
		assert.Equal(t, "incoming-request-id", rr.Header().Get(constvars.HeaderRequestID))
	})
}
