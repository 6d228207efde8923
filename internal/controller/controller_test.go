package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learner-account-be/internal/pkg/lmsclient"
	"learner-account-be/internal/pkg/logger"
	"learner-account-be/internal/pkg/serverutils"
	"learner-account-be/internal/repository/memory"
	"learner-account-be/internal/service"
	internalWS "learner-account-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "controller-secret"

type upstreamCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// fakeLms records every call and answers like the LMS would.
func fakeLms(t *testing.T, calls *[]upstreamCall) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*calls = append(*calls, upstreamCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(body)})

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/notifications/enrollments/":
			_, _ = w.Write([]byte(`{"results":[{"course":{"id":"c1"}}]}`))
		case r.URL.Path == "/api/notifications/configurations/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not found."}`))
		case strings.HasPrefix(r.URL.Path, "/api/notifications/configurations/"):
			_, _ = w.Write([]byte(`{"course_id":"c1"}`))
		case r.URL.Path == "/api/user/v1/accounts/learner":
			_, _ = w.Write([]byte(`{"is_active":true}`))
		case r.URL.Path == "/api/third_party_auth/v0/providers/user_status":
			_, _ = w.Write([]byte(`[]`))
		case r.URL.Path == "/api/user/v1/accounts/deactivate_logout/":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, lmsURL string) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	transport := lmsclient.New(lmsclient.Options{})
	sessions := memory.NewFlowSessionRepository(time.Minute, time.Minute)
	hub := internalWS.NewHub(nil, log)

	deleteSvc := service.NewDeleteAccountService(
		sessions,
		service.NewLmsAccountService(lmsURL, transport),
		nil, hub, lmsURL+"/logout", log,
	)
	prefSvc := service.NewNotificationPreferenceService(lmsURL, transport)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	api := app.Group("/api")
	auth := serverutils.NewJwtMiddleware(jwtSecret)
	NewDeleteAccountController(deleteSvc, hub).RegisterRoutes(api, auth)
	NewNotificationPreferenceController(prefSvc).RegisterRoutes(api, auth)
	NewHealthController(sessions.Count).RegisterRoutes(api)
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":            float64(42),
		"preferred_username": "learner",
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return tok
}

func do(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", "Bearer "+bearer(t))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestNotificationPreferences_PassThrough(t *testing.T) {
	var calls []upstreamCall
	lms := fakeLms(t, &calls)
	app := newTestApp(t, lms.URL)

	resp := do(t, app, "GET", "/api/notification-preferences/enrollments", "")
	require.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"results":[{"course":{"id":"c1"}}]}`, string(body))
	assert.Equal(t, "JWT "+bearer(t), calls[0].Auth)
}

func TestNotificationPreferences_PatchPreferenceToggle(t *testing.T) {
	var calls []upstreamCall
	lms := fakeLms(t, &calls)
	app := newTestApp(t, lms.URL)

	resp := do(t, app, "PATCH", "/api/notification-preferences/configurations/c1/apps/app/types/emailDigest/channels/email", `{"value":true}`)
	require.Equal(t, 200, resp.StatusCode)

	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPatch, calls[0].Method)
	assert.Equal(t, "/api/notifications/configurations/c1", calls[0].Path)
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, map[string]interface{}{
		"notification_app":     "app",
		"notification_type":    "email_digest",
		"notification_channel": "email",
		"value":                true,
	}, sent)
}

func TestNotificationPreferences_PatchRequiresValue(t *testing.T) {
	var calls []upstreamCall
	lms := fakeLms(t, &calls)
	app := newTestApp(t, lms.URL)

	resp := do(t, app, "PATCH", "/api/notification-preferences/configurations/c1/apps/discussion", `{}`)

	assert.Equal(t, 400, resp.StatusCode)
	assert.Empty(t, calls)
}

func TestNotificationPreferences_UpstreamStatusPassesThrough(t *testing.T) {
	var calls []upstreamCall
	lms := fakeLms(t, &calls)
	app := newTestApp(t, lms.URL)

	resp := do(t, app, "GET", "/api/notification-preferences/configurations/missing", "")

	assert.Equal(t, 404, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"detail":"Not found."}`, string(body))
}

func TestNotificationPreferences_UnreachableUpstreamIsBadGateway(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	resp := do(t, app, "GET", "/api/notification-preferences/enrollments", "")

	assert.Equal(t, 502, resp.StatusCode)
}

func TestDeleteAccount_FullFlowEndsInRedirect(t *testing.T) {
	var calls []upstreamCall
	lms := fakeLms(t, &calls)
	app := newTestApp(t, lms.URL)

	resp := do(t, app, "POST", "/api/account-settings/delete-account/confirmation", "")
	require.Equal(t, 200, resp.StatusCode)

	resp = do(t, app, "PUT", "/api/account-settings/delete-account/password", `{"password":"  s3cret  "}`)
	require.Equal(t, 200, resp.StatusCode)

	resp = do(t, app, "POST", "/api/account-settings/delete-account/submit", "")
	require.Equal(t, 200, resp.StatusCode)
	var env struct {
		Data struct {
			SuccessModal struct {
				Open bool `json:"open"`
			} `json:"success_modal"`
		} `json:"data"`
	}
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &env))
	assert.True(t, env.Data.SuccessModal.Open)
	assert.NotContains(t, string(body), "s3cret")

	var deactivate *upstreamCall
	for i := range calls {
		if calls[i].Path == "/api/user/v1/accounts/deactivate_logout/" {
			deactivate = &calls[i]
		}
	}
	require.NotNil(t, deactivate)
	assert.Equal(t, "password=s3cret", deactivate.Body)

	resp = do(t, app, "GET", "/api/account-settings/delete-account/close", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, lms.URL+"/logout", resp.Header.Get("Location"))

	resp = do(t, app, "GET", "/api/health", "")
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"active_delete_flows":0`)
}

func TestDeleteAccount_RequiresToken(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:1")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/account-settings/delete-account/", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
