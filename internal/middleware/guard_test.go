package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/desk-portal-api/internal/models"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

type sessionLoaderStub struct {
	sessions map[string]*models.Session
}

func (s *sessionLoaderStub) Get(ctx context.Context, id string) (*models.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return nil, appErrors.ErrSessionExpired
}

func guardedRouter(store sessionLoader, allowed ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", Session(store), Guard(allowed...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

type deniedBody struct {
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func doRequest(t *testing.T, router *gin.Engine, sessionID string) (*httptest.ResponseRecorder, deniedBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var body deniedBody
	if recorder.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	}
	return recorder, body
}

func TestGuardWithoutTokenRedirectsToLogin(t *testing.T) {
	router := guardedRouter(&sessionLoaderStub{}, models.RoleAdmin)

	recorder, body := doRequest(t, router, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "/login", body.Meta["redirect"])
}

func TestGuardWithUnknownSessionRedirectsToLogin(t *testing.T) {
	router := guardedRouter(&sessionLoaderStub{}, models.RoleAdmin)

	recorder, body := doRequest(t, router, "stale-session")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, body.Error.Code)
	assert.Equal(t, "/login", body.Meta["redirect"])
}

func TestGuardDeniedRoleRedirectsToOwnDashboard(t *testing.T) {
	store := &sessionLoaderStub{sessions: map[string]*models.Session{
		"sess-it": {ID: "sess-it", Role: models.RoleITSupport},
	}}
	router := guardedRouter(store, models.RoleAdmin)

	recorder, body := doRequest(t, router, "sess-it")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "/itsupport-dashboard", body.Meta["redirect"])
	assert.NotEmpty(t, body.Meta["notice"])
}

func TestGuardAllowsListedRole(t *testing.T) {
	store := &sessionLoaderStub{sessions: map[string]*models.Session{
		"sess-adm": {ID: "sess-adm", Role: models.RoleAdmin},
	}}
	router := guardedRouter(store, models.RoleAdmin, models.RoleITSupport)

	recorder, _ := doRequest(t, router, "sess-adm")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGuardWithoutAllowListAdmitsAnyAuthenticatedRole(t *testing.T) {
	store := &sessionLoaderStub{sessions: map[string]*models.Session{
		"sess-emp": {ID: "sess-emp", Role: models.RoleEmployee},
	}}
	router := guardedRouter(store)

	recorder, _ := doRequest(t, router, "sess-emp")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGuardUnknownRoleRedirectsToLogin(t *testing.T) {
	store := &sessionLoaderStub{sessions: map[string]*models.Session{
		"sess-odd": {ID: "sess-odd", Role: "MYSTERY"},
	}}
	router := guardedRouter(store, models.RoleAdmin)

	recorder, body := doRequest(t, router, "sess-odd")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "/login", body.Meta["redirect"])
}

func TestSessionRejectsMalformedAuthorizationHeader(t *testing.T) {
	router := guardedRouter(&sessionLoaderStub{}, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
