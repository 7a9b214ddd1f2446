package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nestgirl/internal/middleware"
	"nestgirl/internal/model"
	"nestgirl/internal/service"
	"nestgirl/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuthService scripts each operation's outcome.
type fakeAuthService struct {
	signupResult  *service.LoginResult
	signupErr     error
	loginResult   *service.LoginResult
	loginErr      error
	refreshResult *model.Profile
	refreshErr    error

	loggedOutToken string
}

func (f *fakeAuthService) Signup(_ context.Context, _ model.SignupRequest) (*service.LoginResult, error) {
	return f.signupResult, f.signupErr
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (*service.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.loggedOutToken = token
	return nil
}

func (f *fakeAuthService) Refresh(_ context.Context, _ string) (*model.Profile, error) {
	return f.refreshResult, f.refreshErr
}

// stubAuthMW injects auth context the way the JWT middleware would.
func stubAuthMW(phone, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthPhoneKey, phone)
		c.Set(middleware.AuthRoleKey, model.RoleUser)
		c.Set(middleware.AuthTokenKey, token)
		c.Next()
	}
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc, zap.NewNop().Sugar())
	h.RegisterAuthRoutes(router.Group("/api/v1"), stubAuthMW("0791234567", "tok-1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	svc := &fakeAuthService{signupResult: &service.LoginResult{
		Profile:      &model.Profile{Phone: "0791234567", Name: "Rana", Status: model.StatusSingle},
		Token:        "tok-1",
		FirstSession: true,
	}}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/api/v1/auth/register", gin.H{
		"phone":    "0791234567",
		"name":     "Rana",
		"password": "secret12",
		"status":   "single",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token        string `json:"token"`
		FirstSession bool   `json:"first_session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-1", resp.Token)
	assert.True(t, resp.FirstSession)
}

func TestAuthHandler_RegisterDuplicatePhone(t *testing.T) {
	svc := &fakeAuthService{signupErr: service.ErrAlreadyRegistered}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/api/v1/auth/register", gin.H{
		"phone":    "0791234567",
		"name":     "Rana",
		"password": "secret12",
		"status":   "single",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_RegisterRejectsUnknownStatus(t *testing.T) {
	router := newAuthRouter(&fakeAuthService{})

	w := postJSON(t, router, "/api/v1/auth/register", gin.H{
		"phone":    "0791234567",
		"name":     "Rana",
		"password": "secret12",
		"status":   "astronaut",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	svc := &fakeAuthService{loginErr: service.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"phone":    "0791234567",
		"password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrInvalidCredentials.Error())
}

func TestAuthHandler_LoginNotRegisteredIsDistinct(t *testing.T) {
	svc := &fakeAuthService{loginErr: service.ErrNotRegistered}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/api/v1/auth/login", gin.H{
		"phone":    "0799999999",
		"password": "whatever",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), service.ErrNotRegistered.Error())
}

func TestAuthHandler_LogoutUsesSessionToken(t *testing.T) {
	svc := &fakeAuthService{}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/api/v1/auth/logout", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-1", svc.loggedOutToken)
}

func TestAuthHandler_RefreshAfterLogout(t *testing.T) {
	svc := &fakeAuthService{refreshErr: session.ErrLoggedOut}
	router := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
