package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studiodesk/config"
	otelMock "studiodesk/infras/otel/mocks"
	"studiodesk/internal/domains/auth/model/dto"
	"studiodesk/internal/domains/auth/service/mocks"
	"studiodesk/internal/handlers/auth"
	"studiodesk/shared/failure"
	"studiodesk/transport/http/middleware"
)

func newRouter(t *testing.T) (http.Handler, *mocks.MockAuth) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.CookieName = "id"
	cfg.Session.Secure = true
	cfg.Session.SameSite = "strict"

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuth(ctrl)

	handler := auth.New(svc, middleware.NewAppMiddleware(otelMock.NewOtel(), cfg, nil), cfg, otelMock.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	require.Failf(t, "cookie not set", "no %q cookie in response", name)

	return nil
}

func TestLogin(t *testing.T) {
	for _, path := range []string{"/auth/login", "/login"} {
		t.Run(path, func(t *testing.T) {
			router, svc := newRouter(t)

			expires := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

			svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Password: "secret"}).
				Return(dto.LoginResult{Token: "signed", Username: "admin", ExpiresAt: expires}, nil)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"password":"secret"}`)))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"username":"admin"`)
			assert.NotContains(t, rec.Body.String(), "signed")

			cookie := findCookie(t, rec, "id")
			assert.Equal(t, "signed", cookie.Value)
			assert.True(t, cookie.HttpOnly)
			assert.True(t, cookie.Secure)
			assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResult{}, failure.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"nope"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func TestLogout(t *testing.T) {
	t.Run("ends the session and clears the cookie", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Logout(gomock.Any(), "signed").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "id", Value: "signed"})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, -1, findCookie(t, rec, "id").MaxAge)
	})

	t.Run("without a cookie", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestVerify(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("authenticated", func(t *testing.T) {
		router, _ := newRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/verify_auth", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), dto.Identity{Username: "admin", SessionID: "s-1"}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authenticated":true,"username":"admin"}`, rec.Body.String())
	})
}
