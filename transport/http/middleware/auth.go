package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/internal/domains/auth/model/dto"
	authService "studiodesk/internal/domains/auth/service"
	"studiodesk/permissions"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
	"studiodesk/transport/http/response"
)

type identityKey struct{}

// Auth guards every route that permissions.yaml does not mark as public.
type Auth interface {
	Session(http.Handler) http.Handler
}

type authImpl struct {
	auth       authService.Auth
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthMiddleware(auth authService.Auth, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) Auth {
	return &authImpl{
		auth:       auth,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Session resolves the session cookie into an Identity and slides its expiry.
func (m *authImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		method := request.Method
		path := request.URL.Path

		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.Routes != nil {
			if pattern := rctx.Routes.Find(chi.NewRouteContext(), method, request.URL.Path); pattern != "" {
				path = pattern
			}
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     method,
		})

		if method == http.MethodOptions || (m.permission != nil && m.permission.FindPermissions(path, method).Skip) {
			next.ServeHTTP(writer, request)

			return
		}

		cookie, err := request.Cookie(m.cfg.Session.CookieName)
		if err != nil || cookie.Value == "" {
			response.WithError(writer, failure.ErrMissingSession)
			scope.TraceError(failure.ErrMissingSession)

			return
		}

		identity, err := m.auth.Authenticate(ctx, cookie.Value)
		if err != nil {
			response.WithError(writer, err)
			scope.TraceError(err)

			return
		}

		ctx = WithIdentity(ctx, identity)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func WithIdentity(ctx context.Context, identity dto.Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, identity)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, identity.Username)
	ctx = context.WithValue(ctx, constant.ContextKeySessionID, identity.SessionID)

	return ctx
}

// IdentityFrom returns the caller attached by Session.
func IdentityFrom(ctx context.Context) (dto.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(dto.Identity)

	return identity, ok
}
