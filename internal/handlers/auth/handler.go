package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"studiodesk/config"
	"studiodesk/infras/otel"
	"studiodesk/internal/domains/auth/model/dto"
	"studiodesk/internal/domains/auth/service"
	"studiodesk/shared/constant"
	"studiodesk/shared/failure"
	"studiodesk/shared/validator"
	"studiodesk/transport/http/middleware"
	"studiodesk/transport/http/response"
)

type Handler struct {
	service    service.Auth
	middleware middleware.AppMiddleware
	cfg        *config.Config
	otel       otel.Otel
}

func New(service service.Auth, middleware middleware.AppMiddleware, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		cfg:        cfg,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(handler.middleware.LoginLimit()).Post("/login", handler.Login)
		r.Post("/logout", handler.Logout)
		r.Get("/verify", handler.Verify)
	})

	// Paths the storefront used before the /auth group existed.
	r.With(handler.middleware.LoginLimit()).Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/verify_auth", handler.Verify)
}

// Login handles the admin login
// @Summary Log in as the studio admin
// @Description Check the admin password and set the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse "Logged in"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 429 {object} response.Error
// @Router /auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("ip", middleware.ClientIP(r)).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	http.SetCookie(w, handler.cookie(res.Token, res.ExpiresAt))

	scope.AddEvent("Admin logged in successfully")

	body := dto.LoginResponse{}
	body.FromResult(res)

	response.WithJSON(w, http.StatusOK, body)
}

// Logout ends the current session
// @Summary Log out
// @Description End the server-side session and clear the cookie. Always succeeds.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out"
// @Router /auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if cookie, err := r.Cookie(handler.cfg.Session.CookieName); err == nil {
		if err := handler.service.Logout(ctx, cookie.Value); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to end session")

			response.WithError(w, err)

			return
		}
	}

	expired := handler.cookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	response.WithMessage(w, http.StatusOK, "Logged out")
}

// Verify reports the caller's session
// @Summary Verify the session
// @Description Report whether the session cookie is valid.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.VerifyResponse
// @Failure 401 {object} response.Error
// @Router /auth/verify [get]
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		scope.TraceError(failure.ErrMissingSession)

		response.WithError(w, failure.ErrMissingSession)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.VerifyResponse{Authenticated: true, Username: identity.Username})
}

func (handler *Handler) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     handler.cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   handler.cfg.Session.CookieDomain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   handler.cfg.Session.Secure,
		SameSite: sameSite(handler.cfg.Session.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
