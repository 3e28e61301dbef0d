package misc

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/semearlages/semearapi/internal/auth"
	"github.com/semearlages/semearapi/internal/middleware"
	"github.com/semearlages/semearapi/internal/ratelimit"
	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/internal/telemetry/tracing"
	"github.com/semearlages/semearapi/pkg"
)

const apiName = "Projeto Semear Lages API"

type Handler struct {
	authService    *auth.Service
	versionInfo    string
	cookieSecure   bool
	metricsManager *metrics.Manager
}

type NewHandlerParams struct {
	AuthService    *auth.Service
	VersionInfo    string
	CookieSecure   bool
	MetricsManager *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		authService:    params.AuthService,
		versionInfo:    params.VersionInfo,
		cookieSecure:   params.CookieSecure,
		metricsManager: params.MetricsManager,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message   string `json:"message"`
	UserEmail string `json:"user_email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (handler *Handler) SetupRoutes(router *mux.Router, guard *middleware.RouteGuard) {
	router.Handle("/", guard.Public(ratelimit.RuleRoot, handler.handleRoot)).Methods("GET").Name("root")
	router.Handle("/api/health", guard.Public(ratelimit.RuleHealth, handler.handleHealth)).Methods("GET").Name("health")

	router.Handle("/api/auth/login", guard.Public(ratelimit.RuleLogin, handler.handleLogin)).Methods("POST").Name("login")
	router.Handle("/api/auth/logout", guard.Public(ratelimit.RuleLogout, handler.handleLogout)).Methods("POST").Name("logout")
	router.Handle("/api/auth/me", guard.Admin(ratelimit.RuleMe, handler.handleMe)).Methods("GET").Name("me")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, RootResponse{
		Message: apiName,
		Version: handler.versionInfo,
	})
}

func (handler *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	var loginReq loginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		handler.countLogin("bad_request")
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := handler.authService.Login(ctx, loginReq.Email, loginReq.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		handler.countLogin("bad_request")
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Tracef("failed login attempt for: %s", loginReq.Email)
		handler.countLogin("failure")
		span.SetStatus(codes.Error, "invalid credentials")
		w.Header().Set("WWW-Authenticate", "Bearer")
		pkg.WriteJSONError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		log.Errorf("login failed: %s", err)
		handler.countLogin("error")
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, handler.accessTokenCookie(res.Token, handler.authService.Tokens().TTL()))
	handler.countLogin("success")
	log.Tracef("login success for admin %d", res.Admin.ID)

	pkg.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login realizado com sucesso",
		UserEmail: res.Admin.Email,
	})
}

// handleLogout only drops the cookie. Tokens are stateless, so one kept by
// the client stays valid until it expires.
func (handler *Handler) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, handler.accessTokenCookie("", 0))
	pkg.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logout realizado com sucesso"})
}

func (handler *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.AdminFromContext(r.Context())
	if !ok {
		middleware.WriteUnauthorized(w)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, admin)
}

// accessTokenCookie builds the token cookie; a zero ttl builds the one that deletes it.
func (handler *Handler) accessTokenCookie(token string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	}
	if ttl <= 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}

func (handler *Handler) countLogin(result string) {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterLoginAttempts.WithLabelValues(result).Inc()
	}
}
