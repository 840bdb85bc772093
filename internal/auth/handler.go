package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hossin-jomm/creative-backend/internal/middleware"
	"github.com/hossin-jomm/creative-backend/internal/telemetry/metrics"
	"github.com/hossin-jomm/creative-backend/internal/telemetry/tracing"
	"github.com/hossin-jomm/creative-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// user-facing messages, shared with the auth middleware
const (
	MsgMissingToken       = "مفقود رمز المصادقة"
	MsgUnauthorized       = "غير مصرح لك بالوصول"
	MsgMissingCredentials = "اسم المستخدم وكلمة المرور مطلوبان"
	MsgWrongCredentials   = "اسم المستخدم أو كلمة المرور غير صحيحة"
	MsgServerError        = "حدث خطأ في الخادم"
	MsgLoginSuccess       = "تم تسجيل الدخول بنجاح"
	MsgLogoutSuccess      = "تم تسجيل الخروج بنجاح"
)

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type VerifyResponse struct {
	Ok   bool `json:"ok"`
	User User `json:"user"`
}

type Handler struct {
	authService *Service
	checker     Checker
	metrics     *metrics.Manager
}

func NewHandler(
	authService *Service,
	checker Checker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		authService: authService,
		checker:     checker,
		metrics:     metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("admin-login")
	adminRouter.
		HandleFunc("/verify", handler.handleVerify).
		Methods("GET", "OPTIONS").Name("admin-verify")
	adminRouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("POST", "OPTIONS").Name("admin-logout")

	// rate limit the admin endpoints to prevent login abuse
	adminRouter.Use(middleware.RateLimit(rateLimiter, "admin", loginAllowedPerMin, metricsManager))
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, MsgMissingCredentials, http.StatusBadRequest)
			span.SetStatus(codes.Error, "bad-request-params")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			pkg.WriteJSONError(w, MsgServerError, http.StatusInternalServerError)
			span.SetStatus(codes.Error, "parse-form-error")
			return
		}
		loginReq = loginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		pkg.WriteJSONError(w, MsgMissingCredentials, http.StatusBadRequest)
		span.SetStatus(codes.Error, "missing-credentials")
		return
	}

	token, err := handler.authService.Login(ctx, Credentials{
		Username: loginReq.Username,
		Password: loginReq.Password,
	})
	switch {
	case err == nil:
		// continue below
	case errors.Is(err, ErrWrongUsername), errors.Is(err, ErrWrongPassword):
		log.Tracef("failed login attempt for user [%s] from %s", loginReq.Username, pkg.ReadUserIP(r))
		pkg.WriteJSONError(w, MsgWrongCredentials, http.StatusUnauthorized)
		span.SetStatus(codes.Error, "wrong-credentials")
		return
	default:
		log.Errorf("login failed, generate token error: %s", err)
		pkg.WriteJSONError(w, MsgServerError, http.StatusInternalServerError)
		span.SetStatus(codes.Error, "generate-token-error")
		return
	}

	handler.metrics.CounterLogins.Inc()
	log.Trace("new login success")

	resp, err := json.Marshal(LoginResponse{
		Message: MsgLoginSuccess,
		Token:   token,
		User: User{
			Username: loginReq.Username,
			Role:     RoleAdmin,
		},
	})
	if err != nil {
		log.Errorf("login, marshal response: %s", err)
		pkg.WriteJSONError(w, MsgServerError, http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.verify")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := BearerToken(r)
	if token == "" {
		pkg.WriteJSONError(w, MsgMissingToken, http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-auth-token")
		return
	}

	claims, err := handler.checker.Verify(ctx, token)
	if err != nil {
		log.Tracef("[invalid token] verify => %s", err)
		pkg.WriteJSONError(w, MsgUnauthorized, http.StatusUnauthorized)
		span.SetStatus(codes.Error, "not-logged")
		return
	}

	resp, err := json.Marshal(VerifyResponse{
		Ok: true,
		User: User{
			Username: claims.Username,
			Role:     claims.Role,
		},
	})
	if err != nil {
		log.Errorf("verify, marshal response: %s", err)
		pkg.WriteJSONError(w, MsgServerError, http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "ok")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := BearerToken(r)
	if token == "" {
		pkg.WriteJSONError(w, MsgMissingToken, http.StatusUnauthorized)
		span.SetStatus(codes.Error, "missing-auth-token")
		return
	}

	if err := handler.authService.Logout(ctx, token); err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		pkg.WriteJSONError(w, MsgUnauthorized, http.StatusUnauthorized)
		span.SetStatus(codes.Error, "logout-failed")
		return
	}

	log.Trace("logout success")
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteJSONResponseOK(w, `{"message":"`+MsgLogoutSuccess+`"}`)
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
