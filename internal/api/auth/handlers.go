// internal/api/auth/handlers.go
package auth

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/futplan/internal/api/apiutil"
	"github.com/codr1/futplan/internal/api/htmx"
	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/models"
	"github.com/codr1/futplan/internal/ratelimit"
	"github.com/codr1/futplan/internal/session"
	authtempl "github.com/codr1/futplan/internal/templates/components/auth"
	"github.com/codr1/futplan/internal/templates/layouts"
)

const (
	// DashboardPath is where a successful login lands.
	DashboardPath = "/dashboard"
	// loginRedirectDelay leaves the success toast on screen before navigating.
	loginRedirectDelay = 800 * time.Millisecond

	showLoginTabEvent = "showLoginTab"
)

var (
	client   *futapi.Client
	sessions *session.Manager
	limiter  *ratelimit.Limiter
)

// InitHandlers must be called during server startup before handling requests.
// A nil limiter disables attempt throttling.
func InitHandlers(c *futapi.Client, m *session.Manager, l *ratelimit.Limiter) {
	if c == nil || m == nil {
		log.Warn().Msg("auth.InitHandlers called with nil dependency; auth handlers will fail")
	}
	client = c
	sessions = m
	limiter = l
}

// HandleLandingPage handles GET /. Signed-in users go straight to the dashboard.
func HandleLandingPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok && sess.HasToken() {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}
	page := layouts.Base("FutPlan", authtempl.LandingPage(), nil)
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render landing page", "Failed to render page")
}

// HandleLogin handles POST /auth/login.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro no login"
	logger := log.Ctx(r.Context())

	if !allowAttempt(w, r, "login") {
		return
	}

	creds, err := decodeCredentials(r)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if err := creds.Validate(); err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	token, err := client.Login(r.Context(), creds)
	if err != nil {
		logger.Warn().Err(err).Str("email", ratelimit.SanitizeIdentifier(creds.Email)).Msg("Login failed")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	sess, err := sessions.Login(r.Context(), w, token, creds.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to store session")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	logger.Info().Str("email", ratelimit.SanitizeIdentifier(creds.Email)).Time("expires_at", sess.ExpiresAt).Msg("User logged in")
	if !htmx.IsRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"email":      sess.Email,
			"expires_at": sess.ExpiresAt,
		}); err != nil {
			logger.Warn().Err(err).Msg("Failed to write login response")
		}
		return
	}
	apiutil.WriteHeaders(w, map[string]string{
		htmx.HeaderTrigger: htmx.TriggerDetail(
			&htmx.Toast{Title: "Login realizado!", Description: "Redirecionando para o dashboard...", Variant: htmx.ToastSuccess},
			map[string]any{
				layouts.NavigateEvent: map[string]any{
					"url":   DashboardPath,
					"delay": loginRedirectDelay.Milliseconds(),
				},
			},
		),
	})
}

// HandleSignup handles POST /auth/signup. A new account is not signed in;
// the page switches back to the login tab.
func HandleSignup(w http.ResponseWriter, r *http.Request) {
	const failureTitle = "Erro"
	logger := log.Ctx(r.Context())

	if !allowAttempt(w, r, "signup") {
		return
	}

	user, err := decodeUser(r)
	if err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}
	user = user.Normalize()
	if err := user.Validate(); err != nil {
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	if err := client.Signup(r.Context(), user); err != nil {
		logger.Warn().Err(err).Str("email", ratelimit.SanitizeIdentifier(user.Email)).Msg("Signup failed")
		apiutil.RespondError(w, r, failureTitle, err)
		return
	}

	logger.Info().Str("email", ratelimit.SanitizeIdentifier(user.Email)).Msg("User signed up")
	user.Password = ""
	apiutil.RespondDone(w, r, http.StatusCreated, user, htmx.Success(
		"Cadastro realizado!",
		"Você pode fazer login agora.",
		showLoginTabEvent,
	))
}

// HandleLogout handles POST /auth/logout.
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := sessions.Logout(w, r); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete session on logout")
	}
	if htmx.IsRequest(r) {
		htmx.Redirect(w, "/")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// allowAttempt consumes one attempt for the client IP and answers the
// request itself when the attempt is refused.
func allowAttempt(w http.ResponseWriter, r *http.Request, action string) bool {
	if limiter == nil {
		return true
	}
	ip := limiter.ClientIP(r)
	result := limiter.Allow(ip)
	if result.Allowed {
		return true
	}

	ratelimit.LogRateLimitExceeded(action, "", ip, result.RetryAfter)
	retrySeconds := int(result.RetryAfter.Round(time.Second) / time.Second)
	if retrySeconds < 1 {
		retrySeconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
	apiutil.RespondError(w, r, "Muitas tentativas", apiutil.HandlerError{
		Status:  http.StatusTooManyRequests,
		Message: "Muitas tentativas. Aguarde um momento e tente novamente.",
	})
	return false
}

func decodeCredentials(r *http.Request) (models.Credentials, error) {
	var creds models.Credentials
	if apiutil.IsJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &creds); err != nil {
			return creds, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados de login inválidos.", Err: err}
		}
		return creds, nil
	}
	if err := r.ParseForm(); err != nil {
		return creds, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados de login inválidos.", Err: err}
	}
	creds.Email = r.FormValue("email")
	creds.Password = r.FormValue("senha")
	return creds, nil
}

func decodeUser(r *http.Request) (models.User, error) {
	var user models.User
	if apiutil.IsJSONBody(r) {
		if err := apiutil.DecodeJSON(r, &user); err != nil {
			return user, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados de cadastro inválidos.", Err: err}
		}
		return user, nil
	}
	if err := r.ParseForm(); err != nil {
		return user, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Dados de cadastro inválidos.", Err: err}
	}
	return models.User{
		Name:      r.FormValue("nome"),
		Email:     r.FormValue("email"),
		Gender:    r.FormValue("genero"),
		BirthDate: r.FormValue("data_nascimento"),
		Phone:     r.FormValue("celular"),
		Password:  r.FormValue("senha"),
	}, nil
}
