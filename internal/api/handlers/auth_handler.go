package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/isdelr/jokebox/internal/auth"
	"github.com/isdelr/jokebox/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	service services.UserServiceProvider
	codec   *auth.SessionCodec
	guard   *auth.Guard
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, codec *auth.SessionCodec, guard *auth.Guard) *AuthHandler {
	return &AuthHandler{service: service, codec: codec, guard: guard}
}

// FieldErrors holds per-field validation messages for the login form.
type FieldErrors struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// FormFields echoes the submitted values back so the form can be re-rendered.
// The password is never echoed.
type FormFields struct {
	LoginType string `json:"loginType"`
	Username  string `json:"username"`
}

// FormResponse is the structured failure payload for login and registration.
type FormResponse struct {
	FormError   string       `json:"formError,omitempty"`
	FieldErrors *FieldErrors `json:"fieldErrors,omitempty"`
	Fields      *FormFields  `json:"fields,omitempty"`
}

func badRequest(w http.ResponseWriter, resp FormResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(resp)
}

func validateLength(field, value string, min int) string {
	if len(value) < min {
		return fmt.Sprintf("%s must be at least %d characters long", field, min)
	}
	return ""
}

// Login handles the combined login/registration form. The loginType field
// selects between the two, mirroring a single form with a radio toggle.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, FormResponse{FormError: "Form not submitted correctly."})
		return
	}

	loginType := r.PostFormValue("loginType")
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	redirectTo := auth.ValidateRedirectTarget(r.PostFormValue("redirectTo"))

	fieldErrors := FieldErrors{
		Username: validateLength("Username", username, 3),
		Password: validateLength("Password", password, 6),
	}
	fields := FormFields{LoginType: loginType, Username: username}

	if fieldErrors.Username != "" || fieldErrors.Password != "" {
		badRequest(w, FormResponse{FieldErrors: &fieldErrors, Fields: &fields})
		return
	}

	switch loginType {
	case "login":
		user, err := h.service.Authenticate(username, password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				log.Warn().Str("username", username).Msg("Failed authentication attempt")
				badRequest(w, FormResponse{FormError: "Invalid credentials", Fields: &fields})
				return
			}
			log.Error().Err(err).Str("username", username).Msg("Failed to authenticate user")
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
			return
		}
		h.createSession(w, r, user.ID, redirectTo)

	case "register":
		user, err := h.service.CreateUser(username, password)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				badRequest(w, FormResponse{
					FormError: fmt.Sprintf("User with username %s already exists", username),
					Fields:    &fields,
				})
				return
			}
			log.Error().Err(err).Str("username", username).Msg("Failed to register user")
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
			return
		}
		h.createSession(w, r, user.ID, redirectTo)

	default:
		badRequest(w, FormResponse{FormError: "Login type invalid", Fields: &fields})
	}
}

// createSession issues the session cookie and redirects to the (already
// validated) target.
func (h *AuthHandler) createSession(w http.ResponseWriter, r *http.Request, userID, redirectTo string) {
	value, err := h.codec.Encode(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to encode session")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.codec.Cookie(value))
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// Logout clears the session cookie and redirects to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.codec.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// GetMe returns the currently authenticated user.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.guard.CurrentUser(w, r)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
