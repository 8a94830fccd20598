package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/jokebox/internal/auth"
	"github.com/isdelr/jokebox/internal/models"
	"github.com/isdelr/jokebox/internal/services"
	"github.com/rs/zerolog/log"
)

// JokeHandler handles HTTP requests for jokes.
type JokeHandler struct {
	service services.JokeServiceProvider
}

// NewJokeHandler creates a new JokeHandler.
func NewJokeHandler(service services.JokeServiceProvider) *JokeHandler {
	return &JokeHandler{service: service}
}

// JokeFieldErrors holds per-field validation messages for the joke form.
type JokeFieldErrors struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content,omitempty"`
}

// JokeFormResponse is the structured failure payload for joke submission.
type JokeFormResponse struct {
	FormError   string           `json:"formError,omitempty"`
	FieldErrors *JokeFieldErrors `json:"fieldErrors,omitempty"`
}

// GetAll returns every joke, newest first.
func (h *JokeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	jokes, err := h.service.GetAllJokes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list jokes")
		http.Error(w, "Failed to list jokes", http.StatusInternalServerError)
		return
	}
	if jokes == nil {
		jokes = []models.Joke{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jokes)
}

// GetRandom returns one joke at random.
func (h *JokeHandler) GetRandom(w http.ResponseWriter, r *http.Request) {
	joke, err := h.service.GetRandomJoke()
	if err != nil {
		if errors.Is(err, services.ErrJokeNotFound) {
			http.Error(w, "No jokes yet", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("Failed to get random joke")
		http.Error(w, "Failed to get random joke", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(joke)
}

// Get returns a single joke by ID.
func (h *JokeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	joke, err := h.service.GetJokeByID(id)
	if err != nil {
		if errors.Is(err, services.ErrJokeNotFound) {
			http.Error(w, "Joke not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("joke_id", id).Msg("Failed to get joke")
		http.Error(w, "Failed to get joke", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(joke)
}

// Create submits a new joke owned by the authenticated user.
func (h *JokeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(JokeFormResponse{FormError: "Form not submitted correctly."})
		return
	}

	name := r.PostFormValue("name")
	content := r.PostFormValue("content")

	fieldErrors := JokeFieldErrors{}
	if len(name) < 3 {
		fieldErrors.Name = "That joke's name is too short"
	}
	if len(content) < 10 {
		fieldErrors.Content = "That joke is too short"
	}
	if fieldErrors.Name != "" || fieldErrors.Content != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(JokeFormResponse{FieldErrors: &fieldErrors})
		return
	}

	joke, err := h.service.CreateJoke(userID, name, content)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create joke")
		http.Error(w, "Failed to create joke", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(joke)
}

// Delete removes a joke. Only the owner may delete it.
func (h *JokeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteJoke(id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrJokeNotFound):
			http.Error(w, "Joke not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotJokeOwner):
			http.Error(w, "Pssh, nice try. That's not your joke", http.StatusForbidden)
		default:
			log.Error().Err(err).Str("joke_id", id).Msg("Failed to delete joke")
			http.Error(w, "Failed to delete joke", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
