package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/isdelr/jokebox/internal/models"
)

// ErrJokeNotFound is returned when a joke ID does not exist.
var ErrJokeNotFound = errors.New("joke not found")

// ErrNotJokeOwner is returned when a user tries to delete someone else's joke.
var ErrNotJokeOwner = errors.New("not the joke owner")

// JokeServiceProvider defines the interface for joke services.
type JokeServiceProvider interface {
	GetAllJokes() ([]models.Joke, error)
	GetJokeByID(id string) (models.Joke, error)
	GetRandomJoke() (models.Joke, error)
	CreateJoke(jokesterID, name, content string) (models.Joke, error)
	DeleteJoke(id, requesterID string) error
}

// JokeService provides business logic for joke management.
type JokeService struct {
	db *sql.DB
}

// NewJokeService creates a new JokeService.
func NewJokeService(db *sql.DB) *JokeService {
	return &JokeService{db: db}
}

// GetAllJokes retrieves all jokes, newest first.
func (s *JokeService) GetAllJokes() ([]models.Joke, error) {
	rows, err := s.db.Query("SELECT id, jokester_id, name, content, created_at FROM jokes ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jokes []models.Joke
	for rows.Next() {
		var joke models.Joke
		if err := rows.Scan(&joke.ID, &joke.JokesterID, &joke.Name, &joke.Content, &joke.CreatedAt); err != nil {
			return nil, err
		}
		jokes = append(jokes, joke)
	}
	return jokes, rows.Err()
}

// GetJokeByID retrieves a single joke by its ID.
func (s *JokeService) GetJokeByID(id string) (models.Joke, error) {
	var joke models.Joke
	row := s.db.QueryRow("SELECT id, jokester_id, name, content, created_at FROM jokes WHERE id = ?", id)
	err := row.Scan(&joke.ID, &joke.JokesterID, &joke.Name, &joke.Content, &joke.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Joke{}, ErrJokeNotFound
		}
		return models.Joke{}, err
	}
	return joke, nil
}

// GetRandomJoke retrieves one joke at random.
func (s *JokeService) GetRandomJoke() (models.Joke, error) {
	var joke models.Joke
	row := s.db.QueryRow("SELECT id, jokester_id, name, content, created_at FROM jokes ORDER BY RANDOM() LIMIT 1")
	err := row.Scan(&joke.ID, &joke.JokesterID, &joke.Name, &joke.Content, &joke.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Joke{}, ErrJokeNotFound
		}
		return models.Joke{}, err
	}
	return joke, nil
}

// CreateJoke inserts a new joke owned by the given user.
func (s *JokeService) CreateJoke(jokesterID, name, content string) (models.Joke, error) {
	joke := models.Joke{
		ID:         uuid.New().String(),
		JokesterID: jokesterID,
		Name:       name,
		Content:    content,
	}

	stmt, err := s.db.Prepare("INSERT INTO jokes(id, jokester_id, name, content) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Joke{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(joke.ID, joke.JokesterID, joke.Name, joke.Content); err != nil {
		return models.Joke{}, err
	}

	return s.GetJokeByID(joke.ID)
}

// DeleteJoke removes a joke. Only the owner may delete it.
func (s *JokeService) DeleteJoke(id, requesterID string) error {
	joke, err := s.GetJokeByID(id)
	if err != nil {
		return err
	}
	if joke.JokesterID != requesterID {
		return ErrNotJokeOwner
	}

	_, err = s.db.Exec("DELETE FROM jokes WHERE id = ?", id)
	return err
}
