package models

import "time"

// Joke represents a single submitted joke.
type Joke struct {
	ID         string    `json:"id"`
	JokesterID string    `json:"jokesterId"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
