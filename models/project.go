package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a complete portfolio project with metadata
type Project struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	GithubLink   string    `json:"githubLink"`
	LiveLink     string    `json:"liveLink"`
	Image        *string   `json:"image"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
