// Package store is the single data-access dependency handed to the handlers.
// Every course-scoped operation resolves the course through GetCourse first,
// so the ownership boundary lives in one place instead of each query filter.
package store

import (
	"context"

	"github.com/flashapp/flash-api/models"
)

// Order selects the created_at direction for flashcard listings. The editor
// shows newest first, the study view oldest first.
type Order string

const (
	OldestFirst Order = "asc"
	NewestFirst Order = "desc"
)

// CourseSummary is a course row plus its card count for the course list.
type CourseSummary struct {
	models.Course
	CardCount int64 `json:"card_count"`
}

type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)

	ListCourses(ctx context.Context, userID uint) ([]CourseSummary, error)
	CreateCourse(ctx context.Context, userID uint, name string) (*models.Course, error)
	GetCourse(ctx context.Context, userID uint, publicID string) (*models.Course, error)
	DeleteCourse(ctx context.Context, userID uint, publicID string) error

	ListFlashcards(ctx context.Context, userID uint, coursePublicID string, order Order) ([]models.Flashcard, error)
	CreateFlashcard(ctx context.Context, userID uint, coursePublicID, question, answer string) (*models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, userID uint, coursePublicID, cardPublicID string) error

	GetProfile(ctx context.Context, userID uint) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID uint, username string) (*models.Profile, error)
	UpdateAvatarURL(ctx context.Context, userID uint, avatarURL string) (*models.Profile, error)
}
