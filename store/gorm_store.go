package store

import (
	"context"
	"errors"

	"github.com/flashapp/flash-api/apperr"
	"github.com/flashapp/flash-api/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// wrap translates GORM errors into the shared taxonomy.
func wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.Remote("database", err)
}

func (s *GormStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := models.User{Email: email, PasswordHash: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Validation("email", "an account with this email already exists")
		}
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err)
	}
	return &user, nil
}

func (s *GormStore) ListCourses(ctx context.Context, userID uint) ([]CourseSummary, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, wrap(err)
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		var count int64
		err := s.db.WithContext(ctx).
			Model(&models.Flashcard{}).
			Where("course_id = ?", course.ID).
			Count(&count).Error
		if err != nil {
			return nil, wrap(err)
		}
		summaries = append(summaries, CourseSummary{Course: course, CardCount: count})
	}
	return summaries, nil
}

func (s *GormStore) CreateCourse(ctx context.Context, userID uint, name string) (*models.Course, error) {
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, apperr.Remote("database", err)
	}

	course := models.Course{Name: name, UserID: userID, PublicID: publicID}
	if err := s.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, wrap(err)
	}
	return &course, nil
}

// GetCourse is the ownership guard: every course-scoped read or write goes
// through it. A course owned by someone else comes back as ErrForbidden.
func (s *GormStore) GetCourse(ctx context.Context, userID uint, publicID string) (*models.Course, error) {
	var course models.Course
	if err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&course).Error; err != nil {
		return nil, wrap(err)
	}
	if course.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	return &course, nil
}

func (s *GormStore) DeleteCourse(ctx context.Context, userID uint, publicID string) error {
	course, err := s.GetCourse(ctx, userID, publicID)
	if err != nil {
		return err
	}

	// Cards go first so sqlite without FK enforcement stays consistent too.
	if err := s.db.WithContext(ctx).Where("course_id = ?", course.ID).Delete(&models.Flashcard{}).Error; err != nil {
		return wrap(err)
	}
	if err := s.db.WithContext(ctx).Delete(course).Error; err != nil {
		return wrap(err)
	}
	return nil
}

func (s *GormStore) ListFlashcards(ctx context.Context, userID uint, coursePublicID string, order Order) ([]models.Flashcard, error) {
	course, err := s.GetCourse(ctx, userID, coursePublicID)
	if err != nil {
		return nil, err
	}

	direction := "created_at ASC, id ASC"
	if order == NewestFirst {
		direction = "created_at DESC, id DESC"
	}

	var flashcards []models.Flashcard
	err = s.db.WithContext(ctx).
		Where("course_id = ?", course.ID).
		Order(direction).
		Find(&flashcards).Error
	if err != nil {
		return nil, wrap(err)
	}
	if len(flashcards) == 0 {
		flashcards = []models.Flashcard{}
	}
	return flashcards, nil
}

func (s *GormStore) CreateFlashcard(ctx context.Context, userID uint, coursePublicID, question, answer string) (*models.Flashcard, error) {
	course, err := s.GetCourse(ctx, userID, coursePublicID)
	if err != nil {
		return nil, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, apperr.Remote("database", err)
	}

	flashcard := models.Flashcard{
		Question: question,
		Answer:   answer,
		PublicID: publicID,
		CourseID: course.ID,
		UserID:   userID,
	}
	if err := s.db.WithContext(ctx).Create(&flashcard).Error; err != nil {
		return nil, wrap(err)
	}
	return &flashcard, nil
}

func (s *GormStore) DeleteFlashcard(ctx context.Context, userID uint, coursePublicID, cardPublicID string) error {
	course, err := s.GetCourse(ctx, userID, coursePublicID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("public_id = ? AND course_id = ?", cardPublicID, course.ID).
		Delete(&models.Flashcard{})
	if result.Error != nil {
		return wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetProfile returns a zero-value profile when the user never saved one, so
// the account page always has something to render.
func (s *GormStore) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).First(&profile, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Profile{ID: userID}, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &profile, nil
}

func (s *GormStore) UpsertProfile(ctx context.Context, userID uint, username string) (*models.Profile, error) {
	profile := models.Profile{ID: userID, Username: username}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "updated_at"}),
		}).
		Create(&profile).Error
	if err != nil {
		return nil, wrap(err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *GormStore) UpdateAvatarURL(ctx context.Context, userID uint, avatarURL string) (*models.Profile, error) {
	profile := models.Profile{ID: userID, AvatarURL: avatarURL}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"avatar_url", "updated_at"}),
		}).
		Create(&profile).Error
	if err != nil {
		return nil, wrap(err)
	}
	return s.GetProfile(ctx, userID)
}
