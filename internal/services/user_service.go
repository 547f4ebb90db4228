package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/models"
)

// userService handles user lookup and first-contact registration.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// EnsureUser returns the user for the given Telegram ID, creating the record
// on first contact.
func (s *userService) EnsureUser(telegramID int64) (*models.User, error) {
	user, err := s.GetByTelegramID(telegramID)
	if err == nil {
		return user, nil
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrNotFound.Code {
		return nil, err
	}

	created := &models.User{TelegramID: telegramID}
	if err := s.db.Create(created).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return created, nil
}

// GetByTelegramID retrieves a user by their Telegram account ID.
func (s *userService) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	if err := s.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &user, nil
}
