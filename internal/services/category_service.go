package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "kopilka/internal/errors"
	"kopilka/internal/models"
)

// categoryService handles user-defined category rules.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new matching rule. A rule whose name or trigger
// phrase collides case-insensitively with an existing rule of the same user
// is rejected: overlapping rules would make match results ambiguous.
func (s *categoryService) CreateCategory(userID uint, name, matchText string) (*models.Category, error) {
	if userID == 0 {
		return nil, apperrors.ErrInvalidUser
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	matchText = strings.TrimSpace(matchText)
	if matchText == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category trigger phrase is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND (LOWER(name) = LOWER(?) OR LOWER(match_text) = LOWER(?))", userID, name, matchText).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:    userID,
		Name:      name,
		MatchText: matchText,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return category, nil
}

// ListCategories returns the user's rules in stable creation order.
func (s *categoryService) ListCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return categories, nil
}

// ListCategoryNames returns just the display names, in creation order. The
// extraction prompt embeds these to steer the model toward known labels.
func (s *categoryService) ListCategoryNames(userID uint) ([]string, error) {
	categories, err := s.ListCategories(userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// FindMatch returns the first rule (creation order) whose trigger phrase is
// a lowercase substring of the text, or nil when nothing matches. Plain
// containment can over-match on short trigger words; that is accepted rule
// semantics, not something to second-guess here.
func (s *categoryService) FindMatch(userID uint, text string) (*models.Category, error) {
	categories, err := s.ListCategories(userID)
	if err != nil {
		return nil, err
	}

	normalized := strings.ToLower(text)
	for i := range categories {
		if strings.Contains(normalized, strings.ToLower(categories[i].MatchText)) {
			return &categories[i], nil
		}
	}
	return nil, nil
}
