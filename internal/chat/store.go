package chat

import (
	"context"

	"github.com/neeva-app/neeva-backend/internal/models"
	"gorm.io/gorm"
)

// Store is the append-only per-user log of chat turns. Ordering is
// created_at with the autoincrement id breaking ties; role alternation
// is not enforced, only append order.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Append durably persists one turn before returning. The insert is
// atomic: a failure writes nothing.
func (s *Store) Append(ctx context.Context, userID uint, role, content string) (*models.ChatMessage, error) {
	msg := models.ChatMessage{
		UserID:  userID,
		Role:    role,
		Content: content,
	}

	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, &StorageError{Op: "append turn", Err: err}
	}

	return &msg, nil
}

// RecentTurns returns up to limit of the user's newest turns,
// newest-first. Callers wanting a model context window oldest-first go
// through BuildWindow.
func (s *Store) RecentTurns(ctx context.Context, userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		return []models.ChatMessage{}, nil
	}

	var turns []models.ChatMessage

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, &StorageError{Op: "recent turns", Err: err}
	}

	return turns, nil
}

// History returns a newest-first page of the user's turns.
func (s *Store) History(ctx context.Context, userID uint, skip, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		return []models.ChatMessage{}, nil
	}
	if skip < 0 {
		skip = 0
	}

	var turns []models.ChatMessage

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(skip).
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, &StorageError{Op: "history", Err: err}
	}

	return turns, nil
}
