package chat

import (
	"context"

	"github.com/neeva-app/neeva-backend/internal/models"
)

// BuildWindow selects the user's most recent turns and returns them
// oldest-first, ready to be sent to the model. The store hands back
// newest-first, so the slice is reversed in place. Length is at most
// limit; limit <= 0 yields an empty window, not an error. The bound is
// the main token/cost control, so callers treat it as a tunable.
func BuildWindow(ctx context.Context, store *Store, userID uint, limit int) ([]models.ChatMessage, error) {
	turns, err := store.RecentTurns(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	return turns, nil
}
