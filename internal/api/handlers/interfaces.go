package handlers

import (
	"context"

	"github.com/stitts-dev/dugout/internal/models"
)

// ChatService answers a free-form question about a game
type ChatService interface {
	Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// AtBatCommentator generates commentary for a finished at-bat and previews for the one in progress
type AtBatCommentator interface {
	CommentOnAtBat(ctx context.Context, gameID string, atBatIndex int) (*models.AtBatResponse, error)
	PreviewAtBat(ctx context.Context, gameID string) (*models.AtBatPreview, error)
}

type ScheduleReader interface {
	Today(ctx context.Context) (*models.DaySchedule, error)
	ByDate(ctx context.Context, date string) (*models.DaySchedule, error)
}

type SnapshotBuilder interface {
	BuildSnapshot(ctx context.Context, gameID string) (*models.GameSnapshot, error)
}

type MatchupReader interface {
	BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error)
}
