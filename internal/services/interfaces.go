package services

import (
	"context"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
)

// Collaborator contracts. The MLB client, the Statcast service and the
// Claude client satisfy these; tests substitute testify mocks.

// GameFeedProvider reads live game state and player records
type GameFeedProvider interface {
	LiveFeed(ctx context.Context, gameID string) (*mlb.LiveFeed, error)
	Player(ctx context.Context, playerID int) (*mlb.Person, error)
}

// StatsProvider reads player stats for a window
type StatsProvider interface {
	PlayerStats(ctx context.Context, playerID int, params models.StatsRequestParams, group models.StatGroup) (*models.PlayerStatsResponse, error)
}

// ScheduleProvider lists a day's games
type ScheduleProvider interface {
	Schedule(ctx context.Context, date string) ([]models.ScheduledGame, error)
}

// PlayProvider reads one play from a game's play-by-play
type PlayProvider interface {
	AtBat(ctx context.Context, gameID string, atBatIndex int) (*mlb.Play, *mlb.LiveFeed, error)
}

// MatchupProvider aggregates head-to-head history by MLBAM ids
type MatchupProvider interface {
	BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error)
}

// SplitsProvider reads a batter's Stats API line against one pitcher
type SplitsProvider interface {
	MatchupSplits(ctx context.Context, batterID, pitcherID int) (*models.PlayerStatsResponse, error)
}

// SnapshotBuilder produces the normalized view of a live game
type SnapshotBuilder interface {
	BuildSnapshot(ctx context.Context, gameID string) (*models.GameSnapshot, error)
}

// TextGenerator turns a prompt into generated text
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ContextResolver fetches the data a classified question needs
type ContextResolver interface {
	Resolve(ctx context.Context, analysis models.QuestionAnalysis, gameID string, snapshot *models.GameSnapshot, metadata *models.GameMetadata) (*models.ResolvedData, error)
}
