package statcast

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/models"
)

// Service answers head-to-head questions from the Statcast store. Build it
// once at startup and pass it to whatever needs matchup history.
type Service struct {
	repo   Repository
	logger *logrus.Logger
}

// NewService creates a matchup service over a repository
func NewService(repo Repository, logger *logrus.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// BatterVsPitcher aggregates every recorded plate appearance between two
// players, identified by MLBAM id.
func (s *Service) BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error) {
	events, err := s.repo.FindMatchupEvents(ctx, batterID, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matchup %d vs %d: %w", batterID, pitcherID, err)
	}

	stats := Aggregate(events)

	s.logger.WithFields(logrus.Fields{
		"batter_id":         batterID,
		"pitcher_id":        pitcherID,
		"rows":              len(events),
		"plate_appearances": stats.PlateAppearances,
	}).Debug("Aggregated batter vs pitcher matchup")

	return &stats, nil
}
