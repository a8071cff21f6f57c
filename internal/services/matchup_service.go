package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/statcast"
)

const vsPlayerTotal = "vsPlayerTotal"

// MatchupService answers head-to-head lookups from the Statcast store and
// falls back to the Stats API vsPlayer line when the store has no plate
// appearances for the pair or cannot be read.
type MatchupService struct {
	store  MatchupProvider
	splits SplitsProvider
	logger *logrus.Logger
}

func NewMatchupService(store MatchupProvider, splits SplitsProvider, logger *logrus.Logger) *MatchupService {
	return &MatchupService{store: store, splits: splits, logger: logger}
}

// BatterVsPitcher returns the pair's career head-to-head line
func (s *MatchupService) BatterVsPitcher(ctx context.Context, batterID, pitcherID int) (*models.MatchupStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"batter_id":  batterID,
		"pitcher_id": pitcherID,
	})

	stored, storeErr := s.store.BatterVsPitcher(ctx, batterID, pitcherID)
	if storeErr == nil && stored == nil {
		stored = &models.MatchupStats{}
	}
	if storeErr == nil && stored.PlateAppearances > 0 {
		return stored, nil
	}
	if storeErr != nil {
		log.WithError(storeErr).Warn("Statcast store unavailable, trying Stats API splits")
	}

	resp, err := s.splits.MatchupSplits(ctx, batterID, pitcherID)
	if err != nil {
		if storeErr != nil {
			return nil, fmt.Errorf("failed to load matchup %d vs %d: %w", batterID, pitcherID, err)
		}
		log.WithError(err).Warn("Stats API splits unavailable, using empty Statcast history")
		return stored, nil
	}

	line := totalLine(resp)
	if line == nil {
		if storeErr != nil {
			return &models.MatchupStats{}, nil
		}
		return stored, nil
	}

	stats := statcast.FromStatLine(line)
	log.WithField("plate_appearances", stats.PlateAppearances).Debug("Matchup served from Stats API splits")
	return &stats, nil
}

// totalLine prefers the career total block and otherwise takes the only split
func totalLine(resp *models.PlayerStatsResponse) map[string]any {
	if resp == nil {
		return nil
	}
	for _, block := range resp.Stats {
		if block.Type == vsPlayerTotal && len(block.Splits) > 0 {
			return block.Splits[0].Stat
		}
	}
	if len(resp.Stats) == 1 && len(resp.Stats[0].Splits) == 1 {
		return resp.Stats[0].Splits[0].Stat
	}
	return nil
}
