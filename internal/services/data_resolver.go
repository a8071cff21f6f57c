package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stitts-dev/dugout/internal/models"
)

// DataResolver fetches exactly the context a question needs. The snapshot is
// the only hard dependency; every other fetch is best effort.
type DataResolver struct {
	snapshots SnapshotBuilder
	stats     StatsProvider
	matchups  MatchupProvider
	logger    *logrus.Logger
}

// NewDataResolver creates a resolver over its collaborators
func NewDataResolver(snapshots SnapshotBuilder, stats StatsProvider, matchups MatchupProvider, logger *logrus.Logger) *DataResolver {
	return &DataResolver{
		snapshots: snapshots,
		stats:     stats,
		matchups:  matchups,
		logger:    logger,
	}
}

// Resolve fetches the flagged context for one question.
//
// A snapshot is required whenever a flag depends on the current players; it
// is built from gameID when the caller did not pass one, and a failure there
// fails the whole call. Player stats, matchup history and recent form are
// fetched concurrently afterwards; each failure is logged and leaves its
// field nil. Stats windows are anchored on metadata.OfficialDate when the
// caller supplied one, else on the snapshot's own date.
func (r *DataResolver) Resolve(ctx context.Context, analysis models.QuestionAnalysis, gameID string, snapshot *models.GameSnapshot, metadata *models.GameMetadata) (*models.ResolvedData, error) {
	need := analysis.DataNeeded
	data := &models.ResolvedData{}

	needsSnapshot := need.GameContext || need.BatterStats || need.PitcherStats ||
		need.MatchupHistory || need.RecentPerformance
	if needsSnapshot && snapshot == nil && gameID != "" {
		built, err := r.snapshots.BuildSnapshot(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve game context: %w", err)
		}
		snapshot = built
	}
	data.Snapshot = snapshot
	if need.GameContext {
		data.GameContext = snapshot
	}
	if snapshot == nil {
		return data, nil
	}

	gameDate := snapshot.Metadata.OfficialDate
	if metadata != nil && metadata.OfficialDate != "" {
		gameDate = metadata.OfficialDate
	}
	params := StatsParams(analysis.Timeframe, gameDate)

	log := r.logger.WithFields(logrus.Fields{
		"game_id":   snapshot.GameID,
		"type":      analysis.Type,
		"focus":     analysis.Focus,
		"timeframe": analysis.Timeframe,
	})

	var (
		batterStats, pitcherStats   *models.PlayerStatsResponse
		recentBatter, recentPitcher *models.PlayerStatsResponse
		matchup                     *models.MatchupStats
	)

	g, gctx := errgroup.WithContext(ctx)

	window := StatsParams(models.TimeframeRecent, gameDate)
	fetchBatter := need.BatterStats && snapshot.Batter != nil
	fetchPitcher := need.PitcherStats && snapshot.Pitcher != nil
	recentBatterSide := need.RecentPerformance && snapshot.Batter != nil && analysis.Focus != models.FocusPitcher
	recentPitcherSide := need.RecentPerformance && snapshot.Pitcher != nil && analysis.Focus != models.FocusBatter
	// a recent-timeframe stats fetch already covers the recent window
	reuseBatter := recentBatterSide && fetchBatter && params == window
	reusePitcher := recentPitcherSide && fetchPitcher && params == window

	if fetchBatter {
		batterID := snapshot.Batter.ID
		g.Go(func() error {
			stats, err := r.stats.PlayerStats(gctx, batterID, params, models.StatGroupHitting)
			if err != nil {
				log.WithError(err).WithField("player_id", batterID).Warn("Failed to fetch batter stats")
				return nil
			}
			batterStats = stats
			return nil
		})
	}

	if fetchPitcher {
		pitcherID := snapshot.Pitcher.ID
		g.Go(func() error {
			stats, err := r.stats.PlayerStats(gctx, pitcherID, params, models.StatGroupPitching)
			if err != nil {
				log.WithError(err).WithField("player_id", pitcherID).Warn("Failed to fetch pitcher stats")
				return nil
			}
			pitcherStats = stats
			return nil
		})
	}

	if need.MatchupHistory && snapshot.HasMatchup() {
		batterID, pitcherID := snapshot.Batter.ID, snapshot.Pitcher.ID
		g.Go(func() error {
			stats, err := r.matchups.BatterVsPitcher(gctx, batterID, pitcherID)
			if err != nil {
				log.WithError(err).Warn("Failed to fetch matchup history")
				return nil
			}
			matchup = stats
			return nil
		})
	}

	if recentBatterSide && !reuseBatter {
		batterID := snapshot.Batter.ID
		g.Go(func() error {
			stats, err := r.stats.PlayerStats(gctx, batterID, window, models.StatGroupHitting)
			if err != nil {
				log.WithError(err).WithField("player_id", batterID).Warn("Failed to fetch recent batter performance")
				return nil
			}
			recentBatter = stats
			return nil
		})
	}
	if recentPitcherSide && !reusePitcher {
		pitcherID := snapshot.Pitcher.ID
		g.Go(func() error {
			stats, err := r.stats.PlayerStats(gctx, pitcherID, window, models.StatGroupPitching)
			if err != nil {
				log.WithError(err).WithField("player_id", pitcherID).Warn("Failed to fetch recent pitcher performance")
				return nil
			}
			recentPitcher = stats
			return nil
		})
	}

	_ = g.Wait()

	if reuseBatter {
		recentBatter = batterStats
	}
	if reusePitcher {
		recentPitcher = pitcherStats
	}

	data.BatterStats = batterStats
	data.PitcherStats = pitcherStats
	data.MatchupStats = matchup
	if recentBatter != nil || recentPitcher != nil {
		data.RecentPerformance = &models.RecentPerformance{
			Window:  window,
			Batter:  recentBatter,
			Pitcher: recentPitcher,
		}
	}

	log.WithFields(logrus.Fields{
		"batter_stats":  data.BatterStats != nil,
		"pitcher_stats": data.PitcherStats != nil,
		"matchup":       data.MatchupStats != nil,
		"recent":        data.RecentPerformance != nil,
	}).Debug("Resolved question data")

	return data, nil
}
