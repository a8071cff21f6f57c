package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
)

// ErrGameContextUnavailable is returned when the live feed for a game cannot be read
var ErrGameContextUnavailable = errors.New("game context unavailable")

// GameContextBuilder turns the live feed into a GameSnapshot
type GameContextBuilder struct {
	feed   GameFeedProvider
	logger *logrus.Logger
}

// NewGameContextBuilder creates a snapshot builder over a feed provider
func NewGameContextBuilder(feed GameFeedProvider, logger *logrus.Logger) *GameContextBuilder {
	return &GameContextBuilder{feed: feed, logger: logger}
}

// BuildSnapshot fetches the live feed once and normalizes it. Player records
// for the batter, the pitcher and every runner are looked up concurrently; a
// failed lookup falls back to what the feed itself carries.
func (b *GameContextBuilder) BuildSnapshot(ctx context.Context, gameID string) (*models.GameSnapshot, error) {
	feed, err := b.feed.LiveFeed(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: %w", ErrGameContextUnavailable, gameID, err)
	}

	snapshot := &models.GameSnapshot{
		GameID:      gameID,
		Inning:      feed.LiveData.Linescore.CurrentInning,
		IsTopInning: feed.LiveData.Linescore.IsTopInning,
		Count:       models.Count{Outs: feed.LiveData.Linescore.Outs},
		Runners:     []models.Runner{},
		Metadata:    metadataFromFeed(feed),
	}

	var batter, pitcher *mlb.PlayerIdentity
	if play := feed.LiveData.Plays.CurrentPlay; play != nil {
		if play.About.Inning > 0 {
			snapshot.Inning = play.About.Inning
			snapshot.IsTopInning = play.About.IsTopInning
		}
		snapshot.Count = models.Count{
			Balls:   play.Count.Balls,
			Strikes: play.Count.Strikes,
			Outs:    play.Count.Outs,
		}
		snapshot.CurrentPlay = toPlayResult(play.Result)

		if play.Matchup.Batter.ID > 0 {
			batter = &play.Matchup.Batter
		}
		if play.Matchup.Pitcher.ID > 0 {
			pitcher = &play.Matchup.Pitcher
		}
	}
	if batter == nil && feed.LiveData.Linescore.Offense.Batter != nil {
		batter = feed.LiveData.Linescore.Offense.Batter
	}

	offense := feed.LiveData.Linescore.Offense
	bases := []struct {
		name     string
		identity *mlb.PlayerIdentity
	}{
		{models.BaseFirst, offense.First},
		{models.BaseSecond, offense.Second},
		{models.BaseThird, offense.Third},
	}

	// fixed slots keep runner order independent of lookup timing
	var batterRef, pitcherRef *models.PlayerRef
	runnerRefs := make([]*models.PlayerRef, len(bases))

	g, gctx := errgroup.WithContext(ctx)
	if batter != nil {
		identity := *batter
		g.Go(func() error {
			ref := b.lookupPlayer(gctx, feed, identity)
			batterRef = &ref
			return nil
		})
	}
	if pitcher != nil {
		identity := *pitcher
		g.Go(func() error {
			ref := b.lookupPlayer(gctx, feed, identity)
			pitcherRef = &ref
			return nil
		})
	}
	for i, base := range bases {
		if base.identity == nil || base.identity.ID == 0 {
			continue
		}
		i := i
		identity := *base.identity
		g.Go(func() error {
			ref := b.lookupPlayer(gctx, feed, identity)
			runnerRefs[i] = &ref
			return nil
		})
	}
	_ = g.Wait()

	snapshot.Batter = batterRef
	snapshot.Pitcher = pitcherRef
	for i, ref := range runnerRefs {
		if ref != nil {
			snapshot.Runners = append(snapshot.Runners, models.Runner{Base: bases[i].name, Player: *ref})
		}
	}

	b.logger.WithFields(logrus.Fields{
		"game_id": gameID,
		"inning":  snapshot.Inning,
		"runners": len(snapshot.Runners),
	}).Debug("Built game snapshot")

	return snapshot, nil
}

func (b *GameContextBuilder) lookupPlayer(ctx context.Context, feed *mlb.LiveFeed, identity mlb.PlayerIdentity) models.PlayerRef {
	person, err := b.feed.Player(ctx, identity.ID)
	if err == nil {
		return toPlayerRef(*person)
	}

	b.logger.WithError(err).WithField("player_id", identity.ID).Warn("Player lookup failed, using live feed record")

	if p, ok := feed.GameData.PlayerByID(identity.ID); ok {
		return toPlayerRef(p)
	}
	return models.PlayerRef{ID: identity.ID, FullName: identity.FullName}
}

func toPlayerRef(p mlb.Person) models.PlayerRef {
	return models.PlayerRef{
		ID:              p.ID,
		FullName:        p.FullName,
		PrimaryPosition: p.PrimaryPosition.Abbreviation,
		BatSide:         p.BatSide.Code,
		PitchHand:       p.PitchHand.Code,
	}
}

func toPlayResult(r mlb.PlayResult) models.PlayResult {
	return models.PlayResult{
		Type:        r.Type,
		Event:       r.Event,
		EventType:   r.EventType,
		Description: r.Description,
		RBI:         r.RBI,
		AwayScore:   r.AwayScore,
		HomeScore:   r.HomeScore,
		IsOut:       r.IsOut,
	}
}

func metadataFromFeed(feed *mlb.LiveFeed) models.GameMetadata {
	gd := feed.GameData
	officialDate := gd.Datetime.OfficialDate
	if officialDate == "" && len(gd.Datetime.DateTime) >= len("2006-01-02") {
		officialDate = gd.Datetime.DateTime[:len("2006-01-02")]
	}
	return models.GameMetadata{
		OfficialDate: officialDate,
		GameDate:     gd.Datetime.DateTime,
		Season:       gd.Game.Season,
		Venue:        gd.Venue.Name,
		Status:       gd.Status.DetailedState,
		HomeTeam:     gd.Teams.Home.Name,
		AwayTeam:     gd.Teams.Away.Name,
	}
}
