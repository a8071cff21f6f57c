package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/dugout/internal/analyzer"
	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/providers/mlb"
)

// ErrGenerationFailed wraps any failure of the text generator
var ErrGenerationFailed = errors.New("response generation failed")

// CommentaryService answers questions and narrates at-bats. It runs the
// question pipeline: analyze, resolve, assemble, generate.
type CommentaryService struct {
	analyzer        *analyzer.Analyzer
	resolver        ContextResolver
	snapshots       SnapshotBuilder
	plays           PlayProvider
	matchups        MatchupProvider
	prompts         *PromptBuilder
	generator       TextGenerator
	defaultLanguage string
	logger          *logrus.Logger
}

// CommentaryDeps are the collaborators of a CommentaryService
type CommentaryDeps struct {
	Analyzer        *analyzer.Analyzer
	Resolver        ContextResolver
	Snapshots       SnapshotBuilder
	Plays           PlayProvider
	Matchups        MatchupProvider
	Prompts         *PromptBuilder
	Generator       TextGenerator
	DefaultLanguage string
}

// NewCommentaryService creates the question and commentary pipeline
func NewCommentaryService(deps CommentaryDeps, logger *logrus.Logger) *CommentaryService {
	if deps.Analyzer == nil {
		deps.Analyzer = analyzer.New()
	}
	if deps.Prompts == nil {
		deps.Prompts = NewPromptBuilder()
	}
	if deps.DefaultLanguage == "" {
		deps.DefaultLanguage = "en"
	}
	return &CommentaryService{
		analyzer:        deps.Analyzer,
		resolver:        deps.Resolver,
		snapshots:       deps.Snapshots,
		plays:           deps.Plays,
		matchups:        deps.Matchups,
		prompts:         deps.Prompts,
		generator:       deps.Generator,
		defaultLanguage: deps.DefaultLanguage,
		logger:          logger,
	}
}

// Ask answers one free-text question about a game
func (s *CommentaryService) Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	analysis := s.analyzer.Analyze(req.Message)

	log := s.logger.WithFields(logrus.Fields{
		"game_id":   req.GameID,
		"type":      analysis.Type,
		"focus":     analysis.Focus,
		"timeframe": analysis.Timeframe,
	})
	log.Info("Answering question")

	data, err := s.resolver.Resolve(ctx, analysis, req.GameID, nil, req.GameMetadata)
	if err != nil {
		log.WithError(err).Error("Failed to resolve question context")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	language := req.Language
	if language == "" {
		language = s.defaultLanguage
	}

	prompt := s.prompts.BuildPrompt(PromptInput{
		Message:        req.Message,
		Language:       language,
		GameContext:    data.GameContext,
		BatterStats:    data.BatterStats,
		PitcherStats:   data.PitcherStats,
		MatchupStats:   data.MatchupStats,
		Recent:         data.RecentPerformance,
		RelevantFields: analyzer.RelevantStatFields(analysis),
		Requested:      analysis.DataNeeded,
	})

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.WithError(err).Error("Failed to generate answer")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &models.ChatResponse{
		Response:    text,
		GameContext: data.Snapshot,
		Analysis:    &analysis,
	}, nil
}

// CommentOnAtBat narrates one at-bat of a game by its index
func (s *CommentaryService) CommentOnAtBat(ctx context.Context, gameID string, atBatIndex int) (*models.AtBatResponse, error) {
	play, feed, err := s.plays.AtBat(ctx, gameID, atBatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load at-bat %d: %w", atBatIndex, err)
	}

	atBat := toAtBat(play, feed)
	text, err := s.generator.Generate(ctx, s.prompts.BuildAtBatCommentaryPrompt(atBat))
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"game_id":      gameID,
			"at_bat_index": atBatIndex,
		}).Error("Failed to generate at-bat commentary")
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	commentary := splitCommentary(text, atBat)
	return &models.AtBatResponse{AtBat: &atBat, Commentary: &commentary}, nil
}

// PreviewAtBat sets up the plate appearance in progress. Matchup history is
// optional; the preview is generated without it when the lookup fails.
func (s *CommentaryService) PreviewAtBat(ctx context.Context, gameID string) (*models.AtBatPreview, error) {
	snapshot, err := s.snapshots.BuildSnapshot(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var matchup *models.MatchupStats
	if snapshot.HasMatchup() {
		matchup, err = s.matchups.BatterVsPitcher(ctx, snapshot.Batter.ID, snapshot.Pitcher.ID)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", gameID).Warn("Failed to fetch matchup history for preview")
			matchup = nil
		}
	}

	text, err := s.generator.Generate(ctx, s.prompts.BuildAtBatPreviewPrompt(snapshot, matchup))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &models.AtBatPreview{
		GameContext: snapshot,
		Matchup:     matchup,
		Preview:     text,
	}, nil
}

func toAtBat(play *mlb.Play, feed *mlb.LiveFeed) models.AtBat {
	atBat := models.AtBat{
		AtBatIndex:    play.About.AtBatIndex,
		Inning:        play.About.Inning,
		IsTopInning:   play.About.IsTopInning,
		IsScoringPlay: play.About.IsScoringPlay,
		Count: models.Count{
			Balls:   play.Count.Balls,
			Strikes: play.Count.Strikes,
			Outs:    play.Count.Outs,
		},
		Batter:  feedPlayer(feed, play.Matchup.Batter),
		Pitcher: feedPlayer(feed, play.Matchup.Pitcher),
		Result:  toPlayResult(play.Result),
		Pitches: []models.PitchSummary{},
	}

	for _, event := range play.PlayEvents {
		if !event.IsPitch {
			continue
		}
		pitchType := event.Details.Type.Description
		if pitchType == "" {
			pitchType = event.Details.Type.Code
		}
		atBat.Pitches = append(atBat.Pitches, models.PitchSummary{
			Type:   pitchType,
			Speed:  event.PitchData.StartSpeed,
			Zone:   event.PitchData.Zone,
			Result: event.Details.Description,
		})
	}
	for _, runner := range play.Runners {
		if runner.Movement.Start != "" {
			atBat.RunnerStarts = append(atBat.RunnerStarts, runner.Movement.Start)
		}
	}
	return atBat
}

func feedPlayer(feed *mlb.LiveFeed, identity mlb.PlayerIdentity) models.PlayerRef {
	if feed != nil {
		if p, ok := feed.GameData.PlayerByID(identity.ID); ok {
			return toPlayerRef(p)
		}
	}
	return models.PlayerRef{ID: identity.ID, FullName: identity.FullName}
}

// splitCommentary reads generated text as summary, analysis and significance
// paragraphs. The significance only reaches Text for key moments.
func splitCommentary(text string, atBat models.AtBat) models.AtBatCommentary {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var c models.AtBatCommentary
	if len(paragraphs) > 0 {
		c.Summary = paragraphs[0]
	}
	if len(paragraphs) > 1 {
		c.Analysis = paragraphs[1]
	}
	if len(paragraphs) > 2 {
		c.Significance = strings.Join(paragraphs[2:], "\n\n")
	}
	c.KeyMoment = atBat.IsScoringPlay || IsKeyMoment(atBat)

	c.Text = c.Summary
	if c.Analysis != "" {
		c.Text += "\n\n" + c.Analysis
	}
	if c.KeyMoment && c.Significance != "" {
		c.Text += "\n\nKey Moment: " + c.Significance
	}
	return c
}
