package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitts-dev/dugout/internal/analyzer"
	"github.com/stitts-dev/dugout/internal/models"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantType  models.QuestionType
		wantFocus models.QuestionFocus
		wantTime  models.Timeframe
	}{
		{
			name:      "pitcher trend against lefties",
			question:  "How has the pitcher been doing lately against lefties?",
			wantType:  models.QuestionTrend,
			wantFocus: models.FocusPitcher,
			wantTime:  models.TimeframeRecent,
		},
		{
			name:      "matchup question forces both",
			question:  "What is the matchup history here?",
			wantType:  models.QuestionMatchup,
			wantFocus: models.FocusBoth,
			wantTime:  models.TimeframeHistorical,
		},
		{
			name:      "batter and pitcher keywords force both",
			question:  "Will the hitter get to the pitcher?",
			wantType:  models.QuestionPrediction,
			wantFocus: models.FocusBoth,
			wantTime:  models.TimeframeCurrent,
		},
		{
			name:      "season performance",
			question:  "What are his season stats?",
			wantType:  models.QuestionPerformance,
			wantFocus: models.FocusGame,
			wantTime:  models.TimeframeSeason,
		},
		{
			name:      "situation",
			question:  "Explain the situation in this inning",
			wantType:  models.QuestionSituation,
			wantFocus: models.FocusGame,
			wantTime:  models.TimeframeCurrent,
		},
		{
			name:      "strategy with team focus",
			question:  "How should the team approach him?",
			wantType:  models.QuestionStrategy,
			wantFocus: models.FocusTeam,
			wantTime:  models.TimeframeCurrent,
		},
		{
			name:      "comparison is checked before matchup",
			question:  "Who is better versus righties?",
			wantType:  models.QuestionComparison,
			wantFocus: models.FocusBoth,
			wantTime:  models.TimeframeCurrent,
		},
		{
			name:      "case insensitive",
			question:  "PITCHING CAREER NUMBERS",
			wantType:  models.QuestionPerformance,
			wantFocus: models.FocusPitcher,
			wantTime:  models.TimeframeHistorical,
		},
	}

	a := analyzer.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.question)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantFocus, got.Focus)
			assert.Equal(t, tt.wantTime, got.Timeframe)
			assert.Equal(t, analyzer.RequiredData(got.Type, got.Focus, got.Timeframe), got.DataNeeded)
		})
	}
}

func TestAnalyze_TrendScenarioDataNeeded(t *testing.T) {
	got := analyzer.New().Analyze("How has the pitcher been doing lately against lefties?")

	assert.Equal(t, models.DataNeeded{
		RecentPerformance: true,
		PitcherStats:      true,
	}, got.DataNeeded)
}

func TestAnalyze_NoKeywords(t *testing.T) {
	for _, q := range []string{"", "Tell me something fun", "???", "hello"} {
		got := analyzer.New().Analyze(q)

		assert.Equal(t, models.QuestionGeneral, got.Type, q)
		assert.Equal(t, models.FocusGame, got.Focus, q)
		assert.Equal(t, models.TimeframeCurrent, got.Timeframe, q)
		assert.False(t, got.DataNeeded.Any(), q)
	}
}

func TestAnalyze_MatchupKeywords(t *testing.T) {
	questions := []string{
		"Tell me about this matchup",
		"How does he do against him?",
		"Who wins when they face off?",
		"Soto vs Cole",
	}

	for _, q := range questions {
		got := analyzer.New().Analyze(q)

		assert.Equal(t, models.QuestionMatchup, got.Type, q)
		assert.Equal(t, models.FocusBoth, got.Focus, q)
		assert.True(t, got.DataNeeded.MatchupHistory, q)
		assert.True(t, got.DataNeeded.BatterStats, q)
		assert.True(t, got.DataNeeded.PitcherStats, q)
	}
}

func TestAnalyze_MatchupPhraseForcesBothFocus(t *testing.T) {
	got := analyzer.New().Analyze("How has he been doing lately against Cole?")

	assert.Equal(t, models.QuestionTrend, got.Type)
	assert.Equal(t, models.FocusBoth, got.Focus)
	assert.Equal(t, models.TimeframeRecent, got.Timeframe)
	assert.Equal(t, models.DataNeeded{
		BatterStats:       true,
		PitcherStats:      true,
		RecentPerformance: true,
	}, got.DataNeeded)

	// a named side keeps its focus
	pitcher := analyzer.New().Analyze("How has the pitcher been doing lately against lefties?")
	assert.Equal(t, models.FocusPitcher, pitcher.Focus)
}

func TestRequiredData(t *testing.T) {
	tests := []struct {
		name      string
		qType     models.QuestionType
		focus     models.QuestionFocus
		timeframe models.Timeframe
		want      models.DataNeeded
	}{
		{
			name:      "performance batter recent",
			qType:     models.QuestionPerformance,
			focus:     models.FocusBatter,
			timeframe: models.TimeframeRecent,
			want:      models.DataNeeded{BatterStats: true, RecentPerformance: true},
		},
		{
			name:      "performance game season",
			qType:     models.QuestionPerformance,
			focus:     models.FocusGame,
			timeframe: models.TimeframeSeason,
			want:      models.DataNeeded{},
		},
		{
			name:      "situation",
			qType:     models.QuestionSituation,
			focus:     models.FocusGame,
			timeframe: models.TimeframeCurrent,
			want:      models.DataNeeded{GameContext: true, PitchData: true},
		},
		{
			name:      "strategy needs everything but pitch data",
			qType:     models.QuestionStrategy,
			focus:     models.FocusTeam,
			timeframe: models.TimeframeCurrent,
			want: models.DataNeeded{
				GameContext:       true,
				BatterStats:       true,
				PitcherStats:      true,
				MatchupHistory:    true,
				RecentPerformance: true,
			},
		},
		{
			name:      "trend both",
			qType:     models.QuestionTrend,
			focus:     models.FocusBoth,
			timeframe: models.TimeframeRecent,
			want:      models.DataNeeded{BatterStats: true, PitcherStats: true, RecentPerformance: true},
		},
		{
			name:      "general",
			qType:     models.QuestionGeneral,
			focus:     models.FocusBoth,
			timeframe: models.TimeframeHistorical,
			want:      models.DataNeeded{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.RequiredData(tt.qType, tt.focus, tt.timeframe))
		})
	}
}
