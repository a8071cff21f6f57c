// Package analyzer classifies free-text baseball questions into a question
// type, a focus and a timeframe, and derives the data each answer needs.
package analyzer

import (
	"strings"

	"github.com/stitts-dev/dugout/internal/models"
)

// Analyzer classifies questions with ordered keyword tables. It holds no
// state and is safe for concurrent use.
type Analyzer struct{}

// New creates a question analyzer
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze classifies a question. It never fails: text with no recognized
// keyword yields general/game/current with no data needed.
func (a *Analyzer) Analyze(question string) models.QuestionAnalysis {
	q := strings.ToLower(question)

	questionType := determineType(q)
	focus := determineFocus(q, questionType)
	timeframe := determineTimeframe(q)

	return models.QuestionAnalysis{
		Type:       questionType,
		Focus:      focus,
		Timeframe:  timeframe,
		DataNeeded: RequiredData(questionType, focus, timeframe),
	}
}

func determineType(q string) models.QuestionType {
	for _, rule := range typeRules {
		if containsAny(q, rule.keywords) {
			return rule.questionType
		}
	}
	return models.QuestionGeneral
}

// determineFocus forces both sides when the question names a batter and a
// pitcher, or names neither but pits two players against each other.
func determineFocus(q string, questionType models.QuestionType) models.QuestionFocus {
	batter := containsAny(q, batterKeywords)
	pitcher := containsAny(q, pitcherKeywords)
	if batter && pitcher {
		return models.FocusBoth
	}
	if questionType == models.QuestionMatchup {
		return models.FocusBoth
	}
	if !batter && !pitcher && containsAny(q, matchupKeywords) {
		return models.FocusBoth
	}
	for _, rule := range focusRules {
		if containsAny(q, rule.keywords) {
			return rule.focus
		}
	}
	return models.FocusGame
}

func determineTimeframe(q string) models.Timeframe {
	for _, rule := range timeframeRules {
		if containsAny(q, rule.keywords) {
			return rule.timeframe
		}
	}
	return models.TimeframeCurrent
}

// RequiredData is the fixed decision table from a classification to the
// context it needs. It depends on nothing but its arguments.
func RequiredData(questionType models.QuestionType, focus models.QuestionFocus, timeframe models.Timeframe) models.DataNeeded {
	batterSide := focus == models.FocusBatter || focus == models.FocusBoth
	pitcherSide := focus == models.FocusPitcher || focus == models.FocusBoth

	var needed models.DataNeeded
	switch questionType {
	case models.QuestionPerformance:
		needed.BatterStats = batterSide
		needed.PitcherStats = pitcherSide
		needed.RecentPerformance = timeframe == models.TimeframeRecent
	case models.QuestionMatchup:
		needed.BatterStats = true
		needed.PitcherStats = true
		needed.MatchupHistory = true
	case models.QuestionSituation:
		needed.GameContext = true
		needed.PitchData = true
	case models.QuestionPrediction, models.QuestionStrategy:
		needed.GameContext = true
		needed.BatterStats = true
		needed.PitcherStats = true
		needed.MatchupHistory = true
		needed.RecentPerformance = true
	case models.QuestionTrend:
		needed.RecentPerformance = true
		needed.BatterStats = batterSide
		needed.PitcherStats = pitcherSide
	case models.QuestionComparison:
		needed.BatterStats = batterSide
		needed.PitcherStats = pitcherSide
	}
	return needed
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
