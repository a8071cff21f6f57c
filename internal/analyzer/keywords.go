package analyzer

import "github.com/stitts-dev/dugout/internal/models"

type typeRule struct {
	questionType models.QuestionType
	keywords     []string
}

type focusRule struct {
	focus    models.QuestionFocus
	keywords []string
}

type timeframeRule struct {
	timeframe models.Timeframe
	keywords  []string
}

// typeRules are scanned in order and the first category with a matching
// keyword wins. Trend sits ahead of performance so "how has ... lately"
// reads as a trend question.
var typeRules = []typeRule{
	{models.QuestionTrend, []string{"trend", "lately", "recent", "last few", "been doing", "streak"}},
	{models.QuestionComparison, []string{"compare", "better", "worse", "difference", "between"}},
	{models.QuestionMatchup, matchupKeywords},
	{models.QuestionPrediction, []string{"will", "predict", "likely", "chance", "probability", "expect"}},
	{models.QuestionStrategy, []string{"should", "approach", "plan", "strategy", "handle", "pitch to"}},
	{models.QuestionPerformance, []string{"how has", "how is", "stats", "statistics", "numbers", "performing"}},
	{models.QuestionSituation, []string{"situation", "count", "inning", "score", "runners", "bases"}},
}

var matchupKeywords = []string{"matchup", "against", "face", "versus", "vs"}

var batterKeywords = []string{"batter", "hitting", "hitter", "bat", "offense", "swing"}

var pitcherKeywords = []string{"pitcher", "throwing", "pitch", "pitching", "throw", "delivery"}

var focusRules = []focusRule{
	{models.FocusBatter, batterKeywords},
	{models.FocusPitcher, pitcherKeywords},
	{models.FocusTeam, []string{"team", "club", "lineup", "roster"}},
	{models.FocusGame, []string{"game", "match", "score", "situation", "inning"}},
}

var timeframeRules = []timeframeRule{
	{models.TimeframeCurrent, []string{"now", "current", "this", "moment"}},
	{models.TimeframeSeason, []string{"season", "year", "overall"}},
	{models.TimeframeRecent, []string{"recent", "lately", "last few", "past week", "trending"}},
	{models.TimeframeHistorical, []string{"career", "history", "historically", "lifetime", "ever"}},
}
