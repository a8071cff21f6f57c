package models

// QuestionType is what kind of answer a question asks for
type QuestionType string

const (
	QuestionPerformance QuestionType = "performance"
	QuestionMatchup     QuestionType = "matchup"
	QuestionSituation   QuestionType = "situation"
	QuestionPrediction  QuestionType = "prediction"
	QuestionStrategy    QuestionType = "strategy"
	QuestionComparison  QuestionType = "comparison"
	QuestionTrend       QuestionType = "trend"
	QuestionGeneral     QuestionType = "general"
)

// QuestionFocus is which participant(s) a question is about
type QuestionFocus string

const (
	FocusBatter  QuestionFocus = "batter"
	FocusPitcher QuestionFocus = "pitcher"
	FocusBoth    QuestionFocus = "both"
	FocusGame    QuestionFocus = "game"
	FocusTeam    QuestionFocus = "team"
)

// Timeframe is the statistical window a question requests
type Timeframe string

const (
	TimeframeCurrent    Timeframe = "current"
	TimeframeSeason     Timeframe = "season"
	TimeframeRecent     Timeframe = "recent"
	TimeframeHistorical Timeframe = "historical"
)

// DataNeeded flags each piece of context a question requires
type DataNeeded struct {
	GameContext       bool `json:"gameContext"`
	BatterStats       bool `json:"batterStats"`
	PitcherStats      bool `json:"pitcherStats"`
	MatchupHistory    bool `json:"matchupHistory"`
	RecentPerformance bool `json:"recentPerformance"`
	PitchData         bool `json:"pitchData"`
}

// Any reports whether at least one flag is set.
func (d DataNeeded) Any() bool {
	return d.GameContext || d.BatterStats || d.PitcherStats ||
		d.MatchupHistory || d.RecentPerformance || d.PitchData
}

// QuestionAnalysis is the classification of one free-text question.
// DataNeeded is always a function of Type, Focus and Timeframe.
type QuestionAnalysis struct {
	Type       QuestionType  `json:"type"`
	Focus      QuestionFocus `json:"focus"`
	Timeframe  Timeframe     `json:"timeframe"`
	DataNeeded DataNeeded    `json:"dataNeeded"`
}
