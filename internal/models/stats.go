package models

// PitchEvent is one pitch-level Statcast row for a batter/pitcher pair.
// Nil pointers are SQL NULLs.
type PitchEvent struct {
	GamePk      int      `json:"gamePk"`
	AtBatNumber *int     `json:"atBatNumber"`
	PitchNumber *int     `json:"pitchNumber"`
	Event       *string  `json:"event"`
	PitchType   *string  `json:"pitchType"`
	LaunchSpeed *float64 `json:"launchSpeed"`
	LaunchAngle *float64 `json:"launchAngle"`
}

// MatchupStats summarizes every plate appearance between one batter and one
// pitcher. Rates are zero when their denominator is zero. The batted-ball
// averages are nil when no batted ball carried a launch speed.
type MatchupStats struct {
	PlateAppearances int `json:"plateAppearances"`
	AtBats           int `json:"atBats"`
	Hits             int `json:"hits"`
	Singles          int `json:"singles"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"homeRuns"`
	Walks            int `json:"walks"`
	HitByPitch       int `json:"hitByPitch"`
	Strikeouts       int `json:"strikeouts"`
	BallsInPlayOuts  int `json:"ballsInPlayOuts"`

	BattingAverage     float64 `json:"battingAverage"`
	OnBasePercentage   float64 `json:"onBasePercentage"`
	SluggingPercentage float64 `json:"sluggingPercentage"`
	OPS                float64 `json:"ops"`

	BattedBalls     int      `json:"battedBalls"`
	AvgExitVelocity *float64 `json:"avgExitVelocity,omitempty"`
	AvgLaunchAngle  *float64 `json:"avgLaunchAngle,omitempty"`
	HardHitRate     *float64 `json:"hardHitRate,omitempty"`
}

// StatValues exposes the matchup under the same field names the MLB stats
// payload uses, so prompts can filter both with one field list.
func (m *MatchupStats) StatValues() map[string]any {
	values := map[string]any{
		"plateAppearances": m.PlateAppearances,
		"atBats":           m.AtBats,
		"hits":             m.Hits,
		"doubles":          m.Doubles,
		"triples":          m.Triples,
		"homeRuns":         m.HomeRuns,
		"baseOnBalls":      m.Walks,
		"hitByPitch":       m.HitByPitch,
		"strikeOuts":       m.Strikeouts,
		"avg":              m.BattingAverage,
		"obp":              m.OnBasePercentage,
		"slg":              m.SluggingPercentage,
		"ops":              m.OPS,
	}
	if m.AvgExitVelocity != nil {
		values["avgExitVelocity"] = *m.AvgExitVelocity
	}
	if m.AvgLaunchAngle != nil {
		values["avgLaunchAngle"] = *m.AvgLaunchAngle
	}
	if m.HardHitRate != nil {
		values["hardHitRate"] = *m.HardHitRate
	}
	return values
}

// StatsMode selects which stats endpoint variant to query
type StatsMode string

const (
	StatsModeSeason      StatsMode = "season"
	StatsModeByDateRange StatsMode = "byDateRange"
	StatsModeCareer      StatsMode = "career"
	StatsModeVsPlayer    StatsMode = "vsPlayer"
)

// StatsRequestParams are the resolved query parameters for a player stats lookup
type StatsRequestParams struct {
	Stats     StatsMode `json:"stats"`
	Season    int       `json:"season,omitempty"`
	StartDate string    `json:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty"`
	GameType  string    `json:"gameType,omitempty"`
}

// StatGroup is the MLB stats group for a player lookup
type StatGroup string

const (
	StatGroupHitting  StatGroup = "hitting"
	StatGroupPitching StatGroup = "pitching"
)

// NamedRef is an id/name pair used for player and team identity on stat splits
type NamedRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName,omitempty"`
	Name     string `json:"name,omitempty"`
}

// StatSplit is one row of a stats response
type StatSplit struct {
	Season string         `json:"season,omitempty"`
	Stat   map[string]any `json:"stat"`
	Player NamedRef       `json:"player"`
	Team   NamedRef       `json:"team"`
}

// StatBlock is one stats type/group pair of a stats response
type StatBlock struct {
	Type   string      `json:"type"`
	Group  string      `json:"group"`
	Splits []StatSplit `json:"splits"`
}

// PlayerStatsResponse is a player's stats lookup result together with the
// parameters that produced it
type PlayerStatsResponse struct {
	PlayerID int                `json:"playerId"`
	Params   StatsRequestParams `json:"params"`
	Group    StatGroup          `json:"group"`
	Stats    []StatBlock        `json:"stats"`
}

// FirstSplit returns the first split of the first stats block, or nil.
func (p *PlayerStatsResponse) FirstSplit() *StatSplit {
	if p == nil || len(p.Stats) == 0 || len(p.Stats[0].Splits) == 0 {
		return nil
	}
	return &p.Stats[0].Splits[0]
}

// RecentPerformance holds the short-window stats for whichever side is in focus
type RecentPerformance struct {
	Window  StatsRequestParams   `json:"window"`
	Batter  *PlayerStatsResponse `json:"batter,omitempty"`
	Pitcher *PlayerStatsResponse `json:"pitcher,omitempty"`
}

// ResolvedData is the minimal context fetched for one question. Fields that
// were not requested, or could not be fetched, are nil.
type ResolvedData struct {
	GameContext       *GameSnapshot        `json:"gameContext,omitempty"`
	BatterStats       *PlayerStatsResponse `json:"batterStats,omitempty"`
	PitcherStats      *PlayerStatsResponse `json:"pitcherStats,omitempty"`
	MatchupStats      *MatchupStats        `json:"matchupStats,omitempty"`
	RecentPerformance *RecentPerformance   `json:"recentPerformance,omitempty"`

	// Snapshot is the snapshot the fetches were keyed on, whether or not
	// game context itself was requested.
	Snapshot *GameSnapshot `json:"-"`
}
