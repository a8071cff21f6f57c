package models

// PlayerRef identifies a player for display in prompts and API responses
type PlayerRef struct {
	ID              int    `json:"id"`
	FullName        string `json:"fullName"`
	PrimaryPosition string `json:"primaryPosition,omitempty"`
	BatSide         string `json:"batSide,omitempty"`
	PitchHand       string `json:"pitchHand,omitempty"`
}

// Count is the ball/strike/out count of the current plate appearance
type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
	Outs    int `json:"outs"`
}

// Base names used for runners, in the order they are rendered
const (
	BaseFirst  = "1st"
	BaseSecond = "2nd"
	BaseThird  = "3rd"
)

// Runner is a baserunner occupying one base
type Runner struct {
	Base   string    `json:"base"`
	Player PlayerRef `json:"player"`
}

// PlayResult describes the outcome of the current play so far
type PlayResult struct {
	Type        string `json:"type"`
	Event       string `json:"event"`
	EventType   string `json:"eventType"`
	Description string `json:"description"`
	RBI         int    `json:"rbi"`
	AwayScore   int    `json:"awayScore"`
	HomeScore   int    `json:"homeScore"`
	IsOut       bool   `json:"isOut"`
}

// GameMetadata is the schedule-level information about a game. OfficialDate
// (YYYY-MM-DD) anchors every stats date range.
type GameMetadata struct {
	OfficialDate string `json:"officialDate"`
	GameDate     string `json:"gameDate,omitempty"`
	Season       string `json:"season,omitempty"`
	Venue        string `json:"venue,omitempty"`
	Status       string `json:"status,omitempty"`
	HomeTeam     string `json:"homeTeam,omitempty"`
	AwayTeam     string `json:"awayTeam,omitempty"`
}

// GameSnapshot is the normalized, point-in-time view of a live game. It is
// built once per request and never mutated afterwards.
type GameSnapshot struct {
	GameID      string       `json:"gameId"`
	Inning      int          `json:"inning"`
	IsTopInning bool         `json:"isTopInning"`
	Count       Count        `json:"count"`
	Pitcher     *PlayerRef   `json:"pitcher,omitempty"`
	Batter      *PlayerRef   `json:"batter,omitempty"`
	Runners     []Runner     `json:"runnersOn"`
	CurrentPlay PlayResult   `json:"currentPlayResult"`
	Metadata    GameMetadata `json:"gameMetadata"`
}

// HasMatchup reports whether both sides of the current plate appearance are known.
func (g *GameSnapshot) HasMatchup() bool {
	return g != nil && g.Batter != nil && g.Pitcher != nil
}

// ScheduledGame is one entry of a day's schedule
type ScheduledGame struct {
	GamePk        int       `json:"gamePk"`
	GameDate      string    `json:"gameDate"`
	OfficialDate  string    `json:"officialDate"`
	Status        string    `json:"status"`
	DetailedState string    `json:"detailedState"`
	AwayTeam      TeamScore `json:"awayTeam"`
	HomeTeam      TeamScore `json:"homeTeam"`
	Venue         string    `json:"venue"`
}

// TeamScore is a team's identity and current score on a schedule entry
type TeamScore struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// DaySchedule is the schedule served for one date. Fallback is set when the
// requested day had no games and the configured fallback date was served.
type DaySchedule struct {
	Date     string          `json:"date"`
	Games    []ScheduledGame `json:"games"`
	Fallback bool            `json:"fallback"`
}
