package mlb

import "strconv"

// Typed records for the MLB Stats API payloads. Only fields the service
// reads are declared; everything else in the payload is ignored.

// PlayerIdentity is the id/name pair the feed embeds wherever it names a player
type PlayerIdentity struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Link     string `json:"link,omitempty"`
}

type codeName struct {
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Person is one entry of the people endpoint
type Person struct {
	ID              int      `json:"id"`
	FullName        string   `json:"fullName"`
	PrimaryNumber   string   `json:"primaryNumber,omitempty"`
	PrimaryPosition codeName `json:"primaryPosition"`
	BatSide         codeName `json:"batSide"`
	PitchHand       codeName `json:"pitchHand"`
}

type peopleResponse struct {
	People []Person `json:"people"`
}

// LiveFeed is the v1.1 live game feed
type LiveFeed struct {
	GamePk   int      `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData is the static part of the live feed
type GameData struct {
	Game struct {
		Pk     int    `json:"pk"`
		Type   string `json:"type"`
		Season string `json:"season"`
	} `json:"game"`
	Datetime struct {
		DateTime     string `json:"dateTime"`
		OfficialDate string `json:"officialDate"`
	} `json:"datetime"`
	Status struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away feedTeam `json:"away"`
		Home feedTeam `json:"home"`
	} `json:"teams"`
	Venue struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"venue"`
	Players map[string]Person `json:"players"`
}

type feedTeam struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// PlayerByID looks a player up in the feed's roster section, keyed "ID<id>".
func (g *GameData) PlayerByID(id int) (Person, bool) {
	p, ok := g.Players["ID"+strconv.Itoa(id)]
	return p, ok
}

// LiveData is the changing part of the live feed
type LiveData struct {
	Plays     Plays     `json:"plays"`
	Linescore Linescore `json:"linescore"`
}

// Plays holds the play-by-play
type Plays struct {
	AllPlays    []Play `json:"allPlays"`
	CurrentPlay *Play  `json:"currentPlay"`
}

// Play is one plate appearance
type Play struct {
	Result     PlayResult  `json:"result"`
	About      PlayAbout   `json:"about"`
	Count      PlayCount   `json:"count"`
	Matchup    Matchup     `json:"matchup"`
	PlayEvents []PlayEvent `json:"playEvents"`
	Runners    []Runner    `json:"runners"`
}

// PlayResult is the outcome block of a play
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

// PlayAbout locates a play within the game
type PlayAbout struct {
	AtBatIndex    int    `json:"atBatIndex"`
	HalfInning    string `json:"halfInning"`
	IsTopInning   bool   `json:"isTopInning"`
	Inning        int    `json:"inning"`
	IsComplete    bool   `json:"isComplete"`
	IsScoringPlay bool   `json:"isScoringPlay"`
}

// PlayCount is the count at the most recent pitch
type PlayCount struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
	Outs    int `json:"outs"`
}

// Matchup names the batter and pitcher of a play
type Matchup struct {
	Batter    PlayerIdentity `json:"batter"`
	Pitcher   PlayerIdentity `json:"pitcher"`
	BatSide   codeName       `json:"batSide"`
	PitchHand codeName       `json:"pitchHand"`
}

// PlayEvent is one pitch or action within a play
type PlayEvent struct {
	IsPitch bool `json:"isPitch"`
	Details struct {
		Description string   `json:"description"`
		Code        string   `json:"code"`
		Type        codeName `json:"type"`
	} `json:"details"`
	PitchData struct {
		StartSpeed float64 `json:"startSpeed"`
		Zone       int     `json:"zone"`
	} `json:"pitchData"`
}

// Runner is one runner movement on a play
type Runner struct {
	Movement struct {
		Start   string `json:"start"`
		End     string `json:"end"`
		OutBase string `json:"outBase"`
		IsOut   bool   `json:"isOut"`
	} `json:"movement"`
	Details struct {
		Runner PlayerIdentity `json:"runner"`
	} `json:"details"`
}

// Linescore is the inning-by-inning summary with the current base state
type Linescore struct {
	CurrentInning int     `json:"currentInning"`
	InningHalf    string  `json:"inningHalf"`
	IsTopInning   bool    `json:"isTopInning"`
	Outs          int     `json:"outs"`
	Offense       Offense `json:"offense"`
}

// Offense is the batting side's state. Runner fields are nil on empty bases.
type Offense struct {
	Batter *PlayerIdentity `json:"batter"`
	First  *PlayerIdentity `json:"first"`
	Second *PlayerIdentity `json:"second"`
	Third  *PlayerIdentity `json:"third"`
}

type scheduleResponse struct {
	TotalGames int `json:"totalGames"`
	Dates      []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePk       int    `json:"gamePk"`
	GameDate     string `json:"gameDate"`
	OfficialDate string `json:"officialDate"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away scheduleTeam `json:"away"`
		Home scheduleTeam `json:"home"`
	} `json:"teams"`
	Venue struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"venue"`
}

type scheduleTeam struct {
	Score int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

type statsResponse struct {
	Stats []struct {
		Type struct {
			DisplayName string `json:"displayName"`
		} `json:"type"`
		Group struct {
			DisplayName string `json:"displayName"`
		} `json:"group"`
		Splits []struct {
			Season string         `json:"season"`
			Stat   map[string]any `json:"stat"`
			Player PlayerIdentity `json:"player"`
			Team   struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"team"`
		} `json:"splits"`
	} `json:"stats"`
}
