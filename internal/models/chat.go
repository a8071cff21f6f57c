package models

// ChatRequest is a question asked about a game
type ChatRequest struct {
	Message      string        `json:"message" binding:"required"`
	GameID       string        `json:"gameId,omitempty"`
	Language     string        `json:"language,omitempty"`
	GameMetadata *GameMetadata `json:"gameMetadata,omitempty"`
}

// ChatResponse is the generated answer and the snapshot it was grounded on
type ChatResponse struct {
	Response    string            `json:"response"`
	GameContext *GameSnapshot     `json:"gameContext,omitempty"`
	Analysis    *QuestionAnalysis `json:"analysis,omitempty"`
}

// PitchSummary is one pitch of an at-bat as rendered into commentary prompts
type PitchSummary struct {
	Type   string  `json:"type"`
	Speed  float64 `json:"speed"`
	Zone   int     `json:"zone"`
	Result string  `json:"result"`
}

// AtBat is a completed or in-progress plate appearance from the play-by-play
type AtBat struct {
	AtBatIndex    int            `json:"atBatIndex"`
	Inning        int            `json:"inning"`
	IsTopInning   bool           `json:"isTopInning"`
	IsScoringPlay bool           `json:"isScoringPlay"`
	Count         Count          `json:"count"`
	Batter        PlayerRef      `json:"batter"`
	Pitcher       PlayerRef      `json:"pitcher"`
	Result        PlayResult     `json:"result"`
	Pitches       []PitchSummary `json:"pitches"`
	RunnerStarts  []string       `json:"runnerStarts,omitempty"`
}

// AtBatCommentary is generated commentary split into its paragraphs
type AtBatCommentary struct {
	Summary      string `json:"summary"`
	Analysis     string `json:"analysis"`
	Significance string `json:"significance"`
	KeyMoment    bool   `json:"keyMoment"`
	Text         string `json:"text"`
}

// AtBatResponse pairs an at-bat with the commentary generated for it
type AtBatResponse struct {
	AtBat      *AtBat           `json:"atBat"`
	Commentary *AtBatCommentary `json:"commentary"`
}

// AtBatPreview is generated setup commentary for the plate appearance in progress
type AtBatPreview struct {
	GameContext *GameSnapshot `json:"gameContext"`
	Matchup     *MatchupStats `json:"matchup,omitempty"`
	Preview     string        `json:"preview"`
}
