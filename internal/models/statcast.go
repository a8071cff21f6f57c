package models

import (
	"gorm.io/datatypes"
)

// Statcast terminal event codes
const (
	EventSingle                 = "single"
	EventDouble                 = "double"
	EventTriple                 = "triple"
	EventHomeRun                = "home_run"
	EventStrikeout              = "strikeout"
	EventStrikeoutDoublePlay    = "strikeout_double_play"
	EventWalk                   = "walk"
	EventIntentWalk             = "intent_walk"
	EventHitByPitch             = "hit_by_pitch"
	EventFieldOut               = "field_out"
	EventForceOut               = "force_out"
	EventDoublePlay             = "double_play"
	EventGroundedIntoDoublePlay = "grounded_into_double_play"
	EventFieldersChoice         = "fielders_choice"
	EventFieldersChoiceOut      = "fielders_choice_out"
	EventFieldError             = "field_error"
	EventSacFly                 = "sac_fly"
	EventSacBunt                = "sac_bunt"
	EventCatcherInterference    = "catcher_interf"
)

// Player is a row of the player identity register
type Player struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	KeyMLBAM  *int   `gorm:"column:key_mlbam;uniqueIndex" json:"key_mlbam,omitempty"`
	NameFirst string `gorm:"column:name_first;not null" json:"name_first"`
	NameLast  string `gorm:"column:name_last;not null" json:"name_last"`
	Bats      string `gorm:"size:1" json:"bats,omitempty"`
	Throws    string `gorm:"size:1" json:"throws,omitempty"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}

// PlayerSeason links a player to one season year
type PlayerSeason struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"column:player_id;not null;uniqueIndex:idx_player_year" json:"player_id"`
	Year     int  `gorm:"column:year;not null;uniqueIndex:idx_player_year" json:"year"`

	Player *Player `gorm:"foreignKey:PlayerID" json:"-"`
}

// TableName specifies the table name for GORM
func (PlayerSeason) TableName() string {
	return "player_seasons"
}

// StatcastPlay is one pitch-level Statcast row
type StatcastPlay struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	GamePk                int            `gorm:"column:game_pk;not null;index" json:"game_pk"`
	GameDate              datatypes.Date `gorm:"column:game_date;not null" json:"game_date"`
	GameType              *string        `gorm:"column:game_type" json:"game_type,omitempty"`
	AtBatNumber           *int           `gorm:"column:at_bat_number" json:"at_bat_number,omitempty"`
	PitchNumber           *int           `gorm:"column:pitch_number" json:"pitch_number,omitempty"`
	PitchType             *string        `gorm:"column:pitch_type" json:"pitch_type,omitempty"`
	Events                *string        `gorm:"column:events" json:"events,omitempty"`
	Description           *string        `gorm:"column:description" json:"description,omitempty"`
	LaunchSpeed           *float64       `gorm:"column:launch_speed" json:"launch_speed,omitempty"`
	LaunchAngle           *float64       `gorm:"column:launch_angle" json:"launch_angle,omitempty"`
	HitterPlayerSeasonID  uint           `gorm:"column:hitter_player_season_id;not null;index" json:"hitter_player_season_id"`
	PitcherPlayerSeasonID uint           `gorm:"column:pitcher_player_season_id;not null;index" json:"pitcher_player_season_id"`

	HitterPlayerSeason  *PlayerSeason `gorm:"foreignKey:HitterPlayerSeasonID" json:"-"`
	PitcherPlayerSeason *PlayerSeason `gorm:"foreignKey:PitcherPlayerSeasonID" json:"-"`
}

// TableName specifies the table name for GORM
func (StatcastPlay) TableName() string {
	return "statcast_plays"
}

// ToPitchEvent projects the row onto the columns the aggregator reads.
func (p StatcastPlay) ToPitchEvent() PitchEvent {
	return PitchEvent{
		GamePk:      p.GamePk,
		AtBatNumber: p.AtBatNumber,
		PitchNumber: p.PitchNumber,
		Event:       p.Events,
		PitchType:   p.PitchType,
		LaunchSpeed: p.LaunchSpeed,
		LaunchAngle: p.LaunchAngle,
	}
}
