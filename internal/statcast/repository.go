package statcast

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stitts-dev/dugout/internal/models"
)

// Repository reads pitch-level rows for a batter/pitcher pair
type Repository interface {
	FindMatchupEvents(ctx context.Context, batterMLBAM, pitcherMLBAM int) ([]models.PitchEvent, error)
}

// GormRepository is the relational Repository. It only reads.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository over an open gorm connection
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// FindMatchupEvents returns every row where the hitter and pitcher, matched
// by MLBAM id through their player seasons, faced each other.
func (r *GormRepository) FindMatchupEvents(ctx context.Context, batterMLBAM, pitcherMLBAM int) ([]models.PitchEvent, error) {
	var plays []models.StatcastPlay
	err := r.db.WithContext(ctx).
		Table("statcast_plays AS play").
		Select("play.*").
		Joins("JOIN player_seasons hitter_season ON hitter_season.id = play.hitter_player_season_id").
		Joins("JOIN players hitter ON hitter.id = hitter_season.player_id").
		Joins("JOIN player_seasons pitcher_season ON pitcher_season.id = play.pitcher_player_season_id").
		Joins("JOIN players pitcher ON pitcher.id = pitcher_season.player_id").
		Where("hitter.key_mlbam = ? AND pitcher.key_mlbam = ?", batterMLBAM, pitcherMLBAM).
		Order("play.game_date, play.game_pk, play.at_bat_number, play.pitch_number, play.id").
		Find(&plays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query statcast plays: %w", err)
	}

	events := make([]models.PitchEvent, 0, len(plays))
	for _, p := range plays {
		events = append(events, p.ToPitchEvent())
	}
	return events, nil
}
