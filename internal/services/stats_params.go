package services

import (
	"time"

	"github.com/stitts-dev/dugout/internal/models"
)

const dateLayout = "2006-01-02"

// Trailing windows ending on the game date
const (
	RecentWindow  = 14 * 24 * time.Hour
	CurrentWindow = 3 * 24 * time.Hour
)

// StatsParams maps a timeframe onto a stats window anchored on the game's
// official date. The window always ends on the game date, never on today, so
// a question about a past game sees the stats as of that game. A missing or
// unparseable date falls back to the current season.
func StatsParams(timeframe models.Timeframe, gameDate string) models.StatsRequestParams {
	date, err := time.Parse(dateLayout, gameDate)
	if err != nil {
		return models.StatsRequestParams{
			Stats:  models.StatsModeSeason,
			Season: time.Now().Year(),
		}
	}

	switch timeframe {
	case models.TimeframeRecent:
		return dateRange(date, RecentWindow)
	case models.TimeframeCurrent:
		return dateRange(date, CurrentWindow)
	case models.TimeframeHistorical:
		return models.StatsRequestParams{Stats: models.StatsModeCareer}
	default:
		return models.StatsRequestParams{
			Stats:  models.StatsModeSeason,
			Season: date.Year(),
		}
	}
}

func dateRange(end time.Time, window time.Duration) models.StatsRequestParams {
	return models.StatsRequestParams{
		Stats:     models.StatsModeByDateRange,
		StartDate: end.Add(-window).Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}
}
