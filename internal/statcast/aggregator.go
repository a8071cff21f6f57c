// Package statcast computes head-to-head batter/pitcher statistics from
// pitch-level Statcast rows.
package statcast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stitts-dev/dugout/internal/models"
)

// HardHitThreshold is the exit velocity, in mph, at which a batted ball counts as hard hit
const HardHitThreshold = 95.0

type outcome int

const (
	outcomeNone outcome = iota
	outcomeSingle
	outcomeDouble
	outcomeTriple
	outcomeHomeRun
	outcomeStrikeout
	outcomeWalk
	outcomeHitByPitch
	outcomeBallInPlayOut
)

var eventOutcomes = map[string]outcome{
	models.EventSingle:                 outcomeSingle,
	models.EventDouble:                 outcomeDouble,
	models.EventTriple:                 outcomeTriple,
	models.EventHomeRun:                outcomeHomeRun,
	models.EventStrikeout:              outcomeStrikeout,
	models.EventStrikeoutDoublePlay:    outcomeStrikeout,
	models.EventWalk:                   outcomeWalk,
	models.EventIntentWalk:             outcomeWalk,
	models.EventHitByPitch:             outcomeHitByPitch,
	models.EventFieldOut:               outcomeBallInPlayOut,
	models.EventForceOut:               outcomeBallInPlayOut,
	models.EventDoublePlay:             outcomeBallInPlayOut,
	models.EventGroundedIntoDoublePlay: outcomeBallInPlayOut,
	models.EventFieldersChoice:         outcomeBallInPlayOut,
	models.EventFieldersChoiceOut:      outcomeBallInPlayOut,
}

// plateAppearance identifies one plate appearance; at-bat numbers restart every game
type plateAppearance struct {
	gamePk      int
	atBatNumber int
}

// Aggregate summarizes the plate appearances in a set of pitch-level rows.
// Rows without a terminal event or at-bat number do not count as plate
// appearances; when several rows share a game and at-bat number the last one
// wins. Batted-ball metrics use every row that carries a launch speed.
func Aggregate(events []models.PitchEvent) models.MatchupStats {
	var stats models.MatchupStats

	atBats := make(map[plateAppearance]string)
	var order []plateAppearance
	for _, e := range events {
		if e.Event == nil || e.AtBatNumber == nil {
			continue
		}
		n := plateAppearance{gamePk: e.GamePk, atBatNumber: *e.AtBatNumber}
		if _, ok := atBats[n]; !ok {
			order = append(order, n)
		}
		atBats[n] = *e.Event
	}

	for _, n := range order {
		switch eventOutcomes[atBats[n]] {
		case outcomeSingle:
			stats.Hits++
			stats.Singles++
			stats.AtBats++
		case outcomeDouble:
			stats.Hits++
			stats.Doubles++
			stats.AtBats++
		case outcomeTriple:
			stats.Hits++
			stats.Triples++
			stats.AtBats++
		case outcomeHomeRun:
			stats.Hits++
			stats.HomeRuns++
			stats.AtBats++
		case outcomeStrikeout:
			stats.Strikeouts++
			stats.AtBats++
		case outcomeWalk:
			stats.Walks++
		case outcomeHitByPitch:
			// on base like a walk, tracked separately for display
			stats.Walks++
			stats.HitByPitch++
		case outcomeBallInPlayOut:
			stats.BallsInPlayOuts++
			stats.AtBats++
		}
	}

	var exitVelocity, launchAngle float64
	var hardHit int
	for _, e := range events {
		if e.LaunchSpeed == nil {
			continue
		}
		stats.BattedBalls++
		exitVelocity += *e.LaunchSpeed
		if *e.LaunchSpeed >= HardHitThreshold {
			hardHit++
		}
		if e.LaunchAngle != nil {
			launchAngle += *e.LaunchAngle
		}
	}

	computeRates(&stats)

	if stats.BattedBalls > 0 {
		n := float64(stats.BattedBalls)
		avgEV := exitVelocity / n
		avgLA := launchAngle / n
		hardHitRate := float64(hardHit) / n
		stats.AvgExitVelocity = &avgEV
		stats.AvgLaunchAngle = &avgLA
		stats.HardHitRate = &hardHitRate
	}

	return stats
}

// FromStatLine builds matchup stats from a Stats API hitting line, such as a
// vsPlayerTotal split. Counts follow the same conventions as Aggregate: hit
// by pitch counts as a walk and sacrifices are not plate appearances. The
// line carries no batted-ball data.
func FromStatLine(line map[string]any) models.MatchupStats {
	stats := models.MatchupStats{
		AtBats:     intStat(line, "atBats"),
		Hits:       intStat(line, "hits"),
		Doubles:    intStat(line, "doubles"),
		Triples:    intStat(line, "triples"),
		HomeRuns:   intStat(line, "homeRuns"),
		HitByPitch: intStat(line, "hitByPitch"),
		Strikeouts: intStat(line, "strikeOuts"),
	}
	stats.Singles = max(stats.Hits-stats.Doubles-stats.Triples-stats.HomeRuns, 0)
	stats.Walks = intStat(line, "baseOnBalls") + stats.HitByPitch
	stats.BallsInPlayOuts = max(stats.AtBats-stats.Hits-stats.Strikeouts, 0)

	computeRates(&stats)
	return stats
}

func computeRates(stats *models.MatchupStats) {
	stats.PlateAppearances = stats.AtBats + stats.Walks
	stats.BattingAverage = ratio(stats.Hits, stats.AtBats)
	stats.OnBasePercentage = ratio(stats.Hits+stats.Walks, stats.PlateAppearances)
	stats.SluggingPercentage = ratio(stats.Hits+stats.Doubles+2*stats.Triples+3*stats.HomeRuns, stats.AtBats)
	stats.OPS = stats.OnBasePercentage + stats.SluggingPercentage
}

func intStat(line map[string]any, key string) int {
	switch v := line[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// FormatMatchup renders a compact head-to-head line for commentary prompts.
func FormatMatchup(stats models.MatchupStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-for-%d (%s)\n", stats.Hits, stats.AtBats, FormatRate(stats.BattingAverage))
	fmt.Fprintf(&b, "%d 2B, %d 3B, %d HR\n", stats.Doubles, stats.Triples, stats.HomeRuns)
	fmt.Fprintf(&b, "%d BB, %d K", stats.Walks, stats.Strikeouts)
	if stats.AvgExitVelocity != nil {
		fmt.Fprintf(&b, "\nAvg Exit Velo: %.1f mph", *stats.AvgExitVelocity)
	}
	if stats.HardHitRate != nil {
		fmt.Fprintf(&b, "\nHard Hit Rate: %.1f%%", *stats.HardHitRate*100)
	}
	return b.String()
}

// FormatRate renders a rate the way box scores do: three decimals, no
// leading zero below one.
func FormatRate(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	return strings.TrimPrefix(s, "0")
}
