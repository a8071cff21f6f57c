package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stitts-dev/dugout/internal/statcast"
)

// Stat clusters, in the order their lines are rendered
const (
	clusterRates       = "rates"
	clusterRatios      = "ratios"
	clusterHits        = "hits"
	clusterProduction  = "production"
	clusterDiscipline  = "discipline"
	clusterResults     = "results"
	clusterControl     = "control"
	clusterSituational = "situational"
	clusterBattedBall  = "battedBall"
	clusterOther       = "other"
)

var clusterOrder = []string{
	clusterRates,
	clusterRatios,
	clusterHits,
	clusterProduction,
	clusterDiscipline,
	clusterResults,
	clusterControl,
	clusterSituational,
	clusterBattedBall,
	clusterOther,
}

type statLabel struct {
	key     string
	label   string
	cluster string
}

// statLabels fixes both the display label and the order within a cluster.
var statLabels = []statLabel{
	{"avg", "AVG", clusterRates},
	{"obp", "OBP", clusterRates},
	{"slg", "SLG", clusterRates},
	{"ops", "OPS", clusterRates},
	{"babip", "BABIP", clusterRates},
	{"era", "ERA", clusterRates},
	{"whip", "WHIP", clusterRates},

	{"strikeoutsPer9Inn", "SO/9", clusterRatios},
	{"walksPer9Inn", "BB/9", clusterRatios},
	{"hitsPer9Inn", "H/9", clusterRatios},
	{"homeRunsPer9", "HR/9", clusterRatios},
	{"runsScoredPer9", "R/9", clusterRatios},
	{"atBatsPerHomeRun", "AB/HR", clusterRatios},
	{"groundOutsToAirouts", "GO/AO", clusterRatios},

	{"plateAppearances", "PA", clusterHits},
	{"atBats", "AB", clusterHits},
	{"hits", "Hits", clusterHits},
	{"doubles", "2B", clusterHits},
	{"triples", "3B", clusterHits},
	{"homeRuns", "HR", clusterHits},
	{"totalBases", "TB", clusterHits},

	{"rbi", "RBI", clusterProduction},
	{"runs", "Runs", clusterProduction},
	{"gamesPlayed", "Games", clusterProduction},
	{"stolenBases", "SB", clusterProduction},
	{"stolenBasePercentage", "SB%", clusterProduction},

	{"baseOnBalls", "BB", clusterDiscipline},
	{"strikeOuts", "SO", clusterDiscipline},
	{"intentionalWalks", "IBB", clusterDiscipline},
	{"hitByPitch", "HBP", clusterDiscipline},
	{"groundOuts", "Ground Outs", clusterDiscipline},
	{"airOuts", "Air Outs", clusterDiscipline},
	{"leftOnBase", "LOB", clusterDiscipline},

	{"wins", "W", clusterResults},
	{"losses", "L", clusterResults},
	{"inningsPitched", "IP", clusterResults},
	{"gamesPitched", "G", clusterResults},
	{"gamesStarted", "GS", clusterResults},
	{"completeGames", "CG", clusterResults},
	{"shutouts", "SHO", clusterResults},

	{"strikes", "Strikes", clusterControl},
	{"strikePercentage", "Strike%", clusterControl},
	{"strikeoutWalkRatio", "SO/BB", clusterControl},
	{"pitchesPerInning", "Pitches/IP", clusterControl},
	{"wildPitches", "WP", clusterControl},
	{"balks", "BK", clusterControl},
	{"pickoffs", "PK", clusterControl},

	{"inheritedRunners", "IR", clusterSituational},
	{"inheritedRunnersScored", "IRS", clusterSituational},
	{"saveOpportunities", "SVO", clusterSituational},
	{"saves", "SV", clusterSituational},
	{"holds", "HLD", clusterSituational},
	{"blownSaves", "BS", clusterSituational},
	{"gamesFinished", "GF", clusterSituational},
	{"groundIntoDoublePlay", "GIDP", clusterSituational},
	{"sacBunts", "SAC", clusterSituational},
	{"sacFlies", "SF", clusterSituational},

	{"avgExitVelocity", "Avg Exit Velo", clusterBattedBall},
	{"avgLaunchAngle", "Avg Launch Angle", clusterBattedBall},
	{"hardHitRate", "Hard Hit%", clusterBattedBall},
}

var labeledStats = func() map[string]bool {
	keys := make(map[string]bool, len(statLabels))
	for _, l := range statLabels {
		keys[l.key] = true
	}
	return keys
}()

// formatStatLines renders the relevant fields of a stat line, one output line
// per non-empty cluster. Fields without a label fall into the trailing
// "other" cluster under their raw key, in relevant-field order.
func formatStatLines(stat map[string]any, relevant []string) []string {
	if len(stat) == 0 || len(relevant) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(relevant))
	for _, f := range relevant {
		wanted[f] = true
	}

	groups := make(map[string][]string, len(clusterOrder))
	for _, l := range statLabels {
		if !wanted[l.key] {
			continue
		}
		v, ok := stat[l.key]
		if !ok || v == nil {
			continue
		}
		groups[l.cluster] = append(groups[l.cluster], l.label+": "+formatStatValue(l.key, v))
	}
	for _, key := range relevant {
		if labeledStats[key] {
			continue
		}
		if v, ok := stat[key]; ok && v != nil {
			groups[clusterOther] = append(groups[clusterOther], key+": "+formatStatValue(key, v))
		}
	}

	var lines []string
	for _, cluster := range clusterOrder {
		if entries := groups[cluster]; len(entries) > 0 {
			lines = append(lines, "- "+strings.Join(entries, ", "))
		}
	}
	return lines
}

// formatStatValue renders one value. The stats API already sends rates as
// display strings (".288"), so strings pass through except the strike
// percentage, which arrives as a fraction.
func formatStatValue(key string, v any) string {
	switch val := v.(type) {
	case string:
		if key == "strikePercentage" {
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return fmt.Sprintf("%.1f%%", f*100)
			}
		}
		return val
	case float64:
		return formatFloatStat(key, val)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func formatFloatStat(key string, v float64) string {
	switch key {
	case "avg", "obp", "slg", "ops", "babip":
		return statcast.FormatRate(v)
	case "strikePercentage", "hardHitRate":
		return fmt.Sprintf("%.1f%%", v*100)
	case "avgExitVelocity":
		return fmt.Sprintf("%.1f mph", v)
	case "avgLaunchAngle":
		return fmt.Sprintf("%.1f°", v)
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
