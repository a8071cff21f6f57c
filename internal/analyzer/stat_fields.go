package analyzer

import "github.com/stitts-dev/dugout/internal/models"

// Stat field names follow the MLB stats payload keys.
var (
	battingBasic = []string{
		"avg", "obp", "slg", "ops",
		"hits", "doubles", "triples", "homeRuns",
		"rbi", "runs", "gamesPlayed", "atBats",
	}
	battingAdvanced = []string{
		"babip", "totalBases", "groundOutsToAirouts",
		"atBatsPerHomeRun", "plateAppearances",
	}
	battingSituational = []string{
		"stolenBases", "stolenBasePercentage",
		"groundIntoDoublePlay", "sacBunts", "sacFlies",
		"intentionalWalks", "hitByPitch",
	}
	battingSplits = []string{
		"groundOuts", "airOuts", "strikeOuts",
		"baseOnBalls", "leftOnBase",
	}
	battingTrends = []string{
		"lastGameHits", "recentAvg", "recentObp",
		"recentSlg", "recentOps", "currentStreak",
	}
	battedBall = []string{
		"plateAppearances", "baseOnBalls", "strikeOuts",
		"avgExitVelocity", "avgLaunchAngle", "hardHitRate",
	}

	pitchingBasic = []string{
		"era", "whip", "wins", "losses",
		"inningsPitched", "gamesPitched", "gamesStarted",
		"completeGames", "shutouts",
		"hits", "homeRuns", "strikeOuts", "baseOnBalls",
	}
	pitchingAdvanced = []string{
		"strikeoutsPer9Inn", "walksPer9Inn",
		"hitsPer9Inn", "homeRunsPer9",
		"runsScoredPer9", "pitchesPerInning",
	}
	pitchingSituational = []string{
		"inheritedRunners", "inheritedRunnersScored",
		"saveOpportunities", "saves", "holds",
		"blownSaves", "gamesFinished",
	}
	pitchingControl = []string{
		"strikes", "strikePercentage",
		"strikeoutWalkRatio", "wildPitches",
		"balks", "pickoffs", "totalBases",
	}
	pitchingTrends = []string{
		"lastGamePitches", "lastGameStrikeouts",
		"recentEra", "recentWhip", "currentStreak",
	}
)

// RelevantStatFields lists the stat fields worth rendering for a question,
// in rendering order and without duplicates. Questions about the game or a
// team get both sides when the answer needs player stats at all.
func RelevantStatFields(analysis models.QuestionAnalysis) []string {
	var fields []string
	switch analysis.Focus {
	case models.FocusPitcher:
		fields = pitcherFields(analysis.Type, analysis.Timeframe)
	case models.FocusBatter:
		fields = batterFields(analysis.Type, analysis.Timeframe)
	case models.FocusBoth:
		fields = concat(pitcherFields(analysis.Type, analysis.Timeframe), batterFields(analysis.Type, analysis.Timeframe))
	default:
		if analysis.DataNeeded.BatterStats || analysis.DataNeeded.PitcherStats || analysis.DataNeeded.MatchupHistory {
			fields = concat(pitcherFields(analysis.Type, analysis.Timeframe), batterFields(analysis.Type, analysis.Timeframe))
		}
	}

	if analysis.DataNeeded.MatchupHistory {
		fields = concat(fields, battedBall)
	}
	return dedupe(fields)
}

func pitcherFields(questionType models.QuestionType, timeframe models.Timeframe) []string {
	switch questionType {
	case models.QuestionPerformance:
		if timeframe == models.TimeframeSeason {
			return concat(pitchingBasic, pitchingAdvanced)
		}
		return concat(pitchingBasic, pitchingTrends)
	case models.QuestionSituation:
		return concat(pitchingSituational, pitchingControl)
	case models.QuestionStrategy:
		return concat(pitchingBasic, pitchingControl, pitchingSituational)
	case models.QuestionMatchup:
		return concat(pitchingBasic, pitchingControl)
	case models.QuestionPrediction:
		return concat(pitchingBasic, pitchingAdvanced, pitchingControl, pitchingTrends)
	case models.QuestionComparison:
		return concat(pitchingBasic, pitchingAdvanced, pitchingControl)
	case models.QuestionTrend:
		return concat(pitchingTrends, pitchingBasic)
	default:
		return concat(pitchingBasic)
	}
}

func batterFields(questionType models.QuestionType, timeframe models.Timeframe) []string {
	switch questionType {
	case models.QuestionPerformance:
		if timeframe == models.TimeframeSeason {
			return concat(battingBasic, battingAdvanced)
		}
		return concat(battingBasic, battingTrends)
	case models.QuestionSituation:
		return concat(battingSituational, battingSplits)
	case models.QuestionStrategy:
		return concat(battingBasic, battingSituational)
	case models.QuestionMatchup:
		return concat(battingBasic, battingSplits)
	case models.QuestionPrediction:
		return concat(battingBasic, battingAdvanced, battingSplits, battingTrends)
	case models.QuestionComparison:
		return concat(battingBasic, battingAdvanced)
	case models.QuestionTrend:
		return concat(battingTrends, battingBasic)
	default:
		return concat(battingBasic)
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func dedupe(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
