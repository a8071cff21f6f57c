package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stitts-dev/dugout/internal/models"
	"github.com/stitts-dev/dugout/internal/statcast"
)

// Supported response languages
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"ja": "Japanese",
}

const promptGuidelines = `CRITICAL GUIDELINES:
1. ONLY use statistics explicitly provided in the context above
2. DO NOT reference any external statistics or historical data
3. DO NOT make assumptions about:
   - The score of the game
   - Player tendencies or preferences
   - Pitch types or velocities
   - Historical matchups
   - Any other data not explicitly provided
4. If asked about information not provided, clearly state: "That information is not available in the current context."
5. Be extremely precise about the current game situation (inning, outs, count)
6. If the question assumes incorrect information, politely correct it using only the provided context
7. Never reference sources like Baseball Savant, FanGraphs, or other databases

Your response must:
1. Use only the exact statistics shown above
2. Acknowledge what information is missing
3. Be factual without speculation
4. Focus on what can be concluded from the available data only

Remember: It's better to acknowledge limited information than to make assumptions or reference external data.`

const atBatCommentaryInstructions = "Please provide a brief commentary on the at-bat of no more than 50 words, " +
	"with the at bat result and a short commentary on the at-bat. Do not include any other information " +
	"not directly related to the at-bat. Use only the information provided in the context."

const atBatPreviewInstructions = `Please provide a brief, engaging preview of this matchup that:
1. Highlights any notable context about the game situation
2. References the specific history between these players
3. Sets up the drama of the moment

Keep the response concise and focused on building anticipation for the at-bat.`

// PromptInput is everything a question prompt is assembled from. Nil
// sections are omitted; sections flagged in Requested but still nil are
// listed as unavailable so the model says so instead of guessing.
type PromptInput struct {
	Message        string
	Language       string
	GameContext    *models.GameSnapshot
	BatterStats    *models.PlayerStatsResponse
	PitcherStats   *models.PlayerStatsResponse
	MatchupStats   *models.MatchupStats
	Recent         *models.RecentPerformance
	RelevantFields []string
	Requested      models.DataNeeded
}

// PromptBuilder renders LLM prompts. Output is a pure function of the input.
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildPrompt assembles the grounded prompt for a free-text question
func (p *PromptBuilder) BuildPrompt(in PromptInput) string {
	lang := normalizeLanguage(in.Language)

	sections := []string{
		fmt.Sprintf("You are a baseball analytics expert and commentator. Provide insights in %s based STRICTLY on the following context:", languageNames[lang]),
	}
	if s := gameSection(in.GameContext, lang); s != "" {
		sections = append(sections, s)
	}
	if s := statsSection(in); s != "" {
		sections = append(sections, s)
	}
	if s := unavailableSection(in); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, "User Question: "+strings.TrimSpace(in.Message), promptGuidelines)

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// BuildAtBatCommentaryPrompt asks for a short recap of a finished at-bat
func (p *PromptBuilder) BuildAtBatCommentaryPrompt(atBat models.AtBat) string {
	var b strings.Builder
	b.WriteString("As a baseball commentator, provide analysis for this at-bat result:\n\n")
	fmt.Fprintf(&b, "Situation: %s of the %s, %d balls, %d strikes, %d outs\n",
		halfName(atBat.IsTopInning), InningOrdinal(atBat.Inning),
		atBat.Count.Balls, atBat.Count.Strikes, atBat.Count.Outs)
	fmt.Fprintf(&b, "Score: Away %d, Home %d\n", atBat.Result.AwayScore, atBat.Result.HomeScore)
	fmt.Fprintf(&b, "%s pitching to %s\n\n", atBat.Pitcher.FullName, atBat.Batter.FullName)

	b.WriteString("Pitch Sequence:\n")
	if len(atBat.Pitches) == 0 {
		b.WriteString("No pitches recorded\n")
	}
	for i, pitch := range atBat.Pitches {
		fmt.Fprintf(&b, "Pitch %d: %s", i+1, pitch.Type)
		if pitch.Speed > 0 {
			fmt.Fprintf(&b, " (%.1f mph)", pitch.Speed)
		}
		fmt.Fprintf(&b, " - %s\n", pitch.Result)
	}

	fmt.Fprintf(&b, "\nFinal Result: %s\n\n", atBat.Result.Description)
	b.WriteString(atBatCommentaryInstructions)
	return b.String()
}

// BuildAtBatPreviewPrompt sets up the plate appearance in progress, using the
// pair's career history when there is one
func (p *PromptBuilder) BuildAtBatPreviewPrompt(snapshot *models.GameSnapshot, matchup *models.MatchupStats) string {
	var b strings.Builder
	b.WriteString("As a baseball commentator, set up this upcoming at-bat:\n\n")
	fmt.Fprintf(&b, "Situation: %s of the %s\n", halfName(snapshot.IsTopInning), InningOrdinal(snapshot.Inning))
	fmt.Fprintf(&b, "Score: %s\n", scoreLine(snapshot))
	fmt.Fprintf(&b, "%s on the mound\n", playerName(snapshot.Pitcher))
	fmt.Fprintf(&b, "%s stepping into the box\n", playerName(snapshot.Batter))
	fmt.Fprintf(&b, "%d out(s)\n\n", snapshot.Count.Outs)

	b.WriteString("Career Matchup History:\n")
	if matchup == nil || matchup.PlateAppearances == 0 {
		b.WriteString("No previous matchups on record")
	} else {
		b.WriteString(statcast.FormatMatchup(*matchup))
	}
	b.WriteString("\n\n")
	b.WriteString(atBatPreviewInstructions)
	return b.String()
}

// IsKeyMoment flags late, close at-bats and late at-bats with a runner in
// scoring position.
func IsKeyMoment(atBat models.AtBat) bool {
	if atBat.Inning < 7 {
		return false
	}
	margin := atBat.Result.AwayScore - atBat.Result.HomeScore
	if margin < 0 {
		margin = -margin
	}
	if margin <= 3 {
		return true
	}
	for _, start := range atBat.RunnerStarts {
		if start == "2B" || start == "3B" {
			return true
		}
	}
	return false
}

// InningOrdinal renders an inning number as an English ordinal ("1st", "11th", "22nd")
func InningOrdinal(inning int) string {
	suffix := "th"
	switch inning % 100 {
	case 11, 12, 13:
	default:
		switch inning % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(inning) + suffix
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := languageNames[lang]; ok {
		return lang
	}
	return "en"
}

func inningPhrase(inning int, isTop bool, lang string) string {
	switch lang {
	case "es":
		half := "Parte baja"
		if isTop {
			half = "Parte alta"
		}
		return fmt.Sprintf("%s del %d° inning", half, inning)
	case "ja":
		half := "裏"
		if isTop {
			half = "表"
		}
		return fmt.Sprintf("%d回%s", inning, half)
	default:
		return fmt.Sprintf("%s of the %s inning", halfName(isTop), InningOrdinal(inning))
	}
}

func halfName(isTop bool) string {
	if isTop {
		return "Top"
	}
	return "Bottom"
}

func playerName(p *models.PlayerRef) string {
	if p == nil || p.FullName == "" {
		return "Unknown"
	}
	return p.FullName
}

func scoreLine(s *models.GameSnapshot) string {
	away, home := s.Metadata.AwayTeam, s.Metadata.HomeTeam
	if away == "" {
		away = "Away"
	}
	if home == "" {
		home = "Home"
	}
	return fmt.Sprintf("%s %d, %s %d", away, s.CurrentPlay.AwayScore, home, s.CurrentPlay.HomeScore)
}

func formatRunners(runners []models.Runner) string {
	if len(runners) == 0 {
		return "Bases empty"
	}
	parts := make([]string, 0, len(runners))
	for _, r := range runners {
		parts = append(parts, fmt.Sprintf("%s on %s", r.Player.FullName, r.Base))
	}
	return strings.Join(parts, ", ")
}

func gameSection(s *models.GameSnapshot, lang string) string {
	if s == nil {
		return ""
	}

	lines := []string{
		"Game Situation:",
		"- " + inningPhrase(s.Inning, s.IsTopInning, lang),
		fmt.Sprintf("- Situation: %d balls, %d strikes, %d outs", s.Count.Balls, s.Count.Strikes, s.Count.Outs),
		"- Pitcher: " + playerName(s.Pitcher),
		"- Batter: " + playerName(s.Batter),
		"- Runners: " + formatRunners(s.Runners),
	}
	if s.CurrentPlay.Description != "" {
		lines = append(lines, "- Current Play: "+s.CurrentPlay.Description)
	}
	lines = append(lines, "- Score: "+scoreLine(s))
	return strings.Join(lines, "\n")
}

func statsSection(in PromptInput) string {
	var blocks []string

	if in.MatchupStats != nil {
		blocks = append(blocks, "Head-to-Head Statistics:\n"+matchupBlock(in.MatchupStats, in.RelevantFields))
	}

	if in.BatterStats != nil || in.PitcherStats != nil {
		params := paramsOf(in.BatterStats, in.PitcherStats)
		blocks = append(blocks, statsTitle(params)+":\n"+
			playerBlocks(in.BatterStats, in.PitcherStats, in.RelevantFields))
	}

	if r := in.Recent; r != nil && (r.Batter != nil || r.Pitcher != nil) {
		title := fmt.Sprintf("Recent Performance (%s to %s)", r.Window.StartDate, r.Window.EndDate)
		blocks = append(blocks, title+":\n"+
			playerBlocks(r.Batter, r.Pitcher, in.RelevantFields))
	}

	if len(blocks) == 0 {
		return ""
	}
	return "Statistical Context:\n\n" + strings.Join(blocks, "\n\n")
}

func matchupBlock(m *models.MatchupStats, fields []string) string {
	if m.PlateAppearances == 0 {
		return "- No previous plate appearances between these players"
	}
	lines := formatStatLines(m.StatValues(), fields)
	if len(lines) == 0 {
		return fmt.Sprintf("- %d-for-%d in %d plate appearances", m.Hits, m.AtBats, m.PlateAppearances)
	}
	return strings.Join(lines, "\n")
}

func playerBlocks(batter, pitcher *models.PlayerStatsResponse, fields []string) string {
	var blocks []string
	if batter != nil {
		blocks = append(blocks, playerBlock("BATTER", batter, fields))
	}
	if pitcher != nil {
		blocks = append(blocks, playerBlock("PITCHER", pitcher, fields))
	}
	return strings.Join(blocks, "\n\n")
}

func playerBlock(role string, resp *models.PlayerStatsResponse, fields []string) string {
	split := resp.FirstSplit()
	if split == nil {
		return role + ": No stats available"
	}

	header := role + ": " + split.Player.FullName
	if split.Team.Name != "" {
		header += " (" + split.Team.Name + ")"
	}

	lines := formatStatLines(split.Stat, fields)
	if len(lines) == 0 {
		return header + "\n- No stats available"
	}
	return header + "\n" + strings.Join(lines, "\n")
}

func paramsOf(responses ...*models.PlayerStatsResponse) models.StatsRequestParams {
	for _, r := range responses {
		if r != nil {
			return r.Params
		}
	}
	return models.StatsRequestParams{}
}

// statsTitle names a stats block after the window it covers
func statsTitle(params models.StatsRequestParams) string {
	switch params.Stats {
	case models.StatsModeCareer:
		return "Career Statistics"
	case models.StatsModeByDateRange:
		return fmt.Sprintf("Statistics (%s to %s)", params.StartDate, params.EndDate)
	default:
		if params.Season > 0 {
			return fmt.Sprintf("Season Statistics (%d)", params.Season)
		}
		return "Season Statistics"
	}
}

func unavailableSection(in PromptInput) string {
	var missing []string
	if in.Requested.GameContext && in.GameContext == nil {
		missing = append(missing, "- Live game situation")
	}
	if in.Requested.BatterStats && in.BatterStats == nil {
		missing = append(missing, "- Batter statistics")
	}
	if in.Requested.PitcherStats && in.PitcherStats == nil {
		missing = append(missing, "- Pitcher statistics")
	}
	if in.Requested.MatchupHistory && in.MatchupStats == nil {
		missing = append(missing, "- Head-to-head history")
	}
	if in.Requested.RecentPerformance && in.Recent == nil {
		missing = append(missing, "- Recent performance")
	}
	if len(missing) == 0 {
		return ""
	}
	return "Not Available (say so if the question depends on it):\n" + strings.Join(missing, "\n")
}
