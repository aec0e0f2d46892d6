package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ffodds/season-projector/internal/domain"
)

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildTestReport() *Report {
	return &Report{
		League:      "Test League",
		ThroughWeek: 6,
		Standings: []domain.StandingRow{
			{Rank: 1, TeamID: 1, Name: "Alpha", Owner: "ann", DivisionID: 1, Wins: 5, Losses: 1, WinPct: 0.833, PointsFor: 700.5, PointsAgainst: 610, DivisionWinner: true, InPlayoffs: true},
			{Rank: 2, TeamID: 2, Name: "Beta", Owner: "bob", DivisionID: 1, Wins: 1, Losses: 5, WinPct: 0.167, PointsFor: 580.25, PointsAgainst: 670.75},
		},
		Projection: &domain.ProjectionResult{
			LeagueName: "Test League", Trials: 1000, Seed: 42, FirstWeek: 7, LastWeek: 10, Ranking: "simple",
			PlayoffOdds: []domain.PlayoffOddsRow{
				{TeamID: 1, Name: "Alpha", Owner: "ann", Wins: pct("7.9"), Ties: pct("0"), Losses: pct("2.1"), PointsFor: pct("1180.44"), PlayoffOdds: pct("98.7")},
				{TeamID: 2, Name: "Beta", Owner: "bob", Wins: pct("2.1"), Ties: pct("0"), Losses: pct("7.9"), PointsFor: pct("990.1"), PlayoffOdds: pct("1.3")},
			},
			RankDistribution: []domain.RankDistributionRow{
				{TeamID: 1, Name: "Alpha", RankOdds: []decimal.Decimal{pct("98.7"), pct("1.3")}, PlayoffOdds: pct("98.7")},
				{TeamID: 2, Name: "Beta", RankOdds: []decimal.Decimal{pct("1.3"), pct("98.7")}, PlayoffOdds: pct("1.3")},
			},
			SeedingOutcomes: []domain.SeedingOutcomeRow{
				{TeamID: 1, Name: "Alpha", FirstInLeague: pct("98.7"), FirstInDivision: pct("98.7"), MakePlayoffs: pct("98.7"), LastInDivision: pct("1.3"), LastInLeague: pct("1.3")},
				{TeamID: 2, Name: "Beta", FirstInLeague: pct("1.3"), FirstInDivision: pct("1.3"), MakePlayoffs: pct("1.3"), LastInDivision: pct("98.7"), LastInLeague: pct("98.7")},
			},
		},
	}
}

func buildSwingReport() *Report {
	return &Report{
		League: "Test League",
		Swing: &domain.SwingReport{
			Week: 7, Trials: 200,
			Matchups: []domain.MatchupSwing{{
				TeamA: 1, TeamB: 2,
				OddsIfAWins: map[int]decimal.Decimal{1: pct("100"), 2: pct("0")},
				OddsIfBWins: map[int]decimal.Decimal{1: pct("60"), 2: pct("40")},
				Swing:       map[int]decimal.Decimal{1: pct("40"), 2: pct("40")},
			}},
			Teams: []domain.TeamSwing{
				{TeamID: 1, Name: "Alpha", OpponentID: 2, OddsIfWin: pct("100"), OddsIfLoss: pct("60"), Swing: pct("40")},
				{TeamID: 2, Name: "Beta", OpponentID: 1, OddsIfWin: pct("40"), OddsIfLoss: pct("0"), Swing: pct("40")},
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := map[string]string{
		"console":     "console",
		" TEXT ":      "console",
		"table":       "console",
		"csv":         "csv",
		"json-pretty": "json",
		"yml":         "yaml",
		"yaml":        "yaml",
		"htm":         "html",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "yaml"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "yml")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "STANDINGS THROUGH WEEK 6")
	assert.Contains(t, content, "Alpha *")
	assert.Contains(t, content, "5-1")
	assert.Contains(t, content, "PLAYOFF ODDS (1000 trials, weeks 7-10, seed 42, simple ranking)")
	assert.Contains(t, content, "98.7%")
	assert.Contains(t, content, "FINAL RANK DISTRIBUTION")
	assert.Contains(t, content, "SEEDING OUTCOMES")
	// the playoff cut sits between the two teams
	assert.Less(t, strings.Index(content, "Alpha *"), strings.Index(content, "....."))
	assert.Less(t, strings.Index(content, "....."), strings.Index(content, "Beta"))
}

func TestConsoleFormatterSwing(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildSwingReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "WEEK 7 SWING (200 trials per side)")
	assert.Contains(t, content, "Alpha vs Beta moves:")
	assert.Contains(t, content, "40.0%")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(out)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	counts := map[string]int{}
	for _, rec := range records {
		counts[rec[0]]++
	}
	assert.Equal(t, 4, counts["table"], "one header per table")
	assert.Equal(t, 2, counts["standings"])
	assert.Equal(t, 2, counts["playoff_odds"])
	assert.Equal(t, 2, counts["rank_distribution"])
	assert.Equal(t, 2, counts["seeding_outcomes"])

	for _, rec := range records {
		if rec[0] == "playoff_odds" && rec[1] == "1" {
			assert.Equal(t, []string{"playoff_odds", "1", "Alpha", "ann", "7.9", "0.0", "2.1", "1180.44", "98.7"}, rec)
		}
		if rec[0] == "table" && rec[1] == "team_id" && rec[3] == "rank_1" {
			assert.Equal(t, "rank_2", rec[4])
			assert.Equal(t, "playoff_odds", rec[5])
		}
	}
}

func TestHTMLFormatter(t *testing.T) {
	r := buildTestReport()
	r.Divisions = map[int][]domain.StandingRow{1: r.Standings}
	out, err := HTMLFormatter{}.Format(r)
	require.NoError(t, err)
	content := string(out)

	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "<title>Test League | projection</title>")
	assert.Contains(t, content, "Standings through week 6")
	assert.Contains(t, content, "Division 1")
	assert.Contains(t, content, `<tr class="in"><td>1</td><td class="name">Alpha *</td>`)
	assert.Contains(t, content, "98.7%")
	assert.Contains(t, content, "1000 trials, weeks 7-10, seed 42, simple ranking")

	out, err = HTMLFormatter{}.Format(buildSwingReport())
	require.NoError(t, err)
	content = string(out)
	assert.Contains(t, content, "Week 7 swing")
	assert.Contains(t, content, "<h3>Alpha vs Beta</h3>")
	assert.Contains(t, content, "40.0%")
	assert.NotContains(t, content, "Playoff odds")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded struct {
		League     string `json:"league"`
		Projection struct {
			PlayoffOdds []struct {
				TeamID      int    `json:"team_id"`
				PlayoffOdds string `json:"playoff_odds"`
			} `json:"playoff_odds"`
		} `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Test League", decoded.League)
	require.Len(t, decoded.Projection.PlayoffOdds, 2)
	assert.Equal(t, "98.7", decoded.Projection.PlayoffOdds[0].PlayoffOdds)
	assert.NotContains(t, string(out), `"swing"`)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildSwingReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	swing, ok := decoded["swing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 7, swing["week"])
	assert.Contains(t, string(out), `"40"`)
}

func TestGenerateReport(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, GenerateReport(&sb, buildTestReport(), "json"))
	assert.True(t, strings.HasPrefix(sb.String(), "{"))

	err := GenerateReport(&sb, buildTestReport(), "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "console, csv, html, json, yaml")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odds.csv")
	got, err := WriteFormatted(CSVFormatter{}, buildTestReport(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "playoff_odds")

	assert.Equal(t, "txt", FileExtension(ConsoleFormatter{}))
	assert.Equal(t, "projection", buildTestReport().Kind())
	assert.Equal(t, "swing", buildSwingReport().Kind())
}
