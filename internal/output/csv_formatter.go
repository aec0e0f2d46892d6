package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// CSVFormatter writes each section as its own table. The first column names
// the table and tables are separated by a blank line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	var tables [][][]string

	if len(r.Standings) > 0 {
		t := [][]string{{"table", "rank", "team_id", "name", "owner", "division_id", "wins", "losses", "ties", "win_pct", "points_for", "points_against", "division_winner", "in_playoffs"}}
		for _, row := range r.Standings {
			t = append(t, []string{"standings", intToString(row.Rank), intToString(row.TeamID), row.Name, row.Owner,
				intToString(row.DivisionID), intToString(row.Wins), intToString(row.Losses), intToString(row.Ties),
				strconv.FormatFloat(row.WinPct, 'f', 3, 64), FormatPoints(row.PointsFor), FormatPoints(row.PointsAgainst),
				boolToString(row.DivisionWinner), boolToString(row.InPlayoffs)})
		}
		tables = append(tables, t)
	}

	if p := r.Projection; p != nil {
		odds := [][]string{{"table", "team_id", "name", "owner", "wins", "ties", "losses", "points_for", "playoff_odds"}}
		for _, row := range p.PlayoffOdds {
			odds = append(odds, []string{"playoff_odds", intToString(row.TeamID), row.Name, row.Owner,
				row.Wins.StringFixed(1), row.Ties.StringFixed(1), row.Losses.StringFixed(1),
				row.PointsFor.StringFixed(2), row.PlayoffOdds.StringFixed(1)})
		}
		tables = append(tables, odds)

		header := []string{"table", "team_id", "name"}
		if len(p.RankDistribution) > 0 {
			for rank := range p.RankDistribution[0].RankOdds {
				header = append(header, fmt.Sprintf("rank_%d", rank+1))
			}
		}
		ranks := [][]string{append(header, "playoff_odds")}
		for _, row := range p.RankDistribution {
			rec := []string{"rank_distribution", intToString(row.TeamID), row.Name}
			rec = append(rec, fixed(row.RankOdds...)...)
			ranks = append(ranks, append(rec, row.PlayoffOdds.StringFixed(1)))
		}
		tables = append(tables, ranks)

		seeding := [][]string{{"table", "team_id", "name", "first_in_league", "first_in_division", "make_playoffs", "last_in_division", "last_in_league"}}
		for _, row := range p.SeedingOutcomes {
			rec := []string{"seeding_outcomes", intToString(row.TeamID), row.Name}
			seeding = append(seeding, append(rec, fixed(row.FirstInLeague, row.FirstInDivision, row.MakePlayoffs, row.LastInDivision, row.LastInLeague)...))
		}
		tables = append(tables, seeding)
	}

	if s := r.Swing; s != nil {
		t := [][]string{{"table", "week", "team_id", "name", "opponent_id", "odds_if_win", "odds_if_loss", "swing"}}
		for _, row := range s.Teams {
			rec := []string{"swing", intToString(s.Week), intToString(row.TeamID), row.Name, intToString(row.OpponentID)}
			t = append(t, append(rec, fixed(row.OddsIfWin, row.OddsIfLoss, row.Swing)...))
		}
		tables = append(tables, t)
	}

	if len(r.Schedule) > 0 {
		t := [][]string{{"table", "team_id", "name", "owner", "games", "opp_points_for", "opp_win_pct", "overall_difficulty"}}
		for _, row := range r.Schedule {
			t = append(t, []string{"schedule", intToString(row.TeamID), row.Name, row.Owner, intToString(row.Games),
				FormatPoints(row.OppPointsFor), strconv.FormatFloat(row.OppWinPct, 'f', 3, 64),
				strconv.FormatFloat(row.OverallDifficulty, 'f', 3, 64)})
		}
		tables = append(tables, t)
	}

	for i, t := range tables {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := w.WriteAll(t); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixed(ds ...decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.StringFixed(1)
	}
	return out
}
