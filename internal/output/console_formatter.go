package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ffodds/season-projector/internal/domain"
)

// ConsoleFormatter renders fixed-width tables for a terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, strings.ToUpper(r.League))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	if len(r.Standings) > 0 {
		writeStandings(&buf, r)
	}
	if len(r.Divisions) > 0 {
		writeDivisions(&buf, r.Divisions)
	}
	if r.Projection != nil {
		writeProjection(&buf, r.Projection)
	}
	if r.Swing != nil {
		writeSwing(&buf, r.Swing)
	}
	if len(r.Schedule) > 0 {
		writeSchedule(&buf, r.Schedule)
	}
	return buf.Bytes(), nil
}

func heading(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", len(title)))
}

func writeStandings(buf *bytes.Buffer, r *Report) {
	heading(buf, fmt.Sprintf("STANDINGS THROUGH WEEK %d", r.ThroughWeek))
	fmt.Fprintf(buf, "%3s  %-24s %-10s %3s %-8s %5s %9s %9s\n", "Rk", "Team", "Owner", "Div", "Record", "Pct", "PF", "PA")
	for i, row := range r.Standings {
		if i > 0 && r.Standings[i-1].InPlayoffs && !row.InPlayoffs {
			fmt.Fprintln(buf, strings.Repeat(".", 72))
		}
		name := row.Name
		if row.DivisionWinner {
			name += " *"
		}
		fmt.Fprintf(buf, "%3d  %-24s %-10s %3d %-8s %5.3f %9s %9s\n",
			row.Rank, name, row.Owner, row.DivisionID,
			FormatRecord(row.Wins, row.Losses, row.Ties), row.WinPct,
			FormatPoints(row.PointsFor), FormatPoints(row.PointsAgainst))
	}
	fmt.Fprintln(buf, "* division leader; dotted line marks the playoff cut")
}

func writeDivisions(buf *bytes.Buffer, divisions map[int][]domain.StandingRow) {
	ids := make([]int, 0, len(divisions))
	for id := range divisions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		heading(buf, fmt.Sprintf("DIVISION %d", id))
		for i, row := range divisions[id] {
			fmt.Fprintf(buf, "%3d  %-24s %-8s %9s\n", i+1, row.Name,
				FormatRecord(row.Wins, row.Losses, row.Ties), FormatPoints(row.PointsFor))
		}
	}
}

func writeProjection(buf *bytes.Buffer, p *domain.ProjectionResult) {
	heading(buf, fmt.Sprintf("PLAYOFF ODDS (%d trials, weeks %d-%d, seed %d, %s ranking)",
		p.Trials, p.FirstWeek, p.LastWeek, p.Seed, p.Ranking))
	fmt.Fprintf(buf, "%-24s %-10s %6s %6s %6s %9s %9s\n", "Team", "Owner", "W", "T", "L", "PF", "Playoffs")
	for _, row := range p.PlayoffOdds {
		fmt.Fprintf(buf, "%-24s %-10s %6s %6s %6s %9s %9s\n", row.Name, row.Owner,
			row.Wins.StringFixed(1), row.Ties.StringFixed(1), row.Losses.StringFixed(1),
			row.PointsFor.StringFixed(2), FormatPercentage(row.PlayoffOdds))
	}

	heading(buf, "FINAL RANK DISTRIBUTION")
	fmt.Fprintf(buf, "%-24s", "Team")
	if len(p.RankDistribution) > 0 {
		for rank := range p.RankDistribution[0].RankOdds {
			fmt.Fprintf(buf, " %6d", rank+1)
		}
	}
	fmt.Fprintln(buf)
	for _, row := range p.RankDistribution {
		fmt.Fprintf(buf, "%-24s", row.Name)
		for _, odds := range row.RankOdds {
			fmt.Fprintf(buf, " %6s", odds.StringFixed(1))
		}
		fmt.Fprintln(buf)
	}

	heading(buf, "SEEDING OUTCOMES")
	fmt.Fprintf(buf, "%-24s %9s %9s %9s %9s %9s\n", "Team", "1st Lg", "1st Div", "Playoffs", "Last Div", "Last Lg")
	for _, row := range p.SeedingOutcomes {
		fmt.Fprintf(buf, "%-24s %9s %9s %9s %9s %9s\n", row.Name,
			FormatPercentage(row.FirstInLeague), FormatPercentage(row.FirstInDivision),
			FormatPercentage(row.MakePlayoffs), FormatPercentage(row.LastInDivision),
			FormatPercentage(row.LastInLeague))
	}
}

func writeSwing(buf *bytes.Buffer, s *domain.SwingReport) {
	heading(buf, fmt.Sprintf("WEEK %d SWING (%d trials per side)", s.Week, s.Trials))
	names := make(map[int]string, len(s.Teams))
	for _, t := range s.Teams {
		names[t.TeamID] = t.Name
	}
	name := func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("#%d", id)
	}

	fmt.Fprintf(buf, "%-24s %-24s %9s %9s %9s\n", "Team", "Opponent", "If Win", "If Loss", "Swing")
	for _, t := range s.Teams {
		fmt.Fprintf(buf, "%-24s %-24s %9s %9s %9s\n", t.Name, name(t.OpponentID),
			FormatPercentage(t.OddsIfWin), FormatPercentage(t.OddsIfLoss), FormatPercentage(t.Swing))
	}

	for _, m := range s.Matchups {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%s vs %s moves:\n", name(m.TeamA), name(m.TeamB))
		ids := make([]int, 0, len(m.Swing))
		for id, sw := range m.Swing {
			if !sw.IsZero() {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Fprintln(buf, "  nobody")
			continue
		}
		sort.Slice(ids, func(i, j int) bool {
			a, b := m.Swing[ids[i]], m.Swing[ids[j]]
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids {
			fmt.Fprintf(buf, "  %-24s %9s -> %9s  (%s)\n", name(id),
				FormatPercentage(m.OddsIfAWins[id]), FormatPercentage(m.OddsIfBWins[id]),
				FormatPercentage(m.Swing[id]))
		}
	}
}

func writeSchedule(buf *bytes.Buffer, rows []domain.ScheduleDifficulty) {
	heading(buf, "REMAINING STRENGTH OF SCHEDULE")
	fmt.Fprintf(buf, "%-24s %-10s %5s %9s %8s %10s\n", "Team", "Owner", "Games", "Opp PF/G", "Opp Pct", "Difficulty")
	for _, row := range rows {
		fmt.Fprintf(buf, "%-24s %-10s %5d %9s %8.3f %10.2f\n", row.Name, row.Owner, row.Games,
			FormatPoints(row.OppPointsFor), row.OppWinPct, row.OverallDifficulty)
	}
}
