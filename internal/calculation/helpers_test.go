package calculation

import (
	"fmt"

	"github.com/ffodds/season-projector/internal/domain"
)

// buildLeague creates an unplayed league from a division map and a schedule
// keyed by team id.
func buildLeague(policy domain.TiebreakPolicy, weeks, playoffs int, divisions map[int][]int, schedule map[int][]int) *domain.League {
	l := &domain.League{
		Name:               "Test League",
		Divisions:          divisions,
		PlayoffTeamCount:   playoffs,
		RegularSeasonWeeks: weeks,
		TiebreakPolicy:     policy,
	}
	for divID, members := range divisions {
		for _, id := range members {
			outcomes := make([]domain.Outcome, weeks)
			for i := range outcomes {
				outcomes[i] = domain.OutcomeUndetermined
			}
			l.Teams = append(l.Teams, domain.Team{
				ID:         id,
				DivisionID: divID,
				Name:       fmt.Sprintf("Team %d", id),
				Owner:      fmt.Sprintf("owner%d", id),
				Scores:     make([]float64, weeks),
				Outcomes:   outcomes,
				Schedule:   append([]int(nil), schedule[id]...),
			})
		}
	}
	return l
}

// play records scores for a week and derives each side's outcome.
func play(l *domain.League, week int, scores map[int]float64) {
	for id, s := range scores {
		team, _ := l.Team(id)
		team.Scores[week-1] = s
	}
	for id := range scores {
		team, _ := l.Team(id)
		opp, ok := team.Opponent(week)
		if !ok {
			continue
		}
		oppScore, played := scores[opp]
		if !played {
			continue
		}
		switch mine := scores[id]; {
		case mine > oppScore:
			team.Outcomes[week-1] = domain.OutcomeWin
		case mine < oppScore:
			team.Outcomes[week-1] = domain.OutcomeLoss
		default:
			team.Outcomes[week-1] = domain.OutcomeTie
		}
	}
}

// roundRobinSchedule pairs teams 1..n (n even) with the circle method,
// repeating rounds once every pairing has been used.
func roundRobinSchedule(n, weeks int) map[int][]int {
	sched := make(map[int][]int, n)
	for id := 1; id <= n; id++ {
		sched[id] = make([]int, weeks)
	}
	for w := 0; w < weeks; w++ {
		r := w % (n - 1)
		rot := make([]int, n)
		rot[0] = 1
		for k := 1; k < n; k++ {
			rot[k] = 2 + (k-1+r)%(n-1)
		}
		for i := 0; i < n/2; i++ {
			a, b := rot[i], rot[n-1-i]
			sched[a][w] = b
			sched[b][w] = a
		}
	}
	return sched
}

// eightTeamLeague is two divisions of four over ten weeks with the first six
// played.
func eightTeamLeague(policy domain.TiebreakPolicy) *domain.League {
	l := buildLeague(policy, 10, 4,
		map[int][]int{1: {1, 2, 3, 4}, 2: {5, 6, 7, 8}},
		roundRobinSchedule(8, 10))
	for week := 1; week <= 6; week++ {
		scores := make(map[int]float64, 8)
		for id := 1; id <= 8; id++ {
			scores[id] = 80 + float64((id*37+week*53)%60) + float64(id)/4
		}
		play(l, week, scores)
	}
	return l
}

// finishGame records one final result in a week whose other games are still
// open. It returns the opponent's id.
func finishGame(l *domain.League, week, teamID int, score, oppScore float64) int {
	team, _ := l.Team(teamID)
	oppID, _ := team.Opponent(week)
	play(l, week, map[int]float64{teamID: score, oppID: oppScore})
	return oppID
}
