package main

import (
	"fmt"
	"os"
	"strconv"

	calc "github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_tiebreak <league-file> [through-week]")
		return
	}
	p := config.NewInputParser()
	league, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	week := league.FirstUndeterminedWeek() - 1
	if len(os.Args) > 2 {
		if week, err = strconv.Atoi(os.Args[2]); err != nil {
			panic(err)
		}
	}

	resolver, err := calc.NewResolver(league)
	if err != nil {
		panic(err)
	}
	snap := calc.LedgerFromLeague(league, week).Snapshot()
	order := resolver.Order(snap)

	// Teams sharing a win pct are the groups the tiebreakers actually see.
	groups := make(map[float64][]int)
	for _, id := range order {
		row, _ := snap.Row(id)
		groups[row.WinPct()] = append(groups[row.WinPct()], id)
	}

	fmt.Printf("Policy: %s  Criteria: %v  Through week: %d\n", league.TiebreakPolicy, resolver.Criteria(), week)
	fmt.Println("Rank,Team,Div,W,L,T,Pct,PF,PA,TiedWith,H2HInGroup,DivPct")
	for i, id := range order {
		row, _ := snap.Row(id)
		team, _ := league.Team(id)
		group := groups[row.WinPct()]
		fmt.Printf("%d,%d,%d,%d,%d,%d,%.3f,%.2f,%.2f,%d,%d,%.3f\n",
			i+1, id, team.DivisionID, row.Wins, row.Losses, row.Ties, row.WinPct(),
			row.PointsFor, row.PointsAgainst, len(group)-1,
			snap.HeadToHeadWins(id, group), snap.DivisionRecord(id, league.Divisions[team.DivisionID]))
	}

	fmt.Println()
	winners := resolver.DivisionWinners(snap)
	for _, divID := range league.DivisionIDs() {
		fmt.Printf("Division %d: winner %d, order %v\n", divID, winners[divID], resolver.SortGroup(snap, league.Divisions[divID]))
	}
}
