package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/ffodds/season-projector/internal/calculation"
	"github.com/ffodds/season-projector/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: print_models <league-file> [draws]")
		return
	}
	league, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	draws := 5
	if len(os.Args) > 2 {
		if draws, err = strconv.Atoi(os.Args[2]); err != nil {
			panic(err)
		}
	}

	week := league.FirstUndeterminedWeek()
	sampler, err := calculation.NewScoreSampler(league, league.TeamIDs(), week, false)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Score models fitted on weeks before %d:\n", week)
	for _, id := range league.TeamIDs() {
		team, _ := league.Team(id)
		model, _ := sampler.Model(id)
		fmt.Printf("%-24s mean %7.2f  sd %6.2f  played %d\n", team.Name, model.Mean, model.StdDev, len(team.PlayedScores(week)))

		src := rand.NewPCG(1, uint64(id))
		fmt.Print("  draws:")
		for i := 0; i < draws; i++ {
			score, err := sampler.Sample(id, src)
			if err != nil {
				panic(err)
			}
			fmt.Printf(" %.2f", score)
		}
		fmt.Println()
	}
}
