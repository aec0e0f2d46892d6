package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ffodds/season-projector/internal/domain"
)

// InputParser handles parsing of league snapshot files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a league snapshot from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.League, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a league snapshot.
func (ip *InputParser) Parse(data []byte) (*domain.League, error) {
	var league domain.League
	if err := yaml.Unmarshal(data, &league); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrConfiguration, err)
	}

	if err := ip.ValidateLeague(&league); err != nil {
		return nil, fmt.Errorf("league validation failed: %w", err)
	}

	return &league, nil
}

// ValidateLeague validates the loaded league. Structural problems wrap
// domain.ErrConfiguration, inconsistent weekly results wrap domain.ErrData.
func (ip *InputParser) ValidateLeague(league *domain.League) error {
	if err := league.Validate(); err != nil {
		return err
	}

	for i := range league.Teams {
		if err := ip.validateTeam(league, &league.Teams[i]); err != nil {
			return fmt.Errorf("team %d validation failed: %w", league.Teams[i].ID, err)
		}
	}

	if league.CurrentWeek < 0 || league.CurrentWeek > league.RegularSeasonWeeks+1 {
		return fmt.Errorf("%w: current week %d is outside the season", domain.ErrConfiguration, league.CurrentWeek)
	}

	return nil
}

func (ip *InputParser) validateTeam(league *domain.League, team *domain.Team) error {
	if len(team.Schedule) > league.RegularSeasonWeeks {
		return fmt.Errorf("%w: schedule has %d weeks but the regular season has %d",
			domain.ErrConfiguration, len(team.Schedule), league.RegularSeasonWeeks)
	}
	if len(team.Scores) > league.RegularSeasonWeeks || len(team.Outcomes) > league.RegularSeasonWeeks {
		return fmt.Errorf("%w: more weekly results than regular season weeks", domain.ErrData)
	}

	for week := 1; week <= len(team.Outcomes); week++ {
		outcome := team.Outcome(week)
		switch outcome {
		case domain.OutcomeWin, domain.OutcomeLoss, domain.OutcomeTie, domain.OutcomeUndetermined:
		default:
			return fmt.Errorf("%w: week %d has unknown outcome %q", domain.ErrData, week, outcome)
		}
		if !outcome.Determined() {
			continue
		}
		oppID, ok := team.Opponent(week)
		if !ok {
			return fmt.Errorf("%w: week %d has result %s on a bye", domain.ErrData, week, outcome)
		}
		opp, _ := league.Team(oppID)
		if want := mirror(outcome); opp.Outcome(week) != want {
			return fmt.Errorf("%w: week %d result %s against team %d, which recorded %s",
				domain.ErrData, week, outcome, oppID, opp.Outcome(week))
		}
	}
	return nil
}

func mirror(o domain.Outcome) domain.Outcome {
	switch o {
	case domain.OutcomeWin:
		return domain.OutcomeLoss
	case domain.OutcomeLoss:
		return domain.OutcomeWin
	}
	return o
}

// ParseWhatIf parses a comma separated list of "winner>loser" team id pairs
// into pinned outcomes. An empty string yields no pins.
func ParseWhatIf(s string) ([]domain.PinnedOutcome, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var pins []domain.PinnedOutcome
	for _, part := range strings.Split(s, ",") {
		winnerStr, loserStr, ok := strings.Cut(strings.TrimSpace(part), ">")
		if !ok {
			return nil, fmt.Errorf("%w: what-if %q must look like winner>loser", domain.ErrInvalidArgument, part)
		}
		winner, err := strconv.Atoi(strings.TrimSpace(winnerStr))
		if err != nil {
			return nil, fmt.Errorf("%w: bad team id %q in %q", domain.ErrInvalidArgument, winnerStr, part)
		}
		loser, err := strconv.Atoi(strings.TrimSpace(loserStr))
		if err != nil {
			return nil, fmt.Errorf("%w: bad team id %q in %q", domain.ErrInvalidArgument, loserStr, part)
		}
		if winner == loser {
			return nil, fmt.Errorf("%w: team %d cannot play itself", domain.ErrInvalidArgument, winner)
		}

		pin := domain.PinnedOutcome{TeamA: winner, TeamB: loser, Result: domain.PinSideAWins}
		if loser < winner {
			pin = domain.PinnedOutcome{TeamA: loser, TeamB: winner, Result: domain.PinSideBWins}
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// CreateExampleLeague creates an eight team, two division league six weeks
// into a ten week season.
func (ip *InputParser) CreateExampleLeague() *domain.League {
	const (
		weeks  = 10
		played = 6
	)
	names := []struct{ name, owner string }{
		{"Gridiron Gurus", "alex"},
		{"Blitz Brigade", "sam"},
		{"End Zone Elite", "jordan"},
		{"Fourth and Long", "casey"},
		{"Hail Mary Heroes", "riley"},
		{"Pigskin Prophets", "morgan"},
		{"Red Zone Raiders", "taylor"},
		{"Two Point Conversion", "jamie"},
	}
	n := len(names)
	base := []float64{128, 121, 117, 109, 125, 113, 106, 98}
	swing := []float64{14, -9, 6, 11, -4, 8, -12, 3, -7, 10}

	league := &domain.League{
		Name:               "Example League",
		Divisions:          map[int][]int{1: {1, 2, 3, 4}, 2: {5, 6, 7, 8}},
		PlayoffTeamCount:   4,
		RegularSeasonWeeks: weeks,
		TiebreakPolicy:     domain.TiebreakHeadToHead,
		CurrentWeek:        played + 1,
	}
	schedule := roundRobin(n, weeks)
	for i, nm := range names {
		id := i + 1
		team := domain.Team{
			ID:         id,
			DivisionID: 1 + i/4,
			Name:       nm.name,
			Owner:      nm.owner,
			Schedule:   schedule[id],
			Scores:     make([]float64, weeks),
			Outcomes:   make([]domain.Outcome, weeks),
		}
		for w := 0; w < weeks; w++ {
			team.Outcomes[w] = domain.OutcomeUndetermined
			if w < played {
				team.Scores[w] = base[i] + swing[(w+3*i)%len(swing)] + float64(i)*0.35
			}
		}
		league.Teams = append(league.Teams, team)
	}

	for w := 1; w <= played; w++ {
		for i := range league.Teams {
			team := &league.Teams[i]
			oppID, _ := team.Opponent(w)
			opp, _ := league.Team(oppID)
			mine, theirs := team.Score(w), opp.Score(w)
			switch {
			case mine > theirs:
				team.Outcomes[w-1] = domain.OutcomeWin
				team.Wins++
			case mine < theirs:
				team.Outcomes[w-1] = domain.OutcomeLoss
				team.Losses++
			default:
				team.Outcomes[w-1] = domain.OutcomeTie
				team.Ties++
			}
			team.PointsFor += mine
			team.PointsAgainst += theirs
		}
	}

	return league
}

// roundRobin pairs teams 1..n (n even) with the circle method. Rounds repeat
// once every pairing has been used.
func roundRobin(n, weeks int) map[int][]int {
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
