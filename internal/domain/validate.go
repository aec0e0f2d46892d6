package domain

import "fmt"

// Validate checks the structural consistency the projection engine relies on.
// Every failure wraps ErrConfiguration.
func (l *League) Validate() error {
	if len(l.Teams) == 0 {
		return fmt.Errorf("%w: league has no teams", ErrConfiguration)
	}
	if !l.TiebreakPolicy.Valid() {
		return fmt.Errorf("%w: unknown tiebreak policy %q", ErrConfiguration, l.TiebreakPolicy)
	}
	if l.RegularSeasonWeeks < 1 {
		return fmt.Errorf("%w: regular season must have at least one week", ErrConfiguration)
	}
	if l.PlayoffTeamCount < 1 || l.PlayoffTeamCount > len(l.Teams) {
		return fmt.Errorf("%w: playoff team count %d must be between 1 and %d", ErrConfiguration, l.PlayoffTeamCount, len(l.Teams))
	}

	seen := make(map[int]bool, len(l.Teams))
	for _, t := range l.Teams {
		if t.ID <= 0 {
			return fmt.Errorf("%w: team id %d must be positive", ErrConfiguration, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate team id %d", ErrConfiguration, t.ID)
		}
		seen[t.ID] = true
	}

	if err := l.validateDivisions(); err != nil {
		return err
	}
	return l.validateSchedule()
}

func (l *League) validateDivisions() error {
	if len(l.Divisions) == 0 {
		return nil
	}
	placed := make(map[int]int, len(l.Teams))
	for divID, members := range l.Divisions {
		for _, id := range members {
			team, ok := l.Team(id)
			if !ok {
				return fmt.Errorf("%w: division %d lists unknown team %d", ErrConfiguration, divID, id)
			}
			if prev, dup := placed[id]; dup {
				return fmt.Errorf("%w: team %d is in divisions %d and %d", ErrConfiguration, id, prev, divID)
			}
			if team.DivisionID != divID {
				return fmt.Errorf("%w: team %d has division %d but is listed under %d", ErrConfiguration, id, team.DivisionID, divID)
			}
			placed[id] = divID
		}
	}
	for _, t := range l.Teams {
		if _, ok := placed[t.ID]; !ok {
			return fmt.Errorf("%w: team %d is not in any division", ErrConfiguration, t.ID)
		}
	}
	return nil
}

func (l *League) validateSchedule() error {
	for i := range l.Teams {
		team := &l.Teams[i]
		for week := 1; week <= l.RegularSeasonWeeks; week++ {
			oppID, ok := team.Opponent(week)
			if !ok {
				continue
			}
			opp, found := l.Team(oppID)
			if !found {
				return fmt.Errorf("%w: team %d plays unknown team %d in week %d", ErrConfiguration, team.ID, oppID, week)
			}
			if back, ok := opp.Opponent(week); !ok || back != team.ID {
				return fmt.Errorf("%w: week %d schedule is not symmetric for teams %d and %d", ErrConfiguration, week, team.ID, oppID)
			}
		}
	}
	return nil
}

// DivisionMembers groups team ids by division id. Teams are grouped by their
// own DivisionID, so a league without a division map forms one group per id.
func (l *League) DivisionMembers() map[int][]int {
	out := make(map[int][]int)
	for _, id := range l.TeamIDs() {
		t, _ := l.Team(id)
		out[t.DivisionID] = append(out[t.DivisionID], id)
	}
	return out
}
