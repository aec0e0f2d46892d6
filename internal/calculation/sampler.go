package calculation

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ffodds/season-projector/internal/domain"
)

const (
	// recentWeeks is how many of the latest played weeks set the mean.
	recentWeeks = 6
	// volatilityFactor inflates the fitted spread; single-week fantasy
	// scores swing far more than a tight normal fit suggests.
	volatilityFactor = 2.0
)

// ScoreModel is the normal distribution one team's future scores are drawn from.
type ScoreModel struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// FitScoreModel fits a model to a team's played scores. The mean covers the
// most recent six weeks; the spread is the population std dev over all weeks
// times two.
func FitScoreModel(history []float64) (ScoreModel, error) {
	if len(history) == 0 {
		return ScoreModel{}, fmt.Errorf("%w: no played weeks to sample scores from", domain.ErrData)
	}
	recent := history
	if len(recent) > recentWeeks {
		recent = recent[len(recent)-recentWeeks:]
	}
	return ScoreModel{
		Mean:   stat.Mean(recent, nil),
		StdDev: stat.PopStdDev(history, nil) * volatilityFactor,
	}, nil
}

// Sample draws one score. Scores can come out negative.
func (m ScoreModel) Sample(src rand.Source) float64 {
	return distuv.Normal{Mu: m.Mean, Sigma: m.StdDev, Src: src}.Rand()
}

// SampleScore fits a model to history and draws one score from it.
func SampleScore(history []float64, src rand.Source) (float64, error) {
	m, err := FitScoreModel(history)
	if err != nil {
		return 0, err
	}
	return m.Sample(src), nil
}

// ScoreSampler holds the fitted models for every team that still has a game
// to simulate. It is read-only once built and safe to share between trials.
type ScoreSampler struct {
	models        map[int]ScoreModel
	clampNegative bool
}

// NewScoreSampler fits a model for each listed team from the scores of weeks
// before beforeWeek.
func NewScoreSampler(league *domain.League, teamIDs []int, beforeWeek int, clampNegative bool) (*ScoreSampler, error) {
	s := &ScoreSampler{models: make(map[int]ScoreModel, len(teamIDs)), clampNegative: clampNegative}
	for _, id := range teamIDs {
		team, ok := league.Team(id)
		if !ok {
			return nil, fmt.Errorf("%w: team %d is not in the league", domain.ErrInvalidArgument, id)
		}
		m, err := FitScoreModel(team.PlayedScores(beforeWeek))
		if err != nil {
			return nil, fmt.Errorf("team %d (%s): %w", team.ID, team.Name, err)
		}
		s.models[id] = m
	}
	return s, nil
}

// Model returns the fitted model for a team.
func (s *ScoreSampler) Model(teamID int) (ScoreModel, bool) {
	m, ok := s.models[teamID]
	return m, ok
}

// Sample draws a score for a team from its fitted model.
func (s *ScoreSampler) Sample(teamID int, src rand.Source) (float64, error) {
	m, ok := s.models[teamID]
	if !ok {
		return 0, fmt.Errorf("%w: no score model for team %d", domain.ErrData, teamID)
	}
	score := m.Sample(src)
	if s.clampNegative && score < 0 {
		score = 0
	}
	return score, nil
}
