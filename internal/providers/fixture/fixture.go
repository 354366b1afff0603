package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
)

// Provider returns a static slate of games and feed documents useful for
// local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchSchedule returns a deterministic slate of example games.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]domain.Game, error) {
	_ = ctx

	start := p.now().UTC().Truncate(time.Hour)
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err == nil {
			start = parsed.UTC()
		}
	}

	games := []domain.Game{
		{
			ID:        "900001",
			Provider:  "fixture",
			HomeTeam:  domain.Team{ID: "143", Name: "Philadelphia Phillies", Abbreviation: "PHI", Wins: 47, Losses: 41},
			AwayTeam:  domain.Team{ID: "121", Name: "New York Mets", Abbreviation: "NYM", Wins: 50, Losses: 38},
			StartTime: start.Add(2 * time.Hour).Format(time.RFC3339),
			RawStatus: "Scheduled",
			State:     domain.StateScheduled,
			Meta:      domain.GameMeta{Season: "2024", UpstreamGamePk: 900001, GameType: "R", Venue: "Citizens Bank Park"},
		},
		{
			ID:        "900002",
			Provider:  "fixture",
			HomeTeam:  domain.Team{ID: "119", Name: "Los Angeles Dodgers", Abbreviation: "LAD", Wins: 55, Losses: 33},
			AwayTeam:  domain.Team{ID: "137", Name: "San Francisco Giants", Abbreviation: "SF", Wins: 44, Losses: 44},
			StartTime: start.Format(time.RFC3339),
			RawStatus: "In Progress",
			State:     domain.StateInProgress,
			Score:     domain.Score{Home: 2, Away: 1},
			Meta:      domain.GameMeta{Season: "2024", UpstreamGamePk: 900002, GameType: "R", Venue: "Dodger Stadium"},
		},
	}

	return games, nil
}

// FetchFeed returns a deterministic live feed document for any game id.
func (p *Provider) FetchFeed(ctx context.Context, gameID string) (*feed.Document, error) {
	_ = ctx
	if gameID == "" {
		return nil, fmt.Errorf("fixture: game id required")
	}

	return &feed.Document{
		GamePk: 900002,
		GameData: feed.GameData{
			Status:   feed.Status{AbstractGameState: "Live", DetailedState: "In Progress"},
			Datetime: feed.Datetime{DateTime: p.now().UTC().Format(time.RFC3339)},
			Teams: feed.GameTeams{
				Away: feed.TeamRef{ID: 137, Name: "San Francisco Giants", Abbreviation: "SF"},
				Home: feed.TeamRef{ID: 119, Name: "Los Angeles Dodgers", Abbreviation: "LAD"},
			},
			ProbablePitchers: map[string]feed.PlayerRef{
				"away": {ID: 605400, FullName: "Logan Webb"},
				"home": {ID: 477132, FullName: "Clayton Kershaw"},
			},
		},
		LiveData: feed.LiveData{
			Linescore: feed.Linescore{
				CurrentInning: 4,
				Innings: []feed.Inning{
					{Num: 1, Away: feed.InningLine{Runs: 1, Hits: 2}, Home: feed.InningLine{Runs: 0, Hits: 1}},
					{Num: 2, Away: feed.InningLine{}, Home: feed.InningLine{Runs: 2, Hits: 3}},
					{Num: 3, Away: feed.InningLine{Hits: 1}, Home: feed.InningLine{}},
				},
				Teams: feed.LinescoreTeams{
					Away: feed.InningLine{Runs: 1, Hits: 3, LeftOnBase: 4},
					Home: feed.InningLine{Runs: 2, Hits: 4, LeftOnBase: 2},
				},
			},
			Plays: feed.Plays{
				AllPlays: []feed.Play{
					{
						Result:  feed.PlayResult{Event: "Single"},
						Matchup: feed.Matchup{Batter: feed.PlayerRef{ID: 1, FullName: "Lead Off"}, Pitcher: feed.PlayerRef{ID: 2, FullName: "Starting Arm"}, BatSide: feed.Side{Code: "R", Description: "Right"}},
						PlayEvents: []feed.PlayEvent{
							{
								Details:   feed.EventDetails{Description: "Called Strike", Type: &feed.PitchType{Code: "FF", Description: "Four-Seam Fastball"}},
								PitchData: &feed.PitchData{StartSpeed: 95.2, Breaks: feed.Breaks{BreakVerticalInduced: 16.4, BreakHorizontal: 8.1}},
							},
							{
								Details: feed.EventDetails{Description: "In play, no out", Type: &feed.PitchType{Code: "SL", Description: "Slider"}},
								PitchData: &feed.PitchData{
									StartSpeed: 86.9,
									Breaks:     feed.Breaks{BreakVerticalInduced: 2.3, BreakHorizontal: -4.7},
								},
								HitData: &feed.HitData{LaunchSpeed: 101.3, LaunchAngle: 12.0, TotalDistance: 212},
							},
						},
					},
				},
			},
		},
	}, nil
}
