// Package games projects live feed documents into the focused payloads
// the HTTP layer serves: linescores, box scores, decisions, pitch and
// batted-ball data. Every projection reads through the feed cache so a
// burst of requests for one game costs a single upstream fetch.
package games

import (
	"context"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
	"github.com/preston-bernstein/mlb-gameday-service/internal/domain/feed"
	"github.com/preston-bernstein/mlb-gameday-service/internal/feedcache"
)

// FeedSource is the cache seam the service reads feeds through.
type FeedSource interface {
	Get(ctx context.Context, key string, opts ...feedcache.Option) (*feed.Document, error)
}

// Service derives projections from cached feed documents.
type Service struct {
	cache FeedSource
}

// NewService constructs a Service over the given feed source.
func NewService(cache FeedSource) *Service {
	return &Service{cache: cache}
}

// Feed returns the full feed document for a game.
func (s *Service) Feed(ctx context.Context, gameID string, opts ...feedcache.Option) (*feed.Document, error) {
	return s.cache.Get(ctx, gameID, opts...)
}

// LinescoreProjection is the inning-by-inning line plus R/H/E totals.
type LinescoreProjection struct {
	CurrentInning int                 `json:"currentInning,omitempty"`
	Innings       []feed.Inning       `json:"innings"`
	Totals        feed.LinescoreTeams `json:"totals"`
}

// Linescore returns the game's linescore with team totals.
func (s *Service) Linescore(ctx context.Context, gameID string, opts ...feedcache.Option) (LinescoreProjection, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return LinescoreProjection{}, err
	}
	ls := doc.LiveData.Linescore
	return LinescoreProjection{
		CurrentInning: ls.CurrentInning,
		Innings:       ls.Innings,
		Totals:        ls.Teams,
	}, nil
}

// LeftOnBaseProjection carries runners stranded per side.
type LeftOnBaseProjection struct {
	Away int `json:"away"`
	Home int `json:"home"`
}

// LeftOnBase returns runners left on base for both sides.
func (s *Service) LeftOnBase(ctx context.Context, gameID string, opts ...feedcache.Option) (LeftOnBaseProjection, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return LeftOnBaseProjection{}, err
	}
	teams := doc.LiveData.Linescore.Teams
	return LeftOnBaseProjection{
		Away: teams.Away.LeftOnBase,
		Home: teams.Home.LeftOnBase,
	}, nil
}

// BoxScore returns both teams' box score blocks.
func (s *Service) BoxScore(ctx context.Context, gameID string, opts ...feedcache.Option) (feed.Boxscore, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return feed.Boxscore{}, err
	}
	return doc.LiveData.Boxscore, nil
}

// Decisions returns the winning/losing pitchers and save, when credited.
func (s *Service) Decisions(ctx context.Context, gameID string, opts ...feedcache.Option) (feed.Decisions, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return feed.Decisions{}, err
	}
	return doc.LiveData.Decisions, nil
}

// TopPerformers returns the feed's highlighted player lines.
func (s *Service) TopPerformers(ctx context.Context, gameID string, opts ...feedcache.Option) ([]feed.TopPerformer, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return nil, err
	}
	return doc.LiveData.Boxscore.TopPerformers, nil
}

// PreviewProjection is the pregame view: start time, clubs, probable
// pitchers, and the classified state.
type PreviewProjection struct {
	StartTime        string                    `json:"startTime"`
	OfficialDate     string                    `json:"officialDate,omitempty"`
	Away             feed.TeamRef              `json:"away"`
	Home             feed.TeamRef              `json:"home"`
	ProbablePitchers map[string]feed.PlayerRef `json:"probablePitchers,omitempty"`
	State            domain.State              `json:"state"`
}

// Preview returns the pregame projection for a game.
func (s *Service) Preview(ctx context.Context, gameID string, opts ...feedcache.Option) (PreviewProjection, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return PreviewProjection{}, err
	}
	gd := doc.GameData
	return PreviewProjection{
		StartTime:        gd.Datetime.DateTime,
		OfficialDate:     gd.Datetime.OfficialDate,
		Away:             gd.Teams.Away,
		Home:             gd.Teams.Home,
		ProbablePitchers: gd.ProbablePitchers,
		State:            domain.Classify(gd.Status.DetailedState),
	}, nil
}

// HitEvent is a single batted ball with its measurements.
type HitEvent struct {
	Batter        string  `json:"batter"`
	Result        string  `json:"result"`
	LaunchSpeed   float64 `json:"launchSpeed"`
	LaunchAngle   float64 `json:"launchAngle"`
	TotalDistance float64 `json:"totalDistance"`
}

// HitData returns every batted-ball event in play order.
func (s *Service) HitData(ctx context.Context, gameID string, opts ...feedcache.Option) ([]HitEvent, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return nil, err
	}

	var events []HitEvent
	for _, play := range doc.LiveData.Plays.AllPlays {
		for _, ev := range play.PlayEvents {
			if ev.HitData == nil {
				continue
			}
			events = append(events, HitEvent{
				Batter:        play.Matchup.Batter.FullName,
				Result:        play.Result.Event,
				LaunchSpeed:   ev.HitData.LaunchSpeed,
				LaunchAngle:   ev.HitData.LaunchAngle,
				TotalDistance: ev.HitData.TotalDistance,
			})
		}
	}
	return events, nil
}

// PitchEvent is a single pitch with its classification and movement.
type PitchEvent struct {
	Pitcher              string  `json:"pitcher"`
	BatterSide           string  `json:"batterSide,omitempty"`
	Type                 string  `json:"type"`
	Velocity             float64 `json:"velocity"`
	InducedVerticalBreak float64 `json:"inducedVerticalBreak"`
	HorizontalBreak      float64 `json:"horizontalBreak"`
	IsWhiff              bool    `json:"isWhiff"`
	IsCalledStrike       bool    `json:"isCalledStrike"`
}

// PitchData returns every classified pitch in play order.
func (s *Service) PitchData(ctx context.Context, gameID string, opts ...feedcache.Option) ([]PitchEvent, error) {
	doc, err := s.cache.Get(ctx, gameID, opts...)
	if err != nil {
		return nil, err
	}

	var events []PitchEvent
	for _, play := range doc.LiveData.Plays.AllPlays {
		for _, ev := range play.PlayEvents {
			if ev.Details.Type == nil || ev.PitchData == nil {
				continue
			}
			events = append(events, PitchEvent{
				Pitcher:              play.Matchup.Pitcher.FullName,
				BatterSide:           play.Matchup.BatSide.Code,
				Type:                 ev.Details.Type.Description,
				Velocity:             ev.PitchData.StartSpeed,
				InducedVerticalBreak: ev.PitchData.Breaks.BreakVerticalInduced,
				HorizontalBreak:      ev.PitchData.Breaks.BreakHorizontal,
				IsWhiff:              isWhiff(ev.Details.Description),
				IsCalledStrike:       isCalledStrike(ev.Details.Description),
			})
		}
	}
	return events, nil
}

func isWhiff(description string) bool {
	return description == "Swinging Strike" || description == "Swinging Strike (Blocked)"
}

func isCalledStrike(description string) bool {
	return description == "Called Strike"
}
