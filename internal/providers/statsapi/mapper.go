package statsapi

import (
	"strconv"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
)

func mapGame(g scheduleGame) domain.Game {
	return domain.Game{
		ID:        strconv.Itoa(g.GamePk),
		Provider:  providerName,
		HomeTeam:  mapTeam(g.Teams.Home),
		AwayTeam:  mapTeam(g.Teams.Away),
		StartTime: g.GameDate,
		RawStatus: g.Status.DetailedState,
		State:     domain.Classify(g.Status.DetailedState),
		Score: domain.Score{
			Home: g.Teams.Home.Score,
			Away: g.Teams.Away.Score,
		},
		Meta: domain.GameMeta{
			Season:         g.Season,
			UpstreamGamePk: g.GamePk,
			GameType:       g.GameType,
			DoubleHeader:   g.DoubleHeader == "Y" || g.DoubleHeader == "S",
			Venue:          g.Venue.Name,
		},
	}
}

func mapTeam(side scheduleSide) domain.Team {
	return domain.Team{
		ID:           strconv.Itoa(side.Team.ID),
		Name:         side.Team.Name,
		Abbreviation: side.Team.Abbreviation,
		Wins:         side.LeagueRecord.Wins,
		Losses:       side.LeagueRecord.Losses,
	}
}
