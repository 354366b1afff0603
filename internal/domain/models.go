package domain

// Team represents the normalized team shape.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Wins         int    `json:"wins,omitempty"`
	Losses       int    `json:"losses,omitempty"`
}

// Score captures home and away runs.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Season         string `json:"season,omitempty"`
	UpstreamGamePk int    `json:"upstreamGamePk"`
	GameType       string `json:"gameType,omitempty"`
	DoubleHeader   bool   `json:"doubleHeader,omitempty"`
	Venue          string `json:"venue,omitempty"`
}

// Game is the canonical schedule entry exposed by the service.
// RawStatus carries the upstream detailedState verbatim; State is its
// classified lifecycle form.
type Game struct {
	ID        string   `json:"id"`
	Provider  string   `json:"provider"`
	HomeTeam  Team     `json:"homeTeam"`
	AwayTeam  Team     `json:"awayTeam"`
	StartTime string   `json:"startTime"`
	RawStatus string   `json:"rawStatus"`
	State     State    `json:"state"`
	Score     Score    `json:"score"`
	Meta      GameMeta `json:"meta"`
}

// ScheduleResponse is the payload returned by /schedule?date=YYYY-MM-DD.
type ScheduleResponse struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewScheduleResponse builds a ScheduleResponse payload.
func NewScheduleResponse(date string, games []Game) ScheduleResponse {
	return ScheduleResponse{
		Date:  date,
		Games: games,
	}
}
