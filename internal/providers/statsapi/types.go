package statsapi

const providerName = "statsapi"

type scheduleResponse struct {
	TotalGames int            `json:"totalGames"`
	Dates      []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk       int            `json:"gamePk"`
	GameType     string         `json:"gameType"`
	Season       string         `json:"season"`
	GameDate     string         `json:"gameDate"`
	Status       statusResponse `json:"status"`
	Teams        scheduleTeams  `json:"teams"`
	Venue        venueResponse  `json:"venue"`
	DoubleHeader string         `json:"doubleHeader"`
}

type statusResponse struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type scheduleTeams struct {
	Away scheduleSide `json:"away"`
	Home scheduleSide `json:"home"`
}

type scheduleSide struct {
	LeagueRecord leagueRecord `json:"leagueRecord"`
	Score        int          `json:"score"`
	Team         teamResponse `json:"team"`
}

type leagueRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type venueResponse struct {
	Name string `json:"name"`
}
