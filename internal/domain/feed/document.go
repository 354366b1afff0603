// Package feed defines the typed subset of the statsapi live feed document
// that the cache and its consumers reason about. The cache treats a Document
// as one opaque unit per game; nothing here is cached field-by-field.
package feed

// Document is a single game's live feed payload.
type Document struct {
	GamePk   int      `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

// GameData carries game metadata.
type GameData struct {
	Status           Status               `json:"status"`
	Datetime         Datetime             `json:"datetime"`
	Teams            GameTeams            `json:"teams"`
	ProbablePitchers map[string]PlayerRef `json:"probablePitchers,omitempty"`
}

// Status mirrors the upstream status block; DetailedState feeds the
// lifecycle classifier.
type Status struct {
	AbstractGameState string `json:"abstractGameState,omitempty"`
	DetailedState     string `json:"detailedState"`
}

// Datetime carries the scheduled start time.
type Datetime struct {
	DateTime     string `json:"dateTime"`
	OfficialDate string `json:"officialDate,omitempty"`
}

// GameTeams names both clubs.
type GameTeams struct {
	Away TeamRef `json:"away"`
	Home TeamRef `json:"home"`
}

// TeamRef identifies a team inside the feed.
type TeamRef struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// PlayerRef identifies a player inside the feed.
type PlayerRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// LiveData holds the in-game data blocks.
type LiveData struct {
	Linescore Linescore `json:"linescore"`
	Boxscore  Boxscore  `json:"boxscore"`
	Decisions Decisions `json:"decisions"`
	Plays     Plays     `json:"plays"`
}

// Linescore carries inning-by-inning runs and team totals.
type Linescore struct {
	CurrentInning int            `json:"currentInning,omitempty"`
	Innings       []Inning       `json:"innings"`
	Teams         LinescoreTeams `json:"teams"`
}

// Inning is one inning's line for both sides.
type Inning struct {
	Num  int        `json:"num"`
	Away InningLine `json:"away"`
	Home InningLine `json:"home"`
}

// InningLine is one side's runs/hits/errors for an inning or game.
type InningLine struct {
	Runs       int `json:"runs"`
	Hits       int `json:"hits"`
	Errors     int `json:"errors"`
	LeftOnBase int `json:"leftOnBase,omitempty"`
}

// LinescoreTeams carries per-team game totals (used for left-on-base).
type LinescoreTeams struct {
	Away InningLine `json:"away"`
	Home InningLine `json:"home"`
}

// Boxscore carries team box-score stats and top performers.
type Boxscore struct {
	Teams         BoxscoreTeams  `json:"teams"`
	TopPerformers []TopPerformer `json:"topPerformers,omitempty"`
}

// BoxscoreTeams wraps both team boxes.
type BoxscoreTeams struct {
	Away TeamBox `json:"away"`
	Home TeamBox `json:"home"`
}

// TeamBox is one team's box score block.
type TeamBox struct {
	Team      TeamRef        `json:"team"`
	TeamStats map[string]any `json:"teamStats,omitempty"`
	Players   map[string]any `json:"players,omitempty"`
}

// TopPerformer highlights a player's game line.
type TopPerformer struct {
	Player map[string]any `json:"player"`
	Type   string         `json:"type,omitempty"`
}

// Decisions credits the winning/losing pitchers and save.
type Decisions struct {
	Winner *PlayerRef `json:"winner,omitempty"`
	Loser  *PlayerRef `json:"loser,omitempty"`
	Save   *PlayerRef `json:"save,omitempty"`
}

// Plays is the chronological play list.
type Plays struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one plate appearance with its pitch-by-pitch events.
type Play struct {
	Result     PlayResult  `json:"result"`
	Matchup    Matchup     `json:"matchup"`
	PlayEvents []PlayEvent `json:"playEvents"`
}

// PlayResult summarizes the play outcome.
type PlayResult struct {
	Event string `json:"event"`
}

// Matchup names the batter, pitcher, and batter handedness for a play.
type Matchup struct {
	Batter  PlayerRef `json:"batter"`
	Pitcher PlayerRef `json:"pitcher"`
	BatSide Side      `json:"batSide"`
}

// Side is a handedness code/description pair.
type Side struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PlayEvent is a single pitch or action, optionally carrying pitch-level
// and batted-ball measurements.
type PlayEvent struct {
	Details   EventDetails `json:"details"`
	PitchData *PitchData   `json:"pitchData,omitempty"`
	HitData   *HitData     `json:"hitData,omitempty"`
}

// EventDetails describes the event; Type is present only for pitches.
type EventDetails struct {
	Description string     `json:"description"`
	Type        *PitchType `json:"type,omitempty"`
}

// PitchType is the pitch classification.
type PitchType struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// PitchData carries physical pitch measurements.
type PitchData struct {
	StartSpeed float64 `json:"startSpeed"`
	Breaks     Breaks  `json:"breaks"`
}

// Breaks carries pitch movement measurements.
type Breaks struct {
	BreakVerticalInduced float64 `json:"breakVerticalInduced"`
	BreakHorizontal      float64 `json:"breakHorizontal"`
}

// HitData carries batted-ball measurements.
type HitData struct {
	LaunchSpeed   float64 `json:"launchSpeed"`
	LaunchAngle   float64 `json:"launchAngle"`
	TotalDistance float64 `json:"totalDistance"`
}

// DetailedState returns the raw status string, empty when d is nil.
func (d *Document) DetailedState() string {
	if d == nil {
		return ""
	}
	return d.GameData.Status.DetailedState
}
