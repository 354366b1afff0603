package domain

import "strings"

// State is the closed lifecycle classification of a game's upstream status.
type State string

const (
	StateScheduled  State = "SCHEDULED"
	StatePreGame    State = "PRE_GAME"
	StateWarmup     State = "WARMUP"
	StateInProgress State = "IN_PROGRESS"
	StateDelayed    State = "DELAYED"
	StateFinal      State = "FINAL"
	StateCompleted  State = "COMPLETED"
	StateCancelled  State = "CANCELLED"
	StatePostponed  State = "POSTPONED"
	// StateUnknown is the fallback for unrecognized status strings. It is
	// neither pregame-like, live-like, nor finished-like, so unknown games
	// never poll and never render a final-score layout.
	StateUnknown State = "UNKNOWN"
)

// Classify maps an upstream detailedState string to a State. It is total:
// any input, including the empty string, yields a defined State.
// Matching is case-sensitive against the statsapi vocabulary, e.g.
// "In Progress", "Rain Delay", "Delayed Start: Rain", "Warmup", "Pre-Game",
// "Final", "Game Over", "Completed Early", "Cancelled", "Postponed".
func Classify(rawStatus string) State {
	switch {
	case strings.Contains(rawStatus, "Postponed"):
		return StatePostponed
	case strings.Contains(rawStatus, "Cancelled") || strings.Contains(rawStatus, "Canceled"):
		return StateCancelled
	case strings.Contains(rawStatus, "Completed"):
		return StateCompleted
	case strings.HasPrefix(rawStatus, "Final") || strings.Contains(rawStatus, "Game Over"):
		return StateFinal
	case strings.Contains(rawStatus, "Delay"):
		return StateDelayed
	case strings.Contains(rawStatus, "In Progress"):
		return StateInProgress
	case strings.Contains(rawStatus, "Warmup"):
		return StateWarmup
	case strings.Contains(rawStatus, "Pre-Game") || strings.Contains(rawStatus, "Pre Game"):
		return StatePreGame
	case strings.Contains(rawStatus, "Scheduled"):
		return StateScheduled
	default:
		return StateUnknown
	}
}

// IsPregameLike reports whether the game has not started but is expected to.
func IsPregameLike(s State) bool {
	switch s {
	case StateScheduled, StatePreGame, StateWarmup:
		return true
	default:
		return false
	}
}

// IsLiveLike reports whether the game is underway (including delays).
func IsLiveLike(s State) bool {
	switch s {
	case StateInProgress, StateDelayed:
		return true
	default:
		return false
	}
}

// IsFinishedLike reports whether no further game action will occur.
func IsFinishedLike(s State) bool {
	switch s {
	case StateFinal, StateCompleted, StateCancelled, StatePostponed:
		return true
	default:
		return false
	}
}
