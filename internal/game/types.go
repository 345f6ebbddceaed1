// internal/game/types.go
//
// Core type definitions for the planet guessing engine.
// Defines:
//   - Phase: where a round is in its select → submit → reveal lifecycle.
//   - CropPosition: a viewport offset into the planet image.
//   - Round / Score / State: the observable session state.
//   - Outcome: the record of one accepted guess.

package game

import (
	"errors"
	"fmt"

	"github.com/lci-upiiz/adivina-planeta/internal/catalog"
)

// Grid geometry. Images are ImageSize x ImageSize and are viewed through
// GridSize x GridSize cells of CellSize pixels.
const (
	GridSize      = 3
	CellSize      = 100
	ImageSize     = GridSize * CellSize
	CropsPerRound = 3
)

// Phase represents the lifecycle position of the current round.
//   - "awaiting_selection": nothing chosen yet.
//   - "ready":              an answer is chosen, not submitted.
//   - "revealed":           the guess was submitted; terminal until NewRound.
type Phase string

const (
	PhaseAwaitingSelection Phase = "awaiting_selection"
	PhaseReady             Phase = "ready"
	PhaseRevealed          Phase = "revealed"
)

var (
	// ErrInvalidOperation is the parent of every command rejected because of
	// the round's phase. Use errors.Is against it.
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNoSelection      = fmt.Errorf("%w: no answer selected", ErrInvalidOperation)
	ErrRoundRevealed    = fmt.Errorf("%w: round already revealed", ErrInvalidOperation)

	ErrUnknownPlanet = errors.New("unknown planet")
)

// CropPosition is the top-left pixel offset of one visible glimpse.
type CropPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Round is one target plus its three glimpses. Replaced wholesale by NewRound.
type Round struct {
	Number int                         // 1-based, per session
	Target catalog.Planet              // the answer key
	Crops  [CropsPerRound]CropPosition // permuted order, consumed positionally
}

// Score holds the session's running tallies. Correct <= Total always.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// State is a snapshot of a session, safe to read after the lock is released.
type State struct {
	SessionID string
	Round     int
	Target    catalog.Planet
	Crops     [CropsPerRound]CropPosition
	Selected  string // "" when nothing is selected
	Revealed  bool
	Phase     Phase
	Score     Score
}

// Correct reports whether the round was revealed with the right answer.
func (s State) Correct() bool {
	return s.Revealed && s.Selected == s.Target.Name
}

// CanSubmit mirrors the guess button: enabled with a selection, before reveal.
func (s State) CanSubmit() bool {
	return s.Selected != "" && !s.Revealed
}

// Outcome describes one accepted guess.
type Outcome struct {
	SessionID string
	Round     int
	Target    string
	Guess     string
	Correct   bool
	Score     Score // tallies after this guess
	State     State // snapshot taken with the guess applied
}
