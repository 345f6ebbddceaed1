// internal/game/session.go
//
// Game session: one player's round state plus running score.
// Responsibilities:
//   - Start a session with its first round already generated.
//   - Validate and apply commands: SelectAnswer, SubmitGuess, NewRound.
//   - Track state transitions: awaiting_selection → ready → revealed.
//
// Notes:
//   - Rejected commands leave the session untouched and return an error
//     wrapping ErrInvalidOperation or ErrUnknownPlanet.
//   - Commands are serialized by a per-session mutex; sessions never share state.

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns the live round and the score for one player.
type Session struct {
	mu sync.Mutex

	id       string
	gen      *Generator
	round    Round
	selected string
	revealed bool
	score    Score
	touched  time.Time
}

// NewSession constructs a session and generates its first round.
func NewSession(gen *Generator) *Session {
	s := &Session{id: uuid.NewString(), gen: gen}
	s.newRoundLocked()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// LastActive returns the time of the most recent command.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SelectAnswer records the player's pick for the current round.
//
// Validation rules:
//   - The round must not be revealed (ErrRoundRevealed).
//   - name must be an exact catalog name (ErrUnknownPlanet).
//
// Re-selecting before submission simply replaces the pick.
func (s *Session) SelectAnswer(name string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revealed {
		return s.stateLocked(), ErrRoundRevealed
	}
	if !s.gen.Catalog().Contains(name) {
		return s.stateLocked(), ErrUnknownPlanet
	}
	s.selected = name
	s.touched = time.Now()
	return s.stateLocked(), nil
}

// SubmitGuess locks in the selection and scores it.
//
// Effects, all or nothing:
//   - Total is incremented.
//   - Correct is incremented when the selection equals the target name exactly.
//   - The round becomes revealed.
//
// Without a selection, or once revealed, nothing changes and the error wraps
// ErrInvalidOperation, so a repeated submit can never double count.
func (s *Session) SubmitGuess() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revealed {
		return Outcome{}, ErrRoundRevealed
	}
	if s.selected == "" {
		return Outcome{}, ErrNoSelection
	}

	correct := s.selected == s.round.Target.Name
	s.score.Total++
	if correct {
		s.score.Correct++
	}
	s.revealed = true
	s.touched = time.Now()

	return Outcome{
		SessionID: s.id,
		Round:     s.round.Number,
		Target:    s.round.Target.Name,
		Guess:     s.selected,
		Correct:   correct,
		Score:     s.score,
		State:     s.stateLocked(),
	}, nil
}

// NewRound replaces the round with a freshly generated one. Legal in any
// phase; the score is kept.
func (s *Session) NewRound() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newRoundLocked()
	return s.stateLocked()
}

func (s *Session) newRoundLocked() {
	s.round = Round{
		Number: s.round.Number + 1,
		Target: s.gen.PickTarget(),
		Crops:  s.gen.PickCrops(),
	}
	s.selected = ""
	s.revealed = false
	s.touched = time.Now()
}

func (s *Session) stateLocked() State {
	return State{
		SessionID: s.id,
		Round:     s.round.Number,
		Target:    s.round.Target,
		Crops:     s.round.Crops,
		Selected:  s.selected,
		Revealed:  s.revealed,
		Phase:     s.phaseLocked(),
		Score:     s.score,
	}
}

// phaseLocked derives the phase from the two flags it summarizes.
func (s *Session) phaseLocked() Phase {
	switch {
	case s.revealed:
		return PhaseRevealed
	case s.selected != "":
		return PhaseReady
	default:
		return PhaseAwaitingSelection
	}
}
