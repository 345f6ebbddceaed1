package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lci-upiiz/adivina-planeta/internal/catalog"
)

var planetNames = []string{"Mercurio", "Venus", "Tierra", "Marte", "Júpiter", "Saturno", "Urano", "Neptuno"}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	planets := make([]catalog.Planet, len(planetNames))
	for i, n := range planetNames {
		planets[i] = catalog.Planet{Name: n, Image: "/img/" + n + ".png"}
	}
	c, err := catalog.New(planets)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

// scriptedSource returns picks in order for Intn and either leaves the
// sequence alone or reverses it on Shuffle.
type scriptedSource struct {
	picks   []int
	reverse bool
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	v := s.picks[0]
	s.picks = s.picks[1:]
	return v % n
}

func (s *scriptedSource) Shuffle(n int, swap func(i, j int)) {
	if !s.reverse {
		return
	}
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func newTestSession(t *testing.T, src Source) *Session {
	t.Helper()
	return NewSession(NewGenerator(testCatalog(t), src))
}

func TestGridPositionsRowMajor(t *testing.T) {
	got := GridPositions()
	want := [9]CropPosition{
		{0, 0}, {100, 0}, {200, 0},
		{0, 100}, {100, 100}, {200, 100},
		{0, 200}, {100, 200}, {200, 200},
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPickCropsTakesFirstThreeOfPermutation(t *testing.T) {
	cases := []struct {
		name    string
		reverse bool
		want    [3]CropPosition
	}{
		{"identity", false, [3]CropPosition{{0, 0}, {100, 0}, {200, 0}}},
		{"reversed", true, [3]CropPosition{{200, 200}, {100, 200}, {0, 200}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(testCatalog(t), &scriptedSource{reverse: tc.reverse})
			if got := g.PickCrops(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPickCropsRealSource(t *testing.T) {
	g := NewGenerator(testCatalog(t), nil)
	for run := 0; run < 1000; run++ {
		crops := g.PickCrops()
		seen := map[CropPosition]bool{}
		for _, p := range crops {
			if (p.X != 0 && p.X != 100 && p.X != 200) || (p.Y != 0 && p.Y != 100 && p.Y != 200) {
				t.Fatalf("run %d: position %v outside the grid", run, p)
			}
			if !IsGridPosition(p) {
				t.Fatalf("run %d: IsGridPosition(%v) = false", run, p)
			}
			if seen[p] {
				t.Fatalf("run %d: duplicate position %v in %v", run, p, crops)
			}
			seen[p] = true
		}
	}
}

func TestPickTargetCoversCatalog(t *testing.T) {
	g := NewGenerator(testCatalog(t), rand.New(rand.NewSource(42)))
	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		seen[g.PickTarget().Name] = true
	}
	if len(seen) != len(planetNames) {
		t.Fatalf("expected all %d planets to be picked, got %v", len(planetNames), seen)
	}
}

func TestNewSessionStartsAwaitingSelection(t *testing.T) {
	s := newTestSession(t, &scriptedSource{picks: []int{2}})
	st := s.State()
	if st.SessionID == "" {
		t.Fatal("session ID should not be empty")
	}
	if st.Round != 1 {
		t.Fatalf("expected round 1, got %d", st.Round)
	}
	if st.Target.Name != "Tierra" {
		t.Fatalf("expected target Tierra, got %s", st.Target.Name)
	}
	if st.Phase != PhaseAwaitingSelection || st.Selected != "" || st.Revealed {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if st.Score != (Score{}) {
		t.Fatalf("expected zero score, got %+v", st.Score)
	}
	if st.CanSubmit() {
		t.Fatal("guess should not be submittable without a selection")
	}
}

func TestSelectMarteAndSubmit(t *testing.T) {
	cases := []struct {
		name        string
		pick        int
		wantCorrect int
	}{
		{"target is Marte", 3, 1},
		{"target is Venus", 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, &scriptedSource{picks: []int{tc.pick}})
			st, err := s.SelectAnswer("Marte")
			if err != nil {
				t.Fatalf("SelectAnswer() error = %v", err)
			}
			if st.Phase != PhaseReady || !st.CanSubmit() {
				t.Fatalf("expected ready phase, got %+v", st)
			}
			out, err := s.SubmitGuess()
			if err != nil {
				t.Fatalf("SubmitGuess() error = %v", err)
			}
			st = s.State()
			if st.Score.Correct != tc.wantCorrect || st.Score.Total != 1 || !st.Revealed {
				t.Fatalf("unexpected state after guess: %+v", st)
			}
			if st.Phase != PhaseRevealed {
				t.Fatalf("expected revealed phase, got %s", st.Phase)
			}
			if out.Correct != (tc.wantCorrect == 1) || out.Guess != "Marte" || out.Round != 1 {
				t.Fatalf("unexpected outcome: %+v", out)
			}
			if st.Correct() != out.Correct {
				t.Fatal("State.Correct() disagrees with outcome")
			}
		})
	}
}

func TestSubmitWithoutSelection(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.SubmitGuess()
	if !errors.Is(err, ErrNoSelection) || !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected ErrNoSelection wrapping ErrInvalidOperation, got %v", err)
	}
	st := s.State()
	if st.Score.Total != 0 || st.Revealed {
		t.Fatalf("state changed after rejected submit: %+v", st)
	}
}

func TestSelectUnknownPlanet(t *testing.T) {
	s := newTestSession(t, nil)
	for _, name := range []string{"Pluton", "marte", "Marte ", ""} {
		if _, err := s.SelectAnswer(name); !errors.Is(err, ErrUnknownPlanet) {
			t.Fatalf("SelectAnswer(%q): expected ErrUnknownPlanet, got %v", name, err)
		}
	}
	if st := s.State(); st.Selected != "" || st.Phase != PhaseAwaitingSelection {
		t.Fatalf("selection should remain unset, got %+v", st)
	}

	// A rejected pick does not clear a valid earlier one.
	if _, err := s.SelectAnswer("Venus"); err != nil {
		t.Fatalf("SelectAnswer(Venus) error = %v", err)
	}
	if _, err := s.SelectAnswer("Pluton"); !errors.Is(err, ErrUnknownPlanet) {
		t.Fatalf("expected ErrUnknownPlanet, got %v", err)
	}
	if st := s.State(); st.Selected != "Venus" {
		t.Fatalf("expected Venus to stay selected, got %q", st.Selected)
	}
}

func TestReselectBeforeSubmit(t *testing.T) {
	s := newTestSession(t, &scriptedSource{picks: []int{0}})
	if _, err := s.SelectAnswer("Venus"); err != nil {
		t.Fatalf("SelectAnswer() error = %v", err)
	}
	st, err := s.SelectAnswer("Mercurio")
	if err != nil {
		t.Fatalf("SelectAnswer() error = %v", err)
	}
	if st.Selected != "Mercurio" || st.Phase != PhaseReady {
		t.Fatalf("unexpected state: %+v", st)
	}
	out, err := s.SubmitGuess()
	if err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	if !out.Correct {
		t.Fatal("expected the last selection to be scored")
	}
}

func TestRevealedRoundIsLocked(t *testing.T) {
	s := newTestSession(t, &scriptedSource{picks: []int{3}})
	if _, err := s.SelectAnswer("Marte"); err != nil {
		t.Fatalf("SelectAnswer() error = %v", err)
	}
	if _, err := s.SubmitGuess(); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}
	before := s.State()

	if _, err := s.SubmitGuess(); !errors.Is(err, ErrRoundRevealed) {
		t.Fatalf("second submit: expected ErrRoundRevealed, got %v", err)
	}
	if _, err := s.SelectAnswer("Venus"); !errors.Is(err, ErrRoundRevealed) {
		t.Fatalf("select after reveal: expected ErrRoundRevealed, got %v", err)
	}
	if after := s.State(); after != before {
		t.Fatalf("revealed round changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestNewRoundResets(t *testing.T) {
	src := &scriptedSource{picks: []int{3, 5}, reverse: true}
	s := newTestSession(t, src)
	if _, err := s.SelectAnswer("Marte"); err != nil {
		t.Fatalf("SelectAnswer() error = %v", err)
	}
	if _, err := s.SubmitGuess(); err != nil {
		t.Fatalf("SubmitGuess() error = %v", err)
	}

	st := s.NewRound()
	if st.Selected != "" || st.Revealed || st.Phase != PhaseAwaitingSelection {
		t.Fatalf("round not reset: %+v", st)
	}
	if st.Round != 2 {
		t.Fatalf("expected round 2, got %d", st.Round)
	}
	if st.Target.Name != "Saturno" {
		t.Fatalf("expected target Saturno, got %s", st.Target.Name)
	}
	if st.Score != (Score{Correct: 1, Total: 1}) {
		t.Fatalf("score should survive a new round, got %+v", st.Score)
	}

	// NewRound is also legal before any guess.
	st = s.NewRound()
	if st.Round != 3 || st.Phase != PhaseAwaitingSelection {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestInvariantsUnderRandomCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := newTestSession(t, rand.New(rand.NewSource(11)))
	names := append([]string{"Pluton"}, planetNames...)

	for step := 0; step < 5000; step++ {
		before := s.State()
		switch rng.Intn(4) {
		case 0:
			_, _ = s.SelectAnswer(names[rng.Intn(len(names))])
		case 1, 2:
			_, _ = s.SubmitGuess()
		case 3:
			s.NewRound()
		}
		st := s.State()

		if st.Score.Correct > st.Score.Total {
			t.Fatalf("step %d: correct %d > total %d", step, st.Score.Correct, st.Score.Total)
		}
		if st.Score.Total-before.Score.Total > 1 {
			t.Fatalf("step %d: total jumped by more than one", step)
		}
		if before.Revealed && st.Round == before.Round && st.Selected != before.Selected {
			t.Fatalf("step %d: selection changed after reveal", step)
		}
		seen := map[CropPosition]bool{}
		for _, p := range st.Crops {
			if !IsGridPosition(p) || seen[p] {
				t.Fatalf("step %d: bad crops %v", step, st.Crops)
			}
			seen[p] = true
		}
		if st.Selected != "" && !contains(planetNames, st.Selected) {
			t.Fatalf("step %d: selection %q not in catalog", step, st.Selected)
		}
	}
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
