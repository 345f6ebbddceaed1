package httpserver

import (
	"fmt"

	"github.com/lci-upiiz/adivina-planeta/internal/game"
)

// cropView adds the CSS offset a browser needs to show one glimpse.
type cropView struct {
	X                  int    `json:"x"`
	Y                  int    `json:"y"`
	BackgroundPosition string `json:"backgroundPosition"`
}

// sessionView is the JSON shape of GET /session and every command response.
// The answer key (target, correct, message) is only present after reveal.
type sessionView struct {
	SessionID      string     `json:"sessionId"`
	Round          int        `json:"round"`
	Phase          game.Phase `json:"phase"`
	Image          string     `json:"image"`
	BackgroundSize string     `json:"backgroundSize"`
	Crops          []cropView `json:"crops"`
	Selected       string     `json:"selected"`
	Revealed       bool       `json:"revealed"`
	CanSubmit      bool       `json:"canSubmit"`
	Score          game.Score `json:"score"`
	Target         string     `json:"target,omitempty"`
	Correct        *bool      `json:"correct,omitempty"`
	Message        string     `json:"message,omitempty"`
}

func renderState(st game.State) sessionView {
	v := sessionView{
		SessionID:      st.SessionID,
		Round:          st.Round,
		Phase:          st.Phase,
		Image:          st.Target.Image,
		BackgroundSize: fmt.Sprintf("%dpx %dpx", game.ImageSize, game.ImageSize),
		Crops:          make([]cropView, 0, len(st.Crops)),
		Selected:       st.Selected,
		Revealed:       st.Revealed,
		CanSubmit:      st.CanSubmit(),
		Score:          st.Score,
	}
	for _, p := range st.Crops {
		v.Crops = append(v.Crops, cropView{
			X:                  p.X,
			Y:                  p.Y,
			BackgroundPosition: fmt.Sprintf("-%dpx -%dpx", p.X, p.Y),
		})
	}
	if st.Revealed {
		correct := st.Correct()
		v.Target = st.Target.Name
		v.Correct = &correct
		v.Message = verdict(correct, st.Target.Name)
	}
	return v
}

func verdict(correct bool, target string) string {
	if correct {
		return "¡Correcto! 🌟"
	}
	return "Incorrecto 😔 Era " + target + "."
}
