package freecell

import (
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

// Render writes s like Format, painting red suits red when the terminal
// profile supports colour. termenv.Ascii yields exactly Format's output.
func Render(w io.Writer, s State, profile termenv.Profile) error {
	red := profile.Color("1")
	return render(w, s, func(card Card) string {
		text := card.String()
		if card.IsZero() || !card.Red() {
			return text
		}
		return profile.String(text).Foreground(red).String()
	})
}

// RenderSolution writes every move of a solution, one per line, with the
// moved card painted like Render does.
func RenderSolution(w io.Writer, actions []Action, profile termenv.Profile) error {
	red := profile.Color("1")
	for i, action := range actions {
		card := action.Card.String()
		if action.Card.Red() {
			card = profile.String(card).Foreground(red).String()
		}
		line := profile.String(strconv.Itoa(i+1) + ". ").Faint().String()
		if _, err := io.WriteString(w, line+card+": "+action.From.String()+" -> "+action.To.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
