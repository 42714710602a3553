package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# taskbench

## Tabs

| Key | Tab |
|-----|-----|
| 1 / 2 / 3 | Tasks / Add / Results |
| tab | next tab |

## Working set

- **j / k** move selection
- **d** remove selected task
- **r** reload from file

## Analysis

- **a** send the working set to the scoring service
- **s** cycle ranking strategy (smart, fastest, impact, deadline)

Scores of 50 and above rank *high*, 20 and above *medium*, below that *low*.

Press any key to close.
`

// viewHelp renders the help overlay, lazily through glamour so resize
// only pays the cost once per width.
func (w *Workbench) viewHelp() string {
	if w.helpView == "" {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(w.width-2, 78)), //nolint:mnd // readable help width
		)
		if err != nil {
			return helpMarkdown
		}
		out, err := r.Render(helpMarkdown)
		if err != nil {
			return helpMarkdown
		}
		w.helpView = out
	}
	return w.helpView
}
