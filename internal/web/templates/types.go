package templates

import (
	"github.com/KaramelBytes/surveylens/internal/analysis"
	"github.com/KaramelBytes/surveylens/internal/locale"
)

// Page is everything the dashboard renders for one request.
type Page struct {
	Lang  locale.Lang
	Theme string
	// Result is nil until a dataset has been analyzed.
	Result *analysis.Result
	// Scatter is the inline SVG of the X/Y scatter plot.
	Scatter []byte
	Error   string
}

func (p Page) pack() locale.Pack { return p.Lang.Pack() }

func (p Page) dark() bool { return p.Theme == "dark" }
