package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

const (
	defaultWidth = 100
	maxWrapWidth = 120
)

// CLIFormatter outputs review reports as terminal markdown.
// With Color disabled the markdown is returned unrendered.
type CLIFormatter struct {
	Color bool
	Width int
	style gansi.StyleConfig
}

// NewCLIFormatter creates a CLIFormatter. The background color is queried
// once here, not on every render.
func NewCLIFormatter(color bool, width int) *CLIFormatter {
	style := styles.LightStyleConfig
	if color && termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}
	return NewCLIFormatterWithStyle(color, width, style)
}

// NewCLIFormatterWithStyle creates a CLIFormatter with an explicit glamour style.
func NewCLIFormatterWithStyle(color bool, width int, style gansi.StyleConfig) *CLIFormatter {
	zeroMargin := uint(0)
	style.Document.Margin = &zeroMargin
	style.CodeBlock.Margin = &zeroMargin
	style.Code.Prefix = ""
	style.Code.Suffix = ""
	return &CLIFormatter{Color: color, Width: width, style: style}
}

// Format returns the review text, or the guidance for a failed review.
func (f *CLIFormatter) Format(report Report) string {
	if report.Err != nil {
		return f.Render(Guidance(report.Err))
	}
	if report.Result == nil {
		return ""
	}
	return f.Render(report.Result.Text)
}

// Render turns markdown into terminal output. It falls back to the raw
// markdown if glamour fails.
func (f *CLIFormatter) Render(markdown string) string {
	if !f.Color {
		return markdown
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(f.style),
		glamour.WithWordWrap(f.wrapWidth()),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

func (f *CLIFormatter) wrapWidth() int {
	w := f.Width
	if w <= 0 {
		w = defaultWidth
	}
	if w > maxWrapWidth {
		w = maxWrapWidth
	}
	return w
}
