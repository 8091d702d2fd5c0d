// Package render formats agent output and timestamps for the terminal.
package render

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/inbox-pilot/internal/theme"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	numberedPattern = regexp.MustCompile(`^\d+\.\s`)

	h1Style     = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(theme.ColorWhite)
	h2Style     = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	h3Style     = lipgloss.NewStyle().Bold(true)
	strongStyle = lipgloss.NewStyle().Bold(true)
)

// Markdown renders the small markdown subset agents produce: three heading
// levels, bullets, numbered items and inline bold. Anything else is a plain
// paragraph. Empty input renders nothing.
func Markdown(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			out = append(out, h3Style.Render(line[4:]))
		case strings.HasPrefix(line, "## "):
			out = append(out, h2Style.Render(line[3:]))
		case strings.HasPrefix(line, "# "):
			out = append(out, h1Style.Render(line[2:]))
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			out = append(out, "  • "+Inline(line[2:]))
		case numberedPattern.MatchString(line):
			num := line[:strings.Index(line, ".")]
			out = append(out, "  "+num+". "+Inline(numberedPattern.ReplaceAllString(line, "")))
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		default:
			out = append(out, Inline(line))
		}
	}
	return strings.Join(out, "\n")
}

// Inline renders **bold** spans. Spans are not nested and there is no
// escaping.
func Inline(text string) string {
	matches := boldPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		b.WriteString(strongStyle.Render(text[m[2]:m[3]]))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
