package mailbox

import (
	"strings"

	"github.com/nhle/inbox-pilot/internal/model"
)

// Filter narrows the inbox by free-text query and category.
type Filter struct {
	Query    string
	Category string
}

// Matches reports whether e passes both the text and the category test.
// The query is matched case-insensitively against sender, subject and
// preview; an empty query matches everything.
func (f Filter) Matches(e model.Email) bool {
	if f.Category != "" && f.Category != model.CategoryAll && string(e.Category) != f.Category {
		return false
	}
	q := strings.ToLower(f.Query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Sender), q) ||
		strings.Contains(strings.ToLower(e.Subject), q) ||
		strings.Contains(strings.ToLower(e.Preview), q)
}

// Apply returns the emails that match f, preserving order.
func (f Filter) Apply(emails []model.Email) []model.Email {
	out := make([]model.Email, 0, len(emails))
	for _, e := range emails {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// CategoryCycle is the order the inbox chips cycle through.
func CategoryCycle() []string {
	cycle := []string{model.CategoryAll}
	for _, c := range model.CategoryPriority {
		cycle = append(cycle, string(c))
	}
	return cycle
}

// NextCategory returns the chip after current, wrapping around. Unknown
// values restart at "all".
func NextCategory(current string) string {
	cycle := CategoryCycle()
	for i, c := range cycle {
		if c == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return model.CategoryAll
}
