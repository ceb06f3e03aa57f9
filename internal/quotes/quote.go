package quotes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllCategories selects every quote regardless of category.
const AllCategories = "all"

// NoQuotesMessage is shown when a filter matches nothing.
const NoQuotesMessage = "No quotes found for this category."

// ErrMissingFields is returned when a quote lacks text or category.
var ErrMissingFields = errors.New("please enter both a quote and a category")

// Quote is a single quote with its category.
type Quote struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// New builds a validated quote with a fresh ID.
func New(text, category string) (Quote, error) {
	q := Quote{Text: text, Category: category}
	if err := Validate(&q); err != nil {
		return Quote{}, err
	}
	q.ID = NewID()
	q.UpdatedAt = time.Now().UTC()
	return q, nil
}

// NewID returns a new random quote identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate trims text and category in place and rejects empty values.
func Validate(q *Quote) error {
	if q == nil {
		return ErrMissingFields
	}
	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.TrimSpace(q.Category)
	if q.Text == "" || q.Category == "" {
		return ErrMissingFields
	}
	return nil
}

// SameContent reports whether two quotes carry the same text and category.
func SameContent(a, b Quote) bool {
	return a.Text == b.Text && a.Category == b.Category
}

// EnsureIDs assigns IDs to entries that have none and reports how many changed.
func EnsureIDs(list []Quote) int {
	assigned := 0
	for i := range list {
		if strings.TrimSpace(list[i].ID) == "" {
			list[i].ID = NewID()
			assigned++
		}
	}
	return assigned
}

// Format renders a quote the way the viewer displays it.
func Format(q Quote) string {
	return fmt.Sprintf("\"%s\" — %s", q.Text, q.Category)
}

// Categories returns the distinct categories in first-seen order.
func Categories(list []Quote) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, q := range list {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	return out
}

// Filter returns quotes in category. "all" or an empty category returns everything.
func Filter(list []Quote, category string) []Quote {
	category = strings.TrimSpace(category)
	if category == "" || category == AllCategories {
		return Clone(list)
	}
	var out []Quote
	for _, q := range list {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Clone returns an independent copy of list.
func Clone(list []Quote) []Quote {
	if len(list) == 0 {
		return nil
	}
	dup := make([]Quote, len(list))
	copy(dup, list)
	return dup
}

// Picker chooses random quotes.
type Picker struct {
	rng *rand.Rand
}

// NewPicker builds a Picker. A nil rng uses the global source.
func NewPicker(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// Pick returns a uniformly random element of list.
func (p *Picker) Pick(list []Quote) (Quote, bool) {
	if len(list) == 0 {
		return Quote{}, false
	}
	var idx int
	if p == nil || p.rng == nil {
		idx = rand.IntN(len(list))
	} else {
		idx = p.rng.IntN(len(list))
	}
	return list[idx], true
}

// Show picks a quote from category and renders it, or the empty-filter message.
func (p *Picker) Show(list []Quote, category string) (Quote, string) {
	q, ok := p.Pick(Filter(list, category))
	if !ok {
		return Quote{}, NoQuotesMessage
	}
	return q, Format(q)
}

// Defaults returns the seed quotes used when nothing has been stored yet.
// IDs are fixed so separate installs agree with the mock server.
func Defaults() []Quote {
	return []Quote{
		{ID: "seed-1", Text: "The best way to get started is to quit talking and begin doing.", Category: "Motivation"},
		{ID: "seed-2", Text: "Your time is limited, so don’t waste it living someone else’s life.", Category: "Inspiration"},
		{ID: "seed-3", Text: "Success is not final; failure is not fatal: It is the courage to continue that counts.", Category: "Motivation"},
		{ID: "seed-4", Text: "Creativity is intelligence having fun.", Category: "Creativity"},
	}
}
