// Package quotes holds the quote domain model shared by every other package.
//
// # Overview
//
// A Quote is a piece of text with a category. Quotes carry a stable ID so the
// local list can be merged with the sync endpoint, and an UpdatedAt stamp set
// whenever the local copy is created or edited.
//
// # Operations
//
//   - New / Validate: trim input and reject empty text or category
//   - Categories: distinct categories in first-seen order (drives the filter bar)
//   - Filter: exact category match, "all" selects everything
//   - Picker: uniform random selection with an injectable source
//   - CompileWhere / Select: expr-lang predicates for the CLI --where flag
//
// # Where Expressions
//
// Expressions see four variables and must evaluate to a bool:
//
//	id        string
//	text      string
//	category  string
//	length    int (runes in text)
//
// Example:
//
//	pred, err := quotes.CompileWhere(`category == "Motivation" && length < 80`)
//
// Picker is not safe for concurrent use when built with a private *rand.Rand.
package quotes
