package syncer

import (
	"time"

	"github.com/five82/quoter/internal/quotes"
)

// Conflict records a quote whose local and server copies disagree on text or
// category. The server copy has already been applied when a Conflict exists.
type Conflict struct {
	ID         string       `json:"id"`
	Local      quotes.Quote `json:"local"`
	Server     quotes.Quote `json:"server"`
	DetectedAt time.Time    `json:"detectedAt"`
}

// MergeResult is the outcome of merging a local list with the server list.
type MergeResult struct {
	Quotes    []quotes.Quote
	Conflicts []Conflict
	LocalOnly []quotes.Quote // present locally, unknown to the server
	Added     int            // server-only quotes appended
	Updated   int            // local quotes replaced by a differing server copy
}

// Merge combines local and server in one pass, matching by ID. Server copies
// take precedence: a shared ID with different text or category takes the
// server version and yields a Conflict. Local order is preserved and
// server-only quotes are appended in server order. Server entries without an
// ID, and repeated server IDs after the first, are ignored.
func Merge(local, server []quotes.Quote) MergeResult {
	serverByID := make(map[string]quotes.Quote, len(server))
	for _, q := range server {
		if q.ID == "" {
			continue
		}
		if _, dup := serverByID[q.ID]; dup {
			continue
		}
		serverByID[q.ID] = q
	}

	res := MergeResult{Quotes: make([]quotes.Quote, 0, len(local)+len(server))}
	matched := make(map[string]bool, len(serverByID))

	for _, lq := range local {
		sq, ok := serverByID[lq.ID]
		if !ok || matched[lq.ID] {
			res.Quotes = append(res.Quotes, lq)
			if !ok {
				res.LocalOnly = append(res.LocalOnly, lq)
			}
			continue
		}
		matched[lq.ID] = true
		if quotes.SameContent(lq, sq) {
			res.Quotes = append(res.Quotes, lq)
			continue
		}
		res.Quotes = append(res.Quotes, sq)
		res.Updated++
		res.Conflicts = append(res.Conflicts, Conflict{ID: lq.ID, Local: lq, Server: sq})
	}

	for _, sq := range server {
		if sq.ID == "" || matched[sq.ID] {
			continue
		}
		matched[sq.ID] = true
		res.Quotes = append(res.Quotes, sq)
		res.Added++
	}
	return res
}
