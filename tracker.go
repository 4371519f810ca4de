package groqqy

import "time"

// CostEntry records the cost of one model call with attribution
// metadata (iteration number, model name, and so on).
type CostEntry struct {
	Cost float64
	Time time.Time
	Meta map[string]any
}

// CostTracker accumulates a running total of monetary cost across
// model calls, with a per-call entry for later attribution analysis.
//
// Costs are assumed non-negative but not validated: a negative cost
// silently decreases the total. Like the conversation log, a tracker
// belongs to exactly one agent and is not safe for concurrent use.
type CostTracker struct {
	total   float64
	entries []CostEntry
}

// NewCostTracker creates a tracker at zero.
func NewCostTracker() *CostTracker {
	return &CostTracker{}
}

// Add records the cost of one model call and updates the running
// total. meta may be nil.
func (t *CostTracker) Add(cost float64, meta map[string]any) {
	t.total += cost
	t.entries = append(t.entries, CostEntry{
		Cost: cost,
		Time: time.Now(),
		Meta: meta,
	})
}

// Total returns the accumulated cost.
func (t *CostTracker) Total() float64 {
	return t.total
}

// Entries returns the ordered per-call cost records.
func (t *CostTracker) Entries() []CostEntry {
	out := make([]CostEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// CallCount returns the number of recorded model calls.
func (t *CostTracker) CallCount() int {
	return len(t.entries)
}

// Reset zeroes the total and clears the entry list.
func (t *CostTracker) Reset() {
	t.total = 0
	t.entries = nil
}
