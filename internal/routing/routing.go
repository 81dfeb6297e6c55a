// Package routing provides route candidates and deadline-constrained route
// selection for shipment planning.
package routing

import "errors"

// ErrNoCandidates indicates Select was called with an empty candidate list.
var ErrNoCandidates = errors.New("no route candidates")

// Mode is a transport mode.
type Mode string

// Transport modes. Options spanning several leg modes report ModeMultimodal.
const (
	ModeAir        Mode = "air"
	ModeRoad       Mode = "road"
	ModeRail       Mode = "rail"
	ModeSea        Mode = "sea"
	ModeMultimodal Mode = "multimodal"
)

// Leg is one segment of a route. Carrier is empty when unassigned.
type Leg struct {
	From    string
	To      string
	Mode    Mode
	Carrier string
}

// Option is one route candidate.
type Option struct {
	ID        string
	Mode      Mode
	ETADays   int
	BasePrice float64
	Currency  string
	RiskScore float64
	Legs      []Leg
}

// Constraints holds the selection constraints.
type Constraints struct {
	DeadlineDays int
}

// SelectionCode reports how the selected route relates to the deadline.
// The infeasible case deliberately resolves to a fallback instead of an
// error, but the fallback is surfaced here so callers can flag it.
type SelectionCode string

const (
	// SelectionWithinDeadline means the selected route meets the deadline.
	SelectionWithinDeadline SelectionCode = "within_deadline"
	// SelectionDeadlineMissed means no candidate met the deadline and the
	// cheapest route overall was returned instead.
	SelectionDeadlineMissed SelectionCode = "deadline_missed_fallback"
)

// Select filters candidates to those meeting the deadline and returns the
// cheapest survivor. When no candidate meets the deadline it falls back to
// the full candidate set, so some route is always returned. Price ties break
// by original candidate order.
func Select(c Constraints, candidates []Option) (Option, SelectionCode, error) {
	if len(candidates) == 0 {
		return Option{}, "", ErrNoCandidates
	}

	feasible := make([]Option, 0, len(candidates))
	for _, o := range candidates {
		if o.ETADays <= c.DeadlineDays {
			feasible = append(feasible, o)
		}
	}

	code := SelectionWithinDeadline
	if len(feasible) == 0 {
		feasible = candidates
		code = SelectionDeadlineMissed
	}

	best := feasible[0]
	for _, o := range feasible[1:] {
		if o.BasePrice < best.BasePrice {
			best = o
		}
	}

	return best, code, nil
}
