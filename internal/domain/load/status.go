package load

import "strings"

// Status is the canonical lifecycle state of a load. Exactly one canonical
// value exists per conceptual state; legacy spellings are normalized through
// the alias table below.
type Status string

const (
	StatusDraft                   Status = "draft"
	StatusPendingBrokerAcceptance Status = "pending_broker_acceptance"
	StatusActive                  Status = "active" // posted / available on loadboards
	StatusAssigned                Status = "assigned"
	StatusDispatched              Status = "dispatched"
	StatusInTransit               Status = "in_transit"
	StatusAwaitingDocs            Status = "awaiting_docs"
	StatusPODReceived             Status = "pod_received"
	StatusDelivered               Status = "delivered"
	StatusInvoiced                Status = "invoiced"
	StatusPaid                    Status = "paid"
	StatusClosed                  Status = "closed"
	StatusCancelled               Status = "cancelled"
)

// State machine for load status transitions. Cancellation is handled
// separately: any non-terminal status may move to cancelled.
var validTransitions = map[Status][]Status{
	StatusDraft: {
		StatusPendingBrokerAcceptance,
		StatusActive,
	},
	StatusPendingBrokerAcceptance: {
		StatusActive,
	},
	StatusActive: {
		StatusAssigned,
	},
	StatusAssigned: {
		StatusDispatched,
	},
	StatusDispatched: {
		StatusInTransit,
	},
	StatusInTransit: {
		StatusAwaitingDocs,
		StatusDelivered,
	},
	StatusAwaitingDocs: {
		StatusPODReceived,
	},
	StatusPODReceived: {
		StatusDelivered,
	},
	StatusDelivered: {
		StatusInvoiced,
	},
	StatusInvoiced: {
		StatusPaid,
	},
	StatusPaid: {
		StatusClosed,
	},
	StatusClosed:    {},
	StatusCancelled: {},
}

// legacyAliases maps status spellings seen in upstream data and older
// clients onto canonical values. Unknown strings are rejected, never
// guessed.
var legacyAliases = map[string]Status{
	"open":                    StatusDraft,
	"new":                     StatusDraft,
	"pending":                 StatusPendingBrokerAcceptance,
	"pendingbrokeracceptance": StatusPendingBrokerAcceptance,
	"posted":                  StatusActive,
	"available":               StatusActive,
	"booked":                  StatusAssigned,
	"covered":                 StatusAssigned,
	"en_route":                StatusInTransit,
	"enroute":                 StatusInTransit,
	"in transit":              StatusInTransit,
	"intransit":               StatusInTransit,
	"awaiting_pod":            StatusAwaitingDocs,
	"pod":                     StatusPODReceived,
	"podreceived":             StatusPODReceived,
	"completed":               StatusDelivered,
	"canceled":                StatusCancelled,
	"void":                    StatusCancelled,
}

// IsKnown reports whether s is a member of the canonical vocabulary.
func (s Status) IsKnown() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether s admits no further transitions, including
// cancellation.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatuses returns the states from which a load can never leave
// by cancellation.
func TerminalStatuses() []Status {
	return []Status{StatusPaid, StatusClosed, StatusCancelled}
}

// IsValidTransition reports whether current -> requested is legal. It is
// pure and total over the vocabulary: a self-transition is valid (callers
// treat it as a no-op) and cancellation is allowed from any non-terminal
// state. Note that paid -> closed is a normal forward transition even
// though paid counts as terminal for cancellation purposes.
func IsValidTransition(current, requested Status) bool {
	if !current.IsKnown() || !requested.IsKnown() {
		return false
	}
	if current == requested {
		return true
	}
	if requested == StatusCancelled {
		return !current.IsTerminal()
	}
	for _, allowed := range validTransitions[current] {
		if requested == allowed {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from current in one
// step, cancellation included.
func AllowedTransitions(current Status) []Status {
	next := append([]Status(nil), validTransitions[current]...)
	if !current.IsTerminal() && current.IsKnown() {
		next = append(next, StatusCancelled)
	}
	return next
}

// ParseStatus normalizes a wire-format status string to its canonical
// value. It accepts canonical values in any case plus the legacy alias
// table. Returns ErrUnknownStatus for anything else.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if s := Status(normalized); s.IsKnown() {
		return s, nil
	}
	if s, ok := legacyAliases[normalized]; ok {
		return s, nil
	}
	return "", ErrUnknownStatus
}
