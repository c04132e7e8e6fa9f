package load

import "testing"

func TestParseStatusCanonical(t *testing.T) {
	got, err := ParseStatus("in_transit")
	if err != nil {
		t.Fatalf("ParseStatus(in_transit) error: %v", err)
	}
	if got != StatusInTransit {
		t.Errorf("got %q, want %q", got, StatusInTransit)
	}
}

func TestParseStatusNormalizesCase(t *testing.T) {
	got, err := ParseStatus("  DELIVERED ")
	if err != nil {
		t.Fatalf("ParseStatus error: %v", err)
	}
	if got != StatusDelivered {
		t.Errorf("got %q, want %q", got, StatusDelivered)
	}
}

func TestParseStatusLegacyAliases(t *testing.T) {
	cases := map[string]Status{
		"posted":    StatusActive,
		"open":      StatusDraft,
		"completed": StatusDelivered,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParseStatusUnknown(t *testing.T) {
	if _, err := ParseStatus("warp_drive"); err != ErrUnknownStatus {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestForwardChainIsLegal(t *testing.T) {
	chain := []Status{
		StatusDraft, StatusPendingBrokerAcceptance, StatusActive,
		StatusAssigned, StatusDispatched, StatusInTransit,
		StatusAwaitingDocs, StatusPODReceived, StatusDelivered,
		StatusInvoiced, StatusPaid, StatusClosed,
	}
	for i := 0; i < len(chain)-1; i++ {
		if !IsValidTransition(chain[i], chain[i+1]) {
			t.Errorf("expected %s -> %s to be legal", chain[i], chain[i+1])
		}
	}
}

func TestDraftCanActivateDirectly(t *testing.T) {
	if !IsValidTransition(StatusDraft, StatusActive) {
		t.Error("expected draft -> active to be legal")
	}
}

func TestBackwardAndSkippingTransitionsIllegal(t *testing.T) {
	cases := []struct{ from, to Status }{
		{StatusDelivered, StatusInTransit},
		{StatusDraft, StatusDelivered},
		{StatusActive, StatusInvoiced},
		{StatusPaid, StatusDraft},
	}
	for _, c := range cases {
		if IsValidTransition(c.from, c.to) {
			t.Errorf("expected %s -> %s to be illegal", c.from, c.to)
		}
	}
}

func TestSelfTransitionIsValid(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusInTransit, StatusClosed} {
		if !IsValidTransition(s, s) {
			t.Errorf("expected %s -> %s (self) to be valid", s, s)
		}
	}
}

func TestCancelledReachableFromNonTerminal(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusActive, StatusInTransit, StatusInvoiced} {
		if !IsValidTransition(s, StatusCancelled) {
			t.Errorf("expected %s -> cancelled to be legal", s)
		}
	}
}

func TestCancelledNotReachableFromTerminal(t *testing.T) {
	for _, s := range []Status{StatusPaid, StatusClosed, StatusCancelled} {
		if s != StatusCancelled && IsValidTransition(s, StatusCancelled) {
			t.Errorf("expected %s -> cancelled to be illegal", s)
		}
	}
	if IsValidTransition(StatusClosed, StatusCancelled) {
		t.Error("expected closed -> cancelled to be illegal")
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := TerminalStatuses()
	want := map[Status]bool{StatusPaid: true, StatusClosed: true, StatusCancelled: true}
	if len(terminal) != len(want) {
		t.Fatalf("got %d terminal statuses, want %d", len(terminal), len(want))
	}
	for _, s := range terminal {
		if !want[s] {
			t.Errorf("unexpected terminal status %q", s)
		}
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%q) = false", s)
		}
	}
	if StatusDelivered.IsTerminal() {
		t.Error("delivered must not be terminal")
	}
}

func TestPaidToClosedStillLegal(t *testing.T) {
	if !IsValidTransition(StatusPaid, StatusClosed) {
		t.Error("expected paid -> closed to be legal even though paid is terminal for cancellation")
	}
}

func TestAllowedTransitions(t *testing.T) {
	allowed := AllowedTransitions(StatusInTransit)

	want := map[Status]bool{
		StatusAwaitingDocs: true,
		StatusDelivered:    true,
		StatusCancelled:    true,
	}
	if len(allowed) != len(want) {
		t.Fatalf("AllowedTransitions(in_transit) = %v, want targets %v", allowed, want)
	}
	for _, s := range allowed {
		if !want[s] {
			t.Errorf("unexpected allowed target %q", s)
		}
	}

	if got := AllowedTransitions(StatusClosed); len(got) != 0 {
		t.Errorf("AllowedTransitions(closed) = %v, want empty", got)
	}
}

func TestIsKnown(t *testing.T) {
	if !StatusAwaitingDocs.IsKnown() {
		t.Error("awaiting_docs must be known")
	}
	if Status("bogus").IsKnown() {
		t.Error("bogus must not be known")
	}
}
