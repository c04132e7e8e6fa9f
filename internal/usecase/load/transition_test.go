package load

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"freight-tms/internal/domain/company"
	domainLoad "freight-tms/internal/domain/load"
)

// seedLoad creates a draft load and returns its id.
func seedLoad(t *testing.T, svc *Service, tenant uuid.UUID) uuid.UUID {
	t.Helper()
	req := validCreateRequest()
	req.LoadNumber = "TMS-" + uuid.NewString()[:8]
	resp, err := svc.CreateLoad(context.Background(), tenant, req)
	if err != nil {
		t.Fatalf("seed load: %v", err)
	}
	return resp.ID
}

// seedStops gives a load one pickup and one delivery stop, returning the
// delivery stop id.
func seedStops(t *testing.T, svc *Service, tenant, loadID uuid.UUID) uuid.UUID {
	t.Helper()
	_, err := svc.CreateStop(context.Background(), tenant, loadID, &CreateStopRequest{
		StopNumber: 1,
		StopType:   "pickup",
		Address:    "100 Dock St, Newark, NJ",
	})
	if err != nil {
		t.Fatalf("seed pickup stop: %v", err)
	}
	delivery, err := svc.CreateStop(context.Background(), tenant, loadID, &CreateStopRequest{
		StopNumber: 2,
		StopType:   "delivery",
		Address:    "2200 Warehouse Rd, Columbus, OH",
	})
	if err != nil {
		t.Fatalf("seed delivery stop: %v", err)
	}
	return delivery.ID
}

// forceStatus writes a status directly into the fake store, bypassing the
// engine, so tests can start mid-lifecycle.
func forceStatus(repo *fakeLoadRepo, loadID uuid.UUID, status domainLoad.Status) {
	repo.loads[loadID].Status = status
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "draft"})
	if err != nil {
		t.Fatalf("same-status transition should succeed: %v", err)
	}
	if resp.Status != domainLoad.StatusDraft {
		t.Errorf("status = %q, want draft", resp.Status)
	}
	if len(loadRepo.history[loadID]) != 0 {
		t.Errorf("no-op wrote %d history rows", len(loadRepo.history[loadID]))
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "teleported"})
	if !errors.Is(err, domainLoad.ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestTransitionIllegalEdge(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "delivered"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if terr.From != domainLoad.StatusDraft || terr.To != domainLoad.StatusDelivered {
		t.Errorf("error pair = (%s, %s), want (draft, delivered)", terr.From, terr.To)
	}
	if !errors.Is(err, domainLoad.ErrInvalidTransition) {
		t.Error("TransitionError should unwrap to ErrInvalidTransition")
	}
}

func TestDraftCannotActivateWithoutStops(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "active"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError for incomplete draft, got %v", err)
	}
}

func TestDraftActivatesWithStops(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	seedStops(t, svc, tenant, loadID)

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "active"})
	if err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if resp.Status != domainLoad.StatusActive {
		t.Errorf("status = %q, want active", resp.Status)
	}
}

func TestEmptyDraftCanBeCancelled(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{
		RequestedStatus: "cancelled",
		Reason:          "customer pulled the order",
	})
	if err != nil {
		t.Fatalf("cancelling an empty draft should succeed: %v", err)
	}
	if resp.Status != domainLoad.StatusCancelled {
		t.Errorf("status = %q, want cancelled", resp.Status)
	}
}

func TestTransitionAcceptsLegacyAlias(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	seedStops(t, svc, tenant, loadID)

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "posted"})
	if err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if resp.Status != domainLoad.StatusActive {
		t.Errorf("alias not canonicalized: stored %q", resp.Status)
	}
}

func TestDeliveredBlockedByOpenDeliveryStop(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	deliveryStopID := seedStops(t, svc, tenant, loadID)
	forceStatus(loadRepo, loadID, domainLoad.StatusInTransit)

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "delivered"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError with open delivery stop, got %v", err)
	}

	arrival := time.Now().UTC()
	if _, err := svc.UpdateStop(context.Background(), tenant, loadID, deliveryStopID, &UpdateStopRequest{
		ActualArrival: &arrival,
	}); err != nil {
		t.Fatalf("UpdateStop error: %v", err)
	}

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "delivered"})
	if err != nil {
		t.Fatalf("Transition after arrival should succeed: %v", err)
	}
	if resp.Status != domainLoad.StatusDelivered {
		t.Errorf("status = %q, want delivered", resp.Status)
	}
}

func TestInvoicedBlockedWhenAcceptedOfferHasNoAssignment(t *testing.T) {
	svc, loadRepo, _, offerRepo, companies := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	forceStatus(loadRepo, loadID, domainLoad.StatusActive)

	carrierID := companies.add(company.TypeCarrier)
	offer, err := svc.CreateOffer(context.Background(), tenant, loadID, &CreateOfferRequest{
		CarrierID:   carrierID,
		OfferedRate: 2100,
	})
	if err != nil {
		t.Fatalf("CreateOffer error: %v", err)
	}
	// Accepted offer without the assignment the accept path would create.
	offerRepo.offers[offer.ID].Status = domainLoad.OfferStatusAccepted

	forceStatus(loadRepo, loadID, domainLoad.StatusDelivered)

	_, err = svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "invoiced"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError without assignment, got %v", err)
	}

	if _, err := svc.CreateAssignment(context.Background(), tenant, loadID, &CreateAssignmentRequest{
		CarrierID: &carrierID,
	}); err != nil {
		t.Fatalf("CreateAssignment error: %v", err)
	}

	resp, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "invoiced"})
	if err != nil {
		t.Fatalf("Transition after assignment should succeed: %v", err)
	}
	if resp.Status != domainLoad.StatusInvoiced {
		t.Errorf("status = %q, want invoiced", resp.Status)
	}
}

func TestInvoicedBlockedWhenAssignmentCarrierDiffers(t *testing.T) {
	svc, loadRepo, _, offerRepo, companies := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	forceStatus(loadRepo, loadID, domainLoad.StatusActive)

	offerCarrier := companies.add(company.TypeCarrier)
	otherCarrier := companies.add(company.TypeCarrier)

	offer, err := svc.CreateOffer(context.Background(), tenant, loadID, &CreateOfferRequest{
		CarrierID:   offerCarrier,
		OfferedRate: 2100,
	})
	if err != nil {
		t.Fatalf("CreateOffer error: %v", err)
	}
	offerRepo.offers[offer.ID].Status = domainLoad.OfferStatusAccepted

	if _, err := svc.CreateAssignment(context.Background(), tenant, loadID, &CreateAssignmentRequest{
		CarrierID: &otherCarrier,
	}); err != nil {
		t.Fatalf("CreateAssignment error: %v", err)
	}

	forceStatus(loadRepo, loadID, domainLoad.StatusDelivered)

	_, err = svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "invoiced"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError for carrier mismatch, got %v", err)
	}
}

func TestTransitionDetectsConcurrentWriter(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	seedStops(t, svc, tenant, loadID)

	// A racing writer cancels the load after this call reads it but
	// before it commits.
	loadRepo.beforeTransition = func() {
		loadRepo.beforeTransition = nil
		forceStatus(loadRepo, loadID, domainLoad.StatusCancelled)
	}

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "active"})
	if !errors.Is(err, domainLoad.ErrConcurrencyConflict) {
		t.Errorf("expected ErrConcurrencyConflict, got %v", err)
	}
}

func TestTransitionWritesHistoryRow(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	seedStops(t, svc, tenant, loadID)
	actor := uuid.New()

	_, err := svc.Transition(context.Background(), tenant, loadID, &actor, &TransitionRequest{
		RequestedStatus: "active",
		Reason:          "tendered to board",
	})
	if err != nil {
		t.Fatalf("Transition error: %v", err)
	}

	rows := loadRepo.history[loadID]
	if len(rows) != 1 {
		t.Fatalf("history rows = %d, want 1", len(rows))
	}
	h := rows[0]
	if h.OldStatus != domainLoad.StatusDraft || h.NewStatus != domainLoad.StatusActive {
		t.Errorf("history pair = (%s, %s), want (draft, active)", h.OldStatus, h.NewStatus)
	}
	if h.Reason == nil || *h.Reason != "tendered to board" {
		t.Errorf("history reason = %v", h.Reason)
	}
	if h.ActorID == nil || *h.ActorID != actor {
		t.Errorf("history actor = %v, want %s", h.ActorID, actor)
	}
}

func TestCannotCancelTerminalLoad(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	forceStatus(loadRepo, loadID, domainLoad.StatusClosed)

	_, err := svc.Transition(context.Background(), tenant, loadID, nil, &TransitionRequest{RequestedStatus: "cancelled"})
	var terr *domainLoad.TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError from closed load, got %v", err)
	}
}

func TestAllowedTransitionsEndpointView(t *testing.T) {
	svc, loadRepo, _, _, _ := newTestService()
	tenant := uuid.New()
	loadID := seedLoad(t, svc, tenant)
	forceStatus(loadRepo, loadID, domainLoad.StatusInTransit)

	resp, err := svc.AllowedTransitions(context.Background(), tenant, loadID)
	if err != nil {
		t.Fatalf("AllowedTransitions error: %v", err)
	}
	if resp.Current != domainLoad.StatusInTransit {
		t.Errorf("current = %q, want in_transit", resp.Current)
	}
	want := map[domainLoad.Status]bool{
		domainLoad.StatusAwaitingDocs: true,
		domainLoad.StatusDelivered:    true,
		domainLoad.StatusCancelled:    true,
	}
	if len(resp.Allowed) != len(want) {
		t.Fatalf("allowed = %v", resp.Allowed)
	}
	for _, s := range resp.Allowed {
		if !want[s] {
			t.Errorf("unexpected allowed status %q", s)
		}
	}
}
