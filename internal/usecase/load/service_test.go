package load

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"freight-tms/internal/domain/company"
	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/pkg/utils"
)

func validCreateRequest() *CreateLoadRequest {
	return &CreateLoadRequest{
		LoadNumber:    "TMS-1001",
		OriginAddress: "100 Dock St, Newark, NJ",
		DestAddress:   "2200 Warehouse Rd, Columbus, OH",
	}
}

func TestCreateLoadStartsInDraft(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	resp, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateLoad error: %v", err)
	}
	if resp.Status != domainLoad.StatusDraft {
		t.Errorf("new load status = %q, want draft", resp.Status)
	}
	if resp.ID == uuid.Nil {
		t.Error("expected assigned id")
	}
}

func TestCreateLoadValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := validCreateRequest()
	req.LoadNumber = "x"

	_, err := svc.CreateLoad(context.Background(), uuid.New(), req)
	var verrs *utils.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
}

func TestCreateLoadInvertedWindow(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := validCreateRequest()
	early := time.Now().UTC()
	late := early.Add(-48 * time.Hour)
	req.PickupEarliest = &early
	req.PickupLatest = &late

	_, err := svc.CreateLoad(context.Background(), uuid.New(), req)
	var verrs *utils.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for inverted window, got %v", err)
	}
}

func TestCreateLoadUnknownParty(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := validCreateRequest()
	ghost := uuid.New()
	req.BrokerID = &ghost

	_, err := svc.CreateLoad(context.Background(), uuid.New(), req)
	var verrs *utils.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for unknown broker, got %v", err)
	}
}

func TestCreateLoadKnownParty(t *testing.T) {
	svc, _, _, _, companies := newTestService()

	req := validCreateRequest()
	brokerID := companies.add(company.TypeBroker)
	req.BrokerID = &brokerID

	if _, err := svc.CreateLoad(context.Background(), uuid.New(), req); err != nil {
		t.Fatalf("CreateLoad with valid broker failed: %v", err)
	}
}

func TestCreateLoadDuplicateNumber(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	if _, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest()); err != nil {
		t.Fatalf("first CreateLoad error: %v", err)
	}
	_, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest())
	if !errors.Is(err, domainLoad.ErrDuplicateLoadNumber) {
		t.Errorf("expected ErrDuplicateLoadNumber, got %v", err)
	}
}

func TestGetLoadWrongTenant(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	created, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateLoad error: %v", err)
	}

	_, err = svc.GetLoad(context.Background(), uuid.New(), created.ID)
	if !errors.Is(err, domainLoad.ErrLoadNotFound) {
		t.Errorf("expected ErrLoadNotFound across tenants, got %v", err)
	}
}

func TestUpdateLoadRejectsStatusField(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	created, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateLoad error: %v", err)
	}

	status := "delivered"
	_, err = svc.UpdateLoad(context.Background(), tenant, created.ID, &UpdateLoadRequest{Status: &status})
	if !errors.Is(err, domainLoad.ErrStatusImmutable) {
		t.Errorf("expected ErrStatusImmutable, got %v", err)
	}

	got, err := svc.GetLoad(context.Background(), tenant, created.ID)
	if err != nil {
		t.Fatalf("GetLoad error: %v", err)
	}
	if got.Status != domainLoad.StatusDraft {
		t.Errorf("status changed through update path: %q", got.Status)
	}
}

func TestUpdateLoadPatchesScalars(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	created, err := svc.CreateLoad(context.Background(), tenant, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateLoad error: %v", err)
	}

	commodity := "frozen produce"
	rate := 2450.0
	updated, err := svc.UpdateLoad(context.Background(), tenant, created.ID, &UpdateLoadRequest{
		Commodity:    &commodity,
		CustomerRate: &rate,
	})
	if err != nil {
		t.Fatalf("UpdateLoad error: %v", err)
	}
	if updated.Commodity != commodity {
		t.Errorf("commodity = %q, want %q", updated.Commodity, commodity)
	}
	if updated.CustomerRate == nil || *updated.CustomerRate != rate {
		t.Errorf("customer rate not applied: %v", updated.CustomerRate)
	}
	if updated.LoadNumber != created.LoadNumber {
		t.Errorf("untouched field changed: %q", updated.LoadNumber)
	}
}

func TestListLoadsPaginationDefaults(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	for i := 0; i < 3; i++ {
		req := validCreateRequest()
		req.LoadNumber = req.LoadNumber + "-" + string(rune('a'+i))
		if _, err := svc.CreateLoad(context.Background(), tenant, req); err != nil {
			t.Fatalf("CreateLoad error: %v", err)
		}
	}

	resp, err := svc.ListLoads(context.Background(), tenant, &LoadFilterRequest{})
	if err != nil {
		t.Fatalf("ListLoads error: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.Page != 1 || resp.PageSize != defaultPageSize {
		t.Errorf("defaults not applied: page=%d size=%d", resp.Page, resp.PageSize)
	}
	if resp.TotalPages != 1 {
		t.Errorf("total pages = %d, want 1", resp.TotalPages)
	}
}

func TestListLoadsRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.ListLoads(context.Background(), uuid.New(), &LoadFilterRequest{Status: "warp_drive"})
	if !errors.Is(err, domainLoad.ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestMarginComputedWhenBothRatesSet(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	tenant := uuid.New()

	req := validCreateRequest()
	customer := 3000.0
	carrier := 2500.0
	req.CustomerRate = &customer
	req.CarrierRate = &carrier

	resp, err := svc.CreateLoad(context.Background(), tenant, req)
	if err != nil {
		t.Fatalf("CreateLoad error: %v", err)
	}
	if resp.Margin == nil || *resp.Margin != 500.0 {
		t.Errorf("margin = %v, want 500", resp.Margin)
	}
}
