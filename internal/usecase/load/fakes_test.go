package load

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"freight-tms/internal/domain/company"
	domainLoad "freight-tms/internal/domain/load"
)

// In-memory fakes of the repository contracts. They reproduce the error
// semantics of the postgres implementations closely enough for the service
// and transition engine to be exercised without a database.

type fakeLoadRepo struct {
	loads   map[uuid.UUID]*domainLoad.Load
	history map[uuid.UUID][]*domainLoad.StatusHistory
	events  map[uuid.UUID][]*domainLoad.StatusEvent

	// beforeTransition runs between the caller's read and the CAS write,
	// letting tests interleave a competing writer.
	beforeTransition func()
}

func newFakeLoadRepo() *fakeLoadRepo {
	return &fakeLoadRepo{
		loads:   make(map[uuid.UUID]*domainLoad.Load),
		history: make(map[uuid.UUID][]*domainLoad.StatusHistory),
		events:  make(map[uuid.UUID][]*domainLoad.StatusEvent),
	}
}

func (r *fakeLoadRepo) Create(_ context.Context, l *domainLoad.Load) error {
	for _, existing := range r.loads {
		if existing.TenantID == l.TenantID && existing.LoadNumber == l.LoadNumber {
			return domainLoad.ErrDuplicateLoadNumber
		}
	}
	l.ID = uuid.New()
	if l.Status == "" {
		l.Status = domainLoad.StatusDraft
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	clone := *l
	r.loads[l.ID] = &clone
	return nil
}

func (r *fakeLoadRepo) GetByID(_ context.Context, tenantID, loadID uuid.UUID) (*domainLoad.Load, error) {
	l, ok := r.loads[loadID]
	if !ok || l.TenantID != tenantID {
		return nil, domainLoad.ErrLoadNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLoadRepo) Update(_ context.Context, l *domainLoad.Load) error {
	stored, ok := r.loads[l.ID]
	if !ok {
		return domainLoad.ErrLoadNotFound
	}
	clone := *l
	clone.Status = stored.Status
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = time.Now().UTC()
	r.loads[l.ID] = &clone
	return nil
}

func (r *fakeLoadRepo) List(_ context.Context, tenantID uuid.UUID, filter *domainLoad.Filter) ([]*domainLoad.Load, int64, error) {
	var out []*domainLoad.Load
	for _, l := range r.loads {
		if l.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(l.LoadNumber, filter.Search) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoadNumber < out[j].LoadNumber })

	total := int64(len(out))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeLoadRepo) Exists(_ context.Context, loadID uuid.UUID) (bool, error) {
	_, ok := r.loads[loadID]
	return ok, nil
}

func (r *fakeLoadRepo) GetStatistics(_ context.Context, tenantID uuid.UUID) (*domainLoad.Statistics, error) {
	stats := &domainLoad.Statistics{ByStatus: make(map[string]int)}
	for _, l := range r.loads {
		if l.TenantID != tenantID {
			continue
		}
		stats.TotalLoads++
		stats.ByStatus[string(l.Status)]++
		if !l.Status.IsTerminal() {
			stats.ActiveLoads++
		}
	}
	return stats, nil
}

func (r *fakeLoadRepo) Transition(_ context.Context, loadID uuid.UUID, oldStatus domainLoad.Status, hist *domainLoad.StatusHistory) error {
	if r.beforeTransition != nil {
		r.beforeTransition()
	}
	l, ok := r.loads[loadID]
	if !ok {
		return domainLoad.ErrLoadNotFound
	}
	if l.Status != oldStatus {
		return domainLoad.ErrConcurrencyConflict
	}
	l.Status = hist.NewStatus
	l.UpdatedAt = time.Now().UTC()

	hist.ID = uuid.New()
	hist.CreatedAt = time.Now().UTC()
	clone := *hist
	r.history[loadID] = append(r.history[loadID], &clone)
	return nil
}

func (r *fakeLoadRepo) ListHistory(_ context.Context, loadID uuid.UUID) ([]*domainLoad.StatusHistory, error) {
	return r.history[loadID], nil
}

func (r *fakeLoadRepo) CreateEvent(_ context.Context, e *domainLoad.StatusEvent) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	clone := *e
	r.events[e.LoadID] = append(r.events[e.LoadID], &clone)
	return nil
}

func (r *fakeLoadRepo) GetEvent(_ context.Context, eventID uuid.UUID) (*domainLoad.StatusEvent, error) {
	for _, evts := range r.events {
		for _, e := range evts {
			if e.ID == eventID {
				clone := *e
				return &clone, nil
			}
		}
	}
	return nil, domainLoad.ErrLoadNotFound
}

func (r *fakeLoadRepo) ListEvents(_ context.Context, loadID uuid.UUID, limit int) ([]*domainLoad.StatusEvent, error) {
	evts := r.events[loadID]
	if limit > 0 && limit < len(evts) {
		evts = evts[:limit]
	}
	return evts, nil
}

type fakeStopRepo struct {
	stops map[uuid.UUID]*domainLoad.Stop
	cargo map[uuid.UUID]*domainLoad.Cargo
}

func newFakeStopRepo() *fakeStopRepo {
	return &fakeStopRepo{
		stops: make(map[uuid.UUID]*domainLoad.Stop),
		cargo: make(map[uuid.UUID]*domainLoad.Cargo),
	}
}

func (r *fakeStopRepo) CreateStop(_ context.Context, s *domainLoad.Stop) error {
	for _, existing := range r.stops {
		if existing.LoadID == s.LoadID && existing.StopNumber == s.StopNumber {
			return domainLoad.ErrDuplicateStopNumber
		}
	}
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	clone := *s
	r.stops[s.ID] = &clone
	return nil
}

func (r *fakeStopRepo) GetStop(_ context.Context, stopID uuid.UUID) (*domainLoad.Stop, error) {
	s, ok := r.stops[stopID]
	if !ok {
		return nil, domainLoad.ErrStopNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeStopRepo) UpdateStop(_ context.Context, s *domainLoad.Stop) error {
	if _, ok := r.stops[s.ID]; !ok {
		return domainLoad.ErrStopNotFound
	}
	clone := *s
	clone.UpdatedAt = time.Now().UTC()
	r.stops[s.ID] = &clone
	return nil
}

func (r *fakeStopRepo) DeleteStop(_ context.Context, stopID uuid.UUID) error {
	if _, ok := r.stops[stopID]; !ok {
		return domainLoad.ErrStopNotFound
	}
	var refs []uuid.UUID
	for _, c := range r.cargo {
		if (c.PickupStopID != nil && *c.PickupStopID == stopID) ||
			(c.DeliveryStopID != nil && *c.DeliveryStopID == stopID) {
			refs = append(refs, c.ID)
		}
	}
	if len(refs) > 0 {
		return &domainLoad.ReferentialConflictError{StopID: stopID, CargoIDs: refs}
	}
	delete(r.stops, stopID)
	return nil
}

func (r *fakeStopRepo) ListStops(_ context.Context, loadID uuid.UUID) ([]*domainLoad.Stop, error) {
	var out []*domainLoad.Stop
	for _, s := range r.stops {
		if s.LoadID == loadID {
			clone := *s
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopNumber < out[j].StopNumber })
	return out, nil
}

func (r *fakeStopRepo) CountStopsByType(_ context.Context, loadID uuid.UUID) (int, int, error) {
	var pickups, deliveries int
	for _, s := range r.stops {
		if s.LoadID != loadID {
			continue
		}
		if s.StopType == domainLoad.StopTypePickup {
			pickups++
		} else {
			deliveries++
		}
	}
	return pickups, deliveries, nil
}

func (r *fakeStopRepo) CountOpenDeliveryStops(_ context.Context, loadID uuid.UUID) (int, error) {
	var open int
	for _, s := range r.stops {
		if s.LoadID == loadID && s.StopType == domainLoad.StopTypeDelivery && s.ActualArrival == nil {
			open++
		}
	}
	return open, nil
}

func (r *fakeStopRepo) CreateCargo(_ context.Context, c *domainLoad.Cargo) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	clone := *c
	r.cargo[c.ID] = &clone
	return nil
}

func (r *fakeStopRepo) GetCargo(_ context.Context, cargoID uuid.UUID) (*domainLoad.Cargo, error) {
	c, ok := r.cargo[cargoID]
	if !ok {
		return nil, domainLoad.ErrCargoNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeStopRepo) UpdateCargo(_ context.Context, c *domainLoad.Cargo) error {
	if _, ok := r.cargo[c.ID]; !ok {
		return domainLoad.ErrCargoNotFound
	}
	clone := *c
	clone.UpdatedAt = time.Now().UTC()
	r.cargo[c.ID] = &clone
	return nil
}

func (r *fakeStopRepo) DeleteCargo(_ context.Context, cargoID uuid.UUID) error {
	if _, ok := r.cargo[cargoID]; !ok {
		return domainLoad.ErrCargoNotFound
	}
	delete(r.cargo, cargoID)
	return nil
}

func (r *fakeStopRepo) ListCargo(_ context.Context, loadID uuid.UUID) ([]*domainLoad.Cargo, error) {
	var out []*domainLoad.Cargo
	for _, c := range r.cargo {
		if c.LoadID == loadID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeOfferRepo struct {
	// mu makes AcceptOffer's check-and-flip atomic, like the row locks in
	// the postgres implementation.
	mu          sync.Mutex
	offers      map[uuid.UUID]*domainLoad.Offer
	assignments map[uuid.UUID]*domainLoad.Assignment
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{
		offers:      make(map[uuid.UUID]*domainLoad.Offer),
		assignments: make(map[uuid.UUID]*domainLoad.Assignment),
	}
}

func (r *fakeOfferRepo) CreateOffer(_ context.Context, o *domainLoad.Offer) error {
	o.ID = uuid.New()
	if o.Status == "" {
		o.Status = domainLoad.OfferStatusOpen
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	clone := *o
	r.offers[o.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) GetOffer(_ context.Context, offerID uuid.UUID) (*domainLoad.Offer, error) {
	o, ok := r.offers[offerID]
	if !ok {
		return nil, domainLoad.ErrOfferNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOfferRepo) ListOffers(_ context.Context, loadID uuid.UUID) ([]*domainLoad.Offer, error) {
	var out []*domainLoad.Offer
	for _, o := range r.offers {
		if o.LoadID == loadID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) AcceptOffer(_ context.Context, offerID uuid.UUID) (*domainLoad.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.offers[offerID]
	if !ok {
		return nil, domainLoad.ErrOfferNotFound
	}
	if o.Status != domainLoad.OfferStatusOpen {
		return nil, domainLoad.ErrOfferClosed
	}
	for _, other := range r.offers {
		if other.LoadID == o.LoadID && other.ID != o.ID && other.Status == domainLoad.OfferStatusAccepted {
			return nil, domainLoad.ErrOfferAlreadyAccepted
		}
	}
	o.Status = domainLoad.OfferStatusAccepted
	o.UpdatedAt = time.Now().UTC()
	clone := *o
	return &clone, nil
}

func (r *fakeOfferRepo) RejectOffer(_ context.Context, offerID uuid.UUID) (*domainLoad.Offer, error) {
	o, ok := r.offers[offerID]
	if !ok {
		return nil, domainLoad.ErrOfferNotFound
	}
	if o.Status != domainLoad.OfferStatusOpen {
		return nil, domainLoad.ErrOfferClosed
	}
	o.Status = domainLoad.OfferStatusRejected
	o.UpdatedAt = time.Now().UTC()
	clone := *o
	return &clone, nil
}

func (r *fakeOfferRepo) ExpireOpenOffers(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, o := range r.offers {
		if o.Status == domainLoad.OfferStatusOpen && o.ExpiresAt != nil && o.ExpiresAt.Before(now) {
			o.Status = domainLoad.OfferStatusExpired
			o.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (r *fakeOfferRepo) CreateAssignment(_ context.Context, a *domainLoad.Assignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now().UTC()
	clone := *a
	r.assignments[a.ID] = &clone
	return nil
}

func (r *fakeOfferRepo) GetAssignment(_ context.Context, assignmentID uuid.UUID) (*domainLoad.Assignment, error) {
	a, ok := r.assignments[assignmentID]
	if !ok {
		return nil, domainLoad.ErrAssignmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeOfferRepo) ListAssignments(_ context.Context, loadID uuid.UUID) ([]*domainLoad.Assignment, error) {
	var out []*domainLoad.Assignment
	for _, a := range r.assignments {
		if a.LoadID == loadID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) OpenAssignment(_ context.Context, loadID uuid.UUID) (*domainLoad.Assignment, error) {
	for _, a := range r.assignments {
		if a.LoadID == loadID && a.UnassignedAt == nil {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domainLoad.ErrAssignmentNotFound
}

func (r *fakeOfferRepo) CloseAssignment(_ context.Context, assignmentID uuid.UUID, when time.Time, reason *string) (*domainLoad.Assignment, error) {
	a, ok := r.assignments[assignmentID]
	if !ok {
		return nil, domainLoad.ErrAssignmentNotFound
	}
	if a.UnassignedAt != nil {
		return nil, domainLoad.ErrAssignmentClosed
	}
	a.UnassignedAt = &when
	a.UnassignReason = reason
	clone := *a
	return &clone, nil
}

type fakeTrackingRepo struct {
	pings []*domainLoad.TrackingPing
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{}
}

func (r *fakeTrackingRepo) CreatePing(_ context.Context, p *domainLoad.TrackingPing) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	clone := *p
	r.pings = append(r.pings, &clone)
	return nil
}

func (r *fakeTrackingRepo) BatchInsertPings(_ context.Context, pings []*domainLoad.TrackingPing) error {
	for _, p := range pings {
		clone := *p
		clone.ID = uuid.New()
		clone.CreatedAt = time.Now().UTC()
		r.pings = append(r.pings, &clone)
	}
	return nil
}

func (r *fakeTrackingRepo) ListPings(_ context.Context, loadID uuid.UUID, limit int) ([]*domainLoad.TrackingPing, error) {
	var out []*domainLoad.TrackingPing
	for _, p := range r.pings {
		if p.LoadID == loadID {
			clone := *p
			out = append(out, &clone)
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]*company.Company)}
}

func (r *fakeCompanyRepo) add(ctype company.CompanyType) uuid.UUID {
	id := uuid.New()
	r.companies[id] = &company.Company{ID: id, Type: ctype, Active: true}
	return id
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, companyID uuid.UUID) (*company.Company, error) {
	c, ok := r.companies[companyID]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCompanyRepo) Exists(_ context.Context, companyID uuid.UUID) (bool, error) {
	c, ok := r.companies[companyID]
	return ok && c.Active, nil
}

// newTestService wires a service over fresh fakes.
func newTestService() (*Service, *fakeLoadRepo, *fakeStopRepo, *fakeOfferRepo, *fakeCompanyRepo) {
	loadRepo := newFakeLoadRepo()
	stopRepo := newFakeStopRepo()
	offerRepo := newFakeOfferRepo()
	trackingRepo := newFakeTrackingRepo()
	companyRepo := newFakeCompanyRepo()
	svc := NewService(loadRepo, stopRepo, offerRepo, trackingRepo, companyRepo, nil)
	return svc, loadRepo, stopRepo, offerRepo, companyRepo
}
