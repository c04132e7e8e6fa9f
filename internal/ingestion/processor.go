package ingestion

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/logger"
)

const loadCacheTTL = 5 * time.Minute

// Processor turns the telematics firehose into batched tracking rows.
// Pings for unknown loads are dropped, not errored: providers keep
// publishing after a load closes and that is not a fault of the pipeline.
type Processor struct {
	loadRepo     load.Repository
	trackingRepo load.TrackingRepository

	buffer []*load.TrackingPing

	batchSize    int
	batchTimeout time.Duration
	workerCount  int
	bufferSize   int

	pingChan chan *TrackingPingMessage

	// knownLoads caches positive existence checks so the hot path does
	// not hit the database once per ping.
	knownLoads map[uuid.UUID]time.Time

	ctx       context.Context
	cancel    context.CancelFunc
	workerWg  sync.WaitGroup
	flusherWg sync.WaitGroup
	stopped   atomic.Bool
	mu        sync.Mutex

	metrics *MetricsTracker
}

func NewProcessor(loadRepo load.Repository, trackingRepo load.TrackingRepository, batchSize, workerCount, bufferSize int, batchTimeout time.Duration) *Processor {
	if batchSize <= 0 {
		batchSize = 100
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if batchTimeout <= 0 {
		batchTimeout = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Processor{
		loadRepo:     loadRepo,
		trackingRepo: trackingRepo,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
		workerCount:  workerCount,
		bufferSize:   bufferSize,
		buffer:       make([]*load.TrackingPing, 0, batchSize),
		pingChan:     make(chan *TrackingPingMessage, bufferSize),
		knownLoads:   make(map[uuid.UUID]time.Time),
		ctx:          ctx,
		cancel:       cancel,
		metrics:      NewMetricsTracker(),
	}
}

func (p *Processor) Start() {
	logger.Info("starting tracking ingestion processor",
		zap.Int("workers", p.workerCount),
		zap.Int("batch_size", p.batchSize),
		zap.Duration("batch_timeout", p.batchTimeout),
	)

	for i := 0; i < p.workerCount; i++ {
		p.workerWg.Add(1)
		go p.pingWorker(i)
	}

	p.flusherWg.Add(1)
	go p.batchFlusher()
}

// Stop drains the workers and flushes whatever is still buffered. Queued
// pings are processed before shutdown, not dropped.
func (p *Processor) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	close(p.pingChan)
	p.workerWg.Wait()
	p.cancel()
	p.flusherWg.Wait()
	p.flushBatch()
	logger.Info("tracking ingestion processor stopped")
}

// ProcessPing queues one ping. When the buffer is full the ping is dropped
// rather than blocking the MQTT receive path.
func (p *Processor) ProcessPing(msg *TrackingPingMessage) {
	if p.stopped.Load() {
		return
	}
	select {
	case p.pingChan <- msg:
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesReceived++
			m.BufferSize = len(p.pingChan)
		})
	default:
		logger.Warn("tracking buffer full, dropping ping", zap.String("load_id", msg.LoadID))
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesDropped++
		})
	}
}

func (p *Processor) pingWorker(id int) {
	defer p.workerWg.Done()

	for msg := range p.pingChan {
		start := time.Now()
		if err := p.processPing(msg); err != nil {
			logger.Warn("failed to process tracking ping",
				zap.Int("worker", id),
				zap.String("load_id", msg.LoadID),
				zap.Error(err),
			)
			p.metrics.Update(func(m *IngestMetrics) {
				m.MessagesFailed++
			})
			continue
		}

		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesProcessed++
			m.LastProcessedAt = time.Now()
			elapsed := time.Since(start)
			if m.AverageProcessingTime == 0 {
				m.AverageProcessingTime = elapsed
			} else {
				m.AverageProcessingTime = (m.AverageProcessingTime + elapsed) / 2
			}
		})
	}
}

func (p *Processor) processPing(msg *TrackingPingMessage) error {
	if err := ValidateTrackingPing(msg); err != nil {
		return err
	}

	loadID, err := uuid.Parse(msg.LoadID)
	if err != nil {
		return err
	}

	known, err := p.loadKnown(loadID)
	if err != nil {
		return err
	}
	if !known {
		p.metrics.Update(func(m *IngestMetrics) {
			m.UnknownLoads++
		})
		return nil
	}

	ping := &load.TrackingPing{
		LoadID:        loadID,
		Lat:           msg.Latitude,
		Lng:           msg.Longitude,
		SpeedMPH:      msg.SpeedMPH,
		HeadingDeg:    msg.HeadingDeg,
		OdometerMiles: msg.OdometerMiles,
		FuelPercent:   msg.FuelPercent,
		TemperatureF:  msg.TemperatureF,
		StatusText:    msg.StatusText,
		RecordedAt:    msg.Timestamp,
	}

	p.mu.Lock()
	p.buffer = append(p.buffer, ping)
	shouldFlush := len(p.buffer) >= p.batchSize
	p.mu.Unlock()

	if msg.Breadcrumb {
		p.recordBreadcrumb(loadID, msg)
	}

	if shouldFlush {
		p.flushBatch()
	}
	return nil
}

// recordBreadcrumb puts a flagged ping on the load's timeline. Failure is
// logged only; the tracking row itself is already queued.
func (p *Processor) recordBreadcrumb(loadID uuid.UUID, msg *TrackingPingMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	lat, lng := msg.Latitude, msg.Longitude
	event := &load.StatusEvent{
		LoadID:    loadID,
		EventType: "tracking_ping",
		Note:      msg.StatusText,
		Lat:       &lat,
		Lng:       &lng,
	}
	if err := p.loadRepo.CreateEvent(ctx, event); err != nil {
		logger.Warn("failed to record tracking breadcrumb",
			zap.String("load_id", loadID.String()),
			zap.Error(err),
		)
	}
}

func (p *Processor) loadKnown(loadID uuid.UUID) (bool, error) {
	p.mu.Lock()
	seen, ok := p.knownLoads[loadID]
	p.mu.Unlock()
	if ok && time.Since(seen) < loadCacheTTL {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(p.ctx, 3*time.Second)
	defer cancel()

	exists, err := p.loadRepo.Exists(ctx, loadID)
	if err != nil {
		return false, err
	}
	if exists {
		p.mu.Lock()
		p.knownLoads[loadID] = time.Now()
		p.mu.Unlock()
	}
	return exists, nil
}

func (p *Processor) batchFlusher() {
	defer p.flusherWg.Done()

	ticker := time.NewTicker(p.batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.flushBatch()
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Processor) flushBatch() {
	p.mu.Lock()
	if len(p.buffer) == 0 {
		p.mu.Unlock()
		return
	}
	batch := make([]*load.TrackingPing, len(p.buffer))
	copy(batch, p.buffer)
	p.buffer = p.buffer[:0]
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if err := p.trackingRepo.BatchInsertPings(ctx, batch); err != nil {
		logger.Error("failed to insert tracking batch",
			zap.Int("count", len(batch)),
			zap.Error(err),
		)
		p.metrics.Update(func(m *IngestMetrics) {
			m.MessagesFailed += int64(len(batch))
		})
		return
	}

	logger.Debug("inserted tracking batch",
		zap.Int("count", len(batch)),
		zap.Duration("took", time.Since(start)),
	)
	p.metrics.Update(func(m *IngestMetrics) {
		m.PingsInserted += int64(len(batch))
	})
}

// GetMetrics returns a snapshot of pipeline counters.
func (p *Processor) GetMetrics() IngestMetrics {
	return p.metrics.Snapshot()
}
