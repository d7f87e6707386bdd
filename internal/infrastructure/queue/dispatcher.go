package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/api/metrics"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes courier status reports to a fixed set of workers using
// consistent hashing on the delivery id, guaranteeing per-delivery ordering
// even when a courier's app flushes a backlog of reports at once.
type Dispatcher struct {
	workers []chan ports.StatusReportInput
	service ports.StatusService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.StatusService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StatusReportInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StatusReportInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a report to the worker responsible for its delivery id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(report ports.StatusReportInput) {
	idx := d.shardIndex(report.DeliveryID)
	d.workers[idx] <- report
	metrics.StatusQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple reports preserving per-delivery ordering.
func (d *Dispatcher) EnqueueBatch(reports []ports.StatusReportInput) {
	for _, r := range reports {
		d.Enqueue(r)
	}
}

// shardIndex maps a delivery id deterministically to a worker index.
func (d *Dispatcher) shardIndex(deliveryID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(deliveryID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StatusReportInput) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case report, ok := <-ch:
			if !ok {
				return
			}
			metrics.StatusQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			delivery, err := d.service.Transition(ctx, report.DeliveryID, report.Succeeded)
			if err != nil {
				d.log.Error().Err(err).
					Str("delivery_id", report.DeliveryID).
					Str("source", report.Source).
					Int("worker_id", id).
					Msg("status report processing failed")
				continue
			}
			metrics.StatusTransitionsTotal.WithLabelValues(string(delivery.Status)).Inc()
		}
	}
}
