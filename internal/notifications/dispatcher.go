// Package notifications delivers best-effort push messages for order
// lifecycle events. Delivery runs on a bounded worker pool decoupled from
// request handling: a slow or failing push gateway can never block or fail
// the business operation that produced the event.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

const (
	defaultWorkers     = 4
	defaultQueueSize   = 256
	defaultSendTimeout = 5 * time.Second
	defaultRadiusKm    = 20
)

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	// Workers is the number of goroutines draining the event queue.
	Workers int

	// QueueSize bounds the event queue. Events beyond it are dropped,
	// not queued; the rebroadcast sweep covers the loss.
	QueueSize int

	// SendTimeout bounds one push gateway call.
	SendTimeout time.Duration

	// RadiusKm is the courier fan-out radius around the store.
	RadiusKm float64
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = defaultQueueSize
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultSendTimeout
	}
	if c.RadiusKm <= 0 {
		c.RadiusKm = defaultRadiusKm
	}
	return c
}

type eventKind int

const (
	orderCreatedEvent eventKind = iota
	orderStatusChangedEvent
)

// event is an immutable snapshot of the order taken at publish time, so
// workers never race with later mutations of the aggregate.
type event struct {
	kind         eventKind
	orderID      kernel.UUID
	storeID      kernel.UUID
	customerName string
	status       order.Status
}

// Dispatcher fans order events out to push recipients. It implements the
// command layer's OrderNotifier.
//
// Creation events go to every courier within the configured radius of the
// store; status change events go to the order's store. All directory
// resolution happens on the worker side.
type Dispatcher struct {
	userDirectory ports.UserDirectory
	locator       services.CourierLocator
	sender        ports.PushSender
	logger        *slog.Logger
	cfg           Config

	queue chan event
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher and starts its worker pool.
// Call Close to drain the queue and stop the workers.
func NewDispatcher(
	userDirectory ports.UserDirectory,
	locator services.CourierLocator,
	sender ports.PushSender,
	logger *slog.Logger,
	cfg Config,
) *Dispatcher {
	cfg = cfg.withDefaults()
	d := &Dispatcher{
		userDirectory: userDirectory,
		locator:       locator,
		sender:        sender,
		logger:        logger,
		cfg:           cfg,
		queue:         make(chan event, cfg.QueueSize),
	}

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.worker()
	}
	return d
}

// OrderCreated announces an open order to couriers near its store.
func (d *Dispatcher) OrderCreated(aggregate *order.Order) {
	d.enqueue(snapshot(orderCreatedEvent, aggregate))
}

// OrderStatusChanged announces an order's new status to its store. Only the
// statuses the store reacts to are pushed: Assigned, Delivered and Returned.
// Cancellation is the store's own act, so no push goes out for it.
func (d *Dispatcher) OrderStatusChanged(aggregate *order.Order) {
	if !notifiesStore(aggregate.Status()) {
		return
	}
	d.enqueue(snapshot(orderStatusChangedEvent, aggregate))
}

func notifiesStore(status order.Status) bool {
	switch status {
	case order.Assigned, order.Delivered, order.Returned:
		return true
	default:
		return false
	}
}

// Close stops accepting events, drains the queue, and waits for the workers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func snapshot(kind eventKind, aggregate *order.Order) event {
	return event{
		kind:         kind,
		orderID:      aggregate.ID(),
		storeID:      aggregate.StoreID(),
		customerName: aggregate.CustomerName(),
		status:       aggregate.Status(),
	}
}

func (d *Dispatcher) enqueue(ev event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("notification queue full, dropping event",
			"order_id", ev.orderID.String())
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SendTimeout)
		switch ev.kind {
		case orderCreatedEvent:
			d.fanOutToCouriers(ctx, ev)
		case orderStatusChangedEvent:
			d.notifyStore(ctx, ev)
		}
		cancel()
	}
}

func (d *Dispatcher) fanOutToCouriers(ctx context.Context, ev event) {
	store, err := d.userDirectory.Get(ctx, ev.storeID)
	if err != nil {
		d.logger.Error("resolve store for fan-out",
			"order_id", ev.orderID.String(), "error", err)
		return
	}

	if !store.HasLocation() {
		d.logger.Debug("store has no coordinates, skipping fan-out",
			"order_id", ev.orderID.String(), "store_id", ev.storeID.String())
		return
	}

	couriers, err := d.userDirectory.GetAllByRole(ctx, directory.Courier)
	if err != nil {
		d.logger.Error("list couriers for fan-out",
			"order_id", ev.orderID.String(), "error", err)
		return
	}

	eligible, err := d.locator.FindEligible(*store.Location(), d.cfg.RadiusKm, couriers)
	if err != nil {
		d.logger.Error("locate eligible couriers",
			"order_id", ev.orderID.String(), "error", err)
		return
	}

	for _, courier := range eligible {
		push := ports.Push{
			To:      courier.PushToken(),
			Title:   "New order available",
			Body:    store.Name() + " has a delivery for " + ev.customerName,
			OrderID: ev.orderID.String(),
		}
		if sendErr := d.sender.Send(ctx, push); sendErr != nil {
			d.logger.Warn("push send failed",
				"order_id", ev.orderID.String(),
				"courier_id", courier.ID().String(),
				"error", sendErr)
		}
	}

	d.logger.Info("order fan-out done",
		"order_id", ev.orderID.String(), "couriers", len(eligible))
}

func (d *Dispatcher) notifyStore(ctx context.Context, ev event) {
	store, err := d.userDirectory.Get(ctx, ev.storeID)
	if err != nil {
		d.logger.Error("resolve store for status notification",
			"order_id", ev.orderID.String(), "error", err)
		return
	}

	if store.PushToken() == "" {
		d.logger.Debug("store has no push token, skipping notification",
			"order_id", ev.orderID.String(), "store_id", ev.storeID.String())
		return
	}

	push := ports.Push{
		To:      store.PushToken(),
		Title:   "Order update",
		Body:    "Order for " + ev.customerName + " is now " + ev.status.String(),
		OrderID: ev.orderID.String(),
	}
	if sendErr := d.sender.Send(ctx, push); sendErr != nil {
		d.logger.Warn("push send failed",
			"order_id", ev.orderID.String(),
			"store_id", ev.storeID.String(),
			"error", sendErr)
	}
}
