package webhook

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/personaltask/taskmanager/internal/application/ports"
)

const (
	DefaultAsyncBuffer  = 256
	defaultAsyncTimeout = 10 * time.Second
)

var (
	// ErrBufferFull is returned by AsyncEmitter.Emit when the event was dropped.
	ErrBufferFull = errors.New("audit event buffer full")
	// ErrEmitterClosed is returned by AsyncEmitter.Emit after Close.
	ErrEmitterClosed = errors.New("audit emitter closed")
)

// AsyncEmitter hands events to a single background goroutine that delivers
// them through next. Emit never blocks: when the buffer is full the event is
// dropped and ErrBufferFull returned.
type AsyncEmitter struct {
	next    ports.WebhookEmitter
	events  chan ports.AuditEvent
	stop    chan struct{}
	done    chan struct{}
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewAsyncEmitter starts the delivery goroutine. Call Close to stop it.
func NewAsyncEmitter(next ports.WebhookEmitter, buffer int, log zerolog.Logger) *AsyncEmitter {
	if buffer <= 0 {
		buffer = DefaultAsyncBuffer
	}
	e := &AsyncEmitter{
		next:    next,
		events:  make(chan ports.AuditEvent, buffer),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		timeout: defaultAsyncTimeout,
		log:     log,
	}
	go e.run()
	return e
}

// Emit implements ports.WebhookEmitter. ctx is not used for delivery, which
// outlives the request that produced the event.
func (e *AsyncEmitter) Emit(_ context.Context, event ports.AuditEvent) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrEmitterClosed
	}
	select {
	case e.events <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

func (e *AsyncEmitter) run() {
	defer close(e.done)
	for {
		select {
		case event := <-e.events:
			e.deliver(event)
		case <-e.stop:
			for {
				select {
				case event := <-e.events:
					e.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (e *AsyncEmitter) deliver(event ports.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	if err := e.next.Emit(ctx, event); err != nil {
		e.log.Warn().Err(err).Str("event", event.Event).Msg("audit delivery failed")
	}
}

// Close stops accepting events and waits until the buffered ones are
// delivered or ctx is done.
func (e *AsyncEmitter) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.stop)
	}
	e.mu.Unlock()
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ports.WebhookEmitter = (*AsyncEmitter)(nil)
