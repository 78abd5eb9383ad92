package transport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/example/dorm-duty-bot/internal/conversation"
	"github.com/example/dorm-duty-bot/internal/logging"
)

// Gateway is the outbound side of the chat channel: prompts with optional
// buttons, and document deliveries.
type Gateway interface {
	SendMessage(ctx context.Context, chatID string, text string, options []conversation.Option) error
	SendDocument(ctx context.Context, chatID string, delivery conversation.DocumentDelivery) error
}

// queueDepth bounds how many unprocessed events a single chat may buffer
// before Dispatch blocks on it.
const queueDepth = 16

type queuedEvent struct {
	ctx   context.Context
	event conversation.Event
}

// chatQueue feeds one chat's events to its worker in arrival order. pending
// is guarded by the dispatcher mutex and counts queued-but-unprocessed
// events; the worker exits and the queue is evicted when it reaches zero.
type chatQueue struct {
	events  chan queuedEvent
	pending int
}

// Dispatcher routes inbound events into the conversation engine and relays
// the responses back through the gateway. Each chat gets a FIFO queue drained
// by a single worker, so events for one chat are processed strictly in the
// order Dispatch received them while different chats proceed concurrently.
type Dispatcher struct {
	engine  *conversation.Engine
	gateway Gateway
	logger  *slog.Logger

	mu     sync.Mutex
	queues map[string]*chatQueue
	wg     sync.WaitGroup
}

// NewDispatcher wires the dispatcher's collaborators.
func NewDispatcher(engine *conversation.Engine, gateway Gateway, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		engine:  engine,
		gateway: gateway,
		logger:  logger,
		queues:  make(map[string]*chatQueue),
	}
}

// Dispatch appends the event to its chat's queue and returns once it is
// queued. The chat's worker admits the next event only after the previous one
// has been handled and its responses sent, so callers that invoke Dispatch in
// arrival order get that order preserved per chat.
func (d *Dispatcher) Dispatch(ctx context.Context, event conversation.Event) {
	d.mu.Lock()
	queue, ok := d.queues[event.ChatID]
	if !ok {
		queue = &chatQueue{events: make(chan queuedEvent, queueDepth)}
		d.queues[event.ChatID] = queue
		go d.drain(event.ChatID, queue)
	}
	queue.pending++
	d.mu.Unlock()

	d.wg.Add(1)
	queue.events <- queuedEvent{ctx: ctx, event: event}
}

// Wait blocks until every dispatched event has been processed.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// drain processes one chat's events in order. The worker retires once the
// queue runs dry, so idle chats do not pin a goroutine or a map entry.
func (d *Dispatcher) drain(chatID string, queue *chatQueue) {
	for {
		item := <-queue.events
		d.process(item.ctx, item.event)
		d.wg.Done()

		d.mu.Lock()
		queue.pending--
		if queue.pending == 0 {
			delete(d.queues, chatID)
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}
}

func (d *Dispatcher) process(ctx context.Context, event conversation.Event) {
	ctx = logging.ContextWithLogger(ctx, logging.WithChat(ctx, d.logger, event.ChatID))

	responses, err := d.engine.Handle(ctx, event)
	if err != nil {
		d.logger.Error("event handling failed", "chat_id", event.ChatID, "error", err)
	}

	for _, response := range responses {
		if response.Document != nil {
			if err := d.gateway.SendDocument(ctx, event.ChatID, *response.Document); err != nil {
				d.logger.Error("document delivery failed", "chat_id", event.ChatID, "error", err)
			}
			continue
		}
		if response.Text == "" {
			continue
		}
		if err := d.gateway.SendMessage(ctx, event.ChatID, response.Text, response.Options); err != nil {
			d.logger.Error("message delivery failed", "chat_id", event.ChatID, "error", err)
		}
	}
}
