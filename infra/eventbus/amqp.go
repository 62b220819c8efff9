package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/finhealth/pkg/eventbus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPEventBus publishes events to a RabbitMQ topic exchange, using the event
// type as routing key. Each registered handler consumes from its own durable
// queue named "<group>.<eventType>", so separate groups each see every event.
type AMQPEventBus struct {
	conn          *amqp.Connection
	pubCh         *amqp.Channel
	pubMu         sync.Mutex
	exchange      string
	group         string
	typeFactories map[string]func() eventbus.Event
	logger        *slog.Logger

	regMu      sync.Mutex
	registered map[string]int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithAMQP dials the broker and declares the exchange.
func NewWithAMQP(
	url, exchange, group string,
	types map[string]func() eventbus.Event,
	logger *slog.Logger,
) (*AMQPEventBus, error) {
	if url == "" || exchange == "" || group == "" {
		return nil, errors.New("amqp event bus: url, exchange and group are required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp event bus: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp event bus: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp event bus: declare exchange: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &AMQPEventBus{
		conn:          conn,
		pubCh:         ch,
		exchange:      exchange,
		group:         group,
		typeFactories: types,
		registered:    make(map[string]int),
		logger:        logger.With("component", "amqp-event-bus", "group", group),
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

// Emit publishes the event as a persistent JSON envelope.
func (b *AMQPEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	body, err := encodeEnvelope(event)
	if err != nil {
		b.logger.Error("failed to encode event", "error", err, "type", event.Type())
		return fmt.Errorf("amqp event bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	b.pubMu.Lock()
	err = b.pubCh.PublishWithContext(
		ctx,
		b.exchange,   // exchange
		event.Type(), // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Type:         event.Type(),
			Body:         body,
		},
	)
	b.pubMu.Unlock()
	if err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("amqp event bus: publish: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type())
	return nil
}

// Register declares and binds the handler's queue and starts a consumer goroutine.
// A second handler for the same type in one group gets a ".2" queue suffix
// so both see every event. Setup failures are logged; the handler is then
// never called.
func (b *AMQPEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	queue := b.queueName(eventType)
	deliveries, err := b.consume(queue, eventType)
	if err != nil {
		b.logger.Error("failed to register handler", "error", err, "event_type", eventType, "queue", queue)
		return
	}
	b.logger.Info("handler registered", "event_type", eventType, "queue", queue)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-b.ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					b.logger.Warn("delivery channel closed", "queue", queue)
					return
				}
				b.handle(d, handler)
			}
		}
	}()
}

func (b *AMQPEventBus) queueName(eventType string) string {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	b.registered[eventType]++
	queue := b.group + "." + eventType
	if n := b.registered[eventType]; n > 1 {
		queue = fmt.Sprintf("%s.%d", queue, n)
	}
	return queue
}

// consumerChannel is the part of *amqp.Channel a consumer needs.
type consumerChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

func (b *AMQPEventBus) consume(queue, eventType string) (<-chan amqp.Delivery, error) {
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return b.startConsumer(ch, queue, eventType)
}

// startConsumer declares and binds queue on ch and starts consuming. ch is
// closed when any step fails.
func (b *AMQPEventBus) startConsumer(ch consumerChannel, queue, eventType string) (deliveries <-chan amqp.Delivery, err error) {
	defer func() {
		if err != nil {
			_ = ch.Close()
		}
	}()
	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue, eventType, b.exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}
	deliveries, err = ch.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume: %w", err)
	}
	return deliveries, nil
}

func (b *AMQPEventBus) handle(d amqp.Delivery, handler eventbus.HandlerFunc) {
	evt, err := decodeEnvelope(d.Body, b.typeFactories)
	if err != nil {
		b.logger.Error("dropping undecodable message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "event_type", evt.Type())
			_ = d.Nack(false, false)
		}
	}()
	if err := handler(b.ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "event_type", evt.Type())
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	if err := d.Ack(false); err != nil {
		b.logger.Error("failed to acknowledge message", "error", err, "event_type", evt.Type())
	}
}

// Close stops every consumer and closes the connection.
func (b *AMQPEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	if b.pubCh != nil {
		_ = b.pubCh.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

var _ eventbus.Bus = (*AMQPEventBus)(nil)
