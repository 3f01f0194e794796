package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-LaneBooking/internal/domain"
)

const (
	DefaultBufferSize     = 256
	DefaultDialTimeout    = 3 * time.Second
	DefaultPublishTimeout = 3 * time.Second
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Publisher публикует события бронирований в очередь RabbitMQ.
// PublishBookingConfirmed только ставит событие в буфер, отправкой занимается одна горутина,
// поэтому недоступный брокер не задерживает ответ на бронирование
type Publisher struct {
	url            string
	queue          string
	dialTimeout    time.Duration
	publishTimeout time.Duration
	logger         Logger

	events    chan domain.BookingConfirmedEvent
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	// Используются только горутиной отправки
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string, logger Logger) *Publisher {
	p := newPublisher(url, queue, DefaultBufferSize, DefaultDialTimeout, DefaultPublishTimeout, logger)
	p.start()
	return p
}

func newPublisher(url, queue string, bufferSize int, dialTimeout, publishTimeout time.Duration, logger Logger) *Publisher {
	return &Publisher{
		url:            url,
		queue:          queue,
		dialTimeout:    dialTimeout,
		publishTimeout: publishTimeout,
		logger:         logger,
		events:         make(chan domain.BookingConfirmedEvent, bufferSize),
		done:           make(chan struct{}),
	}
}

func (p *Publisher) start() {
	p.wg.Add(1)
	go p.run()
}

// PublishBookingConfirmed ставит событие в очередь на отправку и не блокируется
func (p *Publisher) PublishBookingConfirmed(_ context.Context, event domain.BookingConfirmedEvent) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}

	select {
	case p.events <- event:
		return nil
	default:
		return fmt.Errorf("%w: booking id=%s", ErrBufferFull, event.BookingID)
	}
}

// Close останавливает отправку. События из буфера отправляются, пока брокер отвечает
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	defer p.reset()

	for {
		select {
		case <-p.done:
			p.flush()
			return
		case event := <-p.events:
			if err := p.send(event); err != nil {
				p.logger.Warn("Events: booking id=%s not published: %v", event.BookingID, err)
			}
		}
	}
}

// flush отправляет оставшиеся события до первой ошибки
func (p *Publisher) flush() {
	for {
		select {
		case event := <-p.events:
			if err := p.send(event); err != nil {
				dropped := len(p.events) + 1
				p.logger.Warn("Events: dropping %d unpublished events on shutdown: %v", dropped, err)
				return
			}
		default:
			return
		}
	}
}

func (p *Publisher) send(event domain.BookingConfirmedEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	if err := p.connect(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.publishTimeout)
	defer cancel()

	// Пустой exchange: routing key совпадает с именем очереди
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

func (p *Publisher) connect() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	// Таймаут покрывает и TCP-подключение, и AMQP-рукопожатие
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	// durable, чтобы сообщения пережили перезапуск брокера
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: declare queue %s: %v", ErrConnect, p.queue, err)
	}

	p.conn, p.ch = conn, ch
	p.logger.Info("Events: connected, queue=%s", p.queue)
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func newPublishing(event domain.BookingConfirmedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID.String(),
		Type:         "booking.confirmed",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

// Noop публикатор для окружений без брокера
type Noop struct{}

func (Noop) PublishBookingConfirmed(context.Context, domain.BookingConfirmedEvent) error {
	return nil
}
