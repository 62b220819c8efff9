package eventbus

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAMQPQueueName_UniquePerHandler(t *testing.T) {
	b := &AMQPEventBus{group: "finhealth.api", registered: make(map[string]int)}

	assert.Equal(t, "finhealth.api.Budgets.Changed", b.queueName("Budgets.Changed"))
	assert.Equal(t, "finhealth.api.Budgets.Changed.2", b.queueName("Budgets.Changed"))
	assert.Equal(t, "finhealth.api.Goals.Changed", b.queueName("Goals.Changed"))
}

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	ret := m.Called(name)
	return amqp.Queue{Name: name}, ret.Error(0)
}

func (m *mockChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	return m.Called(name, key, exchange).Error(0)
}

func (m *mockChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	return m.Called(prefetchCount).Error(0)
}

func (m *mockChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	ret := m.Called(queue)
	d, _ := ret.Get(0).(<-chan amqp.Delivery)
	return d, ret.Error(1)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestStartConsumer_ClosesChannelOnFailure(t *testing.T) {
	boom := errors.New("boom")
	const queue, eventType = "finhealth.api.Goals.Changed", "Goals.Changed"
	b := &AMQPEventBus{exchange: "finhealth.events"}

	tests := []struct {
		name  string
		setup func(ch *mockChannel)
	}{
		{"declare", func(ch *mockChannel) {
			ch.On("QueueDeclare", queue).Return(boom)
		}},
		{"bind", func(ch *mockChannel) {
			ch.On("QueueDeclare", queue).Return(nil)
			ch.On("QueueBind", queue, eventType, "finhealth.events").Return(boom)
		}},
		{"qos", func(ch *mockChannel) {
			ch.On("QueueDeclare", queue).Return(nil)
			ch.On("QueueBind", queue, eventType, "finhealth.events").Return(nil)
			ch.On("Qos", 1).Return(boom)
		}},
		{"consume", func(ch *mockChannel) {
			ch.On("QueueDeclare", queue).Return(nil)
			ch.On("QueueBind", queue, eventType, "finhealth.events").Return(nil)
			ch.On("Qos", 1).Return(nil)
			ch.On("Consume", queue).Return(nil, boom)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := new(mockChannel)
			tt.setup(ch)
			ch.On("Close").Return(nil).Once()

			deliveries, err := b.startConsumer(ch, queue, eventType)
			assert.ErrorIs(t, err, boom)
			assert.Nil(t, deliveries)
			ch.AssertExpectations(t)
		})
	}
}

func TestStartConsumer_KeepsChannelOpenOnSuccess(t *testing.T) {
	const queue, eventType = "finhealth.api.Goals.Changed", "Goals.Changed"
	b := &AMQPEventBus{exchange: "finhealth.events"}
	var deliveries <-chan amqp.Delivery = make(chan amqp.Delivery)

	ch := new(mockChannel)
	ch.On("QueueDeclare", queue).Return(nil)
	ch.On("QueueBind", queue, eventType, "finhealth.events").Return(nil)
	ch.On("Qos", 1).Return(nil)
	ch.On("Consume", queue).Return(deliveries, nil)

	got, err := b.startConsumer(ch, queue, eventType)
	require.NoError(t, err)
	assert.Equal(t, deliveries, got)
	ch.AssertNotCalled(t, "Close")
}
