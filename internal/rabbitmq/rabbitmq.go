package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	q, err := m.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return m.ch.Consume(q.Name, "", false, false, false, false, nil)
}

// ConsumeExchange binds an exclusive queue to a fanout exchange and consumes it.
func (m *MQConn) ConsumeExchange(exchange string) (<-chan amqp.Delivery, error) {
	if err := m.ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return nil, err
	}

	q, err := m.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, err
	}

	if err := m.ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		return nil, err
	}

	return m.ch.Consume(q.Name, "", false, false, false, false, nil)
}

func (m *MQConn) Close() error {
	if err := m.ch.Close(); err != nil {
		return err
	}
	return m.conn.Close()
}
