package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	sendBuffer = 256
)

// ErrSendBufferFull reports a peer that stopped consuming. The relay treats
// it like any other broken channel.
var ErrSendBufferFull = errors.New("ws: send buffer full")

// Client is a live websocket connection bound to one room. Outbound
// delivery goes through a buffered channel drained by WritePump so one
// slow peer never blocks the sender's relay loop.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues payload for the write pump. It never blocks: a full buffer
// means the peer is stalled and is reported as a transport failure.
func (c *Client) Send(payload []byte) error {
	select {
	case <-c.done:
		return errors.New("ws: connection closed")
	case c.send <- payload:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close is safe to call from any goroutine, any number of times.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// WritePump drains the send channel onto the wire and keeps the connection
// alive with pings. It owns all writes to the underlying connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadMessage blocks for the next inbound payload, refreshing the read
// deadline on pong traffic.
func (c *Client) ReadMessage() ([]byte, error) {
	_, payload, err := c.conn.ReadMessage()
	return payload, err
}

// ConfigureRead installs the read limit and pong handler. Called once
// before the read loop starts.
func (c *Client) ConfigureRead() {
	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
}
