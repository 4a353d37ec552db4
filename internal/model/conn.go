package model

import (
	"sync"

	"github.com/benbeisheim/botchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// sendBuffer is how many messages may wait for a slow connection before it is dropped.
const sendBuffer = 32

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// connWriter is the only goroutine that writes to its connection. Messages go
// out in the order they were queued.
type connWriter struct {
	conn Conn
	send chan ws.Message
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newConnWriter(conn Conn, label string) *connWriter {
	w := &connWriter{
		conn: conn,
		send: make(chan ws.Message, sendBuffer),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run(label)
	return w
}

func (w *connWriter) run(label string) {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case msg := <-w.send:
			if err := w.conn.WriteJSON(msg); err != nil {
				log.Warnf("%s: write failed: %v", label, err)
				w.drop()
				return
			}
		}
	}
}

// queue reports false when the writer is stopped or its buffer is full.
func (w *connWriter) queue(msg ws.Message) bool {
	select {
	case <-w.quit:
		return false
	default:
	}
	select {
	case w.send <- msg:
		return true
	default:
		return false
	}
}

// drop stops the writer and closes the connection so its read loop ends.
func (w *connWriter) drop() {
	w.once.Do(func() {
		close(w.quit)
		_ = w.conn.Close()
	})
}

// stop ends the writer without closing the connection and waits until no
// write is in flight.
func (w *connWriter) stop() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}
