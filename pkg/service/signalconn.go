// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gammazero/deque"
	"github.com/gorilla/websocket"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const (
	pingFrequency = 10 * time.Second
	pingTimeout   = 2 * time.Second
	writeTimeout  = 5 * time.Second

	maxQueuedMessages = 256
)

type WebsocketClient interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// WSSignalConnection queues outbound messages and drains them from a single
// writer, so a slow socket never blocks the room that broadcasts to it.
type WSSignalConnection struct {
	conn   WebsocketClient
	logger logger.Logger

	lock  sync.Mutex
	queue deque.Deque[*types.Message]
	wake  chan struct{}

	closing core.Fuse
	closed  core.Fuse
}

func NewWSSignalConnection(conn WebsocketClient, l logger.Logger) *WSSignalConnection {
	if l == nil {
		l = logger.GetLogger()
	}
	c := &WSSignalConnection{
		conn:   conn,
		logger: l,
		wake:   make(chan struct{}, 1),
	}
	c.queue.SetMinCapacity(4)
	go c.writeWorker()
	go c.pingWorker()
	return c
}

// ReadMessage blocks until the next envelope arrives. Frames that are not
// text or binary are skipped.
func (c *WSSignalConnection) ReadMessage() (*types.Message, int, error) {
	for {
		messageType, payload, err := c.conn.ReadMessage()
		if err != nil {
			return nil, 0, err
		}
		switch messageType {
		case websocket.TextMessage, websocket.BinaryMessage:
			msg, err := parseFrame(payload)
			return msg, len(payload), err
		default:
			c.logger.Debugw("unsupported message", "message", messageType)
		}
	}
}

func (c *WSSignalConnection) WriteMessage(msg *types.Message) error {
	if c.closing.IsBroken() {
		return ErrSignalConnClosed
	}

	c.lock.Lock()
	if c.queue.Len() >= maxQueuedMessages {
		c.lock.Unlock()
		c.logger.Warnw("signal queue full, closing connection", ErrSignalQueueFull)
		c.Close()
		return ErrSignalQueueFull
	}
	c.queue.PushBack(msg)
	c.lock.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close flushes queued messages in the background, then closes the socket.
func (c *WSSignalConnection) Close() {
	c.closing.Break()
}

func (c *WSSignalConnection) Closed() <-chan struct{} {
	return c.closed.Watch()
}

func (c *WSSignalConnection) writeWorker() {
	defer func() {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(pingTimeout),
		)
		_ = c.conn.Close()
		c.closed.Break()
	}()

	closing := c.closing.Watch()
	for {
		select {
		case <-c.wake:
			if err := c.flush(); err != nil {
				if !IsWebSocketCloseError(err) {
					c.logger.Warnw("could not write signal message", err)
				}
				return
			}
		case <-closing:
			_ = c.flush()
			return
		}
	}
}

func (c *WSSignalConnection) flush() error {
	for {
		c.lock.Lock()
		if c.queue.Len() == 0 {
			c.lock.Unlock()
			return nil
		}
		msg := c.queue.PopFront()
		c.lock.Unlock()

		payload, err := json.Marshal(msg)
		if err != nil {
			c.logger.Warnw("could not encode signal message", err, "event", msg.Event)
			continue
		}
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return err
		}
	}
}

func (c *WSSignalConnection) pingWorker() {
	ticker := time.NewTicker(pingFrequency)
	defer ticker.Stop()

	closed := c.closed.Watch()
	for {
		select {
		case <-ticker.C:
			err := c.conn.WriteControl(websocket.PingMessage, []byte(""), time.Now().Add(pingTimeout))
			if err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

// IsWebSocketCloseError checks that error is normal/expected closure
func IsWebSocketCloseError(err error) bool {
	return errors.Is(err, io.EOF) ||
		strings.HasSuffix(err.Error(), "use of closed network connection") ||
		strings.HasSuffix(err.Error(), "connection reset by peer") ||
		websocket.IsCloseError(
			err,
			websocket.CloseAbnormalClosure,
			websocket.CloseGoingAway,
			websocket.CloseNormalClosure,
			websocket.CloseNoStatusReceived,
		)
}
