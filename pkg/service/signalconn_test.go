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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// blockingClient holds every write until released
type blockingClient struct {
	release chan struct{}

	lock    sync.Mutex
	written []*types.Message
	closed  bool
}

func newBlockingClient() *blockingClient {
	return &blockingClient{release: make(chan struct{})}
}

func (c *blockingClient) ReadMessage() (int, []byte, error) {
	return 0, nil, errors.New("not implemented")
}

func (c *blockingClient) WriteMessage(_ int, data []byte) error {
	<-c.release
	msg, err := types.ParseMessage(data)
	if err != nil {
		return err
	}
	c.lock.Lock()
	c.written = append(c.written, msg)
	c.lock.Unlock()
	return nil
}

func (c *blockingClient) WriteControl(int, []byte, time.Time) error {
	return nil
}

func (c *blockingClient) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *blockingClient) Close() error {
	c.lock.Lock()
	c.closed = true
	c.lock.Unlock()
	return nil
}

func (c *blockingClient) events() []types.Event {
	c.lock.Lock()
	defer c.lock.Unlock()
	events := make([]types.Event, 0, len(c.written))
	for _, m := range c.written {
		events = append(events, m.Event)
	}
	return events
}

func TestWSSignalConnection_FlushesOnClose(t *testing.T) {
	client := newBlockingClient()
	close(client.release)
	c := NewWSSignalConnection(client, nil)

	require.NoError(t, c.WriteMessage(types.NewMessage(types.EventRouterCapabilities, nil)))
	require.NoError(t, c.WriteMessage(types.NewMessage(types.EventNewProducer, nil)))
	require.NoError(t, c.WriteMessage(types.NewMessage(types.EventRoomLeft, nil)))
	c.Close()

	select {
	case <-c.Closed():
	case <-time.After(testWaitTimeout):
		t.Fatal("connection did not close")
	}
	require.Equal(t, []types.Event{
		types.EventRouterCapabilities,
		types.EventNewProducer,
		types.EventRoomLeft,
	}, client.events())
	require.True(t, client.closed)

	require.ErrorIs(t, c.WriteMessage(types.NewMessage(types.EventError, nil)), ErrSignalConnClosed)
}

func TestWSSignalConnection_SlowClient(t *testing.T) {
	client := newBlockingClient()
	c := NewWSSignalConnection(client, nil)

	var err error
	for i := 0; i < maxQueuedMessages+2 && err == nil; i++ {
		err = c.WriteMessage(types.NewMessage(types.EventNewProducer, nil))
	}
	require.ErrorIs(t, err, ErrSignalQueueFull)

	close(client.release)
	select {
	case <-c.Closed():
	case <-time.After(testWaitTimeout):
		t.Fatal("connection did not close")
	}
}

func TestIsWebSocketCloseError(t *testing.T) {
	require.True(t, IsWebSocketCloseError(&websocket.CloseError{Code: websocket.CloseGoingAway}))
	require.True(t, IsWebSocketCloseError(errors.New("read tcp: use of closed network connection")))
	require.False(t, IsWebSocketCloseError(errors.New("boom")))
}
