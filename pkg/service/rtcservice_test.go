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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

type testClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func newTestSignalServer(t *testing.T) (*httptest.Server, *RoomManager, *RTCService) {
	router := newTestRouter()
	conf := newTestConfig()
	conf.Egress.Enabled = false
	rm := NewRoomManager(conf, router, nil, NewLocalRoomStore())
	svc := NewRTCService(conf, rm)

	mux := http.NewServeMux()
	mux.Handle("/ws", svc)
	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		svc.Stop()
		rm.Stop()
		ts.Close()
	})
	return ts, rm, svc
}

func dial(t *testing.T, ts *httptest.Server) *testClient {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(event types.Event, data any) {
	require.NoError(c.t, c.conn.WriteJSON(types.NewMessage(event, data)))
}

// expect reads until the given event arrives, skipping others
func (c *testClient) expect(event types.Event, v any) {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(testWaitTimeout)))
	for {
		_, payload, err := c.conn.ReadMessage()
		require.NoError(c.t, err, "waiting for %s", event)
		msg, err := types.ParseMessage(payload)
		require.NoError(c.t, err)
		if msg.Event != event {
			continue
		}
		if v != nil {
			require.NoError(c.t, msg.Decode(v))
		}
		return
	}
}

func (c *testClient) expectError(request types.Event) types.ErrorMessage {
	c.t.Helper()
	var e types.ErrorMessage
	c.expect(types.EventError, &e)
	require.Equal(c.t, request, e.Request)
	return e
}

var connectParams = map[string]any{
	"dtlsParameters": map[string]any{"role": "client", "fingerprints": []any{}},
	"iceParameters":  map[string]any{"usernameFragment": "u", "password": "p"},
}

func TestRTCService_Broadcast(t *testing.T) {
	ts, rm, _ := newTestSignalServer(t)

	// publisher
	pub := dial(t, ts)
	pub.send(types.EventJoinRoom, "r1")
	var caps types.RouterCapabilities
	pub.expect(types.EventRouterCapabilities, &caps)
	require.JSONEq(t, `{"codecs":[]}`, string(caps.RTPCapabilities))

	pub.send(types.EventCreateTransport, types.CreateTransportRequest{RoomID: "r1", Direction: types.DirectionSend})
	var created types.TransportCreated
	pub.expect(types.EventTransportCreated, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, types.DirectionSend, created.Direction)
	require.NotEmpty(t, created.DTLSParameters)

	// only one transport per direction
	pub.send(types.EventCreateTransport, types.CreateTransportRequest{RoomID: "r1"})
	require.Equal(t, "invalid_argument", pub.expectError(types.EventCreateTransport).Code)

	// not connected yet
	pub.send(types.EventProduce, map[string]any{"roomId": "r1", "kind": "video", "rtpParameters": map[string]any{}})
	require.Equal(t, "not_ready", pub.expectError(types.EventProduce).Code)

	req := map[string]any{"roomId": "r1"}
	for k, v := range connectParams {
		req[k] = v
	}
	pub.send(types.EventConnectTransport, req)
	var connected types.TransportConnected
	pub.expect(types.EventTransportConnected, &connected)
	require.Equal(t, created.ID, connected.ID)

	pub.send(types.EventProduce, map[string]any{"roomId": "r1", "kind": "video", "rtpParameters": map[string]any{}})
	var produced types.ProducerCreated
	pub.expect(types.EventProducerCreated, &produced)
	require.Equal(t, types.MediaKindVideo, produced.Kind)

	// viewer learns about the existing producer on join
	sub := dial(t, ts)
	sub.send(types.EventJoinRoom, types.JoinRoomRequest{RoomID: "r1"})
	sub.expect(types.EventRouterCapabilities, nil)
	var np types.NewProducer
	sub.expect(types.EventNewProducer, &np)
	require.Equal(t, produced.ProducerID, np.ProducerID)
	require.Equal(t, types.MediaKindVideo, np.Kind)

	sub.send(types.EventCreateTransport, types.CreateTransportRequest{RoomID: "r1", Direction: types.DirectionRecv})
	sub.expect(types.EventTransportCreated, nil)
	sub.send(types.EventConsume, types.ConsumeRequest{RoomID: "r1", ProducerID: np.ProducerID, RTPCapabilities: json.RawMessage(`{}`)})
	var consumed types.ConsumerCreated
	sub.expect(types.EventConsumerCreated, &consumed)
	require.Equal(t, np.ProducerID, consumed.ProducerID)
	require.Equal(t, np.ParticipantID, consumed.ParticipantID)

	sub.send(types.EventConsume, types.ConsumeRequest{RoomID: "r1", ProducerID: np.ProducerID})
	require.Equal(t, "invalid_argument", sub.expectError(types.EventConsume).Code)

	// room id must match the joined room
	sub.send(types.EventConsume, types.ConsumeRequest{RoomID: "r2", ProducerID: np.ProducerID})
	sub.expectError(types.EventConsume)

	// publisher drops, viewer is told
	require.NoError(t, pub.conn.Close())
	var closed types.ProducerClosed
	sub.expect(types.EventProducerClosed, &closed)
	require.Equal(t, np.ProducerID, closed.ProducerID)

	require.Eventually(t, func() bool {
		return rm.GetRoom("r1").NumParticipants() == 1
	}, testWaitTimeout, 10*time.Millisecond)

	sub.send(types.EventLeaveRoom, types.LeaveRoomRequest{RoomID: "r1"})
	var left types.RoomLeft
	sub.expect(types.EventRoomLeft, &left)
	require.Equal(t, "r1", left.RoomID)
	require.Nil(t, rm.GetRoom("r1"))
}

func TestRTCService_Errors(t *testing.T) {
	ts, _, _ := newTestSignalServer(t)
	c := dial(t, ts)

	c.send(types.EventCreateTransport, types.CreateTransportRequest{RoomID: "r1"})
	require.Equal(t, "not_ready", c.expectError(types.EventCreateTransport).Code)

	c.send("bogus", nil)
	require.Equal(t, "invalid_argument", c.expectError("bogus").Code)

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	e := c.expectError("")
	require.Equal(t, "invalid_argument", e.Code)
	require.NotEmpty(t, e.Message)

	c.send(types.EventJoinRoom, types.JoinRoomRequest{})
	require.Equal(t, "invalid_argument", c.expectError(types.EventJoinRoom).Code)

	// the connection survives every error
	c.send(types.EventJoinRoom, "r1")
	c.expect(types.EventRouterCapabilities, nil)
	c.send(types.EventJoinRoom, "r1")
	c.expectError(types.EventJoinRoom)
}

func TestRTCService_DisconnectCleansUp(t *testing.T) {
	ts, rm, svc := newTestSignalServer(t)
	c := dial(t, ts)
	c.send(types.EventJoinRoom, "r1")
	c.expect(types.EventRouterCapabilities, nil)
	require.Equal(t, 1, svc.NumConnections())

	require.NoError(t, c.conn.Close())
	require.Eventually(t, func() bool {
		return rm.GetRoom("r1") == nil && svc.NumConnections() == 0
	}, testWaitTimeout, 10*time.Millisecond)
}

func TestRTCService_StopClosesClients(t *testing.T) {
	ts, rm, svc := newTestSignalServer(t)
	c := dial(t, ts)
	c.send(types.EventJoinRoom, "r1")
	c.expect(types.EventRouterCapabilities, nil)

	svc.Stop()
	require.Zero(t, svc.NumConnections())
	require.Nil(t, rm.GetRoom("r1"))

	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(testWaitTimeout)))
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
