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

package rtc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/rtc/types/typesfakes"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

func init() {
	prometheus.Init("test")
}

const testWaitTimeout = 5 * time.Second

var idCounter atomic.Uint32

func nextID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, idCounter.Add(1))
}

// testRouter is a fake engine whose transports hand out fake producers and
// consumers. Everything created is kept so tests can check it was released.
type testRouter struct {
	*typesfakes.FakeMediaRouter

	lock       sync.Mutex
	transports []*typesfakes.FakeWebRTCTransport
	producers  []*typesfakes.FakeProducer
	consumers  []*typesfakes.FakeConsumer
	plain      []*typesfakes.FakePlainTransport
	egress     []*typesfakes.FakeEgressConsumer
}

func newTestRouter() *testRouter {
	r := &testRouter{FakeMediaRouter: &typesfakes.FakeMediaRouter{}}
	r.RTPCapabilitiesReturns(json.RawMessage(`{"codecs":[]}`))
	r.CreateWebRTCTransportStub = func(_ context.Context, opts types.WebRTCTransportOptions) (types.WebRTCTransport, error) {
		return r.newWebRTCTransport(opts), nil
	}
	r.CreatePlainTransportStub = func(_ context.Context, _ types.PlainTransportOptions) (types.PlainTransport, error) {
		return r.newPlainTransport(), nil
	}
	return r
}

func (r *testRouter) newWebRTCTransport(opts types.WebRTCTransportOptions) *typesfakes.FakeWebRTCTransport {
	t := &typesfakes.FakeWebRTCTransport{}
	id := nextID("TR")
	t.IDReturns(id)
	t.ParametersReturns(types.TransportParameters{ID: id, ICEParameters: json.RawMessage(`{}`)})
	t.ProduceStub = func(_ context.Context, kind types.MediaKind, _ json.RawMessage) (types.Producer, error) {
		p := &typesfakes.FakeProducer{}
		p.IDReturns(nextID("PR"))
		p.KindReturns(kind)
		r.lock.Lock()
		r.producers = append(r.producers, p)
		r.lock.Unlock()
		return p, nil
	}
	t.ConsumeStub = func(_ context.Context, producer types.Producer, _ json.RawMessage) (types.Consumer, error) {
		c := &typesfakes.FakeConsumer{}
		c.IDReturns(nextID("CO"))
		c.ProducerIDReturns(producer.ID())
		c.KindReturns(producer.Kind())
		r.lock.Lock()
		r.consumers = append(r.consumers, c)
		r.lock.Unlock()
		return c, nil
	}
	r.lock.Lock()
	r.transports = append(r.transports, t)
	r.lock.Unlock()
	return t
}

func (r *testRouter) newPlainTransport() *typesfakes.FakePlainTransport {
	t := &typesfakes.FakePlainTransport{}
	t.IDReturns(nextID("PT"))
	port := 20000
	var portLock sync.Mutex
	t.ConsumeStub = func(_ context.Context, producer types.Producer) (types.EgressConsumer, error) {
		portLock.Lock()
		port += 2
		p := port
		portLock.Unlock()

		c := &typesfakes.FakeEgressConsumer{}
		c.IDReturns(nextID("EC"))
		c.ProducerIDReturns(producer.ID())
		c.KindReturns(producer.Kind())
		c.PortReturns(p)
		c.CodecReturns(types.CodecParameters{MimeType: "video/VP8", PayloadType: 96, ClockRate: 90000})
		r.lock.Lock()
		r.egress = append(r.egress, c)
		r.lock.Unlock()
		return c, nil
	}
	r.lock.Lock()
	r.plain = append(r.plain, t)
	r.lock.Unlock()
	return t
}

func (r *testRouter) createdConsumers() []*typesfakes.FakeConsumer {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*typesfakes.FakeConsumer{}, r.consumers...)
}

func (r *testRouter) createdEgressConsumers() []*typesfakes.FakeEgressConsumer {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*typesfakes.FakeEgressConsumer{}, r.egress...)
}

// testTranscoder runs until stopped or until exit is called.
type testTranscoder struct {
	*typesfakes.FakeTranscoder
	done chan struct{}
	once sync.Once
}

func newTestTranscoder() *testTranscoder {
	tr := &testTranscoder{FakeTranscoder: &typesfakes.FakeTranscoder{}, done: make(chan struct{})}
	tr.DoneReturns(tr.done)
	tr.StopStub = func(context.Context) error {
		tr.exit()
		return nil
	}
	return tr
}

func (tr *testTranscoder) exit() {
	tr.once.Do(func() { close(tr.done) })
}

type testLauncher struct {
	*typesfakes.FakeTranscoderLauncher

	lock        sync.Mutex
	transcoders []*testTranscoder
}

func newTestLauncher() *testLauncher {
	l := &testLauncher{FakeTranscoderLauncher: &typesfakes.FakeTranscoderLauncher{}}
	l.LaunchStub = func(context.Context, types.TranscodeRequest) (types.Transcoder, error) {
		tr := newTestTranscoder()
		l.lock.Lock()
		l.transcoders = append(l.transcoders, tr)
		l.lock.Unlock()
		return tr, nil
	}
	return l
}

func (l *testLauncher) transcoder(i int) *testTranscoder {
	l.lock.Lock()
	defer l.lock.Unlock()
	if i >= len(l.transcoders) {
		return nil
	}
	return l.transcoders[i]
}

func newTestParticipant(room *Room, router types.MediaRouter) (*Participant, *typesfakes.FakeMessageSink) {
	sink := &typesfakes.FakeMessageSink{}
	p := NewParticipant(ParticipantParams{
		ID:     nextID("PA"),
		RoomID: room.ID(),
		Sink:   sink,
		Router: router,
	})
	return p, sink
}

func newTestRoom(router types.MediaRouter, launcher types.TranscoderLauncher) *Room {
	return NewRoom(RoomParams{
		ID:     nextID("room"),
		Router: router,
		Egress: EgressParams{
			Enabled:      launcher != nil,
			Launcher:     launcher,
			SetupTimeout: time.Second,
			FlushTimeout: time.Second,
		},
	})
}

// joinConnected joins p and brings both of its transports to CONNECTED.
func joinConnected(t *testing.T, room *Room, p *Participant) {
	require.NoError(t, room.Join(p))
	for _, dir := range []types.Direction{types.DirectionSend, types.DirectionRecv} {
		_, err := p.CreateTransport(context.Background(), dir)
		require.NoError(t, err)
		_, err = p.ConnectTransport(context.Background(), dir, types.ConnectParameters{DTLSParameters: json.RawMessage(`{}`)})
		require.NoError(t, err)
	}
}

func sentEvents(sink *typesfakes.FakeMessageSink) []types.Event {
	events := make([]types.Event, 0, sink.WriteMessageCallCount())
	for i := 0; i < sink.WriteMessageCallCount(); i++ {
		events = append(events, sink.WriteMessageArgsForCall(i).Event)
	}
	return events
}

func lastMessage(t *testing.T, sink *typesfakes.FakeMessageSink, event types.Event, v any) {
	for i := sink.WriteMessageCallCount() - 1; i >= 0; i-- {
		msg := sink.WriteMessageArgsForCall(i)
		if msg.Event == event {
			require.NoError(t, msg.Decode(v))
			return
		}
	}
	require.Failf(t, "message not sent", "event %s", event)
}
