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
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/livekit/livestream-server/pkg/config"
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

// teardown records release calls across collaborators, in order
type teardown struct {
	lock  sync.Mutex
	steps []string
}

func (td *teardown) record(step string) {
	td.lock.Lock()
	td.steps = append(td.steps, step)
	td.lock.Unlock()
}

func (td *teardown) Steps() []string {
	td.lock.Lock()
	defer td.lock.Unlock()
	return append([]string{}, td.steps...)
}

type testRouter struct {
	*typesfakes.FakeMediaRouter
	teardown *teardown

	lock  sync.Mutex
	plain []*typesfakes.FakePlainTransport
}

func newTestRouter() *testRouter {
	r := &testRouter{
		FakeMediaRouter: &typesfakes.FakeMediaRouter{},
		teardown:        &teardown{},
	}
	r.RTPCapabilitiesReturns(json.RawMessage(`{"codecs":[]}`))
	r.DiedReturns(make(chan struct{}))
	r.CreateWebRTCTransportStub = func(_ context.Context, _ types.WebRTCTransportOptions) (types.WebRTCTransport, error) {
		return r.newWebRTCTransport(), nil
	}
	r.CreatePlainTransportStub = func(_ context.Context, _ types.PlainTransportOptions) (types.PlainTransport, error) {
		return r.newPlainTransport(), nil
	}
	return r
}

func (r *testRouter) newWebRTCTransport() *typesfakes.FakeWebRTCTransport {
	t := &typesfakes.FakeWebRTCTransport{}
	id := nextID("TR")
	t.IDReturns(id)
	t.ParametersReturns(types.TransportParameters{
		ID:             id,
		ICEParameters:  json.RawMessage(`{"usernameFragment":"u","password":"p"}`),
		ICECandidates:  json.RawMessage(`[]`),
		DTLSParameters: json.RawMessage(`{"role":"auto","fingerprints":[]}`),
	})
	t.ProduceStub = func(_ context.Context, kind types.MediaKind, _ json.RawMessage) (types.Producer, error) {
		p := &typesfakes.FakeProducer{}
		p.IDReturns(nextID("PR"))
		p.KindReturns(kind)
		return p, nil
	}
	t.ConsumeStub = func(_ context.Context, producer types.Producer, _ json.RawMessage) (types.Consumer, error) {
		c := &typesfakes.FakeConsumer{}
		c.IDReturns(nextID("CO"))
		c.ProducerIDReturns(producer.ID())
		c.KindReturns(producer.Kind())
		c.RTPParametersReturns(json.RawMessage(`{"codecs":[]}`))
		return c, nil
	}
	return t
}

func (r *testRouter) newPlainTransport() *typesfakes.FakePlainTransport {
	t := &typesfakes.FakePlainTransport{}
	t.IDReturns(nextID("PT"))
	var port atomic.Int32
	port.Store(20000)
	t.ConsumeStub = func(_ context.Context, producer types.Producer) (types.EgressConsumer, error) {
		c := &typesfakes.FakeEgressConsumer{}
		c.IDReturns(nextID("EC"))
		c.ProducerIDReturns(producer.ID())
		c.KindReturns(producer.Kind())
		c.PortReturns(int(port.Add(2)))
		c.CodecReturns(types.CodecParameters{MimeType: "video/VP8", PayloadType: 96, ClockRate: 90000})
		return c, nil
	}
	t.CloseStub = func() error {
		r.teardown.record("transport")
		return nil
	}
	r.lock.Lock()
	r.plain = append(r.plain, t)
	r.lock.Unlock()
	return t
}

func (r *testRouter) plainTransports() []*typesfakes.FakePlainTransport {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*typesfakes.FakePlainTransport{}, r.plain...)
}

type testLauncher struct {
	*typesfakes.FakeTranscoderLauncher

	lock        sync.Mutex
	transcoders []*typesfakes.FakeTranscoder
}

func newTestLauncher(td *teardown) *testLauncher {
	l := &testLauncher{FakeTranscoderLauncher: &typesfakes.FakeTranscoderLauncher{}}
	l.LaunchStub = func(context.Context, types.TranscodeRequest) (types.Transcoder, error) {
		done := make(chan struct{})
		var once sync.Once
		tr := &typesfakes.FakeTranscoder{}
		tr.DoneReturns(done)
		tr.StopStub = func(context.Context) error {
			td.record("transcoder")
			once.Do(func() { close(done) })
			return nil
		}
		l.lock.Lock()
		l.transcoders = append(l.transcoders, tr)
		l.lock.Unlock()
		return tr, nil
	}
	return l
}

func (l *testLauncher) transcoder(i int) *typesfakes.FakeTranscoder {
	l.lock.Lock()
	defer l.lock.Unlock()
	if i >= len(l.transcoders) {
		return nil
	}
	return l.transcoders[i]
}

func newTestConfig() *config.Config {
	return &config.Config{
		Egress: config.EgressConfig{
			Enabled:      true,
			PlaylistName: "index.m3u8",
			FlushTimeout: time.Second,
			Workers:      2,
		},
		HLS: config.HLSConfig{
			BaseURL: "http://localhost:7880/hls",
		},
		Room: config.RoomConfig{
			MaxRoomIDLength:    32,
			EgressSetupTimeout: time.Second,
		},
	}
}
