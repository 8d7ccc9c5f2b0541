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

package sfu

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/require"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

func newTestRouter(t *testing.T) *Router {
	conf := config.DefaultConfig
	conf.RTC.NodeIP = "127.0.0.1"
	conf.Egress.ListenIP = "127.0.0.1"
	conf.Egress.PortRangeStart = 41000
	conf.Egress.PortRangeEnd = 41010
	r, err := NewRouter(&conf, logger.GetLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// newTestProducer builds a producer without a receiver; tests push packets through writeRTP.
func newTestProducer(r *Router, kind types.MediaKind, keyFrames *atomic.Int32) *producer {
	codec := webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
		PayloadType:        96,
	}
	return &producer{
		id:        "PR_test",
		kind:      kind,
		codec:     codec,
		ssrc:      1234,
		transport: &webrtcTransport{router: r, logger: r.logger},
		writeRTCP: func(pkts []rtcp.Packet) error {
			for _, pkt := range pkts {
				if _, ok := pkt.(*rtcp.PictureLossIndication); ok {
					keyFrames.Add(1)
				}
			}
			return nil
		},
		logger: r.logger,
		sinks:  make(map[string]rtpSink),
	}
}

func TestPlainTransport_ForwardsRTP(t *testing.T) {
	r := newTestRouter(t)
	var keyFrames atomic.Int32
	p := newTestProducer(r, types.MediaKindVideo, &keyFrames)

	pt, err := r.CreatePlainTransport(context.Background(), types.PlainTransportOptions{RoomID: "room"})
	require.NoError(t, err)
	ec, err := pt.Consume(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, 41000, ec.Port())
	require.Equal(t, types.CodecParameters{MimeType: webrtc.MimeTypeVP8, PayloadType: 96, ClockRate: 90000}, ec.Codec())
	require.Eventually(t, func() bool { return keyFrames.Load() == 1 }, time.Second, time.Millisecond)

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: ec.Port()})
	require.NoError(t, err)
	defer conn.Close()

	sent := &rtp.Packet{
		Header:  rtp.Header{Version: 2, PayloadType: 96, SequenceNumber: 7, Timestamp: 9000, SSRC: 1234},
		Payload: []byte{0x10, 0x02, 0x03},
	}
	p.writeRTP(sent)

	buf := make([]byte, 1500)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	var received rtp.Packet
	require.NoError(t, received.Unmarshal(buf[:n]))
	require.Equal(t, sent.SequenceNumber, received.SequenceNumber)
	require.Equal(t, sent.Payload, received.Payload)

	// closing the transport releases its consumers and ports
	require.NoError(t, pt.Close())
	require.Equal(t, 0, r.ports.inUse())
	p.lock.RLock()
	require.Empty(t, p.sinks)
	p.lock.RUnlock()
	require.NoError(t, ec.Close())
}

func TestPlainTransport_ClosedProducer(t *testing.T) {
	r := newTestRouter(t)
	var keyFrames atomic.Int32
	p := newTestProducer(r, types.MediaKindAudio, &keyFrames)
	require.NoError(t, p.Close())

	pt, err := r.CreatePlainTransport(context.Background(), types.PlainTransportOptions{RoomID: "room"})
	require.NoError(t, err)
	_, err = pt.Consume(context.Background(), p)
	require.ErrorIs(t, err, ErrProducerClosed)
	require.Equal(t, 0, r.ports.inUse())
	// audio never asks for key frames
	require.Zero(t, keyFrames.Load())
}

func TestProducer_OnClose(t *testing.T) {
	r := newTestRouter(t)
	p := newTestProducer(r, types.MediaKindVideo, &atomic.Int32{})

	var calls atomic.Int32
	p.OnClose(func() { calls.Add(1) })
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.Equal(t, int32(1), calls.Load())

	// registered after close, runs right away
	p.OnClose(func() { calls.Add(1) })
	require.Equal(t, int32(2), calls.Load())
}

func TestRouter_Close(t *testing.T) {
	r := newTestRouter(t)
	pt, err := r.CreatePlainTransport(context.Background(), types.PlainTransportOptions{RoomID: "room"})
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.CreatePlainTransport(context.Background(), types.PlainTransportOptions{RoomID: "room"})
	require.ErrorIs(t, err, ErrRouterClosed)
	_, err = r.CreateWebRTCTransport(context.Background(), types.WebRTCTransportOptions{RoomID: "room"})
	require.ErrorIs(t, err, ErrRouterClosed)

	_, err = pt.Consume(context.Background(), newTestProducer(r, types.MediaKindVideo, &atomic.Int32{}))
	require.ErrorIs(t, err, ErrTransportClosed)
}

func TestRouter_GuardMarksDied(t *testing.T) {
	r := newTestRouter(t)
	func() {
		defer r.guard("test")
		panic("corrupt")
	}()
	select {
	case <-r.Died():
	default:
		t.Fatal("router should be dead")
	}
}
