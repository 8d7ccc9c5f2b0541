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
	"errors"
	"io"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v3"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const keyFrameRequestInterval = 500 * time.Millisecond

type rtpSink interface {
	WriteRTP(pkt *rtp.Packet) error
}

type producer struct {
	id        string
	kind      types.MediaKind
	codec     webrtc.RTPCodecParameters
	ssrc      uint32
	transport *webrtcTransport
	receiver  *webrtc.RTPReceiver
	writeRTCP func([]rtcp.Packet) error
	logger    logger.Logger

	lock    sync.RWMutex
	sinks   map[string]rtpSink
	onClose []func()

	lastKeyFrameRequest atomic.Int64
	closed              core.Fuse
}

func newProducer(t *webrtcTransport, id string, kind types.MediaKind, codec webrtc.RTPCodecParameters, ssrc uint32, receiver *webrtc.RTPReceiver) *producer {
	return &producer{
		id:        id,
		kind:      kind,
		codec:     codec,
		ssrc:      ssrc,
		transport: t,
		receiver:  receiver,
		writeRTCP: func(pkts []rtcp.Packet) error {
			_, err := t.dtls.WriteRTCP(pkts)
			return err
		},
		logger: t.logger.WithValues("producerID", id, "kind", kind),
		sinks:  make(map[string]rtpSink),
	}
}

func (p *producer) ID() string {
	return p.id
}

func (p *producer) Kind() types.MediaKind {
	return p.kind
}

func (p *producer) forward() {
	defer p.transport.router.guard("producer")

	go p.drainRTCP()

	track := p.receiver.Track()
	for {
		pkt, _, err := track.ReadRTP()
		if err != nil {
			if !p.closed.IsBroken() && !errors.Is(err, io.EOF) {
				p.logger.Debugw("producer stopped reading", "error", err)
			}
			return
		}
		p.writeRTP(pkt)
	}
}

// the receiver's interceptors only run while incoming RTCP is read
func (p *producer) drainRTCP() {
	defer p.transport.router.guard("producer-rtcp")
	for {
		if _, _, err := p.receiver.ReadRTCP(); err != nil {
			return
		}
	}
}

func (p *producer) writeRTP(pkt *rtp.Packet) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	for id, sink := range p.sinks {
		if err := sink.WriteRTP(pkt); err != nil && !errors.Is(err, io.ErrClosedPipe) {
			p.logger.Debugw("could not forward rtp", "sink", id, "error", err)
		}
	}
}

func (p *producer) addSink(id string, sink rtpSink) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed.IsBroken() {
		return ErrProducerClosed
	}
	p.sinks[id] = sink
	return nil
}

func (p *producer) removeSink(id string) {
	p.lock.Lock()
	delete(p.sinks, id)
	p.lock.Unlock()
}

// requestKeyFrame asks the publisher for a key frame, at most once per interval.
func (p *producer) requestKeyFrame() {
	if p.kind != types.MediaKindVideo || p.closed.IsBroken() {
		return
	}
	now := time.Now().UnixNano()
	last := p.lastKeyFrameRequest.Load()
	if now-last < int64(keyFrameRequestInterval) || !p.lastKeyFrameRequest.CompareAndSwap(last, now) {
		return
	}
	if err := p.writeRTCP([]rtcp.Packet{&rtcp.PictureLossIndication{MediaSSRC: p.ssrc}}); err != nil {
		p.logger.Debugw("could not send pli", "error", err)
	}
}

func (p *producer) OnClose(f func()) {
	p.lock.Lock()
	if p.closed.IsBroken() {
		p.lock.Unlock()
		f()
		return
	}
	p.onClose = append(p.onClose, f)
	p.lock.Unlock()
}

func (p *producer) Close() error {
	p.lock.Lock()
	if p.closed.IsBroken() {
		p.lock.Unlock()
		return nil
	}
	p.closed.Break()
	p.sinks = make(map[string]rtpSink)
	onClose := p.onClose
	p.onClose = nil
	p.lock.Unlock()

	var err error
	if p.receiver != nil {
		err = p.receiver.Stop()
	}
	for _, f := range onClose {
		f()
	}
	return err
}
