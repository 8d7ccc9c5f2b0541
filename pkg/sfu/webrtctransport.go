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
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/webrtc/v3"
	"go.uber.org/multierr"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// webrtcTransport is one client facing ICE + DTLS association, built from
// the ORTC primitives so candidates and fingerprints can be relayed as JSON.
type webrtcTransport struct {
	id        string
	router    *Router
	direction types.Direction
	logger    logger.Logger

	gatherer *webrtc.ICEGatherer
	ice      *webrtc.ICETransport
	dtls     *webrtc.DTLSTransport
	params   types.TransportParameters

	lock      sync.Mutex
	connected bool
	producers []*producer
	consumers map[string]*consumer
	closed    core.Fuse
}

func newWebRTCTransport(ctx context.Context, r *Router, id string, opts types.WebRTCTransportOptions) (*webrtcTransport, error) {
	gatherer, err := r.api.NewICEGatherer(webrtc.ICEGatherOptions{ICEServers: r.iceServers})
	if err != nil {
		return nil, err
	}
	iceTransport := r.api.NewICETransport(gatherer)
	dtls, err := r.api.NewDTLSTransport(iceTransport, nil)
	if err != nil {
		_ = gatherer.Close()
		return nil, err
	}

	t := &webrtcTransport{
		id:        id,
		router:    r,
		direction: opts.Direction,
		logger:    r.logger.WithValues("transportID", id, "participant", opts.ParticipantID, "direction", opts.Direction),
		gatherer:  gatherer,
		ice:       iceTransport,
		dtls:      dtls,
		consumers: make(map[string]*consumer),
	}

	iceTransport.OnConnectionStateChange(func(state webrtc.ICETransportState) {
		t.logger.Debugw("ice state changed", "state", state)
		if state == webrtc.ICETransportStateFailed {
			_ = t.Close()
		}
	})

	if err := t.gather(ctx); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

func (t *webrtcTransport) gather(ctx context.Context) error {
	gatherFinished := make(chan struct{})
	var once sync.Once
	t.gatherer.OnLocalCandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			once.Do(func() { close(gatherFinished) })
		}
	})
	if err := t.gatherer.Gather(); err != nil {
		return err
	}

	timeout := t.router.conf.RTC.GatherTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	select {
	case <-gatherFinished:
	case <-time.After(timeout):
		// keep whatever was gathered, host candidates come first
		t.logger.Debugw("ice gathering incomplete", "timeout", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	candidates, err := t.gatherer.GetLocalCandidates()
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return ErrGatherTimeout
	}
	iceParams, err := t.gatherer.GetLocalParameters()
	if err != nil {
		return err
	}
	dtlsParams, err := t.dtls.GetLocalParameters()
	if err != nil {
		return err
	}

	t.params.ID = t.id
	if t.params.ICEParameters, err = json.Marshal(iceParams); err != nil {
		return err
	}
	if t.params.ICECandidates, err = json.Marshal(candidates); err != nil {
		return err
	}
	if t.params.DTLSParameters, err = json.Marshal(dtlsParams); err != nil {
		return err
	}
	return nil
}

func (t *webrtcTransport) ID() string {
	return t.id
}

func (t *webrtcTransport) Parameters() types.TransportParameters {
	return t.params
}

// Connect starts ICE in the controlled role, then the DTLS handshake. It
// returns once both completed or ctx is done, in which case the transport is
// closed.
func (t *webrtcTransport) Connect(ctx context.Context, params types.ConnectParameters) error {
	if t.closed.IsBroken() {
		return ErrTransportClosed
	}
	var (
		dtlsParams webrtc.DTLSParameters
		iceParams  webrtc.ICEParameters
		candidates []webrtc.ICECandidate
	)
	if err := json.Unmarshal(params.DTLSParameters, &dtlsParams); err != nil {
		return fmt.Errorf("invalid dtls parameters: %w", err)
	}
	if len(params.ICEParameters) == 0 {
		return ErrMissingICE
	}
	if err := json.Unmarshal(params.ICEParameters, &iceParams); err != nil {
		return fmt.Errorf("invalid ice parameters: %w", err)
	}
	if len(params.ICECandidates) > 0 {
		if err := json.Unmarshal(params.ICECandidates, &candidates); err != nil {
			return fmt.Errorf("invalid ice candidates: %w", err)
		}
	}

	timeout := t.router.conf.RTC.ConnectTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		defer t.router.guard("connect")
		if err := t.ice.SetRemoteCandidates(candidates); err != nil {
			done <- err
			return
		}
		role := webrtc.ICERoleControlled
		if err := t.ice.Start(t.gatherer, iceParams, &role); err != nil {
			done <- err
			return
		}
		done <- t.dtls.Start(dtlsParams)
	}()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		_ = t.Close()
		return ctx.Err()
	case <-t.closed.Watch():
		return ErrTransportClosed
	}

	t.lock.Lock()
	t.connected = true
	pending := make([]*consumer, 0, len(t.consumers))
	for _, c := range t.consumers {
		pending = append(pending, c)
	}
	t.lock.Unlock()

	for _, c := range pending {
		if err := c.start(); err != nil {
			t.logger.Warnw("could not start consumer", err, "consumerID", c.id)
		}
	}
	t.logger.Debugw("transport connected")
	return nil
}

func (t *webrtcTransport) isConnected() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.connected
}

func (t *webrtcTransport) Produce(_ context.Context, kind types.MediaKind, rtpParams json.RawMessage) (types.Producer, error) {
	if !t.isConnected() {
		return nil, ErrTransportNotStarted
	}
	var params rtpParameters
	if err := json.Unmarshal(rtpParams, &params); err != nil {
		return nil, fmt.Errorf("invalid rtp parameters: %w", err)
	}
	codec, err := matchCodec(t.router.codecs, kind, params)
	if err != nil {
		return nil, err
	}
	if len(params.Encodings) == 0 || params.Encodings[0].SSRC == 0 {
		return nil, ErrMissingSSRC
	}

	receiver, err := t.router.api.NewRTPReceiver(codecType(kind), t.dtls)
	if err != nil {
		return nil, err
	}
	if err := receiver.Receive(webrtc.RTPReceiveParameters{Encodings: []webrtc.RTPDecodingParameters{
		{
			RTPCodingParameters: webrtc.RTPCodingParameters{
				SSRC:        webrtc.SSRC(params.Encodings[0].SSRC),
				PayloadType: codec.PayloadType,
			},
		},
	}}); err != nil {
		_ = receiver.Stop()
		return nil, err
	}
	receiver.SetRTPParameters(webrtc.RTPParameters{
		Codecs: []webrtc.RTPCodecParameters{codec},
	})

	p := newProducer(t, utils.NewGuid("PR_"), kind, codec, params.Encodings[0].SSRC, receiver)
	t.lock.Lock()
	if t.closed.IsBroken() {
		t.lock.Unlock()
		_ = p.Close()
		return nil, ErrTransportClosed
	}
	t.producers = append(t.producers, p)
	t.lock.Unlock()

	go p.forward()
	t.logger.Debugw("producer started", "producerID", p.id, "kind", kind, "codec", codec.MimeType)
	return p, nil
}

func (t *webrtcTransport) Consume(_ context.Context, tp types.Producer, rawCapabilities json.RawMessage) (types.Consumer, error) {
	if t.closed.IsBroken() {
		return nil, ErrTransportClosed
	}
	p, ok := tp.(*producer)
	if !ok || p.transport.router != t.router {
		return nil, ErrForeignProducer
	}
	if len(rawCapabilities) > 0 {
		var caps rtpCapabilities
		if err := json.Unmarshal(rawCapabilities, &caps); err != nil {
			return nil, fmt.Errorf("invalid rtp capabilities: %w", err)
		}
		if !caps.supports(p.codec.MimeType) {
			return nil, ErrUnsupportedCodec
		}
	}

	c, err := newConsumer(t, utils.NewGuid("CO_"), p)
	if err != nil {
		return nil, err
	}

	t.lock.Lock()
	if t.closed.IsBroken() {
		t.lock.Unlock()
		_ = c.Close()
		return nil, ErrTransportClosed
	}
	t.consumers[c.id] = c
	connected := t.connected
	t.lock.Unlock()

	if err := p.addSink(c.id, c); err != nil {
		_ = c.Close()
		return nil, err
	}
	if connected {
		if err := c.start(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (t *webrtcTransport) removeConsumer(id string) {
	t.lock.Lock()
	delete(t.consumers, id)
	t.lock.Unlock()
}

func (t *webrtcTransport) Close() error {
	t.lock.Lock()
	if t.closed.IsBroken() {
		t.lock.Unlock()
		return nil
	}
	t.closed.Break()
	producers := t.producers
	t.producers = nil
	consumers := make([]*consumer, 0, len(t.consumers))
	for _, c := range t.consumers {
		consumers = append(consumers, c)
	}
	t.consumers = make(map[string]*consumer)
	t.lock.Unlock()

	var errs []error
	for _, c := range consumers {
		errs = append(errs, c.Close())
	}
	for _, p := range producers {
		errs = append(errs, p.Close())
	}
	errs = append(errs, t.dtls.Stop(), t.ice.Stop(), t.gatherer.Close())
	t.router.untrack(t.id)
	t.logger.Debugw("transport closed")
	return multierr.Combine(errs...)
}

func (c rtpCapabilities) supports(mimeType string) bool {
	if len(c.Codecs) == 0 {
		return true
	}
	for _, codec := range c.Codecs {
		if codec.MimeType != "" && equalMime(codec.MimeType, mimeType) {
			return true
		}
	}
	return false
}
