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
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

type EgressParams struct {
	Enabled  bool
	Launcher types.TranscoderLauncher
	// runs egress feeds off the signalling path; shared between rooms
	Pool         *workerpool.WorkerPool
	SetupTimeout time.Duration
	FlushTimeout time.Duration
}

// egressBridge feeds the room's producers into a single transcoder through
// the room's plain transport.
type egressBridge struct {
	params   EgressParams
	roomID   string
	router   types.MediaRouter
	logger   logger.Logger
	onStatus func(types.EgressStatus)

	setupOnce sync.Once
	ready     core.Fuse

	lock      sync.Mutex
	transport types.PlainTransport
	// producers announced but not yet removed, keyed by producer id
	pending   map[string]types.MediaKind
	consumers map[string]types.EgressConsumer
	// producer id feeding the running or starting transcoder
	videoProducerID string
	transcoder      types.Transcoder
	starting        bool
	degraded        bool
	lastErr         error
	closed          bool
}

func newEgressBridge(roomID string, router types.MediaRouter, params EgressParams, l logger.Logger, onStatus func(types.EgressStatus)) *egressBridge {
	if params.SetupTimeout == 0 {
		params.SetupTimeout = 10 * time.Second
	}
	if params.FlushTimeout == 0 {
		params.FlushTimeout = 5 * time.Second
	}
	e := &egressBridge{
		params:    params,
		roomID:    roomID,
		router:    router,
		logger:    l.WithValues("component", "egress"),
		onStatus:  onStatus,
		pending:   make(map[string]types.MediaKind),
		consumers: make(map[string]types.EgressConsumer),
	}
	if !params.Enabled {
		e.ready.Break()
	}
	return e
}

// setup creates the room's plain transport. Only the first call does work;
// failure leaves the room usable with egress degraded.
func (e *egressBridge) setup(ctx context.Context) {
	if !e.params.Enabled {
		return
	}
	e.setupOnce.Do(func() {
		defer e.ready.Break()
		if err := e.ensureTransport(ctx); err != nil {
			e.logger.Warnw("could not create egress transport", err)
			prometheus.EgressDegraded("setup")
			e.notify()
		}
	})
}

func (e *egressBridge) ensureTransport(ctx context.Context) error {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return ErrRoomClosed
	}
	if e.transport != nil {
		e.lock.Unlock()
		return nil
	}
	e.lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.params.SetupTimeout)
	defer cancel()
	t, err := e.router.CreatePlainTransport(ctx, types.PlainTransportOptions{RoomID: e.roomID})

	e.lock.Lock()
	defer e.lock.Unlock()
	if err != nil {
		e.degraded = true
		e.lastErr = err
		return WrapError(KindEgressFailure, "could not create egress transport", err)
	}
	if e.closed || e.transport != nil {
		_ = t.Close()
		return nil
	}
	e.transport = t
	e.logger.Debugw("egress transport created", "transportID", t.ID())
	return nil
}

// register marks the producer as wanted by egress. It is only fed once
// scheduled, and never after removeProducer.
func (e *egressBridge) register(producer types.Producer) {
	if !e.params.Enabled {
		return
	}
	e.lock.Lock()
	if !e.closed {
		e.pending[producer.ID()] = producer.Kind()
	}
	e.lock.Unlock()
}

// schedule feeds a registered producer to egress without blocking.
func (e *egressBridge) schedule(producer types.Producer) {
	if !e.params.Enabled {
		return
	}
	e.submit(func() {
		e.feed(producer)
	})
}

func (e *egressBridge) submit(f func()) {
	task := func() {
		defer Recover(e.logger)
		f()
	}
	if e.params.Pool == nil || e.params.Pool.Stopped() {
		go task()
		return
	}
	e.params.Pool.Submit(task)
}

func (e *egressBridge) feed(producer types.Producer) {
	<-e.ready.Watch()

	if err := e.ensureTransport(context.Background()); err != nil {
		e.markDegraded("setup", err)
		return
	}

	e.lock.Lock()
	t := e.transport
	_, wanted := e.pending[producer.ID()]
	e.lock.Unlock()
	if t == nil || !wanted {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.params.SetupTimeout)
	ec, err := t.Consume(ctx, producer)
	cancel()
	if err != nil {
		e.markDegraded("consume", WrapError(KindEgressFailure, "could not consume producer for egress", err))
		return
	}

	e.lock.Lock()
	if _, wanted = e.pending[producer.ID()]; !wanted || e.closed {
		e.lock.Unlock()
		_ = ec.Close()
		return
	}
	e.consumers[producer.ID()] = ec

	if producer.Kind() != types.MediaKindVideo {
		running := e.transcoder != nil || e.starting
		e.lock.Unlock()
		if running {
			e.logger.Debugw("audio joined after transcoder start, not included", "producerID", producer.ID())
		}
		return
	}
	if e.transcoder != nil || e.starting {
		e.lock.Unlock()
		e.logger.Debugw("transcoder already running, video producer consumed only", "producerID", producer.ID())
		return
	}
	req := e.startLocked(producer.ID(), ec)
	e.lock.Unlock()

	e.launch(producer.ID(), req)
}

// startLocked claims the transcoder slot for the video consumer and builds
// its request, with the first consumed audio if any.
func (e *egressBridge) startLocked(videoProducerID string, video types.EgressConsumer) types.TranscodeRequest {
	e.starting = true
	e.videoProducerID = videoProducerID
	req := types.TranscodeRequest{
		RoomID: e.roomID,
		Video:  &types.EgressStream{Port: video.Port(), Codec: video.Codec()},
	}
	for _, c := range e.consumers {
		if c.Kind() == types.MediaKindAudio {
			req.Audio = &types.EgressStream{Port: c.Port(), Codec: c.Codec()}
			break
		}
	}
	return req
}

// failover starts the transcoder on another consumed video producer after
// the one driving it went away.
func (e *egressBridge) failover() {
	e.lock.Lock()
	if e.closed || e.transcoder != nil || e.starting {
		e.lock.Unlock()
		return
	}
	var (
		videoProducerID string
		video           types.EgressConsumer
	)
	for id, ec := range e.consumers {
		if ec.Kind() != types.MediaKindVideo {
			continue
		}
		if video == nil || id < videoProducerID {
			videoProducerID, video = id, ec
		}
	}
	if video == nil {
		e.lock.Unlock()
		return
	}
	req := e.startLocked(videoProducerID, video)
	e.lock.Unlock()

	e.logger.Infow("restarting transcoder on remaining video producer", "producerID", videoProducerID)
	e.launch(videoProducerID, req)
}

func (e *egressBridge) launch(videoProducerID string, req types.TranscodeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), e.params.SetupTimeout)
	defer cancel()
	tr, err := e.params.Launcher.Launch(ctx, req)

	e.lock.Lock()
	e.starting = false
	if err != nil {
		e.videoProducerID = ""
		e.lock.Unlock()
		prometheus.TranscoderStartFailed()
		e.markDegraded("start", WrapError(KindEgressFailure, "could not start transcoder", err))
		return
	}
	if e.closed || e.videoProducerID != videoProducerID {
		// the driving producer went away while starting
		e.lock.Unlock()
		e.stopTranscoder(tr)
		e.failover()
		return
	}
	e.transcoder = tr
	e.degraded = false
	e.lastErr = nil
	e.lock.Unlock()

	prometheus.TranscoderStarted()
	e.logger.Infow("transcoder started", "producerID", videoProducerID, "audio", req.Audio != nil)
	e.notify()

	go e.watch(tr)
}

func (e *egressBridge) watch(tr types.Transcoder) {
	<-tr.Done()

	e.lock.Lock()
	if e.transcoder != tr {
		// stopped deliberately
		e.lock.Unlock()
		return
	}
	e.transcoder = nil
	e.videoProducerID = ""
	e.lock.Unlock()

	prometheus.TranscoderEnded()
	err := tr.Err()
	if err == nil {
		err = ErrEgressUnavailable
	}
	e.markDegraded("exit", WrapError(KindEgressFailure, "transcoder exited", err))
}

func (e *egressBridge) markDegraded(reason string, err error) {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return
	}
	e.degraded = true
	e.lastErr = err
	e.lock.Unlock()

	prometheus.EgressDegraded(reason)
	e.logger.Warnw("egress degraded", err, "reason", reason)
	e.notify()
}

// removeProducer stops feeding the producers. When one of them was driving
// the transcoder it is stopped, then restarted on any remaining video.
func (e *egressBridge) removeProducer(producerIDs ...string) {
	var (
		tr        types.Transcoder
		stoppedID string
		consumers []types.EgressConsumer
	)
	e.lock.Lock()
	for _, id := range producerIDs {
		delete(e.pending, id)
		if ec, ok := e.consumers[id]; ok {
			consumers = append(consumers, ec)
			delete(e.consumers, id)
		}
		if e.videoProducerID == id {
			tr = e.transcoder
			stoppedID = id
			e.transcoder = nil
			e.videoProducerID = ""
		}
	}
	e.lock.Unlock()

	if tr != nil {
		e.stopTranscoder(tr)
		prometheus.TranscoderEnded()
		e.logger.Infow("transcoder stopped, video producer closed", "producerID", stoppedID)
		e.notify()
		e.submit(e.failover)
	}
	for _, ec := range consumers {
		_ = ec.Close()
	}
}

func (e *egressBridge) stopTranscoder(tr types.Transcoder) {
	ctx, cancel := context.WithTimeout(context.Background(), e.params.FlushTimeout)
	defer cancel()
	if err := tr.Stop(ctx); err != nil {
		e.logger.Warnw("transcoder did not stop cleanly", err)
	}
}

// close releases the transcoder, then the egress consumers, then the transport.
func (e *egressBridge) close() {
	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return
	}
	e.closed = true
	tr := e.transcoder
	e.transcoder = nil
	e.videoProducerID = ""
	consumers := make([]types.EgressConsumer, 0, len(e.consumers))
	for _, ec := range e.consumers {
		consumers = append(consumers, ec)
	}
	e.consumers = make(map[string]types.EgressConsumer)
	e.pending = make(map[string]types.MediaKind)
	t := e.transport
	e.transport = nil
	e.lock.Unlock()
	e.ready.Break()

	if tr != nil {
		e.stopTranscoder(tr)
		prometheus.TranscoderEnded()
	}
	for _, ec := range consumers {
		_ = ec.Close()
	}
	if t != nil {
		if err := t.Close(); err != nil {
			e.logger.Debugw("error closing egress transport", "error", err)
		}
	}
	e.logger.Debugw("egress released")
}

func (e *egressBridge) status() types.EgressStatus {
	e.lock.Lock()
	defer e.lock.Unlock()
	s := types.EgressStatus{
		RoomID:   e.roomID,
		Active:   e.transcoder != nil,
		Degraded: e.degraded,
	}
	if e.lastErr != nil {
		s.Error = e.lastErr.Error()
	}
	return s
}

func (e *egressBridge) notify() {
	if e.onStatus != nil {
		e.onStatus(e.status())
	}
}
