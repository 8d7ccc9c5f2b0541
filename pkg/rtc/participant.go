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
	"sync"

	"github.com/frostbyte73/core"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/transport"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

type ParticipantParams struct {
	ID     string
	RoomID string
	Sink   types.MessageSink
	Router types.MediaRouter
	Logger logger.Logger
}

// Participant owns the transports, producers and consumers of one client
// connection. Methods are safe for concurrent use, but commands of a single
// client are expected to arrive in order.
type Participant struct {
	params ParticipantParams
	logger logger.Logger

	negotiations map[types.Direction]*transport.Negotiation

	lock      sync.RWMutex
	producers map[types.MediaKind]types.Producer
	// keyed by producer id
	consumers map[string]types.Consumer
	closed    core.Fuse
}

func NewParticipant(params ParticipantParams) *Participant {
	l := params.Logger
	if l == nil {
		l = logger.GetLogger()
	}
	return &Participant{
		params: params,
		logger: l.WithValues("participant", params.ID),
		negotiations: map[types.Direction]*transport.Negotiation{
			types.DirectionSend: transport.NewNegotiation(types.DirectionSend),
			types.DirectionRecv: transport.NewNegotiation(types.DirectionRecv),
		},
		producers: make(map[types.MediaKind]types.Producer),
		consumers: make(map[string]types.Consumer),
	}
}

func (p *Participant) ID() string {
	return p.params.ID
}

func (p *Participant) RoomID() string {
	return p.params.RoomID
}

func (p *Participant) IsClosed() bool {
	return p.closed.IsBroken()
}

func (p *Participant) TransportState(dir types.Direction) transport.NegotiationState {
	if n, ok := p.negotiations[dir]; ok {
		return n.State()
	}
	return transport.NegotiationStateNone
}

// CreateTransport allocates the transport of the given direction. A
// completion that arrives after the participant disconnected is released.
func (p *Participant) CreateTransport(ctx context.Context, dir types.Direction) (types.TransportParameters, error) {
	n, ok := p.negotiations[dir]
	if !ok {
		return types.TransportParameters{}, ErrInvalidDirection
	}
	if p.IsClosed() {
		return types.TransportParameters{}, ErrParticipantClosed
	}
	if err := n.Request(); err != nil {
		return types.TransportParameters{}, fromNegotiation(err)
	}
	prometheus.RecordTransportState(string(dir), transport.NegotiationStateRequested.String())

	t, err := p.params.Router.CreateWebRTCTransport(ctx, types.WebRTCTransportOptions{
		RoomID:        p.params.RoomID,
		ParticipantID: p.params.ID,
		Direction:     dir,
	})
	if err != nil {
		n.Fail()
		prometheus.RecordTransportState(string(dir), transport.NegotiationStateFailed.String())
		return types.TransportParameters{}, engineFailure("could not create transport", err)
	}

	if err := n.Created(t); err != nil {
		p.logger.Debugw("closing transport created after disconnect", "transportID", t.ID())
		_ = t.Close()
		return types.TransportParameters{}, fromNegotiation(err)
	}
	prometheus.RecordTransportState(string(dir), transport.NegotiationStateCreated.String())
	p.logger.Debugw("transport created", "direction", dir, "transportID", t.ID())
	return t.Parameters(), nil
}

// ConnectTransport completes the security handshake; a failed handshake
// releases the transport and leaves the slot FAILED.
func (p *Participant) ConnectTransport(ctx context.Context, dir types.Direction, params types.ConnectParameters) (string, error) {
	n, ok := p.negotiations[dir]
	if !ok {
		return "", ErrInvalidDirection
	}
	t, err := n.BeginConnect()
	if err != nil {
		return "", fromNegotiation(err)
	}

	if err := t.Connect(ctx, params); err != nil {
		if ft := n.Fail(); ft != nil {
			_ = ft.Close()
		}
		prometheus.RecordTransportState(string(dir), transport.NegotiationStateFailed.String())
		return "", engineFailure("could not connect transport", err)
	}

	if err := n.Connected(); err != nil {
		return "", fromNegotiation(err)
	}
	prometheus.RecordTransportState(string(dir), transport.NegotiationStateConnected.String())
	p.logger.Debugw("transport connected", "direction", dir, "transportID", t.ID())
	return t.ID(), nil
}

func (p *Participant) sendTransport() (types.WebRTCTransport, error) {
	t, err := p.negotiations[types.DirectionSend].Ready(transport.NegotiationStateConnected)
	if err != nil {
		return nil, ErrTransportNotReady
	}
	return t, nil
}

// the receive side may consume before it connects, the client connects it
// when it sets up its first consumer
func (p *Participant) recvTransport() (types.WebRTCTransport, error) {
	t, err := p.negotiations[types.DirectionRecv].Ready(transport.NegotiationStateCreated, transport.NegotiationStateConnected)
	if err != nil {
		return nil, ErrTransportNotReady
	}
	return t, nil
}

func (p *Participant) produce(ctx context.Context, kind types.MediaKind, rtpParameters json.RawMessage) (types.Producer, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if p.producer(kind) != nil {
		return nil, ErrProducerExists
	}
	t, err := p.sendTransport()
	if err != nil {
		return nil, err
	}

	producer, err := t.Produce(ctx, kind, rtpParameters)
	if err != nil {
		return nil, engineFailure("could not produce", err)
	}

	p.lock.Lock()
	if p.closed.IsBroken() {
		p.lock.Unlock()
		_ = producer.Close()
		return nil, ErrParticipantClosed
	}
	if _, ok := p.producers[kind]; ok {
		p.lock.Unlock()
		_ = producer.Close()
		return nil, ErrProducerExists
	}
	p.producers[kind] = producer
	p.lock.Unlock()

	prometheus.AddProducer(string(kind))
	return producer, nil
}

func (p *Participant) producer(kind types.MediaKind) types.Producer {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.producers[kind]
}

func (p *Participant) detachProducer(producerID string) types.Producer {
	p.lock.Lock()
	defer p.lock.Unlock()
	for kind, producer := range p.producers {
		if producer.ID() == producerID {
			delete(p.producers, kind)
			return producer
		}
	}
	return nil
}

func (p *Participant) Producers() []types.Producer {
	p.lock.RLock()
	defer p.lock.RUnlock()
	producers := make([]types.Producer, 0, len(p.producers))
	for _, producer := range p.producers {
		producers = append(producers, producer)
	}
	return producers
}

func (p *Participant) HasConsumer(producerID string) bool {
	p.lock.RLock()
	defer p.lock.RUnlock()
	_, ok := p.consumers[producerID]
	return ok
}

func (p *Participant) Consumers() []types.Consumer {
	p.lock.RLock()
	defer p.lock.RUnlock()
	consumers := make([]types.Consumer, 0, len(p.consumers))
	for _, c := range p.consumers {
		consumers = append(consumers, c)
	}
	return consumers
}

func (p *Participant) attachConsumer(c types.Consumer) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed.IsBroken() {
		return ErrParticipantClosed
	}
	if _, ok := p.consumers[c.ProducerID()]; ok {
		return ErrAlreadySubscribed
	}
	p.consumers[c.ProducerID()] = c
	prometheus.AddConsumer()
	return nil
}

func (p *Participant) detachConsumer(producerID string) types.Consumer {
	p.lock.Lock()
	defer p.lock.Unlock()
	c, ok := p.consumers[producerID]
	if !ok {
		return nil
	}
	delete(p.consumers, producerID)
	return c
}

type participantResources struct {
	consumers  []types.Consumer
	producers  []types.Producer
	transports []types.WebRTCTransport
}

// close marks the participant closed and hands over everything it owns.
// Only the first call returns resources.
func (p *Participant) close() participantResources {
	p.lock.Lock()
	defer p.lock.Unlock()

	var res participantResources
	if p.closed.IsBroken() {
		return res
	}
	p.closed.Break()

	for _, c := range p.consumers {
		res.consumers = append(res.consumers, c)
	}
	for _, producer := range p.producers {
		res.producers = append(res.producers, producer)
	}
	p.consumers = make(map[string]types.Consumer)
	p.producers = make(map[types.MediaKind]types.Producer)

	for _, dir := range []types.Direction{types.DirectionSend, types.DirectionRecv} {
		if t := p.negotiations[dir].Close(); t != nil {
			res.transports = append(res.transports, t)
		}
	}
	return res
}

func (p *Participant) SendMessage(event types.Event, data any) {
	if p.params.Sink == nil {
		return
	}
	if err := p.params.Sink.WriteMessage(types.NewMessage(event, data)); err != nil {
		p.logger.Debugw("could not send message", "event", event, "error", err)
	}
}

func closeConsumer(l logger.Logger, c types.Consumer) {
	if err := c.Close(); err != nil {
		l.Debugw("error closing consumer", "consumerID", c.ID(), "error", err)
	}
	prometheus.SubConsumer()
}

func closeProducer(l logger.Logger, producer types.Producer) {
	if err := producer.Close(); err != nil {
		l.Debugw("error closing producer", "producerID", producer.ID(), "error", err)
	}
	prometheus.SubProducer(string(producer.Kind()))
}
