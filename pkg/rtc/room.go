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
	"sort"
	"sync"
	"time"

	"github.com/frostbyte73/core"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

type RoomParams struct {
	ID              string
	Router          types.MediaRouter
	Egress          EgressParams
	MaxParticipants uint32
	Logger          logger.Logger
}

type publishedProducer struct {
	producer      types.Producer
	participantID string
	createdAt     time.Time
}

type Room struct {
	params    RoomParams
	logger    logger.Logger
	createdAt time.Time

	lock sync.RWMutex
	// participant id -> participant
	participants map[string]*Participant
	// producer id -> producer, across all participants
	producers map[string]*publishedProducer

	egress *egressBridge

	closing      core.Fuse
	closeStarted bool
	closed       core.Fuse

	onChanged func(r *Room)
}

func NewRoom(params RoomParams) *Room {
	l := params.Logger
	if l == nil {
		l = logger.GetLogger()
	}
	r := &Room{
		params:       params,
		logger:       l.WithValues("room", params.ID),
		createdAt:    time.Now(),
		participants: make(map[string]*Participant),
		producers:    make(map[string]*publishedProducer),
	}
	r.egress = newEgressBridge(params.ID, params.Router, params.Egress, r.logger, r.onEgressStatus)
	prometheus.RoomStarted()
	return r
}

func (r *Room) ID() string {
	return r.params.ID
}

func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

// OnChanged is invoked after membership, producers or egress state changed.
func (r *Room) OnChanged(f func(r *Room)) {
	r.lock.Lock()
	r.onChanged = f
	r.lock.Unlock()
}

// SetupEgress prepares the egress transport, once per room.
func (r *Room) SetupEgress(ctx context.Context) {
	r.egress.setup(ctx)
}

func (r *Room) EgressStatus() types.EgressStatus {
	return r.egress.status()
}

func (r *Room) GetParticipant(id string) *Participant {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.participants[id]
}

func (r *Room) GetParticipants() []*Participant {
	r.lock.RLock()
	defer r.lock.RUnlock()
	participants := make([]*Participant, 0, len(r.participants))
	for _, p := range r.participants {
		participants = append(participants, p)
	}
	return participants
}

func (r *Room) NumParticipants() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.participants)
}

func (r *Room) IsClosing() bool {
	return r.closing.IsBroken()
}

// Closed fires once the room released all of its resources.
func (r *Room) Closed() <-chan struct{} {
	return r.closed.Watch()
}

// Join adds the participant, then sends it the router capabilities followed
// by every producer already in the room.
func (r *Room) Join(p *Participant) error {
	r.lock.Lock()
	if r.closing.IsBroken() {
		r.lock.Unlock()
		return ErrRoomClosed
	}
	if _, ok := r.participants[p.ID()]; ok {
		r.lock.Unlock()
		return ErrAlreadyJoined
	}
	if r.params.MaxParticipants > 0 && len(r.participants) >= int(r.params.MaxParticipants) {
		r.lock.Unlock()
		return ErrMaxParticipants
	}
	r.participants[p.ID()] = p

	p.SendMessage(types.EventRouterCapabilities, types.RouterCapabilities{
		RTPCapabilities: r.params.Router.RTPCapabilities(),
	})
	for _, pp := range r.sortedProducersLocked() {
		p.SendMessage(types.EventNewProducer, types.NewProducer{
			ProducerID:    pp.producer.ID(),
			ParticipantID: pp.participantID,
			Kind:          pp.producer.Kind(),
		})
	}
	r.lock.Unlock()

	prometheus.AddParticipant()
	r.logger.Infow("participant joined", "participant", p.ID())
	r.changed()
	return nil
}

func (r *Room) sortedProducersLocked() []*publishedProducer {
	producers := make([]*publishedProducer, 0, len(r.producers))
	for _, pp := range r.producers {
		producers = append(producers, pp)
	}
	sort.Slice(producers, func(i, j int) bool {
		return producers[i].createdAt.Before(producers[j].createdAt)
	})
	return producers
}

// Produce publishes media from the participant's connected send transport,
// announces it to the other participants and hands it to egress.
func (r *Room) Produce(ctx context.Context, p *Participant, kind types.MediaKind, rtpParameters json.RawMessage) (types.Producer, error) {
	if r.closing.IsBroken() {
		return nil, ErrRoomClosed
	}
	producer, err := p.produce(ctx, kind, rtpParameters)
	if err != nil {
		return nil, err
	}

	r.lock.Lock()
	if r.participants[p.ID()] != p {
		// removal already took ownership of the producer
		r.lock.Unlock()
		return nil, ErrParticipantClosed
	}
	r.producers[producer.ID()] = &publishedProducer{
		producer:      producer,
		participantID: p.ID(),
		createdAt:     time.Now(),
	}
	// under the room lock, so any later removal also removes it from egress
	r.egress.register(producer)
	others := r.othersLocked(p.ID())
	r.lock.Unlock()

	producer.OnClose(func() {
		r.onProducerClosed(producer.ID())
	})

	r.logger.Infow("producer created", "participant", p.ID(), "producerID", producer.ID(), "kind", kind)
	r.broadcast(others, types.EventNewProducer, types.NewProducer{
		ProducerID:    producer.ID(),
		ParticipantID: p.ID(),
		Kind:          kind,
	})

	r.lock.RLock()
	_, live := r.producers[producer.ID()]
	joined := r.participants[p.ID()] == p
	r.lock.RUnlock()
	if !live {
		// released while it was being announced
		if !joined {
			return nil, ErrParticipantClosed
		}
		return nil, ErrProducerNotFound
	}
	r.egress.schedule(producer)
	r.changed()
	return producer, nil
}

// Consume subscribes the participant to another participant's producer.
func (r *Room) Consume(ctx context.Context, p *Participant, producerID string, rtpCapabilities json.RawMessage) (types.Consumer, string, error) {
	r.lock.RLock()
	pp := r.producers[producerID]
	r.lock.RUnlock()
	if pp == nil {
		return nil, "", ErrProducerNotFound
	}
	if pp.participantID == p.ID() {
		return nil, "", ErrCannotConsumeOwn
	}
	if p.HasConsumer(producerID) {
		return nil, "", ErrAlreadySubscribed
	}
	t, err := p.recvTransport()
	if err != nil {
		return nil, "", err
	}

	consumer, err := t.Consume(ctx, pp.producer, rtpCapabilities)
	if err != nil {
		return nil, "", engineFailure("could not consume", err)
	}

	// attach only while the producer is still live, so producer removal sees it
	r.lock.Lock()
	if _, live := r.producers[producerID]; !live || r.participants[p.ID()] != p {
		r.lock.Unlock()
		_ = consumer.Close()
		return nil, "", ErrProducerNotFound
	}
	err = p.attachConsumer(consumer)
	r.lock.Unlock()
	if err != nil {
		_ = consumer.Close()
		return nil, "", err
	}

	r.logger.Debugw("consumer created", "participant", p.ID(), "producerID", producerID, "consumerID", consumer.ID())
	return consumer, pp.participantID, nil
}

// CloseProducer stops a producer on behalf of its owner.
func (r *Room) CloseProducer(p *Participant, producerID string) error {
	r.lock.Lock()
	pp := r.producers[producerID]
	if pp == nil || pp.participantID != p.ID() {
		r.lock.Unlock()
		return ErrProducerNotFound
	}
	consumers := r.detachProducerLocked(producerID)
	others := r.othersLocked(p.ID())
	r.lock.Unlock()

	p.detachProducer(producerID)
	r.releaseProducer(pp, consumers, others)
	r.changed()
	return nil
}

// detachProducerLocked unregisters the producer and collects every consumer of it.
func (r *Room) detachProducerLocked(producerID string) []types.Consumer {
	delete(r.producers, producerID)
	var consumers []types.Consumer
	for _, op := range r.participants {
		if c := op.detachConsumer(producerID); c != nil {
			consumers = append(consumers, c)
		}
	}
	return consumers
}

// onProducerClosed releases a producer the media engine closed on its own,
// such as when its transport failed.
func (r *Room) onProducerClosed(producerID string) {
	r.lock.Lock()
	pp := r.producers[producerID]
	if pp == nil {
		r.lock.Unlock()
		return
	}
	consumers := r.detachProducerLocked(producerID)
	owner := r.participants[pp.participantID]
	notify := r.othersLocked("")
	r.lock.Unlock()

	if owner != nil {
		owner.detachProducer(producerID)
	}
	r.logger.Debugw("producer closed by media engine", "participant", pp.participantID, "producerID", producerID)
	r.releaseProducer(pp, consumers, notify)
	r.changed()
}

func (r *Room) releaseProducer(pp *publishedProducer, consumers []types.Consumer, notify []*Participant) {
	for _, c := range consumers {
		closeConsumer(r.logger, c)
	}
	r.egress.removeProducer(pp.producer.ID())
	closeProducer(r.logger, pp.producer)

	r.logger.Infow("producer closed", "participant", pp.participantID, "producerID", pp.producer.ID())
	r.broadcast(notify, types.EventProducerClosed, types.ProducerClosed{
		ProducerID:    pp.producer.ID(),
		ParticipantID: pp.participantID,
	})
}

// RemoveParticipant releases the participant's consumers, then its producers
// (closing every consumer of them), then its transports. It is idempotent.
func (r *Room) RemoveParticipant(id string) {
	r.lock.Lock()
	p, ok := r.participants[id]
	if !ok {
		r.lock.Unlock()
		return
	}
	delete(r.participants, id)
	res := p.close()

	type detached struct {
		pp        *publishedProducer
		consumers []types.Consumer
		announced bool
	}
	owned := make([]detached, 0, len(res.producers))
	producerIDs := make([]string, 0, len(res.producers))
	for _, producer := range res.producers {
		producerIDs = append(producerIDs, producer.ID())
		pp := r.producers[producer.ID()]
		if pp == nil {
			// created on the participant but never published to the room
			owned = append(owned, detached{pp: &publishedProducer{producer: producer, participantID: id}})
			continue
		}
		owned = append(owned, detached{pp: pp, consumers: r.detachProducerLocked(producer.ID()), announced: true})
	}
	others := r.othersLocked(id)
	r.lock.Unlock()

	for _, c := range res.consumers {
		closeConsumer(r.logger, c)
	}
	// egress must not fail over to another producer of this participant
	r.egress.removeProducer(producerIDs...)
	for _, d := range owned {
		var notify []*Participant
		if d.announced {
			notify = others
		}
		r.releaseProducer(d.pp, d.consumers, notify)
	}
	for _, t := range res.transports {
		if err := t.Close(); err != nil {
			r.logger.Debugw("error closing transport", "participant", id, "transportID", t.ID(), "error", err)
		}
	}

	prometheus.SubParticipant()
	r.logger.Infow("participant left", "participant", id)
	r.changed()
}

// CloseIfEmpty starts closing the room when nobody is in it. Once it returns
// true the room accepts no new participants.
func (r *Room) CloseIfEmpty() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closing.IsBroken() || len(r.participants) > 0 {
		return false
	}
	r.closing.Break()
	return true
}

// Close removes any remaining participant and releases egress. Callers other
// than the registry should use CloseIfEmpty first.
// Concurrent callers return once the first one finished.
func (r *Room) Close() {
	r.lock.Lock()
	if r.closeStarted {
		r.lock.Unlock()
		<-r.closed.Watch()
		return
	}
	r.closeStarted = true
	r.closing.Break()
	ids := make([]string, 0, len(r.participants))
	for id := range r.participants {
		ids = append(ids, id)
	}
	r.lock.Unlock()

	for _, id := range ids {
		r.RemoveParticipant(id)
	}
	r.egress.close()
	r.closed.Break()
	prometheus.RoomEnded(r.createdAt)
	r.logger.Infow("room closed")
}

func (r *Room) ToInfo() types.RoomInfo {
	r.lock.RLock()
	info := types.RoomInfo{
		ID:           r.params.ID,
		Participants: len(r.participants),
		Producers:    len(r.producers),
		CreatedAt:    r.createdAt.Unix(),
	}
	r.lock.RUnlock()
	info.Egress = r.egress.status()
	return info
}

func (r *Room) othersLocked(exceptID string) []*Participant {
	others := make([]*Participant, 0, len(r.participants))
	for id, op := range r.participants {
		if id != exceptID {
			others = append(others, op)
		}
	}
	return others
}

func (r *Room) broadcast(participants []*Participant, event types.Event, data any) {
	for _, op := range participants {
		op.SendMessage(event, data)
	}
}

func (r *Room) onEgressStatus(status types.EgressStatus) {
	r.broadcast(r.GetParticipants(), types.EventEgressStatus, status)
	r.changed()
}

func (r *Room) changed() {
	r.lock.RLock()
	f := r.onChanged
	r.lock.RUnlock()
	if f != nil {
		f(r)
	}
}
