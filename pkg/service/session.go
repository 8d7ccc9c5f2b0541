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
	"sync"

	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

var errInternal = rtc.NewError(rtc.KindEngineFailure, "internal error")

// signalSession runs the commands of one connection in arrival order. The
// connection reader disconnects it independently of any command in flight.
type signalSession struct {
	id      string
	manager *RoomManager
	sink    types.MessageSink
	logger  logger.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	commands *workerpool.WorkerPool

	lock         sync.Mutex
	room         *rtc.Room
	participant  *rtc.Participant
	disconnected core.Fuse
}

func newSignalSession(id string, manager *RoomManager, sink types.MessageSink, l logger.Logger) *signalSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &signalSession{
		id:       id,
		manager:  manager,
		sink:     sink,
		logger:   l,
		ctx:      ctx,
		cancel:   cancel,
		commands: workerpool.New(1),
	}
}

func (s *signalSession) ID() string {
	return s.id
}

// Submit queues a command; commands arriving after disconnect are dropped.
func (s *signalSession) Submit(msg *types.Message) {
	if s.disconnected.IsBroken() {
		return
	}
	s.commands.Submit(func() {
		s.handle(msg)
	})
}

// Disconnect leaves the room and abandons pending commands. Safe to call more
// than once.
func (s *signalSession) Disconnect() {
	s.lock.Lock()
	if s.disconnected.IsBroken() {
		s.lock.Unlock()
		return
	}
	s.disconnected.Break()
	room, p := s.room, s.participant
	s.room, s.participant = nil, nil
	s.lock.Unlock()

	s.cancel()
	if room != nil {
		s.logger.Infow("participant disconnected", "room", room.ID())
		s.manager.DetachParticipant(context.Background(), room, p.ID())
	}
	s.commands.Stop()
}

func (s *signalSession) handle(msg *types.Message) {
	defer rtc.Recover(s.logger.WithValues("event", msg.Event), func(any) {
		s.sendError(msg.Event, errInternal)
		prometheus.RecordMessage(string(msg.Event), "panic")
	})

	if err := s.dispatch(msg); err != nil {
		if rtc.KindOf(err) == rtc.KindEngineFailure {
			s.logger.Warnw("command failed", err, "event", msg.Event)
		} else {
			s.logger.Debugw("command rejected", "event", msg.Event, "error", err)
		}
		s.sendError(msg.Event, err)
		prometheus.RecordMessage(string(msg.Event), "error")
		return
	}
	prometheus.RecordMessage(string(msg.Event), "success")
}

func (s *signalSession) dispatch(msg *types.Message) error {
	switch msg.Event {
	case types.EventJoinRoom:
		var req types.JoinRoomRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.joinRoom(req)
	case types.EventCreateTransport:
		var req types.CreateTransportRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.createTransport(req)
	case types.EventConnectTransport:
		var req types.ConnectTransportRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.connectTransport(req)
	case types.EventProduce:
		var req types.ProduceRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.produce(req)
	case types.EventConsume:
		var req types.ConsumeRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.consume(req)
	case types.EventCloseProducer:
		var req types.CloseProducerRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.closeProducer(req)
	case types.EventLeaveRoom:
		var req types.LeaveRoomRequest
		if err := decode(msg, &req); err != nil {
			return err
		}
		return s.leaveRoom(req)
	default:
		return ErrUnsupportedEvent
	}
}

func decode(msg *types.Message, v any) error {
	if err := msg.Decode(v); err != nil {
		return rtc.WrapError(rtc.KindInvalidArgument, "invalid payload", err)
	}
	return nil
}

func (s *signalSession) joinRoom(req types.JoinRoomRequest) error {
	s.lock.Lock()
	joined := s.room != nil
	s.lock.Unlock()
	if joined {
		return rtc.ErrAlreadyJoined
	}

	room, p, err := s.manager.AttachParticipant(s.ctx, req.RoomID, ParticipantInit{
		ID:   s.id,
		Sink: s.sink,
	})
	if err != nil {
		return err
	}

	s.lock.Lock()
	if s.disconnected.IsBroken() {
		s.lock.Unlock()
		s.manager.DetachParticipant(context.Background(), room, p.ID())
		return rtc.ErrParticipantClosed
	}
	s.room, s.participant = room, p
	s.lock.Unlock()

	s.logger.Infow("participant joined room", "room", room.ID())
	return nil
}

// current returns the joined room, checking that it is the one the command names.
func (s *signalSession) current(roomID string) (*rtc.Room, *rtc.Participant, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.room == nil {
		if s.disconnected.IsBroken() {
			return nil, nil, rtc.ErrParticipantClosed
		}
		return nil, nil, rtc.ErrNotJoined
	}
	if roomID != "" && roomID != s.room.ID() {
		return nil, nil, rtc.ErrRoomMismatch
	}
	return s.room, s.participant, nil
}

func (s *signalSession) createTransport(req types.CreateTransportRequest) error {
	_, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}
	dir := defaultDirection(req.Direction)
	params, err := p.CreateTransport(s.ctx, dir)
	if err != nil {
		return err
	}
	p.SendMessage(types.EventTransportCreated, types.TransportCreated{
		ID:             params.ID,
		Direction:      dir,
		ICEParameters:  params.ICEParameters,
		ICECandidates:  params.ICECandidates,
		DTLSParameters: params.DTLSParameters,
	})
	return nil
}

func (s *signalSession) connectTransport(req types.ConnectTransportRequest) error {
	_, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}
	dir := defaultDirection(req.Direction)
	id, err := p.ConnectTransport(s.ctx, dir, types.ConnectParameters{
		DTLSParameters: req.DTLSParameters,
		ICEParameters:  req.ICEParameters,
		ICECandidates:  req.ICECandidates,
	})
	if err != nil {
		return err
	}
	p.SendMessage(types.EventTransportConnected, types.TransportConnected{
		ID:        id,
		Direction: dir,
	})
	return nil
}

func (s *signalSession) produce(req types.ProduceRequest) error {
	room, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}
	producer, err := room.Produce(s.ctx, p, req.Kind, req.RTPParameters)
	if err != nil {
		return err
	}
	p.SendMessage(types.EventProducerCreated, types.ProducerCreated{
		ProducerID: producer.ID(),
		Kind:       producer.Kind(),
	})
	return nil
}

func (s *signalSession) consume(req types.ConsumeRequest) error {
	room, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}
	consumer, ownerID, err := room.Consume(s.ctx, p, req.ProducerID, req.RTPCapabilities)
	if err != nil {
		return err
	}
	p.SendMessage(types.EventConsumerCreated, types.ConsumerCreated{
		ConsumerID:    consumer.ID(),
		ProducerID:    consumer.ProducerID(),
		ParticipantID: ownerID,
		Kind:          consumer.Kind(),
		RTPParameters: consumer.RTPParameters(),
	})
	return nil
}

func (s *signalSession) closeProducer(req types.CloseProducerRequest) error {
	room, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}
	if err := room.CloseProducer(p, req.ProducerID); err != nil {
		return err
	}
	p.SendMessage(types.EventProducerClosed, types.ProducerClosed{
		ProducerID:    req.ProducerID,
		ParticipantID: p.ID(),
	})
	return nil
}

func (s *signalSession) leaveRoom(req types.LeaveRoomRequest) error {
	room, p, err := s.current(req.RoomID)
	if err != nil {
		return err
	}

	s.lock.Lock()
	if s.room != room {
		s.lock.Unlock()
		return rtc.ErrNotJoined
	}
	s.room, s.participant = nil, nil
	s.lock.Unlock()

	s.manager.DetachParticipant(s.ctx, room, p.ID())
	s.send(types.EventRoomLeft, types.RoomLeft{RoomID: room.ID()})
	return nil
}

func (s *signalSession) send(event types.Event, data any) {
	if err := s.sink.WriteMessage(types.NewMessage(event, data)); err != nil {
		s.logger.Debugw("could not send message", "event", event, "error", err)
	}
}

func (s *signalSession) sendError(request types.Event, err error) {
	s.send(types.EventError, types.ErrorMessage{
		Message: err.Error(),
		Code:    rtc.KindOf(err).String(),
		Request: request,
	})
}

func defaultDirection(dir types.Direction) types.Direction {
	if dir == "" {
		return types.DirectionSend
	}
	return dir
}
