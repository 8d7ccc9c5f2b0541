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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/rtc/types/typesfakes"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
)

func TestRoom_Join(t *testing.T) {
	t.Run("sends capabilities then existing producers", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		pub, _ := newTestParticipant(room, router)
		joinConnected(t, room, pub)
		producer, err := room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
		require.NoError(t, err)

		sub, sink := newTestParticipant(room, router)
		require.NoError(t, room.Join(sub))
		require.Equal(t, []types.Event{types.EventRouterCapabilities, types.EventNewProducer}, sentEvents(sink))

		var np types.NewProducer
		lastMessage(t, sink, types.EventNewProducer, &np)
		require.Equal(t, types.NewProducer{
			ProducerID:    producer.ID(),
			ParticipantID: pub.ID(),
			Kind:          types.MediaKindVideo,
		}, np)
	})

	t.Run("rejects duplicates and full rooms", func(t *testing.T) {
		router := newTestRouter()
		room := NewRoom(RoomParams{ID: "limited", Router: router, MaxParticipants: 1})
		p, _ := newTestParticipant(room, router)
		require.NoError(t, room.Join(p))
		require.ErrorIs(t, room.Join(p), ErrAlreadyJoined)

		other, _ := newTestParticipant(room, router)
		require.ErrorIs(t, room.Join(other), ErrMaxParticipants)
	})

	t.Run("closing room rejects joins", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		require.True(t, room.CloseIfEmpty())
		require.False(t, room.CloseIfEmpty())

		p, _ := newTestParticipant(room, router)
		require.ErrorIs(t, room.Join(p), ErrRoomClosed)
	})
}

func TestRoom_Produce(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	pub, pubSink := newTestParticipant(room, router)
	sub, subSink := newTestParticipant(room, router)
	joinConnected(t, room, pub)
	require.NoError(t, room.Join(sub))

	producer, err := room.Produce(context.Background(), pub, types.MediaKindAudio, nil)
	require.NoError(t, err)

	var np types.NewProducer
	lastMessage(t, subSink, types.EventNewProducer, &np)
	require.Equal(t, producer.ID(), np.ProducerID)
	require.Equal(t, pub.ID(), np.ParticipantID)
	require.Equal(t, types.MediaKindAudio, np.Kind)
	require.NotContains(t, sentEvents(pubSink), types.EventNewProducer)

	info := room.ToInfo()
	require.Equal(t, 2, info.Participants)
	require.Equal(t, 1, info.Producers)

	t.Run("send transport not connected", func(t *testing.T) {
		p, _ := newTestParticipant(room, router)
		require.NoError(t, room.Join(p))
		_, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.NoError(t, err)

		_, err = room.Produce(context.Background(), p, types.MediaKindVideo, nil)
		require.Equal(t, KindNotReady, KindOf(err))
	})
}

func TestRoom_Consume(t *testing.T) {
	setup := func(t *testing.T) (*testRouter, *Room, *Participant, *Participant, types.Producer) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		pub, _ := newTestParticipant(room, router)
		sub, _ := newTestParticipant(room, router)
		joinConnected(t, room, pub)
		joinConnected(t, room, sub)
		producer, err := room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
		require.NoError(t, err)
		return router, room, pub, sub, producer
	}

	t.Run("subscribes once", func(t *testing.T) {
		_, room, pub, sub, producer := setup(t)
		consumer, owner, err := room.Consume(context.Background(), sub, producer.ID(), nil)
		require.NoError(t, err)
		require.Equal(t, pub.ID(), owner)
		require.Equal(t, producer.ID(), consumer.ProducerID())
		require.True(t, sub.HasConsumer(producer.ID()))

		_, _, err = room.Consume(context.Background(), sub, producer.ID(), nil)
		require.ErrorIs(t, err, ErrAlreadySubscribed)
	})

	t.Run("own producer", func(t *testing.T) {
		_, room, pub, _, producer := setup(t)
		_, _, err := room.Consume(context.Background(), pub, producer.ID(), nil)
		require.ErrorIs(t, err, ErrCannotConsumeOwn)
	})

	t.Run("unknown producer", func(t *testing.T) {
		_, room, _, sub, _ := setup(t)
		_, _, err := room.Consume(context.Background(), sub, "missing", nil)
		require.ErrorIs(t, err, ErrProducerNotFound)
		require.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("without receive transport", func(t *testing.T) {
		router, room, _, _, producer := setup(t)
		p, _ := newTestParticipant(room, router)
		require.NoError(t, room.Join(p))
		_, _, err := room.Consume(context.Background(), p, producer.ID(), nil)
		require.ErrorIs(t, err, ErrTransportNotReady)
	})
}

func TestRoom_CloseProducer(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	pub, _ := newTestParticipant(room, router)
	sub, subSink := newTestParticipant(room, router)
	joinConnected(t, room, pub)
	joinConnected(t, room, sub)
	producer, err := room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
	require.NoError(t, err)
	_, _, err = room.Consume(context.Background(), sub, producer.ID(), nil)
	require.NoError(t, err)

	require.ErrorIs(t, room.CloseProducer(sub, producer.ID()), ErrProducerNotFound)
	require.NoError(t, room.CloseProducer(pub, producer.ID()))

	consumers := router.createdConsumers()
	require.Len(t, consumers, 1)
	require.Equal(t, 1, consumers[0].CloseCallCount())
	require.False(t, sub.HasConsumer(producer.ID()))
	require.Empty(t, pub.Producers())

	var closed types.ProducerClosed
	lastMessage(t, subSink, types.EventProducerClosed, &closed)
	require.Equal(t, producer.ID(), closed.ProducerID)

	// the kind is free again
	_, err = room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
	require.NoError(t, err)
}

func TestRoom_RemoveParticipant(t *testing.T) {
	t.Run("releases consumers, producers then transports", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		pub, _ := newTestParticipant(room, router)
		sub, subSink := newTestParticipant(room, router)
		joinConnected(t, room, pub)
		joinConnected(t, room, sub)

		producer, err := room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
		require.NoError(t, err)
		subProducer, err := room.Produce(context.Background(), sub, types.MediaKindAudio, nil)
		require.NoError(t, err)
		_, _, err = room.Consume(context.Background(), sub, producer.ID(), nil)
		require.NoError(t, err)
		_, _, err = room.Consume(context.Background(), pub, subProducer.ID(), nil)
		require.NoError(t, err)

		var order []string
		for _, c := range router.createdConsumers() {
			c.CloseStub = func() error { order = append(order, "consumer"); return nil }
		}
		for _, p := range router.producers {
			p.CloseStub = func() error { order = append(order, "producer"); return nil }
		}
		for _, tr := range router.transports[:2] {
			tr.CloseStub = func() error { order = append(order, "transport"); return nil }
		}

		room.RemoveParticipant(pub.ID())
		// pub consumed one producer, and its own producer had one consumer
		require.Equal(t, []string{"consumer", "consumer", "producer", "transport", "transport"}, order)
		require.Nil(t, room.GetParticipant(pub.ID()))
		require.False(t, sub.HasConsumer(producer.ID()))

		var closed types.ProducerClosed
		lastMessage(t, subSink, types.EventProducerClosed, &closed)
		require.Equal(t, producer.ID(), closed.ProducerID)
		require.Equal(t, pub.ID(), closed.ParticipantID)

		// idempotent
		room.RemoveParticipant(pub.ID())
		require.Len(t, order, 5)
		require.Equal(t, 1, room.NumParticipants())
	})

	t.Run("late produce after removal is released", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		p, _ := newTestParticipant(room, router)
		joinConnected(t, room, p)

		release := make(chan struct{})
		send := router.transports[0]
		produce := send.ProduceStub
		send.ProduceStub = func(ctx context.Context, kind types.MediaKind, rtp json.RawMessage) (types.Producer, error) {
			<-release
			return produce(ctx, kind, rtp)
		}

		errCh := make(chan error, 1)
		go func() {
			_, err := room.Produce(context.Background(), p, types.MediaKindVideo, nil)
			errCh <- err
		}()
		require.Eventually(t, func() bool { return send.ProduceCallCount() == 1 }, testWaitTimeout, time.Millisecond)

		room.RemoveParticipant(p.ID())
		close(release)
		require.ErrorIs(t, <-errCh, ErrParticipantClosed)

		require.Len(t, router.producers, 1)
		require.Equal(t, 1, router.producers[0].CloseCallCount())
		require.Equal(t, 0, room.ToInfo().Producers)
	})

	t.Run("unpublished producer is not announced as closed", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		pub, _ := newTestParticipant(room, router)
		sub, subSink := newTestParticipant(room, router)
		joinConnected(t, room, pub)
		joinConnected(t, room, sub)

		// created on the participant, removed before the room published it
		producer, err := pub.produce(context.Background(), types.MediaKindVideo, nil)
		require.NoError(t, err)
		room.RemoveParticipant(pub.ID())

		require.Equal(t, 1, producer.(*typesfakes.FakeProducer).CloseCallCount())
		require.NotContains(t, sentEvents(subSink), types.EventProducerClosed)
	})
}

func TestRoom_ProducerClosedByEngine(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	pub, pubSink := newTestParticipant(room, router)
	sub, subSink := newTestParticipant(room, router)
	joinConnected(t, room, pub)
	joinConnected(t, room, sub)

	producer, err := room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
	require.NoError(t, err)
	_, _, err = room.Consume(context.Background(), sub, producer.ID(), nil)
	require.NoError(t, err)

	fake := producer.(*typesfakes.FakeProducer)
	require.Equal(t, 1, fake.OnCloseCallCount())
	// the engine closes the producer, e.g. on transport failure
	onClose := fake.OnCloseArgsForCall(0)
	onClose()

	require.Equal(t, 0, room.ToInfo().Producers)
	require.Empty(t, pub.Producers())
	require.False(t, sub.HasConsumer(producer.ID()))
	require.Equal(t, 1, router.createdConsumers()[0].CloseCallCount())
	for _, sink := range []*typesfakes.FakeMessageSink{pubSink, subSink} {
		var closed types.ProducerClosed
		lastMessage(t, sink, types.EventProducerClosed, &closed)
		require.Equal(t, producer.ID(), closed.ProducerID)
	}

	// released once
	onClose()
	require.Equal(t, 1, fake.CloseCallCount())

	// the kind is free again
	_, err = room.Produce(context.Background(), pub, types.MediaKindVideo, nil)
	require.NoError(t, err)
}

func TestRoom_Close(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	p, _ := newTestParticipant(room, router)
	joinConnected(t, room, p)
	require.False(t, room.CloseIfEmpty())

	room.Close()
	require.Equal(t, 0, room.NumParticipants())
	require.True(t, p.IsClosed())
	select {
	case <-room.Closed():
	default:
		t.Fatal("room should be closed")
	}
}

func TestRoom_ConcurrentClose(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	p, _ := newTestParticipant(room, router)
	joinConnected(t, room, p)
	rooms := prometheus.CurrentRooms()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			room.Close()
			// every caller returns only once the room is released
			select {
			case <-room.Closed():
			default:
				t.Error("room should be closed")
			}
		}()
	}
	wg.Wait()

	require.Equal(t, rooms-1, prometheus.CurrentRooms())
	for _, tr := range router.transports {
		require.Equal(t, 1, tr.CloseCallCount())
	}
}
