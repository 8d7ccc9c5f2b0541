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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/transport"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/rtc/types/typesfakes"
)

func TestParticipant_CreateTransport(t *testing.T) {
	t.Run("once per direction", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		p, _ := newTestParticipant(room, router)

		params, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.NoError(t, err)
		require.NotEmpty(t, params.ID)
		require.Equal(t, transport.NegotiationStateCreated, p.TransportState(types.DirectionSend))

		_, err = p.CreateTransport(context.Background(), types.DirectionSend)
		require.ErrorIs(t, err, ErrTransportExists)
		require.Equal(t, 1, router.CreateWebRTCTransportCallCount())

		_, err = p.CreateTransport(context.Background(), types.DirectionRecv)
		require.NoError(t, err)
		require.Equal(t, 2, router.CreateWebRTCTransportCallCount())
	})

	t.Run("invalid direction", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)
		_, err := p.CreateTransport(context.Background(), types.Direction("both"))
		require.ErrorIs(t, err, ErrInvalidDirection)
	})

	t.Run("engine failure leaves slot failed", func(t *testing.T) {
		router := newTestRouter()
		router.CreateWebRTCTransportStub = nil
		router.CreateWebRTCTransportReturns(nil, errors.New("worker unavailable"))
		p, _ := newTestParticipant(newTestRoom(router, nil), router)

		_, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.Error(t, err)
		require.Equal(t, KindEngineFailure, KindOf(err))
		require.Equal(t, transport.NegotiationStateFailed, p.TransportState(types.DirectionSend))
	})

	t.Run("completion after disconnect is closed", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)

		release := make(chan struct{})
		created := &typesfakes.FakeWebRTCTransport{}
		created.IDReturns("late")
		router.CreateWebRTCTransportStub = func(context.Context, types.WebRTCTransportOptions) (types.WebRTCTransport, error) {
			<-release
			return created, nil
		}

		errCh := make(chan error, 1)
		go func() {
			_, err := p.CreateTransport(context.Background(), types.DirectionSend)
			errCh <- err
		}()
		require.Eventually(t, func() bool {
			return p.TransportState(types.DirectionSend) == transport.NegotiationStateRequested
		}, testWaitTimeout, time.Millisecond)

		res := p.close()
		require.Empty(t, res.transports)
		close(release)

		require.ErrorIs(t, <-errCh, ErrParticipantClosed)
		require.Equal(t, 1, created.CloseCallCount())
	})
}

func TestParticipant_ConnectTransport(t *testing.T) {
	t.Run("before create", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)
		_, err := p.ConnectTransport(context.Background(), types.DirectionSend, types.ConnectParameters{})
		require.ErrorIs(t, err, ErrTransportNotReady)
	})

	t.Run("connects once", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)
		params, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.NoError(t, err)

		id, err := p.ConnectTransport(context.Background(), types.DirectionSend, types.ConnectParameters{DTLSParameters: json.RawMessage(`{}`)})
		require.NoError(t, err)
		require.Equal(t, params.ID, id)
		require.Equal(t, transport.NegotiationStateConnected, p.TransportState(types.DirectionSend))

		_, err = p.ConnectTransport(context.Background(), types.DirectionSend, types.ConnectParameters{})
		require.ErrorIs(t, err, ErrTransportNotReady)
	})

	t.Run("handshake failure releases transport", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)
		_, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.NoError(t, err)
		tr := router.transports[0]
		tr.ConnectReturns(errors.New("dtls failed"))

		_, err = p.ConnectTransport(context.Background(), types.DirectionSend, types.ConnectParameters{})
		require.Equal(t, KindEngineFailure, KindOf(err))
		require.Equal(t, transport.NegotiationStateFailed, p.TransportState(types.DirectionSend))
		require.Equal(t, 1, tr.CloseCallCount())
	})
}

func TestParticipant_Produce(t *testing.T) {
	t.Run("not ready before connect", func(t *testing.T) {
		router := newTestRouter()
		p, _ := newTestParticipant(newTestRoom(router, nil), router)
		_, err := p.CreateTransport(context.Background(), types.DirectionSend)
		require.NoError(t, err)

		_, err = p.produce(context.Background(), types.MediaKindVideo, nil)
		require.ErrorIs(t, err, ErrTransportNotReady)
		require.Equal(t, KindNotReady, KindOf(err))
	})

	t.Run("one producer per kind", func(t *testing.T) {
		router := newTestRouter()
		room := newTestRoom(router, nil)
		p, _ := newTestParticipant(room, router)
		joinConnected(t, room, p)

		_, err := p.produce(context.Background(), types.MediaKindVideo, nil)
		require.NoError(t, err)
		_, err = p.produce(context.Background(), types.MediaKindVideo, nil)
		require.ErrorIs(t, err, ErrProducerExists)
		_, err = p.produce(context.Background(), types.MediaKindAudio, nil)
		require.NoError(t, err)
		require.Len(t, p.Producers(), 2)

		_, err = p.produce(context.Background(), types.MediaKind("data"), nil)
		require.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestParticipant_CloseReleasesOnce(t *testing.T) {
	router := newTestRouter()
	room := newTestRoom(router, nil)
	p, _ := newTestParticipant(room, router)
	joinConnected(t, room, p)
	_, err := p.produce(context.Background(), types.MediaKindAudio, nil)
	require.NoError(t, err)

	res := p.close()
	require.Len(t, res.producers, 1)
	require.Len(t, res.transports, 2)
	require.True(t, p.IsClosed())
	require.Equal(t, transport.NegotiationStateClosed, p.TransportState(types.DirectionSend))

	res = p.close()
	require.Empty(t, res.producers)
	require.Empty(t, res.transports)

	_, err = p.CreateTransport(context.Background(), types.DirectionSend)
	require.ErrorIs(t, err, ErrParticipantClosed)
}
