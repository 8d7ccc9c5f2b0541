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
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/rtc/types/typesfakes"
)

func TestSignalSession_RecoversPanickingCommand(t *testing.T) {
	rm, router, _ := newTestRoomManager(t, nil)
	router.CreateWebRTCTransportStub = func(context.Context, types.WebRTCTransportOptions) (types.WebRTCTransport, error) {
		panic("engine bug")
	}

	sink := &typesfakes.FakeMessageSink{}
	s := newSignalSession(nextID("PA"), rm, sink, logger.GetLogger())
	t.Cleanup(s.Disconnect)

	s.Submit(types.NewMessage(types.EventJoinRoom, types.JoinRoomRequest{RoomID: "room"}))
	s.Submit(types.NewMessage(types.EventCreateTransport, types.CreateTransportRequest{RoomID: "room"}))
	s.Submit(types.NewMessage(types.EventLeaveRoom, types.LeaveRoomRequest{RoomID: "room"}))

	find := func(event types.Event) *types.Message {
		for i := 0; i < sink.WriteMessageCallCount(); i++ {
			if msg := sink.WriteMessageArgsForCall(i); msg.Event == event {
				return msg
			}
		}
		return nil
	}
	// later commands still run
	require.Eventually(t, func() bool { return find(types.EventRoomLeft) != nil }, testWaitTimeout, time.Millisecond)

	var e types.ErrorMessage
	require.NoError(t, find(types.EventError).Decode(&e))
	require.Equal(t, types.EventCreateTransport, e.Request)
	require.Equal(t, errInternal.Error(), e.Message)
}
