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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/transport"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindUnknown},
		{ErrRoomNotFound, KindNotFound},
		{fmt.Errorf("join: %w", ErrTransportNotReady), KindNotReady},
		{transport.ErrTransportNotReady, KindNotReady},
		{WrapError(KindEgressFailure, "egress", errors.New("boom")), KindEgressFailure},
		{ErrMediaEngineDied, KindFatalInfra},
		{context.Canceled, KindNotFound},
		{errors.New("unexpected"), KindEngineFailure},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, KindOf(c.err), "%v", c.err)
	}
}

func TestError_Is(t *testing.T) {
	err := WrapError(KindEngineFailure, "could not produce", errors.New("rtp"))
	require.ErrorIs(t, err, NewError(KindEngineFailure, "could not produce"))
	require.NotErrorIs(t, err, ErrProducerNotFound)
	require.Equal(t, "could not produce: rtp", err.Error())
	require.Equal(t, "engine_failure", err.Kind.String())
}

func TestFromNegotiation(t *testing.T) {
	require.ErrorIs(t, fromNegotiation(transport.ErrNegotiationInProgress), ErrTransportPending)
	require.ErrorIs(t, fromNegotiation(transport.ErrTransportExists), ErrTransportExists)
	require.ErrorIs(t, fromNegotiation(transport.ErrNegotiationClosed), ErrParticipantClosed)
	require.ErrorIs(t, fromNegotiation(transport.ErrUnexpectedState), ErrTransportNotReady)
	require.NoError(t, fromNegotiation(nil))
}
