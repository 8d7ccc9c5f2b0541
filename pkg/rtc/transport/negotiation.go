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

package transport

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

type NegotiationState int

const (
	NegotiationStateNone NegotiationState = iota
	// allocation requested from the engine
	NegotiationStateRequested
	// parameters returned to the client, waiting for connect
	NegotiationStateCreated
	NegotiationStateConnecting
	NegotiationStateConnected
	NegotiationStateFailed
	NegotiationStateClosed
)

func (n NegotiationState) String() string {
	switch n {
	case NegotiationStateNone:
		return "NONE"
	case NegotiationStateRequested:
		return "REQUESTED"
	case NegotiationStateCreated:
		return "CREATED"
	case NegotiationStateConnecting:
		return "CONNECTING"
	case NegotiationStateConnected:
		return "CONNECTED"
	case NegotiationStateFailed:
		return "FAILED"
	case NegotiationStateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("%d", int(n))
	}
}

var (
	ErrNegotiationInProgress = errors.New("transport negotiation already in progress")
	ErrTransportExists       = errors.New("transport already created")
	ErrTransportNotReady     = errors.New("transport not ready")
	ErrNegotiationClosed     = errors.New("transport negotiation closed")
	ErrUnexpectedState       = errors.New("unexpected transport negotiation state")
)

// Negotiation tracks the lifecycle of one transport slot, i.e. a single
// (participant, direction) pair. All transitions are serialized.
type Negotiation struct {
	direction types.Direction

	lock      sync.Mutex
	state     NegotiationState
	transport types.WebRTCTransport
}

func NewNegotiation(direction types.Direction) *Negotiation {
	return &Negotiation{direction: direction}
}

func (n *Negotiation) Direction() types.Direction {
	return n.direction
}

func (n *Negotiation) State() NegotiationState {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.state
}

func (n *Negotiation) Transport() types.WebRTCTransport {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.transport
}

// Request claims the slot for a new allocation. A failed slot may be
// requested again.
func (n *Negotiation) Request() error {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch n.state {
	case NegotiationStateNone, NegotiationStateFailed:
		n.state = NegotiationStateRequested
		n.transport = nil
		return nil
	case NegotiationStateRequested, NegotiationStateConnecting:
		return ErrNegotiationInProgress
	case NegotiationStateCreated, NegotiationStateConnected:
		return ErrTransportExists
	default:
		return ErrNegotiationClosed
	}
}

// Created attaches the allocated transport. When the slot was closed while
// allocating, the caller keeps ownership of t and must close it.
func (n *Negotiation) Created(t types.WebRTCTransport) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch n.state {
	case NegotiationStateRequested:
		n.state = NegotiationStateCreated
		n.transport = t
		return nil
	case NegotiationStateClosed:
		return ErrNegotiationClosed
	default:
		return ErrUnexpectedState
	}
}

// Fail moves the slot to FAILED and hands back the attached transport, if any.
func (n *Negotiation) Fail() types.WebRTCTransport {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.state == NegotiationStateClosed {
		return nil
	}
	t := n.transport
	n.state = NegotiationStateFailed
	n.transport = nil
	return t
}

func (n *Negotiation) BeginConnect() (types.WebRTCTransport, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch n.state {
	case NegotiationStateCreated:
		n.state = NegotiationStateConnecting
		return n.transport, nil
	case NegotiationStateConnecting:
		return nil, ErrNegotiationInProgress
	case NegotiationStateClosed:
		return nil, ErrNegotiationClosed
	default:
		return nil, ErrTransportNotReady
	}
}

func (n *Negotiation) Connected() error {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch n.state {
	case NegotiationStateConnecting:
		n.state = NegotiationStateConnected
		return nil
	case NegotiationStateClosed:
		return ErrNegotiationClosed
	default:
		return ErrUnexpectedState
	}
}

// Ready returns the transport when the slot is in one of the given states.
func (n *Negotiation) Ready(states ...NegotiationState) (types.WebRTCTransport, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.transport == nil || !slices.Contains(states, n.state) {
		return nil, ErrTransportNotReady
	}
	return n.transport, nil
}

// Close is terminal and returns the transport the owner must release.
func (n *Negotiation) Close() types.WebRTCTransport {
	n.lock.Lock()
	defer n.lock.Unlock()

	t := n.transport
	n.state = NegotiationStateClosed
	n.transport = nil
	return t
}
