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

	"github.com/livekit/livestream-server/pkg/rtc/transport"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindNotReady
	KindInvalidArgument
	KindEngineFailure
	KindEgressFailure
	// the process cannot continue and must terminate
	KindFatalInfra
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNotReady:
		return "not_ready"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindEngineFailure:
		return "engine_failure"
	case KindEgressFailure:
		return "egress_failure"
	case KindFatalInfra:
		return "fatal_infra"
	default:
		return "unknown"
	}
}

// Error is a classified failure reported back to the requester.
type Error struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func WrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors of the same kind and message regardless of cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.msg == e.msg
}

var (
	ErrRoomNotFound         = NewError(KindNotFound, "room not found")
	ErrRoomClosed           = NewError(KindNotFound, "room has already closed")
	ErrRoomNotEmpty         = NewError(KindInvalidArgument, "room still has participants")
	ErrInvalidRoomID        = NewError(KindInvalidArgument, "invalid room id")
	ErrRoomMismatch         = NewError(KindInvalidArgument, "participant is not in this room")
	ErrNotJoined            = NewError(KindNotReady, "participant has not joined a room")
	ErrAlreadyJoined        = NewError(KindInvalidArgument, "participant already joined a room")
	ErrMaxParticipants      = NewError(KindInvalidArgument, "room has exceeded its max participants")
	ErrParticipantNotFound  = NewError(KindNotFound, "participant not found")
	ErrParticipantClosed    = NewError(KindNotFound, "participant has disconnected")
	ErrInvalidDirection     = NewError(KindInvalidArgument, "invalid transport direction")
	ErrInvalidKind          = NewError(KindInvalidArgument, "invalid media kind")
	ErrTransportNotReady    = NewError(KindNotReady, "transport not ready")
	ErrTransportPending     = NewError(KindNotReady, "transport negotiation already in progress")
	ErrTransportExists      = NewError(KindInvalidArgument, "transport already created")
	ErrProducerExists       = NewError(KindInvalidArgument, "a producer of this kind already exists")
	ErrProducerNotFound     = NewError(KindNotFound, "producer not found")
	ErrCannotConsumeOwn     = NewError(KindInvalidArgument, "cannot consume own producer")
	ErrAlreadySubscribed    = NewError(KindInvalidArgument, "already subscribed to producer")
	ErrEgressUnavailable    = NewError(KindEgressFailure, "egress unavailable")
	ErrMediaEngineDied      = NewError(KindFatalInfra, "media engine died")
	ErrUnsupportedOperation = NewError(KindInvalidArgument, "unsupported operation")
)

func engineFailure(msg string, cause error) error {
	return WrapError(KindEngineFailure, msg, cause)
}

// fromNegotiation maps state machine rejections onto the request taxonomy.
func fromNegotiation(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, transport.ErrNegotiationInProgress):
		return ErrTransportPending
	case errors.Is(err, transport.ErrTransportExists):
		return ErrTransportExists
	case errors.Is(err, transport.ErrNegotiationClosed):
		return ErrParticipantClosed
	default:
		return ErrTransportNotReady
	}
}

// KindOf classifies any error; unclassified failures are attributed to the engine.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, transport.ErrTransportNotReady):
		return KindNotReady
	case errors.Is(err, context.Canceled):
		return KindNotFound
	default:
		return KindEngineFailure
	}
}
