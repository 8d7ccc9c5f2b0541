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

package types

import (
	"context"
	"encoding/json"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

func (k MediaKind) Valid() bool {
	return k == MediaKindAudio || k == MediaKindVideo
}

type Direction string

const (
	DirectionSend Direction = "send"
	DirectionRecv Direction = "recv"
)

func (d Direction) Valid() bool {
	return d == DirectionSend || d == DirectionRecv
}

// TransportParameters are the engine-produced values a client needs to
// establish its side of a transport. They are relayed without inspection.
type TransportParameters struct {
	ID             string          `json:"id"`
	ICEParameters  json.RawMessage `json:"iceParameters,omitempty"`
	ICECandidates  json.RawMessage `json:"iceCandidates,omitempty"`
	DTLSParameters json.RawMessage `json:"dtlsParameters,omitempty"`
}

type ConnectParameters struct {
	DTLSParameters json.RawMessage
	ICEParameters  json.RawMessage
	ICECandidates  json.RawMessage
}

type WebRTCTransportOptions struct {
	RoomID        string
	ParticipantID string
	Direction     Direction
}

type PlainTransportOptions struct {
	RoomID string
}

type CodecParameters struct {
	MimeType    string
	PayloadType uint8
	ClockRate   uint32
	Channels    uint16
	FmtpLine    string
}

//counterfeiter:generate . MediaRouter
type MediaRouter interface {
	RTPCapabilities() json.RawMessage
	CreateWebRTCTransport(ctx context.Context, opts WebRTCTransportOptions) (WebRTCTransport, error)
	CreatePlainTransport(ctx context.Context, opts PlainTransportOptions) (PlainTransport, error)
	// Died is closed when the engine can no longer be trusted
	Died() <-chan struct{}
	Close() error
}

//counterfeiter:generate . WebRTCTransport
type WebRTCTransport interface {
	ID() string
	Parameters() TransportParameters
	Connect(ctx context.Context, params ConnectParameters) error
	Produce(ctx context.Context, kind MediaKind, rtpParameters json.RawMessage) (Producer, error)
	Consume(ctx context.Context, producer Producer, rtpCapabilities json.RawMessage) (Consumer, error)
	Close() error
}

//counterfeiter:generate . PlainTransport
type PlainTransport interface {
	ID() string
	Consume(ctx context.Context, producer Producer) (EgressConsumer, error)
	Close() error
}

//counterfeiter:generate . Producer
type Producer interface {
	ID() string
	Kind() MediaKind
	// OnClose registers f to run once the producer closed, including when the
	// engine closed it. f runs immediately when it already is closed.
	OnClose(f func())
	Close() error
}

//counterfeiter:generate . Consumer
type Consumer interface {
	ID() string
	ProducerID() string
	Kind() MediaKind
	RTPParameters() json.RawMessage
	Close() error
}

// EgressConsumer forwards a producer's RTP to a local port read by the transcoder.
//
//counterfeiter:generate . EgressConsumer
type EgressConsumer interface {
	ID() string
	ProducerID() string
	Kind() MediaKind
	Port() int
	Codec() CodecParameters
	Close() error
}

type EgressStream struct {
	Port  int
	Codec CodecParameters
}

type TranscodeRequest struct {
	RoomID string
	Video  *EgressStream
	Audio  *EgressStream
}

//counterfeiter:generate . TranscoderLauncher
type TranscoderLauncher interface {
	// Launch returns once the transcoder is considered started
	Launch(ctx context.Context, req TranscodeRequest) (Transcoder, error)
}

//counterfeiter:generate . Transcoder
type Transcoder interface {
	Done() <-chan struct{}
	// Err is the exit reason once Done is closed, nil after Stop
	Err() error
	Stop(ctx context.Context) error
}

//counterfeiter:generate . MessageSink
type MessageSink interface {
	WriteMessage(msg *Message) error
	Close()
}
