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
	"encoding/json"
	"errors"
)

type Event string

// client -> server
const (
	EventJoinRoom         Event = "join-room"
	EventCreateTransport  Event = "create-transport"
	EventConnectTransport Event = "connect-transport"
	EventProduce          Event = "produce"
	EventConsume          Event = "consume"
	EventCloseProducer    Event = "close-producer"
	EventLeaveRoom        Event = "leave-room"
)

// server -> client
const (
	EventRouterCapabilities Event = "router-capabilities"
	EventTransportCreated   Event = "transport-created"
	EventTransportConnected Event = "transport-connected"
	EventProducerCreated    Event = "producer-created"
	EventNewProducer        Event = "new-producer"
	EventConsumerCreated    Event = "consumer-created"
	EventProducerClosed     Event = "producer-closed"
	EventRoomLeft           Event = "room-left"
	EventEgressStatus       Event = "egress-status"
	EventError              Event = "error"
)

var ErrEmptyEvent = errors.New("message has no event")

// Message is the envelope of every signalling frame in both directions.
type Message struct {
	Event Event           `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewMessage encodes data into an envelope; data must be JSON encodable.
func NewMessage(event Event, data any) *Message {
	msg := &Message{Event: event}
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			msg.Data = b
		}
	}
	return msg
}

func ParseMessage(b []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		return nil, err
	}
	if msg.Event == "" {
		return nil, ErrEmptyEvent
	}
	return &msg, nil
}

// Decode unmarshals the payload into v; a missing payload leaves v untouched.
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
}

// UnmarshalJSON also accepts a bare room id string.
func (r *JoinRoomRequest) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		r.RoomID = id
		return nil
	}
	type plain JoinRoomRequest
	return json.Unmarshal(b, (*plain)(r))
}

type CreateTransportRequest struct {
	RoomID    string    `json:"roomId"`
	Direction Direction `json:"direction,omitempty"`
}

type ConnectTransportRequest struct {
	RoomID         string          `json:"roomId"`
	Direction      Direction       `json:"direction,omitempty"`
	DTLSParameters json.RawMessage `json:"dtlsParameters"`
	ICEParameters  json.RawMessage `json:"iceParameters,omitempty"`
	ICECandidates  json.RawMessage `json:"iceCandidates,omitempty"`
}

type ProduceRequest struct {
	RoomID        string          `json:"roomId"`
	Kind          MediaKind       `json:"kind"`
	RTPParameters json.RawMessage `json:"rtpParameters"`
}

type ConsumeRequest struct {
	RoomID          string          `json:"roomId"`
	ProducerID      string          `json:"producerId"`
	RTPCapabilities json.RawMessage `json:"rtpCapabilities,omitempty"`
}

type CloseProducerRequest struct {
	RoomID     string `json:"roomId"`
	ProducerID string `json:"producerId"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"roomId"`
}

type RouterCapabilities struct {
	RTPCapabilities json.RawMessage `json:"rtpCapabilities"`
}

type TransportCreated struct {
	ID             string          `json:"id"`
	Direction      Direction       `json:"direction"`
	ICEParameters  json.RawMessage `json:"iceParameters,omitempty"`
	ICECandidates  json.RawMessage `json:"iceCandidates,omitempty"`
	DTLSParameters json.RawMessage `json:"dtlsParameters,omitempty"`
}

type TransportConnected struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
}

type ProducerCreated struct {
	ProducerID string    `json:"producerId"`
	Kind       MediaKind `json:"kind"`
}

type NewProducer struct {
	ProducerID    string    `json:"producerId"`
	ParticipantID string    `json:"participantId"`
	Kind          MediaKind `json:"kind"`
}

type ConsumerCreated struct {
	ConsumerID    string          `json:"consumerId"`
	ProducerID    string          `json:"producerId"`
	ParticipantID string          `json:"participantId"`
	Kind          MediaKind       `json:"kind"`
	RTPParameters json.RawMessage `json:"rtpParameters,omitempty"`
}

type ProducerClosed struct {
	ProducerID    string `json:"producerId"`
	ParticipantID string `json:"participantId"`
}

type RoomLeft struct {
	RoomID string `json:"roomId"`
}

type EgressStatus struct {
	RoomID   string `json:"roomId"`
	Active   bool   `json:"active"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Request Event  `json:"request,omitempty"`
}

// RoomInfo is the externally visible snapshot of a room.
type RoomInfo struct {
	ID           string       `json:"id"`
	Participants int          `json:"participants"`
	Producers    int          `json:"producers"`
	Egress       EgressStatus `json:"egress"`
	CreatedAt    int64        `json:"createdAt"`
}
