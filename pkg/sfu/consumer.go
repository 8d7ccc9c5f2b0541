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

package sfu

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// consumer sends one producer's media down a client's receive transport.
type consumer struct {
	id        string
	producer  *producer
	transport *webrtcTransport
	track     *webrtc.TrackLocalStaticRTP
	sender    *webrtc.RTPSender
	ssrc      webrtc.SSRC
	params    json.RawMessage
	logger    logger.Logger

	startOnce sync.Once
	startErr  error
	closed    core.Fuse
}

func newConsumer(t *webrtcTransport, id string, p *producer) (*consumer, error) {
	track, err := webrtc.NewTrackLocalStaticRTP(p.codec.RTPCodecCapability, id, p.id)
	if err != nil {
		return nil, err
	}
	sender, err := t.router.api.NewRTPSender(track, t.dtls)
	if err != nil {
		return nil, err
	}

	c := &consumer{
		id:        id,
		producer:  p,
		transport: t,
		track:     track,
		sender:    sender,
		logger:    t.logger.WithValues("consumerID", id, "producerID", p.id),
	}
	if encodings := sender.GetParameters().Encodings; len(encodings) > 0 {
		c.ssrc = encodings[0].SSRC
	}
	c.params, err = json.Marshal(rtpParameters{
		MID:       id,
		Codecs:    []codecCapability{toWireCodec(p.codec)},
		Encodings: []rtpEncoding{{SSRC: uint32(c.ssrc)}},
	})
	if err != nil {
		_ = sender.Stop()
		return nil, err
	}
	return c, nil
}

func (c *consumer) ID() string {
	return c.id
}

func (c *consumer) ProducerID() string {
	return c.producer.id
}

func (c *consumer) Kind() types.MediaKind {
	return c.producer.kind
}

func (c *consumer) RTPParameters() json.RawMessage {
	return c.params
}

// start begins sending; it needs the transport's DTLS session.
func (c *consumer) start() error {
	c.startOnce.Do(func() {
		c.startErr = c.sender.Send(webrtc.RTPSendParameters{
			RTPParameters: webrtc.RTPParameters{
				Codecs: []webrtc.RTPCodecParameters{c.producer.codec},
			},
			Encodings: []webrtc.RTPEncodingParameters{
				{
					RTPCodingParameters: webrtc.RTPCodingParameters{
						SSRC:        c.ssrc,
						PayloadType: c.producer.codec.PayloadType,
					},
				},
			},
		})
		if c.startErr != nil {
			return
		}
		go c.readRTCP()
		c.producer.requestKeyFrame()
	})
	return c.startErr
}

func (c *consumer) readRTCP() {
	defer c.transport.router.guard("consumer-rtcp")
	for {
		pkts, _, err := c.sender.ReadRTCP()
		if err != nil {
			return
		}
		for _, pkt := range pkts {
			switch pkt.(type) {
			case *rtcp.PictureLossIndication, *rtcp.FullIntraRequest:
				c.producer.requestKeyFrame()
			}
		}
	}
}

func (c *consumer) WriteRTP(pkt *rtp.Packet) error {
	if c.closed.IsBroken() {
		return io.ErrClosedPipe
	}
	return c.track.WriteRTP(pkt)
}

func (c *consumer) Close() error {
	if c.closed.IsBroken() {
		return nil
	}
	c.closed.Break()
	c.producer.removeSink(c.id)
	c.transport.removeConsumer(c.id)
	return c.sender.Stop()
}
