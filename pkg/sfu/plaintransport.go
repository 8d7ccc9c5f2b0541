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
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pion/rtp"
	"go.uber.org/multierr"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// a decoder attaching late needs a key frame to start from
const egressKeyFrameInterval = 3 * time.Second

// plainTransport sends unencrypted RTP to local ports, one per producer.
type plainTransport struct {
	id     string
	roomID string
	router *Router
	ip     net.IP
	logger logger.Logger

	lock      sync.Mutex
	consumers map[string]*egressConsumer
	closed    core.Fuse
}

func newPlainTransport(r *Router, id string, roomID string) *plainTransport {
	return &plainTransport{
		id:        id,
		roomID:    roomID,
		router:    r,
		ip:        net.ParseIP(r.conf.Egress.ListenIP),
		logger:    r.logger.WithValues("transportID", id, "room", roomID),
		consumers: make(map[string]*egressConsumer),
	}
}

func (t *plainTransport) ID() string {
	return t.id
}

func (t *plainTransport) Consume(_ context.Context, tp types.Producer) (types.EgressConsumer, error) {
	if t.closed.IsBroken() {
		return nil, ErrTransportClosed
	}
	p, ok := tp.(*producer)
	if !ok {
		return nil, ErrForeignProducer
	}

	port, err := t.router.ports.acquire()
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: t.ip, Port: port})
	if err != nil {
		t.router.ports.release(port)
		return nil, err
	}

	c := &egressConsumer{
		id:        utils.NewGuid("EC_"),
		producer:  p,
		transport: t,
		port:      port,
		conn:      conn,
		done:      make(chan struct{}),
	}
	t.lock.Lock()
	if t.closed.IsBroken() {
		t.lock.Unlock()
		_ = c.Close()
		return nil, ErrTransportClosed
	}
	t.consumers[c.id] = c
	t.lock.Unlock()

	if err := p.addSink(c.id, c); err != nil {
		_ = c.Close()
		return nil, err
	}
	go c.requestKeyFrames()

	t.logger.Debugw("egress consumer created",
		"consumerID", c.id,
		"producerID", p.id,
		"destination", net.JoinHostPort(t.ip.String(), strconv.Itoa(port)),
	)
	return c, nil
}

func (t *plainTransport) removeConsumer(id string) {
	t.lock.Lock()
	delete(t.consumers, id)
	t.lock.Unlock()
}

func (t *plainTransport) Close() error {
	t.lock.Lock()
	if t.closed.IsBroken() {
		t.lock.Unlock()
		return nil
	}
	t.closed.Break()
	consumers := make([]*egressConsumer, 0, len(t.consumers))
	for _, c := range t.consumers {
		consumers = append(consumers, c)
	}
	t.consumers = make(map[string]*egressConsumer)
	t.lock.Unlock()

	var errs []error
	for _, c := range consumers {
		errs = append(errs, c.Close())
	}
	t.router.untrack(t.id)
	return multierr.Combine(errs...)
}

type egressConsumer struct {
	id        string
	producer  *producer
	transport *plainTransport
	port      int
	conn      *net.UDPConn

	closeOnce sync.Once
	done      chan struct{}
}

func (c *egressConsumer) ID() string {
	return c.id
}

func (c *egressConsumer) ProducerID() string {
	return c.producer.id
}

func (c *egressConsumer) Kind() types.MediaKind {
	return c.producer.kind
}

func (c *egressConsumer) Port() int {
	return c.port
}

func (c *egressConsumer) Codec() types.CodecParameters {
	return types.CodecParameters{
		MimeType:    c.producer.codec.MimeType,
		PayloadType: uint8(c.producer.codec.PayloadType),
		ClockRate:   c.producer.codec.ClockRate,
		Channels:    c.producer.codec.Channels,
		FmtpLine:    c.producer.codec.SDPFmtpLine,
	}
}

func (c *egressConsumer) WriteRTP(pkt *rtp.Packet) error {
	select {
	case <-c.done:
		return io.ErrClosedPipe
	default:
	}
	b, err := pkt.Marshal()
	if err != nil {
		return err
	}
	if _, err = c.conn.Write(b); errors.Is(err, syscall.ECONNREFUSED) {
		// nothing listening yet
		return nil
	}
	return err
}

func (c *egressConsumer) requestKeyFrames() {
	defer c.transport.router.guard("egress-keyframes")
	c.producer.requestKeyFrame()
	ticker := time.NewTicker(egressKeyFrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.producer.requestKeyFrame()
		}
	}
}

func (c *egressConsumer) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.producer.removeSink(c.id)
		c.transport.removeConsumer(c.id)
		err = c.conn.Close()
		c.transport.router.ports.release(c.port)
	})
	return err
}
