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
	"encoding/json"
	"fmt"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/pion/ice/v2"
	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

var (
	_ types.MediaRouter     = (*Router)(nil)
	_ types.WebRTCTransport = (*webrtcTransport)(nil)
	_ types.PlainTransport  = (*plainTransport)(nil)
	_ types.Producer        = (*producer)(nil)
	_ types.Consumer        = (*consumer)(nil)
	_ types.EgressConsumer  = (*egressConsumer)(nil)
)

// Router is the media engine of this node. Every transport it creates shares
// its codecs and pion API.
type Router struct {
	conf   *config.Config
	logger logger.Logger

	api          *webrtc.API
	codecs       []routerCodec
	capabilities json.RawMessage
	iceServers   []webrtc.ICEServer
	ports        *portAllocator

	lock       sync.Mutex
	transports map[string]closer

	died   core.Fuse
	closed core.Fuse
}

type closer interface {
	Close() error
}

func NewRouter(conf *config.Config, l logger.Logger) (*Router, error) {
	if l == nil {
		l = logger.GetLogger().WithComponent("sfu")
	}

	codecs, err := codecsFromConfig(conf.Router.MediaCodecs)
	if err != nil {
		return nil, err
	}
	me, err := newMediaEngine(codecs)
	if err != nil {
		return nil, err
	}

	ir := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(me, ir); err != nil {
		return nil, err
	}

	se := webrtc.SettingEngine{LoggerFactory: NewLoggerFactory(l)}
	if conf.RTC.ICEPortRangeStart != 0 && conf.RTC.ICEPortRangeEnd != 0 {
		if err := se.SetEphemeralUDPPortRange(conf.RTC.ICEPortRangeStart, conf.RTC.ICEPortRangeEnd); err != nil {
			return nil, err
		}
	}
	if conf.RTC.NodeIP != "" {
		se.SetNAT1To1IPs([]string{conf.RTC.NodeIP}, webrtc.ICECandidateTypeHost)
	}
	if conf.RTC.UseMDNS {
		se.SetICEMulticastDNSMode(ice.MulticastDNSModeQueryOnly)
	} else {
		se.SetICEMulticastDNSMode(ice.MulticastDNSModeDisabled)
	}
	se.SetNetworkTypes([]webrtc.NetworkType{webrtc.NetworkTypeUDP4})

	r := &Router{
		conf:         conf,
		logger:       l,
		api:          webrtc.NewAPI(webrtc.WithMediaEngine(me), webrtc.WithSettingEngine(se), webrtc.WithInterceptorRegistry(ir)),
		codecs:       codecs,
		capabilities: marshalCapabilities(codecs),
		ports:        newPortAllocator(conf.Egress.PortRangeStart, conf.Egress.PortRangeEnd),
		transports:   make(map[string]closer),
	}
	for _, url := range conf.RTC.STUNServers {
		r.iceServers = append(r.iceServers, webrtc.ICEServer{URLs: []string{url}})
	}
	return r, nil
}

func (r *Router) RTPCapabilities() json.RawMessage {
	return r.capabilities
}

func (r *Router) CreateWebRTCTransport(ctx context.Context, opts types.WebRTCTransportOptions) (types.WebRTCTransport, error) {
	if r.closed.IsBroken() {
		return nil, ErrRouterClosed
	}
	t, err := newWebRTCTransport(ctx, r, utils.NewGuid("TR_"), opts)
	if err != nil {
		return nil, err
	}
	if !r.track(t.id, t) {
		_ = t.Close()
		return nil, ErrRouterClosed
	}
	return t, nil
}

func (r *Router) CreatePlainTransport(_ context.Context, opts types.PlainTransportOptions) (types.PlainTransport, error) {
	if r.closed.IsBroken() {
		return nil, ErrRouterClosed
	}
	if r.conf.Egress.ListenIP == "" {
		return nil, fmt.Errorf("egress listen ip not configured")
	}
	t := newPlainTransport(r, utils.NewGuid("PT_"), opts.RoomID)
	if !r.track(t.id, t) {
		_ = t.Close()
		return nil, ErrRouterClosed
	}
	return t, nil
}

func (r *Router) Died() <-chan struct{} {
	return r.died.Watch()
}

// Close releases every transport still open.
func (r *Router) Close() error {
	r.lock.Lock()
	if r.closed.IsBroken() {
		r.lock.Unlock()
		return nil
	}
	r.closed.Break()
	transports := make([]closer, 0, len(r.transports))
	for _, t := range r.transports {
		transports = append(transports, t)
	}
	r.transports = make(map[string]closer)
	r.lock.Unlock()

	for _, t := range transports {
		_ = t.Close()
	}
	r.logger.Infow("router closed", "transports", len(transports))
	return nil
}

func (r *Router) track(id string, t closer) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closed.IsBroken() {
		return false
	}
	r.transports[id] = t
	return true
}

func (r *Router) untrack(id string) {
	r.lock.Lock()
	delete(r.transports, id)
	r.lock.Unlock()
}

// guard runs in every engine goroutine. A panic there leaves the engine in an
// unknown state, so the router is marked dead.
func (r *Router) guard(component string) {
	if p := recover(); p != nil {
		r.logger.Errorw("media engine panic", fmt.Errorf("%v", p), "component", component)
		r.died.Break()
	}
}
