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
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
	"github.com/pion/webrtc/v3"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

var fmtpKeyOrder = []string{"minptime", "useinbandfec", "level-asymmetry-allowed", "packetization-mode", "profile-level-id"}

var videoRTCPFeedback = []webrtc.RTCPFeedback{{Type: "ccm", Parameter: "fir"}, {Type: "nack"}, {Type: "nack", Parameter: "pli"}}

// routerCodec is a configured codec with the kind it was registered under.
type routerCodec struct {
	kind   types.MediaKind
	params webrtc.RTPCodecParameters
}

func codecsFromConfig(specs []config.CodecSpec) ([]routerCodec, error) {
	codecs := make([]routerCodec, 0, len(specs))
	for _, spec := range specs {
		kind := types.MediaKind(spec.Kind)
		if !kind.Valid() {
			return nil, fmt.Errorf("invalid codec kind %q", spec.Kind)
		}
		capability := webrtc.RTPCodecCapability{
			MimeType:    spec.Mime,
			ClockRate:   spec.ClockRate,
			Channels:    spec.Channels,
			SDPFmtpLine: spec.FmtpLine,
		}
		if kind == types.MediaKindVideo {
			capability.RTCPFeedback = videoRTCPFeedback
		}
		codecs = append(codecs, routerCodec{
			kind: kind,
			params: webrtc.RTPCodecParameters{
				RTPCodecCapability: capability,
				PayloadType:        webrtc.PayloadType(spec.PayloadType),
			},
		})
	}
	return codecs, nil
}

func newMediaEngine(codecs []routerCodec) (*webrtc.MediaEngine, error) {
	me := &webrtc.MediaEngine{}
	for _, c := range codecs {
		if err := me.RegisterCodec(c.params, codecType(c.kind)); err != nil {
			return nil, err
		}
	}

	for _, extension := range []string{
		sdp.SDESMidURI,
		sdp.SDESRTPStreamIDURI,
		sdp.TransportCCURI,
	} {
		if err := me.RegisterHeaderExtension(webrtc.RTPHeaderExtensionCapability{URI: extension}, webrtc.RTPCodecTypeVideo); err != nil {
			return nil, err
		}
	}
	for _, extension := range []string{
		sdp.SDESMidURI,
		sdp.AudioLevelURI,
	} {
		if err := me.RegisterHeaderExtension(webrtc.RTPHeaderExtensionCapability{URI: extension}, webrtc.RTPCodecTypeAudio); err != nil {
			return nil, err
		}
	}
	return me, nil
}

func codecType(kind types.MediaKind) webrtc.RTPCodecType {
	if kind == types.MediaKindAudio {
		return webrtc.RTPCodecTypeAudio
	}
	return webrtc.RTPCodecTypeVideo
}

// wire format of codecs exchanged with clients

type rtcpFeedback struct {
	Type      string `json:"type"`
	Parameter string `json:"parameter,omitempty"`
}

type codecCapability struct {
	Kind                 types.MediaKind `json:"kind,omitempty"`
	MimeType             string          `json:"mimeType"`
	PreferredPayloadType uint8           `json:"preferredPayloadType,omitempty"`
	PayloadType          uint8           `json:"payloadType,omitempty"`
	ClockRate            uint32          `json:"clockRate"`
	Channels             uint16          `json:"channels,omitempty"`
	Parameters           map[string]any  `json:"parameters,omitempty"`
	RTCPFeedback         []rtcpFeedback  `json:"rtcpFeedback,omitempty"`
}

type rtpCapabilities struct {
	Codecs []codecCapability `json:"codecs"`
}

type rtpEncoding struct {
	SSRC uint32 `json:"ssrc,omitempty"`
	RID  string `json:"rid,omitempty"`
}

type rtpParameters struct {
	MID       string            `json:"mid,omitempty"`
	Codecs    []codecCapability `json:"codecs"`
	Encodings []rtpEncoding     `json:"encodings"`
}

func marshalCapabilities(codecs []routerCodec) json.RawMessage {
	caps := rtpCapabilities{Codecs: make([]codecCapability, 0, len(codecs))}
	for _, c := range codecs {
		cc := toWireCodec(c.params)
		cc.Kind = c.kind
		cc.PreferredPayloadType = uint8(c.params.PayloadType)
		cc.PayloadType = 0
		caps.Codecs = append(caps.Codecs, cc)
	}
	b, _ := json.Marshal(caps)
	return b
}

func toWireCodec(params webrtc.RTPCodecParameters) codecCapability {
	cc := codecCapability{
		MimeType:    params.MimeType,
		PayloadType: uint8(params.PayloadType),
		ClockRate:   params.ClockRate,
		Channels:    params.Channels,
		Parameters:  parseFmtpLine(params.SDPFmtpLine),
	}
	for _, fb := range params.RTCPFeedback {
		cc.RTCPFeedback = append(cc.RTCPFeedback, rtcpFeedback{Type: fb.Type, Parameter: fb.Parameter})
	}
	return cc
}

// parseFmtpLine turns "a=1;b=x" into parameters, numeric values as numbers.
func parseFmtpLine(line string) map[string]any {
	if line == "" {
		return nil
	}
	params := make(map[string]any)
	for _, part := range strings.Split(line, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || key == "" {
			continue
		}
		if n, err := strconv.Atoi(value); err == nil {
			params[key] = n
		} else {
			params[key] = value
		}
	}
	return params
}

// formatFmtpLine is the inverse of parseFmtpLine with keys in the order given.
func formatFmtpLine(params map[string]any, order []string) string {
	parts := make([]string, 0, len(params))
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if v, ok := params[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, v))
			seen[key] = true
		}
	}
	rest := make([]string, 0, len(params))
	for key := range params {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		parts = append(parts, fmt.Sprintf("%s=%v", key, params[key]))
	}
	return strings.Join(parts, ";")
}

// matchCodec finds the router codec a client's produce parameters refer to.
func matchCodec(codecs []routerCodec, kind types.MediaKind, params rtpParameters) (webrtc.RTPCodecParameters, error) {
	for _, wanted := range params.Codecs {
		for _, c := range codecs {
			if c.kind != kind || !equalMime(c.params.MimeType, wanted.MimeType) {
				continue
			}
			matched := c.params
			if wanted.PayloadType != 0 {
				matched.PayloadType = webrtc.PayloadType(wanted.PayloadType)
			}
			if len(wanted.Parameters) > 0 {
				// the publisher's own fmtp describes the stream egress receives
				matched.SDPFmtpLine = formatFmtpLine(wanted.Parameters, fmtpKeyOrder)
			}
			return matched, nil
		}
	}
	return webrtc.RTPCodecParameters{}, ErrUnsupportedCodec
}

func equalMime(a, b string) bool {
	return strings.EqualFold(a, b)
}
