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

package egress

import (
	"strings"
	"time"

	"github.com/pion/sdp/v3"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// SessionDescription describes the RTP streams the transcoder reads, as
// received on ip.
func SessionDescription(req types.TranscodeRequest, ip string) ([]byte, error) {
	sd := &sdp.SessionDescription{
		Version: 0,
		Origin: sdp.Origin{
			Username:       "-",
			SessionID:      uint64(time.Now().Unix()),
			SessionVersion: 1,
			NetworkType:    "IN",
			AddressType:    "IP4",
			UnicastAddress: ip,
		},
		SessionName: sdp.SessionName("livestream " + req.RoomID),
		ConnectionInformation: &sdp.ConnectionInformation{
			NetworkType: "IN",
			AddressType: "IP4",
			Address:     &sdp.Address{Address: ip},
		},
		TimeDescriptions: []sdp.TimeDescription{{Timing: sdp.Timing{}}},
	}
	if req.Video != nil {
		sd.MediaDescriptions = append(sd.MediaDescriptions, mediaDescription("video", req.Video))
	}
	if req.Audio != nil {
		sd.MediaDescriptions = append(sd.MediaDescriptions, mediaDescription("audio", req.Audio))
	}
	return sd.Marshal()
}

func mediaDescription(media string, stream *types.EgressStream) *sdp.MediaDescription {
	md := &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   media,
			Port:    sdp.RangedPort{Value: stream.Port},
			Protos:  []string{"RTP", "AVP"},
			Formats: []string{},
		},
	}
	md = md.WithCodec(stream.Codec.PayloadType, codecName(stream.Codec.MimeType), stream.Codec.ClockRate, stream.Codec.Channels, stream.Codec.FmtpLine)
	return md.WithPropertyAttribute(sdp.AttrKeyRecvOnly)
}

// codecName is the encoding name of a mime type, "video/VP8" -> "VP8".
func codecName(mimeType string) string {
	if _, name, ok := strings.Cut(mimeType, "/"); ok {
		return name
	}
	return mimeType
}
