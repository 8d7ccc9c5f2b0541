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
	"testing"

	"github.com/pion/sdp/v3"
	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

func TestSessionDescription(t *testing.T) {
	req := testRequest("r1")
	req.Video.Codec = types.CodecParameters{
		MimeType:    "video/H264",
		PayloadType: 102,
		ClockRate:   90000,
		FmtpLine:    "packetization-mode=1;profile-level-id=4d0032",
	}
	b, err := SessionDescription(req, "127.0.0.1")
	require.NoError(t, err)

	var sd sdp.SessionDescription
	require.NoError(t, sd.Unmarshal(b))
	require.Equal(t, "127.0.0.1", sd.ConnectionInformation.Address.Address)
	require.Len(t, sd.MediaDescriptions, 2)

	video := sd.MediaDescriptions[0]
	require.Equal(t, "video", video.MediaName.Media)
	require.Equal(t, 20000, video.MediaName.Port.Value)
	require.Equal(t, []string{"102"}, video.MediaName.Formats)
	rtpmap, ok := video.Attribute("rtpmap")
	require.True(t, ok)
	require.Equal(t, "102 H264/90000", rtpmap)
	fmtp, ok := video.Attribute("fmtp")
	require.True(t, ok)
	require.Equal(t, "102 packetization-mode=1;profile-level-id=4d0032", fmtp)

	audio := sd.MediaDescriptions[1]
	require.Equal(t, 20002, audio.MediaName.Port.Value)
	rtpmap, _ = audio.Attribute("rtpmap")
	require.Equal(t, "111 opus/48000/2", rtpmap)
}

func TestSessionDescription_VideoOnly(t *testing.T) {
	req := testRequest("r1")
	req.Audio = nil
	b, err := SessionDescription(req, "127.0.0.1")
	require.NoError(t, err)

	var sd sdp.SessionDescription
	require.NoError(t, sd.Unmarshal(b))
	require.Len(t, sd.MediaDescriptions, 1)
}
