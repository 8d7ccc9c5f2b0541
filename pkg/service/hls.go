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

package service

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/livekit/livestream-server/pkg/config"
)

type HLSResponse struct {
	HLSURL string `json:"hlsUrl"`
}

// HLSService resolves a room's playlist URL. The playlist may not exist yet,
// players are expected to retry.
type HLSService struct {
	baseURL      string
	playlistName string
}

func NewHLSService(conf *config.Config) *HLSService {
	return &HLSService{
		baseURL:      strings.TrimRight(conf.HLS.BaseURL, "/"),
		playlistName: conf.Egress.PlaylistName,
	}
}

func (s *HLSService) PlaylistURL(roomID string) string {
	return s.baseURL + "/" + url.PathEscape(roomID) + "/" + s.playlistName
}

func (s *HLSService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomId")
	if roomID == "" {
		handleError(w, http.StatusBadRequest, ErrMissingRoomID.Error())
		return
	}
	writeJSON(w, r, HLSResponse{HLSURL: s.PlaylistURL(roomID)})
}
