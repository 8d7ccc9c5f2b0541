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
	"errors"
	"net/http"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

type ListRoomsResponse struct {
	Rooms []types.RoomInfo `json:"rooms"`
}

// RoomService exposes the stored room snapshots over HTTP.
type RoomService struct {
	roomStore RoomStore
}

func NewRoomService(roomStore RoomStore) *RoomService {
	return &RoomService{roomStore: roomStore}
}

func (s *RoomService) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.roomStore.ListRooms(r.Context())
	if err != nil {
		logger.Warnw("could not list rooms", err)
		handleError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, ListRoomsResponse{Rooms: rooms})
}

func (s *RoomService) GetRoom(w http.ResponseWriter, r *http.Request) {
	info, err := s.roomStore.LoadRoom(r.Context(), r.PathValue("roomId"))
	if err != nil {
		if errors.Is(err, rtc.ErrRoomNotFound) {
			handleError(w, http.StatusNotFound, err.Error())
			return
		}
		handleError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, info)
}
