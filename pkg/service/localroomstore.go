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
	"context"
	"sort"
	"sync"

	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// LocalRoomStore is a RoomStore for a single node
type LocalRoomStore struct {
	lock  sync.RWMutex
	rooms map[string]types.RoomInfo
}

func NewLocalRoomStore() *LocalRoomStore {
	return &LocalRoomStore{
		rooms: make(map[string]types.RoomInfo),
	}
}

func (s *LocalRoomStore) StoreRoom(_ context.Context, info types.RoomInfo) error {
	if info.ID == "" {
		return rtc.ErrInvalidRoomID
	}
	s.lock.Lock()
	s.rooms[info.ID] = info
	s.lock.Unlock()
	return nil
}

func (s *LocalRoomStore) LoadRoom(_ context.Context, roomID string) (types.RoomInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	info, ok := s.rooms[roomID]
	if !ok {
		return types.RoomInfo{}, rtc.ErrRoomNotFound
	}
	return info, nil
}

func (s *LocalRoomStore) ListRooms(_ context.Context) ([]types.RoomInfo, error) {
	s.lock.RLock()
	rooms := make([]types.RoomInfo, 0, len(s.rooms))
	for _, info := range s.rooms {
		rooms = append(rooms, info)
	}
	s.lock.RUnlock()

	sortRooms(rooms)
	return rooms, nil
}

func (s *LocalRoomStore) DeleteRoom(_ context.Context, roomID string) error {
	s.lock.Lock()
	delete(s.rooms, roomID)
	s.lock.Unlock()
	return nil
}

func sortRooms(rooms []types.RoomInfo) {
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt != rooms[j].CreatedAt {
			return rooms[i].CreatedAt < rooms[j].CreatedAt
		}
		return rooms[i].ID < rooms[j].ID
	})
}
