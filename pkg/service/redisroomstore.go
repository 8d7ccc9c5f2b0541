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
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const defaultRoomKeyPrefix = "livestream:room:"

// RedisRoomStore keeps one JSON encoded snapshot per room under <prefix><roomID>
type RedisRoomStore struct {
	rc     redis.UniversalClient
	prefix string
}

func NewRedisRoomStore(rc redis.UniversalClient, prefix string) *RedisRoomStore {
	if prefix == "" {
		prefix = defaultRoomKeyPrefix
	}
	return &RedisRoomStore{
		rc:     rc,
		prefix: prefix,
	}
}

func (s *RedisRoomStore) key(roomID string) string {
	return s.prefix + roomID
}

func (s *RedisRoomStore) StoreRoom(ctx context.Context, info types.RoomInfo) error {
	if info.ID == "" {
		return rtc.ErrInvalidRoomID
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if err := s.rc.Set(ctx, s.key(info.ID), data, 0).Err(); err != nil {
		return errors.Wrap(err, "could not store room")
	}
	return nil
}

func (s *RedisRoomStore) LoadRoom(ctx context.Context, roomID string) (types.RoomInfo, error) {
	data, err := s.rc.Get(ctx, s.key(roomID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			err = rtc.ErrRoomNotFound
		}
		return types.RoomInfo{}, err
	}

	var info types.RoomInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return types.RoomInfo{}, err
	}
	return info, nil
}

func (s *RedisRoomStore) ListRooms(ctx context.Context) ([]types.RoomInfo, error) {
	var keys []string
	iter := s.rc.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "could not list rooms")
	}
	if len(keys) == 0 {
		return []types.RoomInfo{}, nil
	}

	values, err := s.rc.MGet(ctx, keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "could not get rooms")
	}

	rooms := make([]types.RoomInfo, 0, len(values))
	for _, v := range values {
		// deleted between scan and get
		data, ok := v.(string)
		if !ok {
			continue
		}
		var info types.RoomInfo
		if err := json.Unmarshal([]byte(data), &info); err != nil {
			return nil, err
		}
		rooms = append(rooms, info)
	}
	sortRooms(rooms)
	return rooms, nil
}

func (s *RedisRoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	if err := s.rc.Del(ctx, s.key(roomID)).Err(); err != nil {
		return errors.Wrap(err, "could not delete room")
	}
	return nil
}
