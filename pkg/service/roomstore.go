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

	"github.com/livekit/livestream-server/pkg/rtc/types"
)

// RoomStore keeps the last published snapshot of every live room, so it can
// be listed without touching the rooms themselves.

type RoomStore interface {
	StoreRoom(ctx context.Context, info types.RoomInfo) error
	LoadRoom(ctx context.Context, roomID string) (types.RoomInfo, error)
	ListRooms(ctx context.Context) ([]types.RoomInfo, error)
	DeleteRoom(ctx context.Context, roomID string) error
}
