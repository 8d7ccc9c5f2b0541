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
	"time"

	"github.com/google/wire"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/egress"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/sfu"
)

var ServiceSet = wire.NewSet(
	createRouter,
	createRoomStore,
	createLauncher,
	NewRoomManager,
	NewRTCService,
	NewRoomService,
	NewHLSService,
	NewLivestreamServer,
)

func createRouter(conf *config.Config) (types.MediaRouter, error) {
	return sfu.NewRouter(conf, logger.GetLogger().WithComponent("sfu"))
}

// createLauncher returns nil when egress is disabled.
func createLauncher(conf *config.Config) types.TranscoderLauncher {
	if !conf.Egress.Enabled {
		return nil
	}
	return egress.NewLauncher(conf, logger.GetLogger().WithComponent("egress"))
}

func createRoomStore(conf *config.Config) (RoomStore, error) {
	if !conf.Redis.IsConfigured() {
		return NewLocalRoomStore(), nil
	}

	logger.Infow("using redis room store", "address", conf.Redis.Address)
	rc := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Username: conf.Redis.Username,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, errors.Wrap(err, "unable to connect to redis")
	}
	return NewRedisRoomStore(rc, conf.Redis.KeyPrefix), nil
}
