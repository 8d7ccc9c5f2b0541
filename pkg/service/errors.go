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

	"github.com/livekit/livestream-server/pkg/rtc"
)

var (
	ErrServerStopped    = rtc.NewError(rtc.KindNotReady, "server is shutting down")
	ErrMissingRoomID    = rtc.NewError(rtc.KindInvalidArgument, "room id is required")
	ErrUnsupportedEvent = rtc.NewError(rtc.KindInvalidArgument, "unsupported event")
	ErrInvalidPayload   = rtc.NewError(rtc.KindInvalidArgument, "invalid payload")

	ErrSignalConnClosed = errors.New("signal connection closed")
	ErrSignalQueueFull  = errors.New("signal queue is full")
)
