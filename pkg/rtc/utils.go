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

package rtc

import (
	"fmt"

	"github.com/livekit/protocol/logger"
)

// Recover logs a recovered panic, runs onPanic with it and returns it, nil
// when there was none. It must be deferred directly.
func Recover(l logger.Logger, onPanic ...func(r any)) any {
	if l == nil {
		l = logger.GetLogger()
	}
	r := recover()
	if r != nil {
		var err error
		switch e := r.(type) {
		case string:
			err = fmt.Errorf("%s", e)
		case error:
			err = e
		default:
			err = fmt.Errorf("%v", e)
		}
		l.Errorw("recovered panic", err, "panic", r)
		for _, f := range onPanic {
			f(r)
		}
	}
	return r
}
