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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	for _, v := range []any{"boom", errors.New("boom"), 42} {
		require.NotPanics(t, func() {
			defer Recover(nil)
			panic(v)
		})
	}

	// nothing to recover outside a panic
	require.Nil(t, Recover(nil))
}

func TestRecover_OnPanic(t *testing.T) {
	var recovered any
	func() {
		defer Recover(nil, func(r any) { recovered = r })
		panic("boom")
	}()
	require.Equal(t, "boom", recovered)

	called := false
	func() {
		defer Recover(nil, func(any) { called = true })
	}()
	require.False(t, called)
}
