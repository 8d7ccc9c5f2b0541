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

package sfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPortAllocator(t *testing.T) {
	a := newPortAllocator(20001, 20007)
	ports := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		port, err := a.acquire()
		require.NoError(t, err)
		require.Zero(t, port%2)
		ports = append(ports, port)
	}
	require.Equal(t, []int{20002, 20004, 20006}, ports)

	_, err := a.acquire()
	require.ErrorIs(t, err, ErrNoPortsAvailable)

	a.release(20004)
	port, err := a.acquire()
	require.NoError(t, err)
	require.Equal(t, 20004, port)
	require.Equal(t, 3, a.inUse())
}

func TestPortAllocator_EmptyRange(t *testing.T) {
	_, err := newPortAllocator(0, 0).acquire()
	require.ErrorIs(t, err, ErrNoPortsAvailable)
}
