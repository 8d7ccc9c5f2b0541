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
	"sync"
)

// portAllocator hands out even ports of a range; the odd port above each is
// left for RTCP.
type portAllocator struct {
	lock  sync.Mutex
	start int
	end   int
	next  int
	used  map[int]struct{}
}

func newPortAllocator(start, end uint16) *portAllocator {
	s := int(start)
	if s%2 != 0 {
		s++
	}
	return &portAllocator{
		start: s,
		end:   int(end),
		next:  s,
		used:  make(map[int]struct{}),
	}
}

func (a *portAllocator) acquire() (int, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.start == 0 || a.end < a.start+1 {
		return 0, ErrNoPortsAvailable
	}
	span := (a.end - a.start + 1) / 2
	for i := 0; i < span; i++ {
		port := a.next
		a.next += 2
		if a.next+1 > a.end {
			a.next = a.start
		}
		if _, ok := a.used[port]; !ok {
			a.used[port] = struct{}{}
			return port, nil
		}
	}
	return 0, ErrNoPortsAvailable
}

func (a *portAllocator) release(port int) {
	a.lock.Lock()
	delete(a.used, port)
	a.lock.Unlock()
}

func (a *portAllocator) inUse() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.used)
}
