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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientInfoParser(t *testing.T) {
	p := newClientInfoParser()

	const chrome = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	info := p.Parse(chrome)
	require.Equal(t, "Chrome", info.Browser)
	require.Equal(t, "Mac OS X", info.OS)
	require.Equal(t, 1, p.cache.Len())

	// cached
	require.Equal(t, info, p.Parse(chrome))
	require.Equal(t, 1, p.cache.Len())

	require.Equal(t, ClientInfo{}, p.Parse(""))
}
