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

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/service"
)

func TestGetConfigString(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: 7881"), 0o644))

	cases := []struct {
		name     string
		file     string
		body     string
		expected string
	}{
		{name: "nothing", expected: ""},
		{name: "body only", body: "port: 7882", expected: "port: 7882"},
		{name: "body wins over file", file: file, body: "port: 7882", expected: "port: 7882"},
		{name: "file", file: file, expected: "port: 7881"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := getConfigString(tc.file, tc.body)
			require.NoError(t, err)
			require.Equal(t, tc.expected, body)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		body, err := getConfigString(filepath.Join(dir, "missing.yaml"), "")
		require.Error(t, err)
		require.Empty(t, body)
	})
}

func TestFetchRooms(t *testing.T) {
	rooms := []types.RoomInfo{
		{ID: "r1", Participants: 2, Producers: 2, CreatedAt: 1700000000, Egress: types.EgressStatus{RoomID: "r1", Active: true}},
		{ID: "r2", Participants: 1, CreatedAt: 1700000100},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rooms" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(service.ListRoomsResponse{Rooms: rooms})
	}))
	defer srv.Close()

	got, err := fetchRooms(srv.URL + "/")
	require.NoError(t, err)
	require.Equal(t, rooms, got)
}

func TestFetchRooms_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := fetchRooms(srv.URL)
	require.ErrorContains(t, err, "503")
}

func TestWriteRoomsTable(t *testing.T) {
	var buf bytes.Buffer
	writeRoomsTable(&buf, []types.RoomInfo{
		{ID: "live", Participants: 3, Producers: 2, CreatedAt: 0, Egress: types.EgressStatus{Active: true}},
		{ID: "broken", Egress: types.EgressStatus{Active: true, Degraded: true}},
		{ID: "quiet"},
	})

	out := buf.String()
	require.Contains(t, out, "live")
	require.Contains(t, out, "active")
	require.Contains(t, out, "degraded")
	require.Contains(t, out, "idle")
	require.Contains(t, out, "1970-01-01T00:00:00Z")
}
