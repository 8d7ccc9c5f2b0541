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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHLSService(t *testing.T) {
	conf := newTestConfig()
	conf.HLS.BaseURL = "https://cdn.example.com/hls/"
	svc := NewHLSService(conf)

	mux := http.NewServeMux()
	mux.Handle("GET /api/hls/{roomId}", svc)

	cases := []struct {
		path     string
		expected string
	}{
		{"/api/hls/room1", "https://cdn.example.com/hls/room1/index.m3u8"},
		{"/api/hls/my%20room", "https://cdn.example.com/hls/my%20room/index.m3u8"},
		// no existence check
		{"/api/hls/unknown", "https://cdn.example.com/hls/unknown/index.m3u8"},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, c.path, nil))
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var res HLSResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.Equal(t, c.expected, res.HLSURL)
		})
	}

	t.Run("missing room id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hls/", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoomService(t *testing.T) {
	rm, _, store := newTestRoomManager(t, nil)
	attach(t, rm, "r1")
	svc := NewRoomService(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", svc.ListRooms)
	mux.HandleFunc("GET /api/rooms/{roomId}", svc.GetRoom)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var res ListRoomsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Rooms, 1)
	require.Equal(t, "r1", res.Rooms[0].ID)
	require.Equal(t, 1, res.Rooms[0].Participants)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
