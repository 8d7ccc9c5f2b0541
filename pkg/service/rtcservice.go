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
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/frostbyte73/core"
	"github.com/gorilla/websocket"

	"github.com/livekit/protocol/logger"
	"github.com/livekit/protocol/utils"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const sessionDrainTimeout = 5 * time.Second

type RTCService struct {
	roomManager *RoomManager
	upgrader    websocket.Upgrader
	clientInfo  *clientInfoParser

	lock     sync.Mutex
	sessions map[string]*WSSignalConnection
	wg       sync.WaitGroup
	stopped  core.Fuse
}

func NewRTCService(conf *config.Config, roomManager *RoomManager) *RTCService {
	s := &RTCService{
		roomManager: roomManager,
		upgrader:    websocket.Upgrader{},
		clientInfo:  newClientInfoParser(),
		sessions:    make(map[string]*WSSignalConnection),
	}

	origins := conf.CORS.AllowedOrigins
	s.upgrader.CheckOrigin = func(r *http.Request) bool {
		if len(origins) == 0 || slices.Contains(origins, "*") {
			return true
		}
		return slices.Contains(origins, r.Header.Get("Origin"))
	}

	return s
}

func (s *RTCService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.stopped.IsBroken() {
		handleError(w, http.StatusServiceUnavailable, ErrServerStopped.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnw("could not upgrade to websocket", err, "remote", r.RemoteAddr)
		return
	}

	participantID := utils.NewGuid(utils.ParticipantPrefix)
	l := logger.GetLogger().WithValues("participant", participantID, "remote", r.RemoteAddr)
	l.Infow("new client connected", s.clientInfo.Parse(r.UserAgent()).LogFields()...)

	sigConn := NewWSSignalConnection(conn, l)
	if !s.register(participantID, sigConn) {
		sigConn.Close()
		return
	}
	defer s.unregister(participantID)

	session := newSignalSession(participantID, s.roomManager, sigConn, l)
	for {
		msg, _, err := sigConn.ReadMessage()
		if err != nil {
			if errors.Is(err, ErrInvalidPayload) {
				session.sendError("", err)
				continue
			}
			if IsWebSocketCloseError(err) {
				l.Debugw("client disconnected", "error", err)
			} else {
				l.Warnw("error reading from websocket", err)
			}
			break
		}
		session.Submit(msg)
	}

	session.Disconnect()
	sigConn.Close()
	l.Infow("client connection closed")
}

func (s *RTCService) register(id string, c *WSSignalConnection) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.stopped.IsBroken() {
		return false
	}
	s.sessions[id] = c
	s.wg.Add(1)
	return true
}

func (s *RTCService) unregister(id string) {
	s.lock.Lock()
	delete(s.sessions, id)
	s.lock.Unlock()
	s.wg.Done()
}

func (s *RTCService) NumConnections() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.sessions)
}

// Stop closes every client connection and waits for their sessions to leave
// their rooms.
func (s *RTCService) Stop() {
	s.lock.Lock()
	s.stopped.Break()
	conns := make([]*WSSignalConnection, 0, len(s.sessions))
	for _, c := range s.sessions {
		conns = append(conns, c)
	}
	s.lock.Unlock()

	for _, c := range conns {
		c.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(sessionDrainTimeout):
		logger.Warnw("timed out waiting for sessions to close", nil)
	}
}

// invalid frames are answered without dropping the connection
func parseFrame(payload []byte) (*types.Message, error) {
	msg, err := types.ParseMessage(payload)
	if err != nil {
		return nil, rtc.WrapError(rtc.KindInvalidArgument, "invalid payload", err)
	}
	return msg, nil
}
