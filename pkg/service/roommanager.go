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
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/bep/debounce"
	"github.com/frostbyte73/core"
	"github.com/gammazero/workerpool"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const storeTimeout = 3 * time.Second

type ParticipantInit struct {
	ID   string
	Sink types.MessageSink
}

// RoomManager is the registry of live rooms. A room is created on first use
// and removed once its last participant leaves.
type RoomManager struct {
	lock sync.Mutex

	config     *config.Config
	router     types.MediaRouter
	launcher   types.TranscoderLauncher
	roomStore  RoomStore
	egressPool *workerpool.WorkerPool

	rooms map[string]*rtc.Room
	// per room debounced store updates
	storeUpdates map[string]func(f func())
	// orders store writes against deletes
	storeLock sync.Mutex

	stopped core.Fuse
}

func NewRoomManager(
	conf *config.Config,
	router types.MediaRouter,
	launcher types.TranscoderLauncher,
	roomStore RoomStore,
) *RoomManager {
	workers := conf.Egress.Workers
	if workers <= 0 {
		workers = 1
	}
	return &RoomManager{
		config:       conf,
		router:       router,
		launcher:     launcher,
		roomStore:    roomStore,
		egressPool:   workerpool.New(workers),
		rooms:        make(map[string]*rtc.Room),
		storeUpdates: make(map[string]func(f func())),
	}
}

func (r *RoomManager) GetRoom(roomID string) *rtc.Room {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rooms[roomID]
}

func (r *RoomManager) NumRooms() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.rooms)
}

// ListRooms returns the stored snapshots of all rooms.
func (r *RoomManager) ListRooms(ctx context.Context) ([]types.RoomInfo, error) {
	return r.roomStore.ListRooms(ctx)
}

// EnsureRoom returns the room with the given id, creating it if needed. Only
// the call that creates the room sets up its egress. A room that is closing
// is waited on and replaced.
func (r *RoomManager) EnsureRoom(ctx context.Context, roomID string) (*rtc.Room, error) {
	if err := r.validateRoomID(roomID); err != nil {
		return nil, err
	}

	for {
		r.lock.Lock()
		if r.stopped.IsBroken() {
			r.lock.Unlock()
			return nil, ErrServerStopped
		}

		room := r.rooms[roomID]
		if room != nil && room.IsClosing() {
			select {
			case <-room.Closed():
				// closed but not yet unregistered
				r.lock.Unlock()
				r.unregister(room)
				continue
			default:
				r.lock.Unlock()
				select {
				case <-room.Closed():
					continue
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}
		if room != nil {
			r.lock.Unlock()
			return room, nil
		}

		room = r.createRoomLocked(roomID)
		r.lock.Unlock()
		r.storeRoom(room)

		setupCtx, cancel := context.WithTimeout(ctx, r.config.Room.EgressSetupTimeout)
		room.SetupEgress(setupCtx)
		cancel()
		return room, nil
	}
}

func (r *RoomManager) createRoomLocked(roomID string) *rtc.Room {
	room := rtc.NewRoom(rtc.RoomParams{
		ID:     roomID,
		Router: r.router,
		Egress: rtc.EgressParams{
			Enabled:      r.config.Egress.Enabled && r.launcher != nil,
			Launcher:     r.launcher,
			Pool:         r.egressPool,
			SetupTimeout: r.config.Room.EgressSetupTimeout,
			FlushTimeout: r.config.Egress.FlushTimeout,
		},
		MaxParticipants: r.config.Room.MaxParticipants,
		Logger:          logger.GetLogger(),
	})
	r.rooms[roomID] = room

	var update func(f func())
	if d := r.config.Room.StoreDebounce; d > 0 {
		update = debounce.New(d)
	} else {
		update = func(f func()) { f() }
	}
	r.storeUpdates[roomID] = update
	room.OnChanged(func(room *rtc.Room) {
		update(func() { r.storeRoom(room) })
	})

	logger.Infow("room created", "room", roomID)
	return room
}

// AttachParticipant creates a participant for the connection and joins it to
// the room, retrying when the room closed in between.
func (r *RoomManager) AttachParticipant(ctx context.Context, roomID string, pi ParticipantInit) (*rtc.Room, *rtc.Participant, error) {
	for {
		room, err := r.EnsureRoom(ctx, roomID)
		if err != nil {
			return nil, nil, err
		}

		p := rtc.NewParticipant(rtc.ParticipantParams{
			ID:     pi.ID,
			RoomID: roomID,
			Sink:   pi.Sink,
			Router: r.router,
			Logger: logger.GetLogger().WithValues("room", roomID),
		})
		err = room.Join(p)
		switch {
		case err == nil:
			return room, p, nil
		case errors.Is(err, rtc.ErrRoomClosed):
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			continue
		default:
			// a room created for this participant must not linger
			r.closeIfEmpty(room)
			return nil, nil, err
		}
	}
}

// DetachParticipant releases the participant's resources, then removes the
// room when it became empty.
func (r *RoomManager) DetachParticipant(_ context.Context, room *rtc.Room, participantID string) {
	room.RemoveParticipant(participantID)
	r.closeIfEmpty(room)
}

// RemoveRoom tears down an empty room.
func (r *RoomManager) RemoveRoom(_ context.Context, roomID string) error {
	room := r.GetRoom(roomID)
	if room == nil {
		return rtc.ErrRoomNotFound
	}
	if !room.CloseIfEmpty() {
		if room.IsClosing() {
			<-room.Closed()
			return nil
		}
		return rtc.ErrRoomNotEmpty
	}
	r.closeRoom(room)
	return nil
}

func (r *RoomManager) closeIfEmpty(room *rtc.Room) {
	if room.CloseIfEmpty() {
		r.closeRoom(room)
	}
}

// closeRoom releases egress before the room leaves the registry.
func (r *RoomManager) closeRoom(room *rtc.Room) {
	room.Close()
	r.unregister(room)
}

func (r *RoomManager) unregister(room *rtc.Room) {
	r.lock.Lock()
	if r.rooms[room.ID()] != room {
		r.lock.Unlock()
		return
	}
	delete(r.rooms, room.ID())
	if update := r.storeUpdates[room.ID()]; update != nil {
		// drop any pending write
		update(func() {})
		delete(r.storeUpdates, room.ID())
	}
	r.lock.Unlock()

	r.storeLock.Lock()
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	if err := r.roomStore.DeleteRoom(ctx, room.ID()); err != nil {
		logger.Warnw("could not delete room from store", err, "room", room.ID())
	}
	cancel()
	r.storeLock.Unlock()
	logger.Infow("room removed", "room", room.ID())
}

func (r *RoomManager) storeRoom(room *rtc.Room) {
	r.storeLock.Lock()
	defer r.storeLock.Unlock()

	r.lock.Lock()
	current := r.rooms[room.ID()] == room
	r.lock.Unlock()
	if !current || room.IsClosing() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := r.roomStore.StoreRoom(ctx, room.ToInfo()); err != nil {
		logger.Warnw("could not store room", err, "room", room.ID())
	}
}

// Stop tears down every room and the egress workers.
func (r *RoomManager) Stop() {
	r.lock.Lock()
	r.stopped.Break()
	rooms := make([]*rtc.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.lock.Unlock()

	for _, room := range rooms {
		r.closeRoom(room)
	}
	r.egressPool.StopWait()
}

func (r *RoomManager) validateRoomID(roomID string) error {
	if roomID == "" {
		return ErrMissingRoomID
	}
	if max := r.config.Room.MaxRoomIDLength; max > 0 && len(roomID) > max {
		return rtc.ErrInvalidRoomID
	}
	// the id names the playlist directory
	if roomID == "." || roomID == ".." || strings.ContainsAny(roomID, "/\\") {
		return rtc.ErrInvalidRoomID
	}
	if strings.IndexFunc(roomID, unicode.IsControl) >= 0 {
		return rtc.ErrInvalidRoomID
	}
	return nil
}
