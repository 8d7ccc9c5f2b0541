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

package egress

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc/types"
)

const (
	sdpFileName   = "room.sdp"
	stderrTailLen = 10
)

var (
	ErrNoVideo       = errors.New("transcode request has no video stream")
	ErrExitedEarly   = errors.New("transcoder exited during startup")
	ErrInvalidRoomID = errors.New("room id cannot be used as a directory name")
)

// execCommand is replaced in tests
var execCommand = exec.Command

// Launcher starts one ffmpeg process per room, turning the room's RTP into HLS.
type Launcher struct {
	conf   config.EgressConfig
	logger logger.Logger
}

func NewLauncher(conf *config.Config, l logger.Logger) *Launcher {
	if l == nil {
		l = logger.GetLogger()
	}
	return &Launcher{
		conf:   conf.Egress,
		logger: l.WithValues("component", "transcoder"),
	}
}

// Launch returns once the process survived the startup delay.
func (l *Launcher) Launch(ctx context.Context, req types.TranscodeRequest) (types.Transcoder, error) {
	if req.Video == nil {
		return nil, ErrNoVideo
	}
	if req.RoomID == "" || strings.ContainsAny(req.RoomID, "/\\") || req.RoomID == "." || req.RoomID == ".." {
		return nil, ErrInvalidRoomID
	}

	dir := filepath.Join(l.conf.OutputDir, req.RoomID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create output directory")
	}
	sd, err := SessionDescription(req, l.conf.ListenIP)
	if err != nil {
		return nil, errors.Wrap(err, "could not build sdp")
	}
	sdpPath := filepath.Join(dir, sdpFileName)
	if err := os.WriteFile(sdpPath, sd, 0o644); err != nil {
		return nil, errors.Wrap(err, "could not write sdp")
	}

	args := l.args(sdpPath, filepath.Join(dir, l.conf.PlaylistName), req.Audio != nil)
	cmd := execCommand(l.conf.FFmpegPath, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	tl := l.logger.WithValues("room", req.RoomID)
	tl.Debugw("starting transcoder", "args", strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "could not start transcoder")
	}

	t := &transcoder{
		cmd:        cmd,
		logger:     tl,
		done:       make(chan struct{}),
		stderrDone: make(chan struct{}),
	}
	go t.readStderr(stderr)
	go t.wait()

	select {
	case <-t.done:
		return nil, fmt.Errorf("%w: %v", ErrExitedEarly, t.exitErr)
	case <-ctx.Done():
		_ = t.kill()
		return nil, ctx.Err()
	case <-time.After(l.conf.StartupDelay):
	}
	tl.Infow("transcoder started", "pid", cmd.Process.Pid, "playlist", l.conf.PlaylistPath(req.RoomID))
	return t, nil
}

func (l *Launcher) args(sdpPath, playlist string, audio bool) []string {
	frameRate := l.conf.FrameRate
	if frameRate == 0 {
		frameRate = 30
	}
	// one key frame per segment
	gop := frameRate * max(l.conf.SegmentTime, 1)

	args := []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-protocol_whitelist", "file,udp,rtp",
		"-fflags", "+genpts",
		"-i", sdpPath,
		"-map", "0:v:0",
	}
	if audio {
		args = append(args, "-map", "0:a:0")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-tune", "zerolatency",
		"-profile:v", "baseline",
		"-level", "3.0",
		"-s", l.conf.VideoSize,
		"-r", strconv.FormatUint(uint64(frameRate), 10),
		"-g", strconv.FormatUint(uint64(gop), 10),
		"-sc_threshold", "0",
	)
	if audio {
		args = append(args,
			"-c:a", "aac",
			"-b:a", "128k",
			"-ac", "2",
			"-ar", "44100",
		)
	} else {
		args = append(args, "-an")
	}
	return append(args,
		"-f", "hls",
		"-hls_time", strconv.FormatUint(uint64(l.conf.SegmentTime), 10),
		"-hls_list_size", strconv.FormatUint(uint64(l.conf.ListSize), 10),
		"-hls_flags", "delete_segments",
		"-hls_allow_cache", "0",
		"-y", playlist,
	)
}

type transcoder struct {
	cmd    *exec.Cmd
	logger logger.Logger

	stopping   atomic.Bool
	done       chan struct{}
	stderrDone chan struct{}
	exitErr    error

	tailLock sync.Mutex
	tail     []string
}

func (t *transcoder) Done() <-chan struct{} {
	return t.done
}

// Err is nil when the process was stopped through Stop.
func (t *transcoder) Err() error {
	select {
	case <-t.done:
	default:
		return nil
	}
	if t.stopping.Load() {
		return nil
	}
	return t.exitErr
}

// Stop interrupts the process so it can finish the playlist, killing it once
// ctx is done.
func (t *transcoder) Stop(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	default:
	}
	t.stopping.Store(true)
	if err := t.cmd.Process.Signal(os.Interrupt); err != nil {
		t.logger.Debugw("could not interrupt transcoder", "error", err)
		_ = t.kill()
	}

	select {
	case <-t.done:
		t.logger.Infow("transcoder stopped")
		return nil
	case <-ctx.Done():
		t.logger.Warnw("transcoder did not flush in time, killing", ctx.Err())
		if err := t.kill(); err != nil {
			return err
		}
		<-t.done
		return ctx.Err()
	}
}

func (t *transcoder) kill() error {
	t.stopping.Store(true)
	err := t.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func (t *transcoder) wait() {
	// Wait closes the pipe, so stderr has to be drained first
	<-t.stderrDone
	err := t.cmd.Wait()
	if err != nil && !t.stopping.Load() {
		if tail := t.stderrTail(); tail != "" {
			err = fmt.Errorf("%w: %s", err, tail)
		}
	}
	if err == nil && !t.stopping.Load() {
		err = errors.New("transcoder exited")
	}
	t.exitErr = err
	close(t.done)
}

func (t *transcoder) readStderr(r io.Reader) {
	defer close(t.stderrDone)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		t.logger.Debugw("ffmpeg", "line", line)
		t.tailLock.Lock()
		t.tail = append(t.tail, line)
		if len(t.tail) > stderrTailLen {
			t.tail = t.tail[1:]
		}
		t.tailLock.Unlock()
	}
}

func (t *transcoder) stderrTail() string {
	t.tailLock.Lock()
	defer t.tailLock.Unlock()
	return strings.Join(t.tail, "; ")
}
