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
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"time"

	"github.com/frostbyte73/core"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/urfave/negroni/v3"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/telemetry/prometheus"
	"github.com/livekit/livestream-server/version"
)

const shutdownTimeout = 5 * time.Second

type LivestreamServer struct {
	config      *config.Config
	rtcService  *RTCService
	roomManager *RoomManager
	router      types.MediaRouter
	httpServer  *http.Server
	promServer  *http.Server
	running     atomic.Bool
	done        core.Fuse
	closedChan  chan struct{}
}

func NewLivestreamServer(
	conf *config.Config,
	rtcService *RTCService,
	roomService *RoomService,
	hlsService *HLSService,
	roomManager *RoomManager,
	router types.MediaRouter,
) (*LivestreamServer, error) {
	s := &LivestreamServer{
		config:      conf,
		rtcService:  rtcService,
		roomManager: roomManager,
		router:      router,
		closedChan:  make(chan struct{}),
	}

	middlewares := []negroni.Handler{
		// always the first
		negroni.NewRecovery(),
		cors.New(cors.Options{
			AllowedOrigins: conf.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", rtcService)
	mux.Handle("GET /api/hls/{roomId}", hlsService)
	mux.HandleFunc("GET /api/rooms", roomService.ListRooms)
	mux.HandleFunc("GET /api/rooms/{roomId}", roomService.GetRoom)
	mux.HandleFunc("GET /healthz", s.healthCheck)
	if conf.HLS.ServeFiles {
		mux.Handle("/hls/", http.StripPrefix("/hls/", http.FileServer(http.Dir(conf.Egress.OutputDir))))
	}
	if conf.Development {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	s.httpServer = &http.Server{
		Handler: configureMiddlewares(mux, middlewares...),
	}

	if conf.PrometheusPort > 0 {
		s.promServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.PrometheusPort),
			Handler: promhttp.Handler(),
		}
	}

	return s, nil
}

func (s *LivestreamServer) HTTPHandler() http.Handler {
	return s.httpServer.Handler
}

func (s *LivestreamServer) IsRunning() bool {
	return s.running.Load()
}

// Start serves until Stop is called or the media engine dies, in which case
// the returned error is classified as fatal.
func (s *LivestreamServer) Start() error {
	if s.running.Load() {
		return errors.New("already running")
	}

	addresses := s.config.BindAddresses
	if len(addresses) == 0 {
		addresses = []string{""}
	}
	listeners := make([]net.Listener, 0, len(addresses))
	for _, addr := range addresses {
		ln, err := net.Listen("tcp", net.JoinHostPort(addr, strconv.Itoa(int(s.config.Port))))
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return err
		}
		listeners = append(listeners, ln)
	}

	values := []any{
		"portHttp", s.config.Port,
		"nodeIP", s.config.RTC.NodeIP,
		"version", version.Version,
		"rtc.portICERange", []uint16{s.config.RTC.ICEPortRangeStart, s.config.RTC.ICEPortRangeEnd},
		"egress", s.config.Egress.Enabled,
	}
	if len(s.config.BindAddresses) > 0 {
		values = append(values, "bindAddresses", s.config.BindAddresses)
	}
	logger.Infow("starting livestream server", values...)

	for _, ln := range listeners {
		go func(ln net.Listener) {
			if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
				logger.Errorw("could not serve http", err)
			}
		}(ln)
	}
	if s.promServer != nil {
		go func() {
			if err := s.promServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorw("could not serve metrics", err)
			}
		}()
	}

	statsCtx, cancelStats := context.WithCancel(context.Background())
	go prometheus.RunNodeStats(statsCtx)

	s.running.Store(true)

	var err error
	select {
	case <-s.done.Watch():
	case <-s.router.Died():
		err = rtc.ErrMediaEngineDied
		logger.Errorw("media engine died, shutting down", err)
	}
	cancelStats()

	s.shutdown()
	close(s.closedChan)
	return err
}

// shutdown disconnects clients before rooms release egress, and rooms before
// the engine closes.
func (s *LivestreamServer) shutdown() {
	s.rtcService.Stop()
	s.roomManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = s.httpServer.Shutdown(ctx)
	if s.promServer != nil {
		_ = s.promServer.Shutdown(ctx)
	}

	if err := s.router.Close(); err != nil {
		logger.Warnw("could not close media router", err)
	}
	s.running.Store(false)
	logger.Infow("server stopped")
}

func (s *LivestreamServer) Stop(force bool) {
	if !s.running.Load() {
		return
	}
	s.done.Break()
	if !force {
		<-s.closedChan
	}
}

func (s *LivestreamServer) healthCheck(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.router.Died():
		handleError(w, http.StatusServiceUnavailable, rtc.ErrMediaEngineDied.Error())
		return
	default:
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func configureMiddlewares(handler http.Handler, middlewares ...negroni.Handler) *negroni.Negroni {
	n := negroni.New()
	for _, m := range middlewares {
		n.Use(m)
	}
	n.UseHandler(handler)
	return n
}
