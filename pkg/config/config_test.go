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

package config

import (
	"context"
	"flag"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livestream-server/pkg/config/configtest"
)

func TestConfig_DefaultsKept(t *testing.T) {
	const content = `rtc:
  node_ip: 10.0.0.1
room:
  max_participants: 10`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, uint32(10), conf.Room.MaxParticipants)
	require.Equal(t, 256, conf.Room.MaxRoomIDLength)
	require.Equal(t, uint32(7880), conf.Port)
	require.Equal(t, "index.m3u8", conf.Egress.PlaylistName)
	require.Equal(t, 2*time.Second, conf.Egress.StartupDelay)
	require.Len(t, conf.Router.MediaCodecs, 3)
	require.Equal(t, "10.0.0.1", conf.RTC.NodeIP)
	require.Equal(t, "error", conf.Logging.ComponentLevels["pion"])
}

func TestConfig_UnknownKeys(t *testing.T) {
	const content = `unknown: 10
room:
  max_participants: 10`
	_, err := NewConfig(content, true, nil, nil)
	require.Error(t, err)

	_, err = NewConfig(content+"\nrtc:\n  node_ip: 10.0.0.1", false, nil, nil)
	require.NoError(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("egress port range", func(t *testing.T) {
		const content = `rtc:
  node_ip: 10.0.0.1
egress:
  port_range_start: 30000
  port_range_end: 20000`
		_, err := NewConfig(content, true, nil, nil)
		require.ErrorIs(t, err, ErrInvalidPortRange)
	})

	t.Run("codec kind", func(t *testing.T) {
		const content = `rtc:
  node_ip: 10.0.0.1
router:
  media_codecs:
    - kind: data
      mime: text/plain
      clock_rate: 1000
      payload_type: 98`
		_, err := NewConfig(content, true, nil, nil)
		require.Error(t, err)
	})

	t.Run("egress disabled skips port range", func(t *testing.T) {
		const content = `rtc:
  node_ip: 10.0.0.1
egress:
  enabled: false
  port_range_start: 0`
		conf, err := NewConfig(content, true, nil, nil)
		require.NoError(t, err)
		require.False(t, conf.Egress.Enabled)
	})
}

func TestConfig_ExpandsOutputDir(t *testing.T) {
	t.Setenv("HLS_ROOT", "/var/media")
	const content = `rtc:
  node_ip: 10.0.0.1
egress:
  output_dir: ${HLS_ROOT}/hls`
	conf, err := NewConfig(content, true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "/var/media/hls", conf.Egress.OutputDir)
	require.Equal(t, "/var/media/hls/r1/index.m3u8", conf.Egress.PlaylistPath("r1"))
}

func TestGeneratedFlags(t *testing.T) {
	generatedFlags, err := GenerateCLIFlags(nil, false)
	require.NoError(t, err)

	app := cli.NewApp()
	app.Flags = append(app.Flags, generatedFlags...)

	set := flag.NewFlagSet("test", 0)
	set.String("redis.address", "", "")             // string
	set.Uint64("prometheus_port", 0, "")            // uint32
	set.Bool("egress.enabled", true, "")            // bool
	set.Duration("egress.flush_timeout", 0, "")     // duration
	set.String("rtc.node_ip", "", "")               // string
	set.Var(cli.NewStringSlice(), "cors.allowed_origins", "")
	require.NoError(t, set.Parse([]string{
		"-redis.address=localhost:6379",
		"-prometheus_port=9999",
		"-egress.enabled=true",
		"-egress.flush_timeout=3s",
		"-rtc.node_ip=10.0.0.2",
		"-cors.allowed_origins=https://example.com",
	}))

	c := cli.NewContext(app, set, nil)
	conf, err := NewConfig("", true, c, nil)
	require.NoError(t, err)

	require.Equal(t, "localhost:6379", conf.Redis.Address)
	require.Equal(t, uint32(9999), conf.PrometheusPort)
	require.True(t, conf.Egress.Enabled)
	require.Equal(t, 3*time.Second, conf.Egress.FlushTimeout)
	require.Equal(t, "10.0.0.2", conf.RTC.NodeIP)
	require.Equal(t, []string{"https://example.com"}, conf.CORS.AllowedOrigins)
	// untouched values keep defaults
	require.Equal(t, uint32(7880), conf.Port)
}

func TestYAMLTags(t *testing.T) {
	require.NoError(t, configtest.CheckYAMLTags(Config{}))
}

func TestGetLocalIPAddresses(t *testing.T) {
	addresses, err := GetLocalIPAddresses(true)
	require.NoError(t, err)
	require.NotEmpty(t, addresses)
	for _, addr := range addresses {
		require.NotNil(t, net.ParseIP(addr).To4(), addr)
	}
}

func TestGetExternalIP_NoServers(t *testing.T) {
	_, err := GetExternalIP(context.Background(), nil)
	require.Error(t, err)
}
