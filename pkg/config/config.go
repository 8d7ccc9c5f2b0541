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
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"
)

const (
	generatedCLIFlagUsage = "generated"
	envPrefix             = "LIVESTREAM_"
)

var (
	ErrInvalidPortRange = errors.New("invalid port range")
	ErrNoMediaCodecs    = errors.New("at least one media codec must be configured")
)

type Config struct {
	Port           uint32        `yaml:"port,omitempty"`
	BindAddresses  []string      `yaml:"bind_addresses,omitempty"`
	PrometheusPort uint32        `yaml:"prometheus_port,omitempty"`
	RTC            RTCConfig     `yaml:"rtc,omitempty"`
	Router         RouterConfig  `yaml:"router,omitempty"`
	Egress         EgressConfig  `yaml:"egress,omitempty"`
	HLS            HLSConfig     `yaml:"hls,omitempty"`
	Room           RoomConfig    `yaml:"room,omitempty"`
	Redis          RedisConfig   `yaml:"redis,omitempty"`
	CORS           CORSConfig    `yaml:"cors,omitempty"`
	Logging        LoggingConfig `yaml:"logging,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type RTCConfig struct {
	ICEPortRangeStart uint16 `yaml:"port_range_start,omitempty"`
	ICEPortRangeEnd   uint16 `yaml:"port_range_end,omitempty"`
	NodeIP            string `yaml:"node_ip,omitempty"`
	// resolve node_ip through the STUN servers when it is not set
	UseExternalIP bool     `yaml:"use_external_ip,omitempty"`
	STUNServers   []string `yaml:"stun_servers,omitempty"`
	// time allowed for ICE gathering of a new transport
	GatherTimeout time.Duration `yaml:"gather_timeout,omitempty"`
	// time allowed for ICE + DTLS to complete after connect-transport
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	UseMDNS        bool          `yaml:"use_mdns,omitempty"`
}

type RouterConfig struct {
	MediaCodecs []CodecSpec `yaml:"media_codecs,omitempty"`
}

type CodecSpec struct {
	Kind        string `yaml:"kind,omitempty"`
	Mime        string `yaml:"mime,omitempty"`
	ClockRate   uint32 `yaml:"clock_rate,omitempty"`
	Channels    uint16 `yaml:"channels,omitempty"`
	PayloadType uint8  `yaml:"payload_type,omitempty"`
	FmtpLine    string `yaml:"fmtp_line,omitempty"`
}

type EgressConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	// address the egress plain transport sends RTP to; the transcoder listens there
	ListenIP       string `yaml:"listen_ip,omitempty"`
	PortRangeStart uint16 `yaml:"port_range_start,omitempty"`
	PortRangeEnd   uint16 `yaml:"port_range_end,omitempty"`

	FFmpegPath   string        `yaml:"ffmpeg_path,omitempty"`
	OutputDir    string        `yaml:"output_dir,omitempty"`
	PlaylistName string        `yaml:"playlist_name,omitempty"`
	SegmentTime  uint32        `yaml:"segment_time,omitempty"`
	ListSize     uint32        `yaml:"list_size,omitempty"`
	VideoSize    string        `yaml:"video_size,omitempty"`
	FrameRate    uint32        `yaml:"frame_rate,omitempty"`
	StartupDelay time.Duration `yaml:"startup_delay,omitempty"`
	FlushTimeout time.Duration `yaml:"flush_timeout,omitempty"`
	Workers      int           `yaml:"workers,omitempty"`
}

type HLSConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	// serve output_dir under /hls/ from the signalling server
	ServeFiles bool `yaml:"serve_files,omitempty"`
}

type RoomConfig struct {
	MaxParticipants    uint32        `yaml:"max_participants,omitempty"`
	MaxRoomIDLength    int           `yaml:"max_room_id_length,omitempty"`
	StoreDebounce      time.Duration `yaml:"store_debounce,omitempty"`
	EgressSetupTimeout time.Duration `yaml:"egress_setup_timeout,omitempty"`
}

type RedisConfig struct {
	Address  string `yaml:"address,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	// prefix of the keys room snapshots are written under
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

func (r RedisConfig) IsConfigured() bool {
	return r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
	PionLevel     string `yaml:"pion_level,omitempty"`
}

var DefaultConfig = Config{
	Port: 7880,
	RTC: RTCConfig{
		ICEPortRangeStart: 10000,
		ICEPortRangeEnd:   10100,
		STUNServers:       []string{"stun:stun.l.google.com:19302"},
		GatherTimeout:     5 * time.Second,
		ConnectTimeout:    15 * time.Second,
	},
	Router: RouterConfig{
		MediaCodecs: []CodecSpec{
			{Kind: "audio", Mime: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2, PayloadType: 111, FmtpLine: "minptime=10;useinbandfec=1"},
			{Kind: "video", Mime: webrtc.MimeTypeVP8, ClockRate: 90000, PayloadType: 96},
			{Kind: "video", Mime: webrtc.MimeTypeH264, ClockRate: 90000, PayloadType: 102, FmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=4d0032"},
		},
	},
	Egress: EgressConfig{
		Enabled:        true,
		ListenIP:       "127.0.0.1",
		PortRangeStart: 20000,
		PortRangeEnd:   20100,
		FFmpegPath:     "ffmpeg",
		OutputDir:      "./public/hls",
		PlaylistName:   "index.m3u8",
		SegmentTime:    2,
		ListSize:       10,
		VideoSize:      "1280x720",
		FrameRate:      30,
		StartupDelay:   2 * time.Second,
		FlushTimeout:   5 * time.Second,
		Workers:        8,
	},
	HLS: HLSConfig{
		BaseURL:    "http://localhost:7880/hls",
		ServeFiles: true,
	},
	Room: RoomConfig{
		MaxRoomIDLength:    256,
		StoreDebounce:      500 * time.Millisecond,
		EgressSetupTimeout: 10 * time.Second,
	},
	Redis: RedisConfig{
		KeyPrefix: "livestream:room:",
	},
	Logging: LoggingConfig{
		PionLevel: "error",
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = yaml.Unmarshal(marshalled, &conf)
	if err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	if conf.RTC.NodeIP == "" {
		if conf.RTC.NodeIP, err = conf.determineIP(); err != nil {
			return nil, err
		}
	}

	// expand env vars in filenames
	dir, err := homedir.Expand(os.ExpandEnv(conf.Egress.OutputDir))
	if err != nil {
		return nil, err
	}
	conf.Egress.OutputDir = dir

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}
	if conf.Logging.PionLevel != "" {
		if conf.Logging.ComponentLevels == nil {
			conf.Logging.ComponentLevels = map[string]string{}
		}
		conf.Logging.ComponentLevels["pion"] = conf.Logging.PionLevel
	}

	return &conf, nil
}

func (conf *Config) Validate() error {
	if conf.RTC.ICEPortRangeStart > conf.RTC.ICEPortRangeEnd {
		return errors.Wrap(ErrInvalidPortRange, "rtc")
	}
	if conf.Egress.Enabled && (conf.Egress.PortRangeStart == 0 || conf.Egress.PortRangeStart >= conf.Egress.PortRangeEnd) {
		return errors.Wrap(ErrInvalidPortRange, "egress")
	}
	if len(conf.Router.MediaCodecs) == 0 {
		return ErrNoMediaCodecs
	}
	for _, c := range conf.Router.MediaCodecs {
		if c.Kind != "audio" && c.Kind != "video" {
			return fmt.Errorf("codec %s: unknown kind %q", c.Mime, c.Kind)
		}
		if c.PayloadType == 0 || c.ClockRate == 0 {
			return fmt.Errorf("codec %s: payload_type and clock_rate are required", c.Mime)
		}
	}
	return nil
}

// PlaylistPath is where the transcoder writes the playlist of a room.
func (e EgressConfig) PlaylistPath(roomID string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(e.OutputDir, "/"), roomID, e.PlaylistName)
}

type configNode struct {
	TypeNode  reflect.Value
	TagPrefix string
}

func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existingFlagNames := map[string]bool{}
	for _, flag := range existingFlags {
		for _, flagName := range flag.Names() {
			existingFlagNames[flagName] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var currNode configNode
	nodes := []configNode{{reflect.ValueOf(conf).Elem(), ""}}
	for len(nodes) > 0 {
		currNode, nodes = nodes[0], nodes[1:]
		for i := 0; i < currNode.TypeNode.NumField(); i++ {
			// inspect yaml tag from struct field to get path
			field := currNode.TypeNode.Type().Field(i)
			yamlTagArray := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			yamlTag := yamlTagArray[0]
			isInline := len(yamlTagArray) > 1 && yamlTagArray[1] == "inline"
			if (yamlTag == "" && (!isInline || currNode.TagPrefix == "")) || yamlTag == "-" {
				continue
			}
			yamlPath := yamlTag
			if currNode.TagPrefix != "" {
				if isInline {
					yamlPath = currNode.TagPrefix
				} else {
					yamlPath = fmt.Sprintf("%s.%s", currNode.TagPrefix, yamlTag)
				}
			}
			if existingFlagNames[yamlPath] {
				continue
			}

			// map flag name to value
			value := currNode.TypeNode.Field(i)
			if value.Kind() == reflect.Struct {
				nodes = append(nodes, configNode{value, yamlPath})
			} else {
				flagNames[yamlPath] = value
			}
		}
	}

	return flagNames
}

func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blankConfig := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blankConfig.ToCLIFlagNames(existingFlags) {
		kind := value.Kind()
		if kind == reflect.Ptr {
			kind = value.Type().Elem().Kind()
		}

		var flag cli.Flag
		envVar := envPrefix + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))

		switch {
		case value.Type() == reflect.TypeOf(time.Duration(0)):
			flag = &cli.DurationFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Bool:
			flag = &cli.BoolFlag{
				Name:   name,
				Usage:  generatedCLIFlagUsage,
				Hidden: hidden,
			}
		case kind == reflect.String:
			flag = &cli.StringFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Int, kind == reflect.Int32, kind == reflect.Int64:
			flag = &cli.Int64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Uint8, kind == reflect.Uint16, kind == reflect.Uint32, kind == reflect.Uint64:
			flag = &cli.Uint64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Float32, kind == reflect.Float64:
			flag = &cli.Float64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Slice && value.Type().Elem().Kind() == reflect.String:
			flag = &cli.StringSliceFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case kind == reflect.Slice, kind == reflect.Map, kind == reflect.Struct:
			// structured values are only accepted from yaml
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, kind.String())
		}

		flags = append(flags, flag)
	}

	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generatedFlagNames := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		flagName := flag.Names()[0]

		// the `c.App.Name != "test"` check is needed because `c.IsSet(...)` is always false in unit tests
		if !c.IsSet(flagName) && c.App.Name != "test" {
			continue
		}

		configValue, ok := generatedFlagNames[flagName]
		if !ok {
			continue
		}

		kind := configValue.Kind()
		if kind == reflect.Ptr {
			// instantiate value to be set
			configValue.Set(reflect.New(configValue.Type().Elem()))

			kind = configValue.Type().Elem().Kind()
			configValue = configValue.Elem()
		}

		switch {
		case configValue.Type() == reflect.TypeOf(time.Duration(0)):
			configValue.SetInt(int64(c.Duration(flagName)))
		case kind == reflect.Bool:
			configValue.SetBool(c.Bool(flagName))
		case kind == reflect.String:
			configValue.SetString(c.String(flagName))
		case kind == reflect.Int, kind == reflect.Int32, kind == reflect.Int64:
			configValue.SetInt(c.Int64(flagName))
		case kind == reflect.Uint8, kind == reflect.Uint16, kind == reflect.Uint32, kind == reflect.Uint64:
			configValue.SetUint(c.Uint64(flagName))
		case kind == reflect.Float32, kind == reflect.Float64:
			configValue.SetFloat(c.Float64(flagName))
		case kind == reflect.Slice:
			configValue.Set(reflect.ValueOf(c.StringSlice(flagName)))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", flagName, kind.String())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("redis-host") {
		conf.Redis.Address = c.String("redis-host")
	}
	if c.IsSet("redis-password") {
		conf.Redis.Password = c.String("redis-password")
	}
	if c.IsSet("node-ip") {
		conf.RTC.NodeIP = c.String("node-ip")
	}
	if c.IsSet("bind") {
		conf.BindAddresses = c.StringSlice("bind")
	}
	return nil
}

// Note: only pass in logr.Logger with default depth
func SetLogger(l logger.Logger) {
	logger.SetLogger(l, "livestream")
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(&config.Config, "livestream")
}
