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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/livekit/livestream-server/pkg/config"
	"github.com/livekit/livestream-server/pkg/rtc/types"
	"github.com/livekit/livestream-server/pkg/service"
)

func printPorts(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	tcpPorts := []string{fmt.Sprintf("%d - HTTP service", conf.Port)}
	if conf.PrometheusPort != 0 {
		tcpPorts = append(tcpPorts, fmt.Sprintf("%d - Prometheus", conf.PrometheusPort))
	}
	udpPorts := []string{fmt.Sprintf("%d-%d - ICE/UDP range", conf.RTC.ICEPortRangeStart, conf.RTC.ICEPortRangeEnd)}
	if conf.Egress.Enabled {
		udpPorts = append(udpPorts, fmt.Sprintf("%d-%d - egress RTP on %s", conf.Egress.PortRangeStart, conf.Egress.PortRangeEnd, conf.Egress.ListenIP))
	}

	fmt.Println("TCP Ports")
	for _, p := range tcpPorts {
		fmt.Println(p)
	}

	fmt.Println("UDP Ports")
	for _, p := range udpPorts {
		fmt.Println(p)
	}
	return nil
}

func helpVerbose(c *cli.Context) error {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, false)
	if err != nil {
		return err
	}

	c.App.Flags = append(baseFlags, generatedFlags...)
	return cli.ShowAppHelp(c)
}

func listRooms(c *cli.Context) error {
	rooms, err := fetchRooms(c.String("url"))
	if err != nil {
		return err
	}
	writeRoomsTable(os.Stdout, rooms)
	return nil
}

func fetchRooms(baseURL string) ([]types.RoomInfo, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Get(strings.TrimRight(baseURL, "/") + "/api/rooms")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("could not list rooms: %s", res.Status)
	}

	var body service.ListRoomsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "could not decode rooms")
	}
	return body.Rooms, nil
}

func writeRoomsTable(w io.Writer, rooms []types.RoomInfo) {
	table := tablewriter.NewWriter(w)
	table.SetRowLine(true)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"ID", "Participants", "Producers", "Egress", "Created",
	})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	for _, room := range rooms {
		table.Append([]string{
			room.ID,
			strconv.Itoa(room.Participants),
			strconv.Itoa(room.Producers),
			egressLabel(room.Egress),
			time.Unix(room.CreatedAt, 0).UTC().Format(time.RFC3339),
		})
	}
	table.Render()
}

func egressLabel(status types.EgressStatus) string {
	switch {
	case status.Degraded:
		return "degraded"
	case status.Active:
		return "active"
	default:
		return "idle"
	}
}
