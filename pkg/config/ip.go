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
	"net"
	"strings"
	"time"

	"github.com/pion/stun"
	"github.com/pkg/errors"

	"github.com/livekit/protocol/logger"
)

const stunTimeout = 3 * time.Second

var ErrNoAddress = errors.New("could not find a usable IPv4 address")

func (conf *Config) determineIP() (string, error) {
	if conf.RTC.UseExternalIP {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(conf.RTC.STUNServers)+1)*stunTimeout)
		defer cancel()
		return GetExternalIP(ctx, conf.RTC.STUNServers)
	}

	addresses, err := GetLocalIPAddresses(false)
	if err != nil {
		return "", err
	}
	return addresses[0], nil
}

// GetLocalIPAddresses lists the IPv4 addresses of this host. Loopback
// addresses are returned only when nothing else exists or when asked for.
func GetLocalIPAddresses(includeLoopback bool) ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var addresses, loopbacks []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ip := ipv4Of(addr)
			if ip == nil {
				continue
			}
			if ip.IsLoopback() {
				loopbacks = append(loopbacks, ip.String())
			} else {
				addresses = append(addresses, ip.String())
			}
		}
	}

	if includeLoopback || len(addresses) == 0 {
		addresses = append(addresses, loopbacks...)
	}
	if len(addresses) == 0 {
		return nil, ErrNoAddress
	}
	return addresses, nil
}

func ipv4Of(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.IPNet:
		return a.IP.To4()
	case *net.IPAddr:
		return a.IP.To4()
	}
	return nil
}

// GetExternalIP asks each STUN server in turn for the server reflexive
// address of this host and returns the first answer.
func GetExternalIP(ctx context.Context, stunServers []string) (string, error) {
	if len(stunServers) == 0 {
		return "", errors.New("STUN servers are required but not defined")
	}

	var lastErr error
	for _, server := range stunServers {
		ip, err := queryMappedAddress(ctx, strings.TrimPrefix(server, "stun:"))
		if err == nil {
			return ip, nil
		}
		logger.Debugw("STUN query failed", "server", server, "error", err)
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", errors.Wrap(lastErr, "could not resolve external IP")
}

func queryMappedAddress(ctx context.Context, addr string) (string, error) {
	conn, err := net.Dial("udp4", addr)
	if err != nil {
		return "", err
	}
	c, err := stun.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return "", err
	}
	defer c.Close()

	message, err := stun.Build(stun.TransactionID, stun.BindingRequest)
	if err != nil {
		return "", err
	}

	type result struct {
		ip  string
		err error
	}
	// Start may deliver after we stop waiting
	resChan := make(chan result, 1)
	err = c.Start(message, func(res stun.Event) {
		if res.Error != nil {
			resChan <- result{err: res.Error}
			return
		}
		var xorAddr stun.XORMappedAddress
		if err := xorAddr.GetFrom(res.Message); err != nil {
			resChan <- result{err: err}
			return
		}
		ip := xorAddr.IP.To4()
		if ip == nil {
			resChan <- result{err: errors.New("STUN server returned a non IPv4 address")}
			return
		}
		resChan <- result{ip: ip.String()}
	})
	if err != nil {
		return "", err
	}

	timer := time.NewTimer(stunTimeout)
	defer timer.Stop()
	select {
	case res := <-resChan:
		return res.ip, res.err
	case <-timer.C:
		return "", errors.New("timed out waiting for STUN response")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
