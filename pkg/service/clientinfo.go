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
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ua-parser/uap-go/uaparser"
)

const clientInfoCacheSize = 512

type ClientInfo struct {
	Browser        string
	BrowserVersion string
	OS             string
	OSVersion      string
	Device         string
}

func (c ClientInfo) LogFields() []any {
	return []any{
		"browser", c.Browser,
		"browserVersion", c.BrowserVersion,
		"os", c.OS,
		"osVersion", c.OSVersion,
		"device", c.Device,
	}
}

// clientInfoParser parses user agents; clients of one deployment share a
// handful of them, so results are cached.
type clientInfoParser struct {
	once   sync.Once
	parser *uaparser.Parser
	cache  *lru.Cache[string, ClientInfo]
}

func newClientInfoParser() *clientInfoParser {
	cache, _ := lru.New[string, ClientInfo](clientInfoCacheSize)
	return &clientInfoParser{cache: cache}
}

func (p *clientInfoParser) Parse(userAgent string) ClientInfo {
	if userAgent == "" {
		return ClientInfo{}
	}
	if info, ok := p.cache.Get(userAgent); ok {
		return info
	}

	p.once.Do(func() {
		p.parser = uaparser.NewFromSaved()
	})
	client := p.parser.Parse(userAgent)

	var info ClientInfo
	if client.UserAgent != nil {
		info.Browser = client.UserAgent.Family
		info.BrowserVersion = client.UserAgent.ToVersionString()
	}
	if client.Os != nil {
		info.OS = client.Os.Family
		info.OSVersion = client.Os.ToVersionString()
	}
	if client.Device != nil {
		info.Device = client.Device.Family
	}
	p.cache.Add(userAgent, info)
	return info
}
