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

package sfu

import (
	"errors"
)

var (
	ErrRouterClosed        = errors.New("router closed")
	ErrTransportClosed     = errors.New("transport closed")
	ErrTransportNotStarted = errors.New("transport not connected")
	ErrUnsupportedCodec    = errors.New("no router codec matches the rtp parameters")
	ErrMissingSSRC         = errors.New("rtp parameters carry no ssrc")
	ErrMissingICE          = errors.New("ice parameters are required to connect")
	ErrForeignProducer     = errors.New("producer does not belong to this router")
	ErrProducerClosed      = errors.New("producer closed")
	ErrNoPortsAvailable    = errors.New("no egress ports available")
	ErrGatherTimeout       = errors.New("timed out gathering ice candidates")
)
