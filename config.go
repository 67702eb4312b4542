// Copyright 2024 The hubproto Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hubproto

import (
	"math"

	"github.com/henrylee2cn/cfgo"

	"github.com/wirehub/hubproto/codec"
)

// ProtoConfig protocol frontend config.
// Note:
//  yaml tag is used for github.com/henrylee2cn/cfgo
type ProtoConfig struct {
	LenientArguments    bool   `yaml:"lenient_arguments"     comment:"Encode an unsupported argument as a no-value slot instead of failing"`
	LenientKinds        bool   `yaml:"lenient_kinds"         comment:"Skip frames and messages with unrecognized kinds instead of failing"`
	MaxMessageSize      uint32 `yaml:"max_message_size"      comment:"Message size upper limit in bytes; 0 means no limit"`
	DefaultPayloadCodec string `yaml:"default_payload_codec" comment:"Payload codec name for registry entries that do not name one"`

	defaultPayloadCodecID byte
}

var _ cfgo.Config = new(ProtoConfig)

// NewProtoConfig returns a checked config with default values.
func NewProtoConfig() *ProtoConfig {
	p := new(ProtoConfig)
	if err := p.check(); err != nil {
		panic(err)
	}
	return p
}

// Reload Bi-directionally synchronizes config between YAML file and memory.
func (p *ProtoConfig) Reload(bind cfgo.BindFunc) error {
	err := bind()
	if err != nil {
		return err
	}
	return p.check()
}

func (p *ProtoConfig) check() error {
	if len(p.DefaultPayloadCodec) == 0 {
		p.DefaultPayloadCodec = codec.NAME_JSON
	}
	c, err := codec.GetByName(p.DefaultPayloadCodec)
	if err != nil {
		return err
	}
	p.defaultPayloadCodecID = c.ID()
	return nil
}

// MessageSizeLimit returns the message size upper limit in bytes.
func (p *ProtoConfig) MessageSizeLimit() uint32 {
	if p.MaxMessageSize == 0 {
		return math.MaxUint32
	}
	return p.MaxMessageSize
}

// BuildRegistry constructs the payload type registry from an ordered type
// list, filling entries that do not name a payload codec with the configured
// default.
func (p *ProtoConfig) BuildRegistry(types []PayloadType) (*Registry, *Status) {
	if err := p.check(); err != nil {
		return nil, NewStatusByCodeText(CodePayloadCodec, err, false)
	}
	filled := make([]PayloadType, len(types))
	for i, pt := range types {
		if pt.Codec == codec.NilCodecID {
			pt.Codec = p.defaultPayloadCodecID
		}
		filled[i] = pt
	}
	return NewRegistry(filled)
}
