// Package jsonproto is the JSON text hub protocol frontend, for debugging
// and text-mode interop.
//  Frame format: {kind 1 byte}{total length 4 bytes LE}{JSON bytes}
//  Frame data demo: `{"invocationId":"42","target":"Notify","arguments":[{"tag":2,"payload":"hi"}]}`
//
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
package jsonproto

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/tidwall/gjson"

	"github.com/henrylee2cn/goutil"

	"github.com/wirehub/hubproto"
	"github.com/wirehub/hubproto/codec"
	"github.com/wirehub/hubproto/wire"
)

// Protocol identity. IsVersionSupported accepts exactly this version.
const (
	ProtoVersion = 1
	ProtoName    = "json"
)

// Option customizes the frontend.
type Option func(*jsonProto)

// WithConfig sets the frontend config.
func WithConfig(cfg *hubproto.ProtoConfig) Option {
	return func(jp *jsonProto) {
		if cfg != nil {
			jp.cfg = cfg
		}
	}
}

// WithLogger sets the observability sink.
func WithLogger(logger hubproto.Logger) Option {
	return func(jp *jsonProto) {
		if logger != nil {
			jp.logger = logger
		}
	}
}

// New creates a JSON hub protocol frontend bound to the given payload type
// registry. It shares the binary frontend's envelope and kind constants but
// carries the message body as one JSON document.
func New(reg *wire.Registry, opt ...Option) hubproto.Proto {
	jp := &jsonProto{
		reg:    reg,
		cfg:    hubproto.NewProtoConfig(),
		logger: hubproto.GetLogger(),
	}
	for _, o := range opt {
		o(jp)
	}
	return jp
}

type jsonProto struct {
	reg    *wire.Registry
	cfg    *hubproto.ProtoConfig
	logger hubproto.Logger
}

// jsonArg is the text form of one argument descriptor.
type jsonArg struct {
	Tag     uint32          `json:"tag"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// jsonBody is the text form of a message body; unused fields are omitted
// per kind.
type jsonBody struct {
	InvocationID string    `json:"invocationId,omitempty"`
	Target       string    `json:"target,omitempty"`
	Error        string    `json:"error,omitempty"`
	Core         []byte    `json:"core,omitempty"`
	Arguments    []jsonArg `json:"arguments,omitempty"`
}

// Version returns the protocol's version and name.
func (jp *jsonProto) Version() (int, string) {
	return ProtoVersion, ProtoName
}

// IsVersionSupported reports whether the exact version is handled.
func (jp *jsonProto) IsVersionSupported(version int) bool {
	return version == ProtoVersion
}

// Pack appends one encoded message frame to w.
func (jp *jsonProto) Pack(m hubproto.Message, w io.Writer) *hubproto.Status {
	var body jsonBody
	switch msg := m.(type) {
	case *wire.Invocation:
		body.InvocationID = msg.InvocationID
		body.Target = msg.Target
		for i, a := range msg.Arguments {
			ja, stat := jp.encodeArg(a)
			if stat != nil {
				if !jp.cfg.LenientArguments {
					return stat
				}
				jp.logger.Warnf("jsonproto: dropping argument %d of %q: %s", i, msg.Target, stat.Msg())
				ja = jsonArg{Tag: wire.TagNone}
			}
			body.Arguments = append(body.Arguments, ja)
		}
	case *wire.Completion:
		body.InvocationID = msg.InvocationID
		body.Error = msg.Error
	case *wire.Ping, *wire.Close, *wire.StreamInvocation, *wire.StreamItem, *wire.CancelInvocation:
		// empty body in this protocol version
	case *wire.Raw:
		body.Core = msg.Core
	default:
		jp.logger.Warnf("jsonproto: unrecognized message kind %T on encode", m)
		if jp.cfg.LenientKinds {
			return nil
		}
		return hubproto.NewStatusByCodeText(hubproto.CodeUnknownMsgKind,
			fmt.Errorf("%T", m), false)
	}

	b, err := json.Marshal(&body)
	if err != nil {
		return hubproto.NewStatusByCodeText(hubproto.CodePayloadCodec, err, false)
	}
	if uint32(wire.TypeAndTotalLengthHeader+len(b)) > jp.cfg.MessageSizeLimit() {
		return hubproto.NewStatusByCodeText(hubproto.CodeExceedSizeLimit,
			fmt.Errorf("frame is %d bytes", wire.TypeAndTotalLengthHeader+len(b)), false)
	}
	all := make([]byte, wire.TypeAndTotalLengthHeader+len(b))
	all[0] = m.Kind()
	binary.LittleEndian.PutUint32(all[1:wire.TypeAndTotalLengthHeader], uint32(len(b)))
	copy(all[wire.TypeAndTotalLengthHeader:], b)
	if _, werr := w.Write(all); werr != nil {
		return hubproto.NewStatus(hubproto.CodeUnknownError, "write failed", werr)
	}
	return nil
}

func (jp *jsonProto) encodeArg(a wire.Arg) (jsonArg, *hubproto.Status) {
	switch a.Kind {
	case wire.ArgNone:
		return jsonArg{Tag: wire.TagNone}, nil
	case wire.ArgString:
		p, _ := json.Marshal(a.Str)
		return jsonArg{Tag: wire.TagString, Payload: p}, nil
	case wire.ArgInt32:
		return jsonArg{Tag: wire.TagInt32, Payload: json.RawMessage(fmt.Sprintf("%d", a.Int32))}, nil
	case wire.ArgFloat64:
		p, err := json.Marshal(a.Float64)
		if err != nil {
			return jsonArg{}, hubproto.NewStatusByCodeText(hubproto.CodeUnsupportedArgument, err, false)
		}
		return jsonArg{Tag: wire.TagFloat64, Payload: p}, nil
	case wire.ArgPayload:
		tag, pt, stat := jp.reg.TagOf(a.Payload)
		if stat != nil {
			return jsonArg{}, stat
		}
		b, err := codec.Marshal(pt.Codec, a.Payload)
		if err != nil {
			return jsonArg{}, hubproto.NewStatusByCodeText(hubproto.CodePayloadCodec, err, false)
		}
		p, _ := json.Marshal(b) // base64 text
		return jsonArg{Tag: tag, Payload: p}, nil
	default:
		return jsonArg{}, hubproto.NewStatusByCodeText(hubproto.CodeUnsupportedArgument,
			fmt.Errorf("argument kind %d", a.Kind), false)
	}
}

// TryParse extracts the first complete message from buf.
// n == 0 with a nil status means more bytes are needed.
func (jp *jsonProto) TryParse(buf []byte) (hubproto.Message, int, *hubproto.Status) {
	total, ok := wire.TotalLength(buf)
	if !ok {
		return nil, 0, nil
	}
	if total > jp.cfg.MessageSizeLimit() {
		return nil, 0, hubproto.NewStatusByCodeText(hubproto.CodeExceedSizeLimit,
			fmt.Errorf("total length field wants %d bytes", total), false)
	}
	n := wire.FrameLen(buf)
	if n == 0 {
		return nil, 0, nil
	}
	body := goutil.BytesToString(buf[wire.TypeAndTotalLengthHeader:n])
	if !gjson.Valid(body) {
		return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeBadCore,
			fmt.Errorf("invalid JSON body"), false)
	}

	switch kind := wire.Kind(buf); kind {
	case wire.KindInvocation:
		m, stat := jp.parseInvocation(body)
		return m, n, stat
	case wire.KindCompletion:
		return &wire.Completion{
			InvocationID: gjson.Get(body, "invocationId").String(),
			Error:        gjson.Get(body, "error").String(),
		}, n, nil
	case wire.KindPing:
		return wire.PingMsg, n, nil
	case wire.KindClose, wire.KindStreamInvocation, wire.KindStreamItem, wire.KindCancelInvocation:
		core, err := base64.StdEncoding.DecodeString(gjson.Get(body, "core").String())
		if err != nil {
			return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeBadCore, err, false)
		}
		return &wire.Raw{MsgKind: kind, Core: core}, n, nil
	default:
		if jp.cfg.LenientKinds {
			jp.logger.Warnf("jsonproto: dropping frame with unrecognized kind %d", kind)
			return nil, n, nil
		}
		return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeUnknownMsgKind,
			fmt.Errorf("kind %d", kind), false)
	}
}

func (jp *jsonProto) parseInvocation(body string) (hubproto.Message, *hubproto.Status) {
	m := &wire.Invocation{
		InvocationID: gjson.Get(body, "invocationId").String(),
		Target:       gjson.Get(body, "target").String(),
	}
	for _, r := range gjson.Get(body, "arguments").Array() {
		a, stat := jp.parseArg(r)
		if stat != nil {
			return nil, stat
		}
		m.Arguments = append(m.Arguments, a)
	}
	return m, nil
}

func (jp *jsonProto) parseArg(r gjson.Result) (wire.Arg, *hubproto.Status) {
	tag := uint32(r.Get("tag").Uint())
	payload := r.Get("payload")
	if tag > wire.ReservedTagCount {
		pt, stat := jp.reg.TypeOf(tag)
		if stat != nil {
			return wire.Arg{}, stat
		}
		b, err := base64.StdEncoding.DecodeString(payload.String())
		if err != nil {
			return wire.Arg{}, hubproto.NewStatusByCodeText(hubproto.CodeMalformedPrimitive, err, false)
		}
		v := pt.New()
		if err = codec.Unmarshal(pt.Codec, b, v); err != nil {
			return wire.Arg{}, hubproto.NewStatusByCodeText(hubproto.CodePayloadCodec, err, false)
		}
		return wire.PayloadArg(v), nil
	}
	switch tag {
	case wire.TagString:
		return wire.StringArg(payload.String()), nil
	case wire.TagInt32:
		i := payload.Int()
		if i < math.MinInt32 || i > math.MaxInt32 {
			return wire.Arg{}, hubproto.NewStatusByCodeText(hubproto.CodeMalformedPrimitive,
				fmt.Errorf("int32 payload %d out of range", i), false)
		}
		return wire.Int32Arg(int32(i)), nil
	case wire.TagFloat64:
		return wire.Float64Arg(payload.Float()), nil
	default:
		return wire.NoArg(), nil
	}
}
