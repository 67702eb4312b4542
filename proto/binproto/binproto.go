// Package binproto is the binary hub protocol frontend.
//  Frame format: {kind 1 byte}{total length 4 bytes LE}{varint-delimited protobuf core}{argument block}
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
package binproto

import (
	"fmt"
	"io"

	"github.com/gogo/protobuf/proto"

	"github.com/wirehub/hubproto"
	"github.com/wirehub/hubproto/pb"
	"github.com/wirehub/hubproto/wire"
)

// Protocol identity. IsVersionSupported accepts exactly this version.
const (
	ProtoVersion = 1
	ProtoName    = "binary"
)

// Option customizes the frontend.
type Option func(*binProto)

// WithConfig sets the frontend config.
func WithConfig(cfg *hubproto.ProtoConfig) Option {
	return func(bp *binProto) {
		if cfg != nil {
			bp.cfg = cfg
		}
	}
}

// WithLogger sets the observability sink.
func WithLogger(logger hubproto.Logger) Option {
	return func(bp *binProto) {
		if logger != nil {
			bp.logger = logger
		}
	}
}

// New creates a binary hub protocol frontend bound to the given payload type
// registry. The returned Proto holds no per-call state, so it is safe for
// concurrent use.
func New(reg *wire.Registry, opt ...Option) hubproto.Proto {
	bp := &binProto{
		reg:    reg,
		cfg:    hubproto.NewProtoConfig(),
		logger: hubproto.GetLogger(),
	}
	for _, o := range opt {
		o(bp)
	}
	return bp
}

type binProto struct {
	reg    *wire.Registry
	cfg    *hubproto.ProtoConfig
	logger hubproto.Logger
}

// Version returns the protocol's version and name.
func (bp *binProto) Version() (int, string) {
	return ProtoVersion, ProtoName
}

// IsVersionSupported reports whether the exact version is handled.
func (bp *binProto) IsVersionSupported(version int) bool {
	return version == ProtoVersion
}

// Pack appends one encoded message frame to w.
func (bp *binProto) Pack(m hubproto.Message, w io.Writer) *hubproto.Status {
	var (
		core []byte
		args []wire.Descriptor
		err  error
	)
	switch msg := m.(type) {
	case *wire.Invocation:
		core, err = proto.Marshal(&pb.InvocationCore{
			InvocationId: msg.InvocationID,
			Target:       msg.Target,
		})
		if err != nil {
			return hubproto.NewStatusByCodeText(hubproto.CodeBadCore, err, false)
		}
		var stat *hubproto.Status
		args, stat = bp.encodeArgs(msg)
		if stat != nil {
			return stat
		}
	case *wire.Completion:
		core, err = proto.Marshal(&pb.CompletionCore{
			InvocationId: msg.InvocationID,
			Error:        msg.Error,
		})
		if err != nil {
			return hubproto.NewStatusByCodeText(hubproto.CodeBadCore, err, false)
		}
	case *wire.Ping, *wire.Close, *wire.StreamInvocation, *wire.StreamItem, *wire.CancelInvocation:
		// empty core and no arguments in this protocol version
	case *wire.Raw:
		core = msg.Core
	default:
		bp.logger.Warnf("binproto: unrecognized message kind %T on encode", m)
		if bp.cfg.LenientKinds {
			return nil
		}
		return hubproto.NewStatusByCodeText(hubproto.CodeUnknownMsgKind,
			fmt.Errorf("%T", m), false)
	}

	frame := wire.Pack(m.Kind(), core, args)
	if uint32(len(frame)) > bp.cfg.MessageSizeLimit() {
		return hubproto.NewStatusByCodeText(hubproto.CodeExceedSizeLimit,
			fmt.Errorf("frame is %d bytes", len(frame)), false)
	}
	if _, werr := w.Write(frame); werr != nil {
		return hubproto.NewStatus(hubproto.CodeUnknownError, "write failed", werr)
	}
	return nil
}

// encodeArgs encodes the invocation arguments in order. With lenient
// arguments configured, an unencodable argument is kept as a no-value slot
// so the positions of the remaining arguments are preserved.
func (bp *binProto) encodeArgs(msg *wire.Invocation) ([]wire.Descriptor, *hubproto.Status) {
	if len(msg.Arguments) == 0 {
		return nil, nil
	}
	args := make([]wire.Descriptor, 0, len(msg.Arguments))
	for i, a := range msg.Arguments {
		d, stat := bp.reg.EncodeArg(a)
		if stat != nil {
			if !bp.cfg.LenientArguments {
				return nil, stat
			}
			bp.logger.Warnf("binproto: dropping argument %d of %q: %s", i, msg.Target, stat.Msg())
			d = wire.Descriptor{Tag: wire.TagNone}
		}
		args = append(args, d)
	}
	return args, nil
}

// TryParse extracts the first complete message from buf.
// n == 0 with a nil status means more bytes are needed.
func (bp *binProto) TryParse(buf []byte) (hubproto.Message, int, *hubproto.Status) {
	total, ok := wire.TotalLength(buf)
	if !ok {
		return nil, 0, nil
	}
	if total > bp.cfg.MessageSizeLimit() {
		return nil, 0, hubproto.NewStatusByCodeText(hubproto.CodeExceedSizeLimit,
			fmt.Errorf("total length field wants %d bytes", total), false)
	}
	n := wire.FrameLen(buf)
	if n == 0 {
		return nil, 0, nil
	}
	frame := buf[:n]

	switch kind := wire.Kind(frame); kind {
	case wire.KindInvocation:
		m, stat := bp.parseInvocation(frame)
		return m, n, stat
	case wire.KindCompletion:
		core, stat := wire.Core(frame)
		if stat != nil {
			return nil, n, stat
		}
		var cc pb.CompletionCore
		if err := proto.Unmarshal(core, &cc); err != nil {
			return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeBadCore, err, false)
		}
		return &wire.Completion{InvocationID: cc.InvocationId, Error: cc.Error}, n, nil
	case wire.KindPing:
		return wire.PingMsg, n, nil
	case wire.KindClose, wire.KindStreamInvocation, wire.KindStreamItem, wire.KindCancelInvocation:
		// framed but not semantically decoded in this protocol version:
		// surface the preserved core instead of a silent empty result.
		core, stat := wire.Core(frame)
		if stat != nil {
			return nil, n, stat
		}
		// these kinds carry no arguments; Raw preserves the core only,
		// so an argument block here would be lost rather than surfaced
		descs, stat := wire.Arguments(frame)
		if stat != nil {
			return nil, n, stat
		}
		if len(descs) > 0 {
			return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeBadFrame,
				fmt.Errorf("%s frame carries %d arguments", wire.KindText(kind), len(descs)), false)
		}
		cp := make([]byte, len(core))
		copy(cp, core)
		return &wire.Raw{MsgKind: kind, Core: cp}, n, nil
	default:
		if bp.cfg.LenientKinds {
			bp.logger.Warnf("binproto: dropping frame with unrecognized kind %d", kind)
			return nil, n, nil
		}
		return nil, n, hubproto.NewStatusByCodeText(hubproto.CodeUnknownMsgKind,
			fmt.Errorf("kind %d", kind), false)
	}
}

func (bp *binProto) parseInvocation(frame []byte) (hubproto.Message, *hubproto.Status) {
	core, stat := wire.Core(frame)
	if stat != nil {
		return nil, stat
	}
	var ic pb.InvocationCore
	if err := proto.Unmarshal(core, &ic); err != nil {
		return nil, hubproto.NewStatusByCodeText(hubproto.CodeBadCore, err, false)
	}
	descs, stat := wire.Arguments(frame)
	if stat != nil {
		return nil, stat
	}
	var args []wire.Arg
	if len(descs) > 0 {
		args = make([]wire.Arg, len(descs))
		for i, d := range descs {
			a, stat := bp.reg.DecodeArg(d)
			if stat != nil {
				return nil, stat
			}
			args[i] = a
		}
	}
	return &wire.Invocation{
		InvocationID: ic.InvocationId,
		Target:       ic.Target,
		Arguments:    args,
	}, nil
}
