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

package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/henrylee2cn/goutil"

	"github.com/wirehub/hubproto/codec"
)

// ArgKind discriminates the closed set of argument value kinds.
type ArgKind byte

// Argument value kinds.
const (
	ArgNone ArgKind = iota
	ArgString
	ArgInt32
	ArgFloat64
	ArgPayload
)

// Arg is one positional invocation argument: a closed tagged union over
// {string, int32, float64, structured payload}. Callers construct it with
// the Arg constructors; the zero value is the no-value sentinel.
type Arg struct {
	Kind    ArgKind
	Str     string
	Int32   int32
	Float64 float64
	Payload interface{}
}

// NoArg returns the no-value sentinel argument.
func NoArg() Arg { return Arg{} }

// StringArg wraps a string value as an argument.
func StringArg(s string) Arg { return Arg{Kind: ArgString, Str: s} }

// Int32Arg wraps an int32 value as an argument.
func Int32Arg(i int32) Arg { return Arg{Kind: ArgInt32, Int32: i} }

// Float64Arg wraps a float64 value as an argument.
func Float64Arg(f float64) Arg { return Arg{Kind: ArgFloat64, Float64: f} }

// PayloadArg wraps a structured payload value as an argument.
// The value's type must be registered in the Registry used for encoding.
func PayloadArg(v interface{}) Arg { return Arg{Kind: ArgPayload, Payload: v} }

// String returns printing argument information.
func (a Arg) String() string {
	switch a.Kind {
	case ArgString:
		return fmt.Sprintf("string(%q)", a.Str)
	case ArgInt32:
		return fmt.Sprintf("int32(%d)", a.Int32)
	case ArgFloat64:
		return fmt.Sprintf("float64(%v)", a.Float64)
	case ArgPayload:
		b, _ := json.Marshal(a.Payload)
		return fmt.Sprintf("payload(%s)", goutil.BytesToString(b))
	default:
		return "none"
	}
}

// Descriptor is one encoded argument: a value-kind tag plus the raw payload
// bytes. Primitive tags fix the payload width; registry tags defer to the
// registered payload codec.
type Descriptor struct {
	Tag     uint32
	Payload []byte
}

// EncodeArg encodes a into its wire descriptor.
// Structured payload types are resolved through r; an unregistered type
// fails with CodeUnregisteredType and any argument outside the closed kind
// set fails with CodeUnsupportedArgument.
func (r *Registry) EncodeArg(a Arg) (Descriptor, *Status) {
	switch a.Kind {
	case ArgNone:
		return Descriptor{Tag: TagNone}, nil
	case ArgString:
		return Descriptor{Tag: TagString, Payload: []byte(a.Str)}, nil
	case ArgInt32:
		p := make([]byte, 4)
		binary.LittleEndian.PutUint32(p, uint32(a.Int32))
		return Descriptor{Tag: TagInt32, Payload: p}, nil
	case ArgFloat64:
		p := make([]byte, 8)
		binary.LittleEndian.PutUint64(p, math.Float64bits(a.Float64))
		return Descriptor{Tag: TagFloat64, Payload: p}, nil
	case ArgPayload:
		tag, pt, stat := r.TagOf(a.Payload)
		if stat != nil {
			return Descriptor{}, stat
		}
		b, err := codec.Marshal(pt.Codec, a.Payload)
		if err != nil {
			return Descriptor{}, NewStatusByCodeText(CodePayloadCodec, err, false)
		}
		return Descriptor{Tag: tag, Payload: b}, nil
	default:
		return Descriptor{}, NewStatusByCodeText(CodeUnsupportedArgument,
			fmt.Errorf("argument kind %d", a.Kind), false)
	}
}

// DecodeArg decodes one wire descriptor back into an argument.
// Primitive payload widths are enforced; registry tags instantiate the
// registered type through its factory and unmarshal with its codec.
func (r *Registry) DecodeArg(d Descriptor) (Arg, *Status) {
	if d.Tag > ReservedTagCount {
		pt, stat := r.TypeOf(d.Tag)
		if stat != nil {
			return Arg{}, stat
		}
		v := pt.New()
		if err := codec.Unmarshal(pt.Codec, d.Payload, v); err != nil {
			return Arg{}, NewStatusByCodeText(CodePayloadCodec, err, false)
		}
		return PayloadArg(v), nil
	}
	switch d.Tag {
	case TagString:
		if !utf8.Valid(d.Payload) {
			return Arg{}, NewStatusByCodeText(CodeMalformedPrimitive,
				fmt.Errorf("string payload is not valid UTF-8"), false)
		}
		return StringArg(string(d.Payload)), nil
	case TagInt32:
		if len(d.Payload) != 4 {
			return Arg{}, NewStatusByCodeText(CodeMalformedPrimitive,
				fmt.Errorf("int32 payload is %d bytes, want 4", len(d.Payload)), false)
		}
		return Int32Arg(int32(binary.LittleEndian.Uint32(d.Payload))), nil
	case TagFloat64:
		if len(d.Payload) != 8 {
			return Arg{}, NewStatusByCodeText(CodeMalformedPrimitive,
				fmt.Errorf("float64 payload is %d bytes, want 8", len(d.Payload)), false)
		}
		return Float64Arg(math.Float64frombits(binary.LittleEndian.Uint64(d.Payload))), nil
	default:
		// tag 0 and the reserved-but-unused slots decode to the no-value sentinel.
		return NoArg(), nil
	}
}
