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

// Package wire implements the hub message envelope: a length-prefixed binary
// frame holding a kind byte, a varint-delimited protobuf core sub-message and
// a sequence of tagged argument descriptors.
//
// Frame format (little-endian integers):
//
//	{1 byte message kind}
//	{4 bytes total length} # length of everything after this field
//	{varint core length}{core protobuf bytes}
//	# argument block, one entry per argument:
//	{4 bytes tag}{4 bytes payload length}{payload}
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/gogo/protobuf/proto"
)

const (
	// TypeAndTotalLengthHeader is the fixed frame header size:
	// 1 kind byte plus the 4-byte total length.
	TypeAndTotalLengthHeader = 5
	// MessageHeaderLength is the minimum buffered byte count before the
	// total length field can be read at all.
	MessageHeaderLength = 5
	// descriptorHeader is the per-argument tag + payload length prefix.
	descriptorHeader = 8
)

// Pack assembles one complete frame from a kind byte, the core sub-message
// bytes and the ordered argument descriptors. The core is written
// varint-delimited so its end, and therefore the argument block start, is
// unambiguous without a second length field in the frame header.
func Pack(kind byte, core []byte, args []Descriptor) []byte {
	vn := proto.EncodeVarint(uint64(len(core)))
	total := len(vn) + len(core)
	for _, d := range args {
		total += descriptorHeader + len(d.Payload)
	}

	all := make([]byte, TypeAndTotalLengthHeader+total)
	all[0] = kind
	binary.LittleEndian.PutUint32(all[1:TypeAndTotalLengthHeader], uint32(total))
	offset := TypeAndTotalLengthHeader
	offset += copy(all[offset:], vn)
	offset += copy(all[offset:], core)
	for _, d := range args {
		binary.LittleEndian.PutUint32(all[offset:], d.Tag)
		binary.LittleEndian.PutUint32(all[offset+4:], uint32(len(d.Payload)))
		offset += descriptorHeader
		offset += copy(all[offset:], d.Payload)
	}
	return all
}

// Kind reads the message kind byte at offset 0.
func Kind(frame []byte) byte {
	return frame[0]
}

// TotalLength reads the total length field of the first frame in buf.
// ok is false while buf is still too short to hold the field.
func TotalLength(buf []byte) (uint32, bool) {
	if len(buf) < MessageHeaderLength {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[1:TypeAndTotalLengthHeader]), true
}

// FrameLen reports the byte length of the first complete frame in buf,
// or 0 if more bytes are needed. It never inspects the frame's contents, so
// a receiver can isolate one message from a longer buffer before parsing it.
func FrameLen(buf []byte) int {
	total, ok := TotalLength(buf)
	if !ok {
		return 0
	}
	n := int(total) + TypeAndTotalLengthHeader
	if len(buf) < n {
		return 0
	}
	return n
}

// Core returns the core sub-message region of one complete frame.
// The returned slice aliases frame.
func Core(frame []byte) ([]byte, *Status) {
	body, stat := frameBody(frame)
	if stat != nil {
		return nil, stat
	}
	core, _, stat := splitCore(body)
	return core, stat
}

// Arguments parses the argument block following the core region, producing
// one descriptor per entry until the block is exhausted. Descriptor payloads
// alias frame.
func Arguments(frame []byte) ([]Descriptor, *Status) {
	body, stat := frameBody(frame)
	if stat != nil {
		return nil, stat
	}
	_, block, stat := splitCore(body)
	if stat != nil {
		return nil, stat
	}
	var args []Descriptor
	for len(block) > 0 {
		if len(block) < descriptorHeader {
			return nil, NewStatusByCodeText(CodeBadFrame,
				fmt.Errorf("truncated argument descriptor: %d bytes left", len(block)), false)
		}
		tag := binary.LittleEndian.Uint32(block)
		plen := int(binary.LittleEndian.Uint32(block[4:]))
		block = block[descriptorHeader:]
		if plen > len(block) {
			return nil, NewStatusByCodeText(CodeBadFrame,
				fmt.Errorf("argument payload length %d exceeds %d remaining bytes", plen, len(block)), false)
		}
		args = append(args, Descriptor{Tag: tag, Payload: block[:plen]})
		block = block[plen:]
	}
	return args, nil
}

// frameBody bounds-checks one complete frame and strips the fixed header.
func frameBody(frame []byte) ([]byte, *Status) {
	total, ok := TotalLength(frame)
	if !ok || len(frame) < int(total)+TypeAndTotalLengthHeader {
		return nil, NewStatusByCodeText(CodeBadFrame,
			fmt.Errorf("frame is %d bytes, total length field wants %d", len(frame), total), false)
	}
	return frame[TypeAndTotalLengthHeader : int(total)+TypeAndTotalLengthHeader], nil
}

// splitCore separates the varint-delimited core region from the argument
// block that follows it.
func splitCore(body []byte) (core, argBlock []byte, stat *Status) {
	clen, vn := proto.DecodeVarint(body)
	if vn == 0 {
		return nil, nil, NewStatusByCodeText(CodeBadCore,
			fmt.Errorf("missing core length varint"), false)
	}
	// compare before converting: a huge varint would wrap int negative
	if clen > uint64(len(body)-vn) {
		return nil, nil, NewStatusByCodeText(CodeBadCore,
			fmt.Errorf("core length %d exceeds %d remaining bytes", clen, len(body)-vn), false)
	}
	end := vn + int(clen)
	return body[vn:end], body[end:], nil
}
