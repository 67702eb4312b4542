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

// Package pb holds the protobuf core sub-messages of the hub envelope.
// The message structs are maintained by hand against hub.proto; the gogo
// runtime marshals them through their field tags.
package pb

import (
	"github.com/gogo/protobuf/proto"
)

// InvocationCore is the kind-specific core of an Invocation frame:
// the correlation id plus the target method name.
type InvocationCore struct {
	InvocationId string `protobuf:"bytes,1,opt,name=invocation_id,json=invocationId,proto3" json:"invocation_id,omitempty"`
	Target       string `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
}

// Reset resets the message to its zero state.
func (m *InvocationCore) Reset() { *m = InvocationCore{} }

// String returns the compact text form of the message.
func (m *InvocationCore) String() string { return proto.CompactTextString(m) }

// ProtoMessage marks the struct as a protobuf message.
func (*InvocationCore) ProtoMessage() {}

// CompletionCore is the kind-specific core of a Completion frame:
// the correlation id plus an error text, empty on success.
type CompletionCore struct {
	InvocationId string `protobuf:"bytes,1,opt,name=invocation_id,json=invocationId,proto3" json:"invocation_id,omitempty"`
	Error        string `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
}

// Reset resets the message to its zero state.
func (m *CompletionCore) Reset() { *m = CompletionCore{} }

// String returns the compact text form of the message.
func (m *CompletionCore) String() string { return proto.CompactTextString(m) }

// ProtoMessage marks the struct as a protobuf message.
func (*CompletionCore) ProtoMessage() {}

func init() {
	proto.RegisterType((*InvocationCore)(nil), "hubproto.InvocationCore")
	proto.RegisterType((*CompletionCore)(nil), "hubproto.CompletionCore")
}
