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
	"github.com/wirehub/hubproto/wire"
)

// Message model aliases.
type (
	// Message is one logical hub message.
	Message = wire.Message
	// Invocation calls a target method with positional arguments.
	Invocation = wire.Invocation
	// Completion reports the outcome of an earlier invocation.
	Completion = wire.Completion
	// Ping is the keep-alive probe.
	Ping = wire.Ping
	// Close asks the peer to terminate the logical connection.
	Close = wire.Close
	// StreamInvocation starts a streaming invocation.
	StreamInvocation = wire.StreamInvocation
	// StreamItem carries one element of a streaming result.
	StreamItem = wire.StreamItem
	// CancelInvocation cancels a streaming invocation.
	CancelInvocation = wire.CancelInvocation
	// Raw is a framed message whose core is not decoded by this version.
	Raw = wire.Raw
	// Arg is one positional invocation argument.
	Arg = wire.Arg
	// ArgKind discriminates the argument value kinds.
	ArgKind = wire.ArgKind
	// PayloadType describes one registered structured-payload type.
	PayloadType = wire.PayloadType
	// Registry maps structured-payload types to wire tags and back.
	Registry = wire.Registry
	// Status a handling status with code, msg, cause and stack.
	Status = wire.Status
)

// Message kinds.
const (
	KindInvocation       = wire.KindInvocation
	KindStreamItem       = wire.KindStreamItem
	KindCompletion       = wire.KindCompletion
	KindStreamInvocation = wire.KindStreamInvocation
	KindCancelInvocation = wire.KindCancelInvocation
	KindPing             = wire.KindPing
	KindClose            = wire.KindClose
)

// Codec status codes.
const (
	CodeUnknownError        = wire.CodeUnknownError
	CodeOK                  = wire.CodeOK
	CodeBadFrame            = wire.CodeBadFrame
	CodeBadCore             = wire.CodeBadCore
	CodeMalformedPrimitive  = wire.CodeMalformedPrimitive
	CodeUnknownTag          = wire.CodeUnknownTag
	CodeUnregisteredType    = wire.CodeUnregisteredType
	CodeUnsupportedArgument = wire.CodeUnsupportedArgument
	CodeUnknownMsgKind      = wire.CodeUnknownMsgKind
	CodeExceedSizeLimit     = wire.CodeExceedSizeLimit
	CodePayloadCodec        = wire.CodePayloadCodec
	CodeDupRegistration     = wire.CodeDupRegistration
)

var (
	// PingMsg is the singleton ping value returned by decoders.
	PingMsg = wire.PingMsg

	// KindText returns the message kind text.
	KindText = wire.KindText

	// Argument constructors.
	NoArg      = wire.NoArg
	StringArg  = wire.StringArg
	Int32Arg   = wire.Int32Arg
	Float64Arg = wire.Float64Arg
	PayloadArg = wire.PayloadArg

	// NewRegistry builds a registry from an ordered payload type list.
	NewRegistry = wire.NewRegistry

	// Status helpers.
	NewStatus           = wire.NewStatus
	NewStatusByCodeText = wire.NewStatusByCodeText
	CodeText            = wire.CodeText
)
