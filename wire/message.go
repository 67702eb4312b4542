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
	"encoding/json"
	"fmt"

	"github.com/henrylee2cn/goutil"
)

// Message kinds.
// NOTE: the numeric values are fixed by the host messaging framework's
// shared constant set and must be mirrored exactly for interoperability.
const (
	KindInvocation       byte = 1
	KindStreamItem       byte = 2
	KindCompletion       byte = 3
	KindStreamInvocation byte = 4
	KindCancelInvocation byte = 5
	KindPing             byte = 6
	KindClose            byte = 7
)

// KindText returns the message kind text.
// If the kind is undefined returns 'Undefined'.
func KindText(kind byte) string {
	switch kind {
	case KindInvocation:
		return "INVOCATION"
	case KindStreamItem:
		return "STREAM_ITEM"
	case KindCompletion:
		return "COMPLETION"
	case KindStreamInvocation:
		return "STREAM_INVOCATION"
	case KindCancelInvocation:
		return "CANCEL_INVOCATION"
	case KindPing:
		return "PING"
	case KindClose:
		return "CLOSE"
	default:
		return "Undefined"
	}
}

// Message is one logical hub message, polymorphic over the kind variants.
type Message interface {
	// Kind returns the message kind byte.
	Kind() byte
	// String returns printing message information.
	String() string
}

// Invocation calls a target method on the remote side with positional
// arguments. The invocation id correlates a later completion.
type Invocation struct {
	InvocationID string
	Target       string
	Arguments    []Arg
}

// Kind returns the message kind byte.
func (*Invocation) Kind() byte { return KindInvocation }

const invocationFormat = `{"kind":"INVOCATION","invocationId":%q,"target":%q,"arguments":%s}`

// String returns printing message information.
func (m *Invocation) String() string {
	args := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		args[i] = a.String()
	}
	b, _ := json.Marshal(args)
	return fmt.Sprintf(invocationFormat, m.InvocationID, m.Target, goutil.BytesToString(b))
}

// Completion reports the outcome of an earlier invocation.
type Completion struct {
	InvocationID string
	Error        string
}

// Kind returns the message kind byte.
func (*Completion) Kind() byte { return KindCompletion }

// String returns printing message information.
func (m *Completion) String() string {
	return fmt.Sprintf(`{"kind":"COMPLETION","invocationId":%q,"error":%q}`, m.InvocationID, m.Error)
}

// Ping is the keep-alive probe. It carries no payload.
type Ping struct{}

// PingMsg is the singleton ping value returned by decoders.
var PingMsg = new(Ping)

// Kind returns the message kind byte.
func (*Ping) Kind() byte { return KindPing }

// String returns printing message information.
func (*Ping) String() string { return `{"kind":"PING"}` }

// Close asks the peer to terminate the logical connection.
type Close struct{}

// Kind returns the message kind byte.
func (*Close) Kind() byte { return KindClose }

// String returns printing message information.
func (*Close) String() string { return `{"kind":"CLOSE"}` }

// StreamInvocation starts a streaming invocation.
// The current protocol version frames it with an empty core and no arguments.
type StreamInvocation struct{}

// Kind returns the message kind byte.
func (*StreamInvocation) Kind() byte { return KindStreamInvocation }

// String returns printing message information.
func (*StreamInvocation) String() string { return `{"kind":"STREAM_INVOCATION"}` }

// StreamItem carries one element of a streaming result.
// The current protocol version frames it with an empty core and no arguments.
type StreamItem struct{}

// Kind returns the message kind byte.
func (*StreamItem) Kind() byte { return KindStreamItem }

// String returns printing message information.
func (*StreamItem) String() string { return `{"kind":"STREAM_ITEM"}` }

// CancelInvocation cancels a streaming invocation.
// The current protocol version frames it with an empty core and no arguments.
type CancelInvocation struct{}

// Kind returns the message kind byte.
func (*CancelInvocation) Kind() byte { return KindCancelInvocation }

// String returns printing message information.
func (*CancelInvocation) String() string { return `{"kind":"CANCEL_INVOCATION"}` }

// Raw is a framed message whose core payload this protocol version does not
// decode. The core bytes are preserved verbatim so nothing is silently lost.
type Raw struct {
	MsgKind byte
	Core    []byte
}

// Kind returns the message kind byte.
func (m *Raw) Kind() byte { return m.MsgKind }

// String returns printing message information.
func (m *Raw) String() string {
	return fmt.Sprintf(`{"kind":%q,"coreLen":%d}`, KindText(m.MsgKind), len(m.Core))
}
