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

// Package hubproto frames, encodes and decodes hub invocation messages
// exchanged between a client and server over a persistent bidirectional
// connection. It owns the bytes only: transport I/O, dispatch and routing
// belong to the layer above it.
package hubproto

import (
	"io"
)

type (
	// Proto pack/parse protocol scheme of hub messages.
	// Implementations are stateless per call aside from their immutable
	// type registry, so one instance may be shared by concurrent callers.
	Proto interface {
		// Version returns the protocol's version and name.
		Version() (int, string)
		// IsVersionSupported reports whether the exact version is handled.
		IsVersionSupported(version int) bool
		// Pack appends one encoded message frame to w.
		Pack(m Message, w io.Writer) *Status
		// TryParse extracts the first complete message from buf.
		// n is the byte count consumed; n == 0 with a nil status means
		// the buffer does not yet hold a complete frame. A non-nil status
		// with n > 0 reports a bad frame that the caller may skip.
		TryParse(buf []byte) (m Message, n int, stat *Status)
	}
)
