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
	"github.com/henrylee2cn/goutil/status"
)

// Status a handling status with code, msg, cause and stack.
type Status = status.Status

var (
	// NewStatus creates a handling status with code, msg and cause.
	// NOTE:
	//  code=0 means no error
	// TYPE:
	//  func NewStatus(code int32, msg string, cause interface{}) *Status
	NewStatus = status.New
)

// Codec status codes.
// NOTE: Recommended custom code is greater than 1000.
//  unknown error code: -1.
//  decode/encode error code range: [400,499].
const (
	CodeUnknownError int32 = -1
	CodeOK           int32 = 0

	CodeBadFrame            int32 = 400
	CodeBadCore             int32 = 401
	CodeMalformedPrimitive  int32 = 402
	CodeUnknownTag          int32 = 403
	CodeUnregisteredType    int32 = 404
	CodeUnsupportedArgument int32 = 405
	CodeUnknownMsgKind      int32 = 406
	CodeExceedSizeLimit     int32 = 407
	CodePayloadCodec        int32 = 408
	CodeDupRegistration     int32 = 409
)

// CodeText returns the codec status code text.
// If the code is undefined returns 'Unknown Error'.
func CodeText(statCode int32) string {
	switch statCode {
	case CodeOK:
		return ""
	case CodeBadFrame:
		return "Bad Frame"
	case CodeBadCore:
		return "Bad Core Sub-Message"
	case CodeMalformedPrimitive:
		return "Malformed Primitive Payload"
	case CodeUnknownTag:
		return "Unknown Type Tag"
	case CodeUnregisteredType:
		return "Unregistered Payload Type"
	case CodeUnsupportedArgument:
		return "Unsupported Argument Type"
	case CodeUnknownMsgKind:
		return "Unknown Message Kind"
	case CodeExceedSizeLimit:
		return "Size Of Message Exceeds Limit"
	case CodePayloadCodec:
		return "Payload Codec Failed"
	case CodeDupRegistration:
		return "Duplicate Type Registration"
	case CodeUnknownError:
		fallthrough
	default:
		return "Unknown Error"
	}
}

// NewStatusByCodeText creates a codec status with code, cause or stack.
// NOTE:
//  The msg comes from the CodeText(code) value.
func NewStatusByCodeText(code int32, cause interface{}, tagStack bool) *Status {
	stat := NewStatus(code, CodeText(code), cause)
	if tagStack {
		stat.TagStack(1)
	}
	return stat
}
