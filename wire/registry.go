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
	"fmt"
	"reflect"
)

// ReservedTagCount is the number of low tags reserved for primitive and
// no-value argument kinds. Registry tags start right above it.
const ReservedTagCount uint32 = 4

// Reserved argument tags.
const (
	TagNone    uint32 = 1
	TagString  uint32 = 2
	TagInt32   uint32 = 3
	TagFloat64 uint32 = 4
)

// PayloadType describes one registered structured-payload type:
// a factory producing a fresh decode target, and the payload codec id
// used to serialize and deserialize it.
type PayloadType struct {
	// New returns a new empty value of the registered type,
	// always a pointer so the codec can unmarshal into it.
	New func() interface{}
	// Codec is the payload codec id (see the codec package).
	Codec byte
}

// Registry is the bidirectional mapping between registered structured-payload
// types and their wire tags. It is built once from an ordered type list and
// never mutated afterwards, so concurrent encode/decode calls may share it
// without locking.
type Registry struct {
	forward  map[reflect.Type]uint32
	backward map[uint32]PayloadType
}

// NewRegistry builds a registry from an ordered, deduplicated list of payload
// types. The i-th entry is assigned tag ReservedTagCount+1+i, so the same
// list always reproduces the same tags. Registering the same Go type twice
// fails with CodeDupRegistration.
func NewRegistry(types []PayloadType) (*Registry, *Status) {
	r := &Registry{
		forward:  make(map[reflect.Type]uint32, len(types)),
		backward: make(map[uint32]PayloadType, len(types)),
	}
	for i, pt := range types {
		if pt.New == nil {
			return nil, NewStatusByCodeText(CodeDupRegistration,
				fmt.Errorf("nil factory at index %d", i), false)
		}
		t := reflect.TypeOf(pt.New())
		if _, ok := r.forward[t]; ok {
			return nil, NewStatusByCodeText(CodeDupRegistration,
				fmt.Errorf("type %s registered twice", t), false)
		}
		tag := ReservedTagCount + 1 + uint32(i)
		r.forward[t] = tag
		r.backward[tag] = pt
	}
	return r, nil
}

// TagOf resolves the wire tag and payload type entry for the value v.
// It fails with CodeUnregisteredType if v's type was not registered.
func (r *Registry) TagOf(v interface{}) (uint32, PayloadType, *Status) {
	tag, ok := r.forward[reflect.TypeOf(v)]
	if !ok {
		return 0, PayloadType{}, NewStatusByCodeText(CodeUnregisteredType,
			fmt.Errorf("type %T", v), false)
	}
	return tag, r.backward[tag], nil
}

// TypeOf resolves the payload type entry registered at tag.
// It fails with CodeUnknownTag if nothing is registered there.
func (r *Registry) TypeOf(tag uint32) (PayloadType, *Status) {
	pt, ok := r.backward[tag]
	if !ok {
		return PayloadType{}, NewStatusByCodeText(CodeUnknownTag,
			fmt.Errorf("tag %d", tag), false)
	}
	return pt, nil
}

// Len returns the count of registered payload types.
func (r *Registry) Len() int {
	return len(r.backward)
}
