package wire

import (
	"encoding/binary"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
)

func TestPackLayout(t *testing.T) {
	core := []byte{0x0a, 0x01, 'x'}
	args := []Descriptor{
		{Tag: TagString, Payload: []byte("hi")},
		{Tag: TagInt32, Payload: []byte{7, 0, 0, 0}},
	}
	frame := Pack(KindInvocation, core, args)

	assert.Equal(t, KindInvocation, Kind(frame))

	// total = varint(3) + core + 2 descriptor headers + payloads
	wantTotal := 1 + len(core) + (8 + 2) + (8 + 4)
	total, ok := TotalLength(frame)
	assert.True(t, ok)
	assert.Equal(t, uint32(wantTotal), total)
	assert.Equal(t, TypeAndTotalLengthHeader+wantTotal, len(frame))

	gotCore, stat := Core(frame)
	assert.Nil(t, stat)
	assert.Equal(t, core, gotCore)

	gotArgs, stat := Arguments(frame)
	assert.Nil(t, stat)
	assert.Equal(t, args, gotArgs)
}

func TestPackEmptyCoreAndArgs(t *testing.T) {
	frame := Pack(KindPing, nil, nil)
	// one varint byte for the zero-length core
	assert.Equal(t, TypeAndTotalLengthHeader+1, len(frame))

	core, stat := Core(frame)
	assert.Nil(t, stat)
	assert.Equal(t, 0, len(core))

	args, stat := Arguments(frame)
	assert.Nil(t, stat)
	assert.Equal(t, 0, len(args))
}

func TestFrameLenIncomplete(t *testing.T) {
	frame := Pack(KindInvocation, []byte("core"), []Descriptor{{Tag: TagString, Payload: []byte("hi")}})
	for i := 0; i < len(frame); i++ {
		assert.Equal(t, 0, FrameLen(frame[:i]), "prefix of %d bytes", i)
	}
	assert.Equal(t, len(frame), FrameLen(frame))
	// trailing bytes of a following frame must not confuse the length
	assert.Equal(t, len(frame), FrameLen(append(append([]byte{}, frame...), 1, 2, 3)))
}

func TestCoreOverrunsFrame(t *testing.T) {
	frame := Pack(KindInvocation, []byte("core"), nil)
	// corrupt the core length varint so it points past the frame end
	frame[TypeAndTotalLengthHeader] = 0x7f
	_, stat := Core(frame)
	assert.NotNil(t, stat)
	assert.Equal(t, CodeBadCore, stat.Code())
}

func TestCoreVarintHugeLength(t *testing.T) {
	// a 10-byte varint encoding 1<<63 must be rejected, not sliced:
	// converting it to int first would wrap negative and pass a naive
	// end-of-core bounds check
	body := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	frame := make([]byte, TypeAndTotalLengthHeader+len(body))
	frame[0] = KindInvocation
	binary.LittleEndian.PutUint32(frame[1:], uint32(len(body)))
	copy(frame[TypeAndTotalLengthHeader:], body)

	_, stat := Core(frame)
	assert.NotNil(t, stat)
	assert.Equal(t, CodeBadCore, stat.Code())

	_, stat = Arguments(frame)
	assert.NotNil(t, stat)
	assert.Equal(t, CodeBadCore, stat.Code())
}

func TestArgumentsTruncatedDescriptor(t *testing.T) {
	frame := Pack(KindInvocation, nil, []Descriptor{{Tag: TagInt32, Payload: []byte{1, 2, 3, 4}}})
	// shrink the declared payload area while keeping totalLength intact:
	// rewrite the descriptor's payload length to overrun the block
	off := TypeAndTotalLengthHeader + 1 + 4 // header + core varint + tag
	binary.LittleEndian.PutUint32(frame[off:], 1000)
	_, stat := Arguments(frame)
	assert.NotNil(t, stat)
	assert.Equal(t, CodeBadFrame, stat.Code())
}

func TestArgumentsTrailingGarbage(t *testing.T) {
	frame := Pack(KindInvocation, nil, nil)
	// append 3 stray bytes inside the counted region
	frame = append(frame, 9, 9, 9)
	binary.LittleEndian.PutUint32(frame[1:], uint32(len(frame)-TypeAndTotalLengthHeader))
	_, stat := Arguments(frame)
	assert.NotNil(t, stat)
	assert.Equal(t, CodeBadFrame, stat.Code())
}

func TestCoreIsVarintDelimited(t *testing.T) {
	core := make([]byte, 300) // force a 2-byte varint
	for i := range core {
		core[i] = byte(i)
	}
	frame := Pack(KindCompletion, core, nil)

	clen, vn := proto.DecodeVarint(frame[TypeAndTotalLengthHeader:])
	assert.Equal(t, uint64(len(core)), clen)
	assert.Equal(t, 2, vn)

	gotCore, stat := Core(frame)
	assert.Nil(t, stat)
	assert.Equal(t, core, gotCore)
}
