package jsonproto_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wirehub/hubproto"
	"github.com/wirehub/hubproto/codec"
	"github.com/wirehub/hubproto/proto/jsonproto"
)

type chatLine struct {
	From string `json:"from"`
	Text string `json:"text"`
}

func newProto(t *testing.T, opt ...jsonproto.Option) hubproto.Proto {
	reg, stat := hubproto.NewRegistry([]hubproto.PayloadType{
		{New: func() interface{} { return new(chatLine) }, Codec: codec.ID_JSON},
	})
	require.Nil(t, stat)
	return jsonproto.New(reg, opt...)
}

func TestVersion(t *testing.T) {
	p := newProto(t)
	v, name := p.Version()
	assert.Equal(t, 1, v)
	assert.Equal(t, "json", name)
	assert.True(t, p.IsVersionSupported(1))
	assert.False(t, p.IsVersionSupported(2))
}

func TestInvocationRoundTrip(t *testing.T) {
	p := newProto(t)
	m := &hubproto.Invocation{
		InvocationID: "inv-1",
		Target:       "Chat.Send",
		Arguments: []hubproto.Arg{
			hubproto.StringArg("hello"),
			hubproto.Int32Arg(-3),
			hubproto.Float64Arg(0.5),
			hubproto.NoArg(),
			hubproto.PayloadArg(&chatLine{From: "ada", Text: "hi"}),
		},
	}
	var buf bytes.Buffer
	require.Nil(t, p.Pack(m, &buf))

	got, n, stat := p.TryParse(buf.Bytes())
	require.Nil(t, stat)
	assert.Equal(t, buf.Len(), n)
	assert.Equal(t, m, got)
}

// The body must be a single JSON document under the shared binary envelope,
// with the length prefix covering the body only.
func TestBodyIsJSON(t *testing.T) {
	p := newProto(t)
	m := &hubproto.Invocation{
		InvocationID: "42",
		Target:       "Notify",
		Arguments:    []hubproto.Arg{hubproto.StringArg("hi"), hubproto.Int32Arg(7)},
	}
	var buf bytes.Buffer
	require.Nil(t, p.Pack(m, &buf))
	frame := buf.Bytes()

	assert.Equal(t, hubproto.KindInvocation, frame[0])
	total := binary.LittleEndian.Uint32(frame[1:5])
	assert.Equal(t, len(frame)-5, int(total))

	body := string(frame[5:])
	require.True(t, gjson.Valid(body))
	assert.Equal(t, "42", gjson.Get(body, "invocationId").String())
	assert.Equal(t, "Notify", gjson.Get(body, "target").String())
	assert.Equal(t, int64(2), gjson.Get(body, "arguments.0.tag").Int())
	assert.Equal(t, "hi", gjson.Get(body, "arguments.0.payload").String())
	assert.Equal(t, int64(3), gjson.Get(body, "arguments.1.tag").Int())
	assert.Equal(t, int64(7), gjson.Get(body, "arguments.1.payload").Int())
}

func TestPartialBuffer(t *testing.T) {
	p := newProto(t)
	m := &hubproto.Completion{InvocationID: "inv-9", Error: "nope"}
	var buf bytes.Buffer
	require.Nil(t, p.Pack(m, &buf))
	frame := buf.Bytes()

	for i := 0; i < len(frame); i++ {
		got, n, stat := p.TryParse(frame[:i])
		assert.Nil(t, got, "prefix of %d bytes", i)
		assert.Equal(t, 0, n, "prefix of %d bytes", i)
		assert.Nil(t, stat, "prefix of %d bytes", i)
	}
	got, n, stat := p.TryParse(frame)
	require.Nil(t, stat)
	assert.Equal(t, len(frame), n)
	assert.Equal(t, m, got)
}

func TestFrameBoundary(t *testing.T) {
	p := newProto(t)
	var buf bytes.Buffer
	require.Nil(t, p.Pack(hubproto.PingMsg, &buf))
	firstLen := buf.Len()
	require.Nil(t, p.Pack(&hubproto.Completion{InvocationID: "2"}, &buf))
	stream := buf.Bytes()

	got, n, stat := p.TryParse(stream)
	require.Nil(t, stat)
	assert.Equal(t, firstLen, n)
	assert.Same(t, hubproto.PingMsg, got)

	got, n, stat = p.TryParse(stream[n:])
	require.Nil(t, stat)
	assert.Equal(t, len(stream)-firstLen, n)
	assert.Equal(t, &hubproto.Completion{InvocationID: "2"}, got)
}

func TestRawRoundTrip(t *testing.T) {
	p := newProto(t)
	m := &hubproto.Raw{MsgKind: hubproto.KindStreamItem, Core: []byte{9, 8, 7}}
	var buf bytes.Buffer
	require.Nil(t, p.Pack(m, &buf))

	got, _, stat := p.TryParse(buf.Bytes())
	require.Nil(t, stat)
	assert.Equal(t, m, got)
}

func TestInvalidJSONBody(t *testing.T) {
	p := newProto(t)
	body := []byte(`{"invocationId":`)
	frame := make([]byte, 5+len(body))
	frame[0] = hubproto.KindInvocation
	binary.LittleEndian.PutUint32(frame[1:5], uint32(len(body)))
	copy(frame[5:], body)

	got, n, stat := p.TryParse(frame)
	assert.Nil(t, got)
	assert.Equal(t, len(frame), n)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeBadCore, stat.Code())
}

func TestInt32OutOfRange(t *testing.T) {
	p := newProto(t)
	body := []byte(`{"target":"T","arguments":[{"tag":3,"payload":2147483648}]}`)
	frame := make([]byte, 5+len(body))
	frame[0] = hubproto.KindInvocation
	binary.LittleEndian.PutUint32(frame[1:5], uint32(len(body)))
	copy(frame[5:], body)

	_, _, stat := p.TryParse(frame)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeMalformedPrimitive, stat.Code())
}

func TestUnknownTagRejected(t *testing.T) {
	p := newProto(t)
	body := []byte(`{"target":"T","arguments":[{"tag":99,"payload":"e30="}]}`)
	frame := make([]byte, 5+len(body))
	frame[0] = hubproto.KindInvocation
	binary.LittleEndian.PutUint32(frame[1:5], uint32(len(body)))
	copy(frame[5:], body)

	_, _, stat := p.TryParse(frame)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeUnknownTag, stat.Code())
}

func TestStrictUnregisteredArgument(t *testing.T) {
	p := newProto(t)
	type stranger struct{ X int }
	m := &hubproto.Invocation{
		Target:    "T",
		Arguments: []hubproto.Arg{hubproto.PayloadArg(new(stranger))},
	}
	var buf bytes.Buffer
	stat := p.Pack(m, &buf)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeUnregisteredType, stat.Code())
}

func TestLenientUnregisteredArgumentKeepsPosition(t *testing.T) {
	cfg := hubproto.NewProtoConfig()
	cfg.LenientArguments = true
	p := newProto(t, jsonproto.WithConfig(cfg))

	type stranger struct{ X int }
	m := &hubproto.Invocation{
		Target: "T",
		Arguments: []hubproto.Arg{
			hubproto.Int32Arg(1),
			hubproto.PayloadArg(new(stranger)),
			hubproto.Int32Arg(3),
		},
	}
	var buf bytes.Buffer
	require.Nil(t, p.Pack(m, &buf))

	got, _, stat := p.TryParse(buf.Bytes())
	require.Nil(t, stat)
	inv := got.(*hubproto.Invocation)
	require.Equal(t, 3, len(inv.Arguments))
	assert.Equal(t, hubproto.Int32Arg(1), inv.Arguments[0])
	assert.Equal(t, hubproto.NoArg(), inv.Arguments[1])
	assert.Equal(t, hubproto.Int32Arg(3), inv.Arguments[2])
}

func TestMessageSizeLimit(t *testing.T) {
	cfg := hubproto.NewProtoConfig()
	cfg.MaxMessageSize = 16
	p := newProto(t, jsonproto.WithConfig(cfg))

	m := &hubproto.Completion{InvocationID: "inv-oversize", Error: "a long error text"}
	var buf bytes.Buffer
	stat := p.Pack(m, &buf)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeExceedSizeLimit, stat.Code())
	assert.Equal(t, 0, buf.Len())

	// a limit below the fixed header must reject every frame, not
	// underflow into no limit at all
	cfg = hubproto.NewProtoConfig()
	cfg.MaxMessageSize = 3
	p = newProto(t, jsonproto.WithConfig(cfg))
	stat = p.Pack(hubproto.PingMsg, &buf)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeExceedSizeLimit, stat.Code())
	assert.Equal(t, 0, buf.Len())
}

func TestUnknownKindStrict(t *testing.T) {
	p := newProto(t)
	body := []byte(`{}`)
	frame := make([]byte, 5+len(body))
	frame[0] = 99
	binary.LittleEndian.PutUint32(frame[1:5], uint32(len(body)))
	copy(frame[5:], body)

	_, _, stat := p.TryParse(frame)
	require.NotNil(t, stat)
	assert.Equal(t, hubproto.CodeUnknownMsgKind, stat.Code())
}
