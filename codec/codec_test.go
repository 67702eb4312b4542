package codec

import (
	"reflect"
	"testing"
)

func TestGet(t *testing.T) {
	for _, id := range []byte{ID_JSON, ID_PROTOBUF, ID_THRIFT, ID_PLAIN, ID_XML} {
		c, err := Get(id)
		if err != nil {
			t.Fatal(err)
		}
		if c.ID() != id {
			t.Fatalf("get: %d, but expect: %d", c.ID(), id)
		}
		byName, err := GetByName(c.Name())
		if err != nil {
			t.Fatal(err)
		}
		if byName.ID() != id {
			t.Fatalf("get by name %q: %d, but expect: %d", c.Name(), byName.ID(), id)
		}
	}
	if _, err := Get(NilCodecID); err == nil {
		t.Fatal("expect an error for the nil codec id")
	}
	if _, err := GetByName("no-such-codec"); err == nil {
		t.Fatal("expect an error for an unregistered codec name")
	}
}

func TestMarshalByID(t *testing.T) {
	type T struct {
		A string `json:"a" xml:"a"`
		B int32  `json:"b" xml:"b"`
	}
	v := T{A: "aaa", B: 123}

	for _, id := range []byte{ID_JSON, ID_XML} {
		data, err := Marshal(id, v)
		if err != nil {
			t.Fatal(err)
		}
		var got T
		if err = Unmarshal(id, data, &got); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Fatalf("codec %c: get: %v, but expect: %v", id, got, v)
		}
	}

	data, err := MarshalByName(NAME_JSON, v)
	if err != nil {
		t.Fatal(err)
	}
	var got T
	if err = UnmarshalByName(NAME_JSON, data, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, v) {
		t.Fatalf("get: %v, but expect: %v", got, v)
	}
}
