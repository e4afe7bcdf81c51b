package hashid

import "testing"

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := New("test salt value")
	if err != nil {
		t.Fatalf("couldn't build codec: %v", err)
	}
	return codec
}

func TestRoundTrip(t *testing.T) {
	codec := testCodec(t)
	for _, id := range []uint64{0, 1, 2, 30, 1000, 62300, 99999999} {
		hash, err := codec.Encode(id)
		if err != nil {
			t.Fatalf("encode %d: %v", id, err)
		}
		if len(hash) < 4 {
			t.Errorf("hash %q for %d shorter than minimum", hash, id)
		}
		decoded, err := codec.Decode(hash)
		if err != nil {
			t.Fatalf("decode %q: %v", hash, err)
		}
		if decoded != id {
			t.Errorf("round trip %d -> %q -> %d", id, hash, decoded)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	codec := testCodec(t)
	// None of these may panic, all must be rejected
	inputs := []string{
		"",
		" ",
		"x",
		"----",
		"not a hash at all",
		"😀😀😀😀",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		"' OR 1=1 --",
	}
	for _, in := range inputs {
		if id, err := codec.Decode(in); err != ErrInvalidHash {
			t.Errorf("Decode(%q) = (%d, %v), want ErrInvalidHash", in, id, err)
		}
	}
}

func TestSaltsDoNotMix(t *testing.T) {
	a := testCodec(t)
	b, err := New("a different salt")
	if err != nil {
		t.Fatalf("couldn't build codec: %v", err)
	}
	hash, err := a.Encode(42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if id, err := b.Decode(hash); err == nil && id == 42 {
		t.Error("hash from one salt decoded under another")
	}
}
