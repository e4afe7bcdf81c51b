// Package hashid turns database ids into short url-safe strings and back.
// Published album links use these so raw row ids never leak.
package hashid

import (
	"errors"

	"github.com/speps/go-hashids/v2"
)

const minLength = 4

var ErrInvalidHash = errors.New("not a valid id hash")

type Codec struct {
	h *hashids.HashID
}

func New(salt string) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength
	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

func (c *Codec) Encode(id uint64) (string, error) {
	return c.h.EncodeInt64([]int64{int64(id)})
}

// Decode recovers the id from a hash. Any malformed or forged input comes
// back as ErrInvalidHash, never a panic.
func (c *Codec) Decode(hash string) (uint64, error) {
	ids, err := c.h.DecodeInt64WithError(hash)
	if err != nil || len(ids) != 1 || ids[0] < 0 {
		return 0, ErrInvalidHash
	}
	// Decoding is only valid if it round-trips: hashids decodes some
	// strings it would never produce
	check, err := c.h.EncodeInt64(ids)
	if err != nil || check != hash {
		return 0, ErrInvalidHash
	}
	return uint64(ids[0]), nil
}
