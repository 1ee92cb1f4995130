package crypto

import "math/bits"

// XorShift32 generates the per-block keystream. The generator is seeded from
// the block key: the xorshift state starts at the key advanced once per set
// key bit, then emits state bytes least-significant first, advancing every
// four bytes. XORing a buffer with the stream both encrypts and decrypts it.
type XorShift32 struct {
	state   uint32
	counter uint32
}

// NewXorShift32 returns a keystream generator seeded from a block key.
func NewXorShift32(key uint32) *XorShift32 {
	state := key
	for i := bits.OnesCount32(key); i > 0; i-- {
		state = xorshiftAdvance(state)
	}
	return &XorShift32{state: state}
}

func xorshiftAdvance(s uint32) uint32 {
	s ^= s << 2
	s ^= s >> 15
	s ^= s << 13
	return s
}

// Next emits the next keystream byte.
func (x *XorShift32) Next() byte {
	b := byte(x.state >> (8 * x.counter))
	if x.counter == 3 {
		x.state = xorshiftAdvance(x.state)
		x.counter = 0
	} else {
		x.counter++
	}
	return b
}

// Next32 emits the next four keystream bytes as a little-endian uint32.
func (x *XorShift32) Next32() uint32 {
	return uint32(x.Next()) | uint32(x.Next())<<8 | uint32(x.Next())<<16 | uint32(x.Next())<<24
}

// Skip discards n keystream bytes, positioning the stream past bytes some
// other reader already consumed.
func (x *XorShift32) Skip(n int) {
	for i := 0; i < n; i++ {
		x.Next()
	}
}

// Apply XORs data with the keystream in place.
func (x *XorShift32) Apply(data []byte) {
	for i := range data {
		data[i] ^= x.Next()
	}
}
