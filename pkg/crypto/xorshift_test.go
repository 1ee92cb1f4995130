package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	require.NoError(t, err)
	return data
}

// Known keystreams for a handful of block keys, 32 bytes each.
var keystreamVectors = []struct {
	seed   uint32
	stream string
}{
	{0x12345678, "af71c907cac63588276c67d94e6552c8410252ad711b745ffd93dba462f3d981"},
	{0xDEADBEEF, "df46fb4c8f4367ab47a0f24e2bab5d6cd19d908a30abb5d536c144c341797e05"},
	{0x7BCD124F, "ee32cd93a5e0ecd48f8ccf4a507d5b4e7dc6f9bbb4f7e89af28b34a8f75558de"},
	{0x00000001, "05a000001580004444a80a1114234241d107b00075bcfe01a961318ee40aa907"},
	{0xEE73F55E, "a03a42efb5d4dc1c3e99888493b0b9ec61ee93a75d8457bd3a45ae68fc45a912"},
}

func TestXorShift32Keystream(t *testing.T) {
	for _, tc := range keystreamVectors {
		want := mustHex(t, tc.stream)
		keystream := NewXorShift32(tc.seed)
		got := make([]byte, len(want))
		for i := range got {
			got[i] = keystream.Next()
		}
		assert.Equal(t, want, got, "seed %08X", tc.seed)
	}
}

func TestXorShift32Next32(t *testing.T) {
	keystream := NewXorShift32(0x12345678)
	assert.Equal(t, uint32(0x07C971AF), keystream.Next32())
	assert.Equal(t, uint32(0x8835C6CA), keystream.Next32())
}

func TestXorShift32ZeroSeed(t *testing.T) {
	// A zero seed never leaves the zero state: the stream is all zeros and
	// XORing with it is the identity.
	keystream := NewXorShift32(0)
	for i := 0; i < 64; i++ {
		assert.Equal(t, byte(0), keystream.Next())
	}
}

func TestXorShift32SkipMatchesNext(t *testing.T) {
	skipped := NewXorShift32(0x7BCD124F)
	skipped.Skip(7)
	stepped := NewXorShift32(0x7BCD124F)
	for i := 0; i < 7; i++ {
		stepped.Next()
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, stepped.Next(), skipped.Next())
	}
}

func TestXorShift32ApplyRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")
	encrypted := bytes.Clone(payload)
	NewXorShift32(0xDEADBEEF).Apply(encrypted)
	require.NotEqual(t, payload, encrypted)
	NewXorShift32(0xDEADBEEF).Apply(encrypted)
	assert.Equal(t, payload, encrypted)
}
