package parser

import (
	"bytes"
	"fmt"
	"slices"

	"plaza-lens/pkg/crypto"
	"plaza-lens/pkg/types"
)

// Container owns a save file's bytes plus the block directory derived from
// them. The backing buffer keeps the on-disk representation (obfuscated
// payload followed by the digest); block payloads are decrypted on demand
// through ReadBlock. A Container is not safe for concurrent use.
type Container struct {
	raw       []byte
	directory []types.BlockDescriptor
	digestOK  bool
}

// Open copies data and walks its block stream into a directory. The stored
// digest is checked but a mismatch alone is not fatal: such containers open
// normally so they can be repaired. A container whose digest is stale and
// whose block stream will not walk is beyond repair and rejected.
func Open(data []byte) (*Container, error) {
	if len(data) < crypto.DigestSize {
		return nil, fmt.Errorf("%w: container is %d bytes, minimum is %d",
			types.ErrBadFormat, len(data), crypto.DigestSize)
	}
	c := &Container{
		raw:      bytes.Clone(data),
		digestOK: crypto.DigestValid(data),
	}

	// The directory walk needs the de-obfuscated payload; work on a scratch
	// copy so the backing buffer keeps the on-disk bytes.
	payload := bytes.Clone(c.raw[:c.DigestOffset()])
	crypto.CryptXorpad(payload, 0)

	directory, err := parseDirectory(payload)
	if err != nil {
		if c.digestOK {
			return nil, err
		}
		// The digest is stale and the stream will not walk: the corruption
		// reached framing or key material, so rewriting the digest cannot
		// reconstruct this container.
		return nil, fmt.Errorf("%w: %v", types.ErrUnrepairable, err)
	}
	c.directory = directory
	return c, nil
}

// Bytes returns a copy of the container's current serialized form.
func (c *Container) Bytes() []byte {
	return bytes.Clone(c.raw)
}

// Size returns the container's byte count, digest included.
func (c *Container) Size() int {
	return len(c.raw)
}

// Directory returns the container's block descriptors in file order.
func (c *Container) Directory() []types.BlockDescriptor {
	return slices.Clone(c.directory)
}

// DigestOK reports whether the stored digest matched the payload when the
// container was opened or last written.
func (c *Container) DigestOK() bool {
	return c.digestOK
}

// DigestOffset returns the byte offset of the stored digest, which is also
// the payload length.
func (c *Container) DigestOffset() int {
	return len(c.raw) - crypto.DigestSize
}

// RewriteDigest recomputes the digest over the payload and stores it, making
// the container consistent again.
func (c *Container) RewriteDigest() {
	digest := crypto.ComputeDigest(c.raw[:c.DigestOffset()])
	copy(c.raw[c.DigestOffset():], digest[:])
	c.digestOK = true
}

// BlockByKey returns the descriptor for the block with the given key. When a
// key occurs more than once the last occurrence wins, matching how the game
// resolves duplicate records.
func (c *Container) BlockByKey(key uint32) (types.BlockDescriptor, bool) {
	for i := len(c.directory) - 1; i >= 0; i-- {
		if c.directory[i].Key == key {
			return c.directory[i], true
		}
	}
	return types.BlockDescriptor{}, false
}

// BlockByName returns the descriptor for the block whose record name hashes
// to the given key.
func (c *Container) BlockByName(name string) (types.BlockDescriptor, bool) {
	return c.BlockByKey(crypto.BlockKey(name))
}
