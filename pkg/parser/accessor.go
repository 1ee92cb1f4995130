package parser

import (
	"bytes"
	"fmt"

	"plaza-lens/pkg/crypto"
	"plaza-lens/pkg/types"
)

// headerKeystreamLen returns how many keystream bytes a block's header
// consumes ahead of the payload: one for the type code, plus the object
// length or the array count and element type.
func headerKeystreamLen(blockType types.TypeCode) int {
	switch blockType {
	case types.TypeObject:
		return 5
	case types.TypeArray:
		return 6
	default:
		return 1
	}
}

// ReadBlock decrypts one block into an owned plaintext copy. The boolean
// result carries the container's stored-digest state, the only integrity
// signal the format keeps for a block's bytes. The plaintext is returned
// even when the digest is stale so that corrupted containers can still be
// read and repaired.
func (c *Container) ReadBlock(desc types.BlockDescriptor) (*types.DecryptedBlock, bool, error) {
	if err := c.checkSpan(desc); err != nil {
		return nil, false, err
	}
	data := make([]byte, desc.PayloadLength)
	copy(data, c.raw[desc.PayloadOffset:desc.PayloadOffset+desc.PayloadLength])
	crypto.CryptXorpad(data, desc.PayloadOffset)
	keystream := crypto.NewXorShift32(desc.Key)
	keystream.Skip(headerKeystreamLen(desc.Type))
	keystream.Apply(data)
	return &types.DecryptedBlock{
		Key:     desc.Key,
		Type:    desc.Type,
		SubType: desc.SubType,
		Data:    data,
	}, c.digestOK, nil
}

// WriteBlock re-encrypts plaintext into the block's span and refreshes the
// container digest. Block sizes are fixed: plaintext must match the
// descriptor's payload length exactly. The ciphertext is built off to the
// side and committed with a single copy, so a failed call leaves the
// container byte-for-byte unchanged.
func (c *Container) WriteBlock(desc types.BlockDescriptor, plaintext []byte) error {
	if err := c.commitBlock(desc, plaintext); err != nil {
		return err
	}
	c.RewriteDigest()
	return nil
}

// commitBlock writes the re-encrypted payload without refreshing the digest.
// Repair batches several commits under one digest rewrite.
func (c *Container) commitBlock(desc types.BlockDescriptor, plaintext []byte) error {
	if len(plaintext) != desc.PayloadLength {
		return fmt.Errorf("%w: block %08X: payload is %d bytes, want %d",
			types.ErrValidation, desc.Key, len(plaintext), desc.PayloadLength)
	}
	if err := c.checkSpan(desc); err != nil {
		return err
	}
	ciphertext := bytes.Clone(plaintext)
	keystream := crypto.NewXorShift32(desc.Key)
	keystream.Skip(headerKeystreamLen(desc.Type))
	keystream.Apply(ciphertext)
	crypto.CryptXorpad(ciphertext, desc.PayloadOffset)
	copy(c.raw[desc.PayloadOffset:], ciphertext)
	return nil
}

// checkSpan guards against descriptors that do not belong to this container.
func (c *Container) checkSpan(desc types.BlockDescriptor) error {
	if desc.PayloadOffset < 0 || desc.PayloadLength < 0 ||
		desc.PayloadOffset+desc.PayloadLength > c.DigestOffset() {
		return fmt.Errorf("%w: block %08X: span [%d, %d) lies outside the container payload",
			types.ErrBadFormat, desc.Key, desc.PayloadOffset, desc.PayloadOffset+desc.PayloadLength)
	}
	return nil
}
