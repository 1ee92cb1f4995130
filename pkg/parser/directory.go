package parser

import (
	"fmt"

	"plaza-lens/pkg/crypto"
	"plaza-lens/pkg/types"
	"plaza-lens/pkg/utils"
)

// Block stream layout (integers little-endian):
//
//	4 bytes: block key, plaintext
//	1 byte:  type code ^ keystream
//	object blocks:  4 bytes payload length ^ keystream, then payload
//	array blocks:   4 bytes element count ^ keystream,
//	                1 byte element type ^ keystream, then payload
//	scalar blocks:  payload of the type's fixed width
//	boolean blocks: no payload, the type code itself carries the value
//
// Payload bytes stay XORed with the keystream until a block is read through
// the accessor; the walk only decrypts the header fields it needs.
func parseDirectory(payload []byte) ([]types.BlockDescriptor, error) {
	descriptors := make([]types.BlockDescriptor, 0)
	offset := 0
	for offset < len(payload) {
		desc, next, err := parseDescriptor(payload, offset)
		if err != nil {
			return nil, fmt.Errorf("block %d at offset 0x%X: %w", len(descriptors), offset, err)
		}
		descriptors = append(descriptors, desc)
		offset = next
	}
	return descriptors, nil
}

// parseDescriptor decodes one block header at offset and returns its
// descriptor plus the offset of the next block.
func parseDescriptor(payload []byte, offset int) (types.BlockDescriptor, int, error) {
	var desc types.BlockDescriptor

	key, err := utils.ReadU32LE(payload, offset)
	if err != nil {
		return desc, 0, fmt.Errorf("%w: truncated block key", types.ErrBadFormat)
	}
	keystream := crypto.NewXorShift32(key)

	typeOffset := offset + 4
	if typeOffset >= len(payload) {
		return desc, 0, fmt.Errorf("%w: block %08X: truncated type code", types.ErrBadFormat, key)
	}
	blockType := types.TypeCode(payload[typeOffset] ^ keystream.Next())

	desc.Key = key
	desc.Type = blockType
	desc.Offset = offset
	cursor := typeOffset + 1

	switch {
	case blockType.IsBoolean():
		desc.PayloadOffset = cursor
		return desc, cursor, nil

	case blockType == types.TypeObject:
		stored, err := utils.ReadU32LE(payload, cursor)
		if err != nil {
			return desc, 0, fmt.Errorf("%w: block %08X: truncated object length", types.ErrBadFormat, key)
		}
		length := int64(stored ^ keystream.Next32())
		cursor += 4
		if int64(cursor)+length > int64(len(payload)) {
			return desc, 0, fmt.Errorf("%w: block %08X: object payload of %d bytes overruns container",
				types.ErrBadFormat, key, length)
		}
		desc.PayloadOffset = cursor
		desc.PayloadLength = int(length)
		return desc, cursor + int(length), nil

	case blockType == types.TypeArray:
		stored, err := utils.ReadU32LE(payload, cursor)
		if err != nil {
			return desc, 0, fmt.Errorf("%w: block %08X: truncated array count", types.ErrBadFormat, key)
		}
		count := stored ^ keystream.Next32()
		cursor += 4
		if cursor >= len(payload) {
			return desc, 0, fmt.Errorf("%w: block %08X: truncated array element type", types.ErrBadFormat, key)
		}
		subType := types.TypeCode(payload[cursor] ^ keystream.Next())
		cursor++
		elemSize, ok := subType.Size()
		if !ok {
			return desc, 0, fmt.Errorf("%w: block %08X: array element type %s has no fixed size",
				types.ErrBadFormat, key, subType)
		}
		length := int64(count) * int64(elemSize)
		if int64(cursor)+length > int64(len(payload)) {
			return desc, 0, fmt.Errorf("%w: block %08X: array payload of %d bytes overruns container",
				types.ErrBadFormat, key, length)
		}
		desc.SubType = subType
		desc.PayloadOffset = cursor
		desc.PayloadLength = int(length)
		return desc, cursor + int(length), nil

	default:
		elemSize, ok := blockType.Size()
		if !ok {
			return desc, 0, fmt.Errorf("%w: block %08X: invalid type code 0x%02X",
				types.ErrBadFormat, key, byte(blockType))
		}
		if cursor+elemSize > len(payload) {
			return desc, 0, fmt.Errorf("%w: block %08X: %s payload overruns container",
				types.ErrBadFormat, key, blockType)
		}
		desc.PayloadOffset = cursor
		desc.PayloadLength = elemSize
		return desc, cursor + elemSize, nil
	}
}
