package utils

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ReadU32LE reads a little-endian uint32 from data at offset, checking bounds.
func ReadU32LE(data []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, fmt.Errorf("read u32 at offset %d: out of bounds (len %d)", offset, len(data))
	}
	return binary.LittleEndian.Uint32(data[offset:]), nil
}

// HexToBytes converts a hex string to bytes with validation
func HexToBytes(hexStr string) ([]byte, error) {
	if len(hexStr)%2 != 0 {
		return nil, errors.New("invalid hex string: odd length")
	}
	return hex.DecodeString(hexStr)
}

// DeriveOutputPath builds the default output path for a processed save: the
// input path with suffix appended to the stem, extension preserved
// ("saves/main.bin" + "_repaired" -> "saves/main_repaired.bin").
func DeriveOutputPath(inputPath, suffix string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}
