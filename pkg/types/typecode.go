package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TypeCode identifies the kind of data a block stores. The save format
// encodes it as a single byte, XORed with the block's keystream.
type TypeCode byte

const (
	TypeNone      TypeCode = 0
	TypeBoolFalse TypeCode = 1 // boolean stored as false, no payload
	TypeBoolTrue  TypeCode = 2 // boolean stored as true, no payload
	TypeBoolArray TypeCode = 3 // boolean used as an array element type
	TypeObject    TypeCode = 4
	TypeArray     TypeCode = 5
	TypeUint8     TypeCode = 8
	TypeUint16    TypeCode = 9
	TypeUint32    TypeCode = 10
	TypeUint64    TypeCode = 11
	TypeInt8      TypeCode = 12
	TypeInt16     TypeCode = 13
	TypeInt32     TypeCode = 14
	TypeInt64     TypeCode = 15
	TypeFloat32   TypeCode = 16
	TypeFloat64   TypeCode = 17
)

// IsBoolean reports whether the code is one of the three boolean variants.
// Boolean blocks carry their value in the type code itself and have no
// payload bytes.
func (t TypeCode) IsBoolean() bool {
	return t >= TypeBoolFalse && t <= TypeBoolArray
}

// Size returns the fixed byte width of a value of this type. It reports
// false for codes without a fixed width (none, object, array) and for
// unassigned codes.
func (t TypeCode) Size() (int, bool) {
	switch t {
	case TypeBoolArray, TypeUint8, TypeInt8:
		return 1, true
	case TypeUint16, TypeInt16:
		return 2, true
	case TypeUint32, TypeInt32, TypeFloat32:
		return 4, true
	case TypeUint64, TypeInt64, TypeFloat64:
		return 8, true
	}
	return 0, false
}

// HasValue reports whether a block of this type holds a single decodable
// scalar value.
func (t TypeCode) HasValue() bool {
	_, ok := t.Size()
	return ok && t > TypeArray
}

// DecodeValue decodes a scalar block payload (little-endian) into its
// natural Go representation.
func (t TypeCode) DecodeValue(data []byte) (any, error) {
	size, ok := t.Size()
	if !ok || !t.HasValue() {
		return nil, fmt.Errorf("type %s does not hold a single value", t)
	}
	if len(data) < size {
		return nil, fmt.Errorf("type %s needs %d bytes, have %d", t, size, len(data))
	}
	switch t {
	case TypeUint8:
		return data[0], nil
	case TypeUint16:
		return binary.LittleEndian.Uint16(data), nil
	case TypeUint32:
		return binary.LittleEndian.Uint32(data), nil
	case TypeUint64:
		return binary.LittleEndian.Uint64(data), nil
	case TypeInt8:
		return int8(data[0]), nil
	case TypeInt16:
		return int16(binary.LittleEndian.Uint16(data)), nil
	case TypeInt32:
		return int32(binary.LittleEndian.Uint32(data)), nil
	case TypeInt64:
		return int64(binary.LittleEndian.Uint64(data)), nil
	case TypeFloat32:
		return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
	case TypeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
	}
	return nil, fmt.Errorf("type %s does not hold a single value", t)
}

func (t TypeCode) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeBoolFalse:
		return "bool-false"
	case TypeBoolTrue:
		return "bool-true"
	case TypeBoolArray:
		return "bool"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}
