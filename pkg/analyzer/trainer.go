package analyzer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"plaza-lens/pkg/types"
)

// Trainer-info record layout (120 bytes, integers little-endian):
//
//	0x00  u32    trainer ID, displayed as a 10-digit zero-padded decimal
//	0x04  u8     ROM code
//	0x05  u8     gender (0 = male, 1 = female)
//	0x06  u8     padding
//	0x07  u8     language ID
//	0x08  u64    NEX unique ID
//	0x10  13*u16 trainer name, UTF-16LE, 12 characters plus terminator
//	0x2A  u32    player icon ID
//	0x2E  u64    NEX principal ROM ID
//	0x36  u32    member rank (low 8 bits) | member rank EXP (high 24 bits)
//	0x3A  29B    NPLN user ID
//	0x57  u8     NPLN user ID valid flag
//	0x58  u8     birthday month
//	0x59  u8     birthday day
//	0x5A  u16    partner walk count
//	0x5C  5B     padding
//	0x61  u8     illegal-egg check flag (added in ver. 1.2.0)
//	0x62  u32    egg hatch count
//	0x66  f32    mega power
//	0x6A  f32    mega evolution timer
//	0x6E  u32    player HP
//	0x72  u8     birthday set flag
//	0x73  u8     birthday event viewed flag
//	0x74  u16    birthday event view year
//	0x76  2B     padding
const (
	CoreDataSize = 120

	offTrainerID    = 0x00
	offRomCode      = 0x04
	offGender       = 0x05
	offLanguage     = 0x07
	offNexUniqueID  = 0x08
	offName         = 0x10
	offPlayerIconID = 0x2A
	offNexPrincipal = 0x2E
	offRankPacked   = 0x36
	offNplnUserID   = 0x3A
	offNplnValid    = 0x57
	offBirthMonth   = 0x58
	offBirthDay     = 0x59
	offWalkCount    = 0x5A
	offIllegalEgg   = 0x61
	offEggHatch     = 0x62
	offMegaPower    = 0x66
	offMegaTimer    = 0x6A
	offPlayerHP     = 0x6E
	offBirthSet     = 0x72
	offBirthView    = 0x73
	offBirthYear    = 0x74

	// The name field holds 13 UTF-16LE code units; the final unit stays
	// zero so the game always finds a terminator.
	nameUnits    = 13
	nameCapacity = nameUnits - 1

	// The trainer ID renders as a fixed-width decimal string.
	idDigits = 10

	nplnUserIDLen = 29
)

// Gender values stored in the gender field.
const (
	GenderMale   = 0
	GenderFemale = 1
)

// CoreData is the decoded trainer-info record.
type CoreData struct {
	TrainerID             uint32
	RomCode               uint8
	Gender                uint8
	LanguageID            uint8
	NexUniqueID           uint64
	Name                  string
	PlayerIconID          uint32
	NexPrincipalRomID     uint64
	MemberRank            uint8
	MemberRankExp         uint32
	NplnUserID            [nplnUserIDLen]byte
	NplnUserIDValid       bool
	BirthdayMonth         uint8
	BirthdayDay           uint8
	PartnerWalkCount      uint16
	IllegalEggChecked     bool
	EggHatchCount         uint32
	MegaPower             float32
	MegaEvoTimer          float32
	PlayerHP              uint32
	BirthdaySet           bool
	BirthdayEventView     bool
	BirthdayEventViewYear uint16
}

// ParseCoreData decodes a trainer-info block payload.
func ParseCoreData(payload []byte) (*CoreData, error) {
	if err := checkCorePayload(payload); err != nil {
		return nil, err
	}
	packedRank := binary.LittleEndian.Uint32(payload[offRankPacked:])
	coreData := &CoreData{
		TrainerID:             binary.LittleEndian.Uint32(payload[offTrainerID:]),
		RomCode:               payload[offRomCode],
		Gender:                payload[offGender],
		LanguageID:            payload[offLanguage],
		NexUniqueID:           binary.LittleEndian.Uint64(payload[offNexUniqueID:]),
		Name:                  decodeName(payload),
		PlayerIconID:          binary.LittleEndian.Uint32(payload[offPlayerIconID:]),
		NexPrincipalRomID:     binary.LittleEndian.Uint64(payload[offNexPrincipal:]),
		MemberRank:            uint8(packedRank & 0xFF),
		MemberRankExp:         (packedRank >> 8) & 0xFFFFFF,
		NplnUserIDValid:       payload[offNplnValid] != 0,
		BirthdayMonth:         payload[offBirthMonth],
		BirthdayDay:           payload[offBirthDay],
		PartnerWalkCount:      binary.LittleEndian.Uint16(payload[offWalkCount:]),
		IllegalEggChecked:     payload[offIllegalEgg] != 0,
		EggHatchCount:         binary.LittleEndian.Uint32(payload[offEggHatch:]),
		MegaPower:             math.Float32frombits(binary.LittleEndian.Uint32(payload[offMegaPower:])),
		MegaEvoTimer:          math.Float32frombits(binary.LittleEndian.Uint32(payload[offMegaTimer:])),
		PlayerHP:              binary.LittleEndian.Uint32(payload[offPlayerHP:]),
		BirthdaySet:           payload[offBirthSet] != 0,
		BirthdayEventView:     payload[offBirthView] != 0,
		BirthdayEventViewYear: binary.LittleEndian.Uint16(payload[offBirthYear:]),
	}
	copy(coreData.NplnUserID[:], payload[offNplnUserID:offNplnUserID+nplnUserIDLen])
	return coreData, nil
}

// IDString returns the trainer ID as a 10-digit zero-padded decimal string.
func (c *CoreData) IDString() string {
	return fmt.Sprintf("%010d", c.TrainerID)
}

// GenderString returns the display form of the gender field.
func (c *CoreData) GenderString() string {
	switch c.Gender {
	case GenderMale:
		return "MALE"
	case GenderFemale:
		return "FEMALE"
	}
	return fmt.Sprintf("UNKNOWN(%d)", c.Gender)
}

// NplnUserIDString returns the NPLN user ID with trailing NULs stripped.
func (c *CoreData) NplnUserIDString() string {
	return strings.TrimRight(string(c.NplnUserID[:]), "\x00")
}

// GetName decodes the trainer name from a trainer-info payload.
func GetName(payload []byte) (string, error) {
	if err := checkCorePayload(payload); err != nil {
		return "", err
	}
	return decodeName(payload), nil
}

// GetID returns the trainer ID from a trainer-info payload, rendered as a
// fixed-width decimal string with leading zeros ("0000000042").
func GetID(payload []byte) (string, error) {
	if err := checkCorePayload(payload); err != nil {
		return "", err
	}
	return fmt.Sprintf("%010d", binary.LittleEndian.Uint32(payload[offTrainerID:])), nil
}

// SetName returns a copy of payload with the name field replaced. The name
// must fit in 12 UTF-16 code units and may not contain NUL runes; the rest
// of the field is zero-filled. payload itself is never modified.
func SetName(payload []byte, name string) ([]byte, error) {
	if err := checkCorePayload(payload); err != nil {
		return nil, err
	}
	units := utf16.Encode([]rune(name))
	if len(units) > nameCapacity {
		return nil, fmt.Errorf("%w: name %q needs %d UTF-16 units, the field holds %d",
			types.ErrValidation, name, len(units), nameCapacity)
	}
	for _, unit := range units {
		if unit == 0 {
			return nil, fmt.Errorf("%w: name must not contain NUL characters", types.ErrValidation)
		}
	}
	out := bytes.Clone(payload)
	for i := 0; i < nameUnits; i++ {
		var unit uint16
		if i < len(units) {
			unit = units[i]
		}
		binary.LittleEndian.PutUint16(out[offName+2*i:], unit)
	}
	return out, nil
}

// SetID returns a copy of payload with the trainer ID replaced. id must be
// 1 to 10 decimal digits and fit in 32 bits; shorter inputs gain leading
// zeros. payload itself is never modified.
func SetID(payload []byte, id string) ([]byte, error) {
	if err := checkCorePayload(payload); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: trainer ID is empty", types.ErrValidation)
	}
	if len(id) > idDigits {
		return nil, fmt.Errorf("%w: trainer ID %q is longer than %d digits", types.ErrValidation, id, idDigits)
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: trainer ID %q contains a non-digit character", types.ErrValidation, id)
		}
	}
	value, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: trainer ID %s does not fit in 32 bits", types.ErrValidation, id)
	}
	out := bytes.Clone(payload)
	binary.LittleEndian.PutUint32(out[offTrainerID:], uint32(value))
	return out, nil
}

func decodeName(payload []byte) string {
	units := make([]uint16, 0, nameUnits)
	for i := 0; i < nameUnits; i++ {
		unit := binary.LittleEndian.Uint16(payload[offName+2*i:])
		if unit == 0 {
			break
		}
		units = append(units, unit)
	}
	return string(utf16.Decode(units))
}

func checkCorePayload(payload []byte) error {
	if len(payload) != CoreDataSize {
		return fmt.Errorf("%w: trainer block payload is %d bytes, want %d",
			types.ErrBadFormat, len(payload), CoreDataSize)
	}
	return nil
}
