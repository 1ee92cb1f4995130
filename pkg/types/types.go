package types

// BlockDescriptor locates one block inside a save container. Offsets are
// relative to the start of the container, which is also the start of the
// encrypted payload.
type BlockDescriptor struct {
	Key           uint32   // FNV-1a-32 hash of the block's record name
	Type          TypeCode
	SubType       TypeCode // element type when Type is TypeArray
	Offset        int      // offset of the block's key field
	PayloadOffset int      // offset of the first payload byte
	PayloadLength int      // payload byte count; zero for boolean blocks
}

// DecryptedBlock is an owned plaintext copy of one block's payload. Mutating
// Data never touches the container it was read from.
type DecryptedBlock struct {
	Key     uint32
	Type    TypeCode
	SubType TypeCode
	Data    []byte
}

// Warning represents a non-fatal observation about a container
type Warning struct {
	Code string `json:"code"`
}

// ErrorInfo represents a fatal error with structured information
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BlockInfo is the display form of one directory entry
type BlockInfo struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	SubType string `json:"sub_type,omitempty"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Value   any    `json:"value,omitempty"`
}

// TrainerOutput is the decoded trainer-info record in display form. The ID
// keeps its fixed-width decimal rendering, leading zeros included.
type TrainerOutput struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Gender                string  `json:"gender"`
	LanguageID            int     `json:"language_id"`
	RomCode               int     `json:"rom_code"`
	PlayerIconID          uint32  `json:"player_icon_id"`
	MemberRank            int     `json:"member_rank"`
	MemberRankExp         uint32  `json:"member_rank_exp"`
	NexUniqueID           uint64  `json:"nex_unique_id"`
	NexPrincipalRomID     uint64  `json:"nex_principal_rom_id"`
	NplnUserID            string  `json:"npln_user_id,omitempty"`
	NplnUserIDValid       bool    `json:"npln_user_id_valid"`
	BirthdayMonth         int     `json:"birthday_month"`
	BirthdayDay           int     `json:"birthday_day"`
	BirthdaySet           bool    `json:"birthday_set"`
	BirthdayEventView     bool    `json:"birthday_event_view"`
	BirthdayEventViewYear int     `json:"birthday_event_view_year"`
	PartnerWalkCount      int     `json:"partner_walk_count"`
	EggHatchCount         uint32  `json:"egg_hatch_count"`
	PlayerHP              uint32  `json:"player_hp"`
	MegaPower             float32 `json:"mega_power"`
	MegaEvoTimer          float32 `json:"mega_evo_timer"`
	IllegalEggChecked     bool    `json:"illegal_egg_checked"`
}

// InspectOutput is the complete analysis result for one container
type InspectOutput struct {
	OK          bool           `json:"ok"`
	SizeBytes   int            `json:"size_bytes"`
	BlockCount  int            `json:"block_count"`
	DigestValid bool           `json:"digest_valid"`
	Blocks      []BlockInfo    `json:"blocks"`
	Trainer     *TrainerOutput `json:"trainer,omitempty"`
	Warnings    []Warning      `json:"warnings"`
	Error       *ErrorInfo     `json:"error,omitempty"`
}

// BlockReport records what a repair pass did to one block
type BlockReport struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Repaired bool   `json:"repaired"`
	Modified bool   `json:"modified,omitempty"`
}

// RepairOutput is the result of a repair pass over one container
type RepairOutput struct {
	OK                bool          `json:"ok"`
	SizeBytes         int           `json:"size_bytes"`
	BlockCount        int           `json:"block_count"`
	DigestValidBefore bool          `json:"digest_valid_before"`
	DigestRepaired    bool          `json:"digest_repaired"`
	RepairedCount     int           `json:"repaired_count"`
	Modified          bool          `json:"modified"`
	Blocks            []BlockReport `json:"blocks"`
	Error             *ErrorInfo    `json:"error,omitempty"`
}
