package types

// Block keys are FNV-1a-32 hashes of record names assigned by the game.
// Only the blocks this tool decodes get a named constant.
const (
	// KeyCoreData identifies the trainer-info block ("CoreData").
	KeyCoreData uint32 = 0xEE73F55E
)
