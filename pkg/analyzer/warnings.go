package analyzer

import "plaza-lens/pkg/types"

// GenerateWarnings creates the warning array for an inspected container.
// Trainer warnings only apply when a trainer-info block was decoded.
func GenerateWarnings(digestValid bool, trainer *CoreData) []types.Warning {
	warnings := make([]types.Warning, 0)

	// DIGEST_MISMATCH: the stored digest does not cover the current payload
	if !digestValid {
		warnings = append(warnings, types.Warning{Code: "DIGEST_MISMATCH"})
	}

	if trainer != nil {
		// TRAINER_NAME_EMPTY: the name field decodes to zero characters
		if trainer.Name == "" {
			warnings = append(warnings, types.Warning{Code: "TRAINER_NAME_EMPTY"})
		}

		// BIRTHDAY_UNSET: the birthday was never set in-game
		if !trainer.BirthdaySet {
			warnings = append(warnings, types.Warning{Code: "BIRTHDAY_UNSET"})
		}
	}

	return warnings
}
