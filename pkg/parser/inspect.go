package parser

import (
	"fmt"

	"plaza-lens/pkg/analyzer"
	"plaza-lens/pkg/types"
)

// Inspect assembles the display view of a container: the block directory,
// decoded scalar values, the trainer record when one is present, and
// warnings. It never mutates the container.
func Inspect(c *Container) *types.InspectOutput {
	out := &types.InspectOutput{
		OK:          true,
		SizeBytes:   c.Size(),
		BlockCount:  len(c.directory),
		DigestValid: c.DigestOK(),
		Blocks:      make([]types.BlockInfo, 0, len(c.directory)),
	}

	var trainer *analyzer.CoreData
	for _, desc := range c.directory {
		info := types.BlockInfo{
			Key:    fmt.Sprintf("%08X", desc.Key),
			Type:   desc.Type.String(),
			Offset: desc.Offset,
			Length: desc.PayloadLength,
		}
		if desc.Type == types.TypeArray {
			info.SubType = desc.SubType.String()
		}
		if desc.Type.HasValue() {
			if block, _, err := c.ReadBlock(desc); err == nil {
				if value, err := desc.Type.DecodeValue(block.Data); err == nil {
					info.Value = value
				}
			}
		}
		if desc.Key == types.KeyCoreData && desc.Type == types.TypeObject {
			if block, _, err := c.ReadBlock(desc); err == nil {
				if coreData, err := analyzer.ParseCoreData(block.Data); err == nil {
					trainer = coreData
				}
			}
		}
		out.Blocks = append(out.Blocks, info)
	}

	if trainer != nil {
		out.Trainer = trainerOutput(trainer)
	}
	out.Warnings = analyzer.GenerateWarnings(c.DigestOK(), trainer)
	return out
}

func trainerOutput(coreData *analyzer.CoreData) *types.TrainerOutput {
	return &types.TrainerOutput{
		ID:                    coreData.IDString(),
		Name:                  coreData.Name,
		Gender:                coreData.GenderString(),
		LanguageID:            int(coreData.LanguageID),
		RomCode:               int(coreData.RomCode),
		PlayerIconID:          coreData.PlayerIconID,
		MemberRank:            int(coreData.MemberRank),
		MemberRankExp:         coreData.MemberRankExp,
		NexUniqueID:           coreData.NexUniqueID,
		NexPrincipalRomID:     coreData.NexPrincipalRomID,
		NplnUserID:            coreData.NplnUserIDString(),
		NplnUserIDValid:       coreData.NplnUserIDValid,
		BirthdayMonth:         int(coreData.BirthdayMonth),
		BirthdayDay:           int(coreData.BirthdayDay),
		BirthdaySet:           coreData.BirthdaySet,
		BirthdayEventView:     coreData.BirthdayEventView,
		BirthdayEventViewYear: int(coreData.BirthdayEventViewYear),
		PartnerWalkCount:      int(coreData.PartnerWalkCount),
		EggHatchCount:         coreData.EggHatchCount,
		PlayerHP:              coreData.PlayerHP,
		MegaPower:             coreData.MegaPower,
		MegaEvoTimer:          coreData.MegaEvoTimer,
		IllegalEggChecked:     coreData.IllegalEggChecked,
	}
}
