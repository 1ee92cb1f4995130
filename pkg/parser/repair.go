package parser

import (
	"fmt"

	"plaza-lens/pkg/analyzer"
	"plaza-lens/pkg/types"
)

// Mutation requests trainer-info field changes applied during a repair pass.
// Nil fields are left untouched.
type Mutation struct {
	Name *string
	ID   *string
}

func (m *Mutation) empty() bool {
	return m == nil || (m.Name == nil && m.ID == nil)
}

// Repair walks the directory and re-protects the container. When the stored
// digest is stale every block is decrypted and re-encrypted in place; the
// keystreams are deterministic, so the payload bytes come out identical and
// only the digest moves. With a Mutation the trainer-info block is routed
// through a write regardless of the container's prior state.
//
// Field validation happens before anything is written: on error the
// container is byte-for-byte what it was. A consistent container with no
// mutation is left completely untouched.
func Repair(c *Container, mutation *Mutation) (*types.RepairOutput, error) {
	digestWasValid := c.DigestOK()

	// Prepare the mutated trainer payload off to the side first.
	var (
		trainerDesc    types.BlockDescriptor
		trainerPayload []byte
	)
	if !mutation.empty() {
		desc, found := c.BlockByKey(types.KeyCoreData)
		if !found {
			return nil, fmt.Errorf("%w: container has no trainer-info block (key %08X)",
				types.ErrBadFormat, types.KeyCoreData)
		}
		block, _, err := c.ReadBlock(desc)
		if err != nil {
			return nil, err
		}
		payload := block.Data
		if mutation.Name != nil {
			if payload, err = analyzer.SetName(payload, *mutation.Name); err != nil {
				return nil, err
			}
		}
		if mutation.ID != nil {
			if payload, err = analyzer.SetID(payload, *mutation.ID); err != nil {
				return nil, err
			}
		}
		trainerDesc, trainerPayload = desc, payload
	}

	out := &types.RepairOutput{
		OK:                true,
		SizeBytes:         c.Size(),
		BlockCount:        len(c.directory),
		DigestValidBefore: digestWasValid,
		Blocks:            make([]types.BlockReport, 0, len(c.directory)),
	}

	for _, desc := range c.directory {
		repaired := !digestWasValid
		if repaired {
			block, _, err := c.ReadBlock(desc)
			if err != nil {
				return nil, err
			}
			if err := c.commitBlock(desc, block.Data); err != nil {
				return nil, fmt.Errorf("%w: block %08X: %v", types.ErrUnrepairable, desc.Key, err)
			}
			out.RepairedCount++
		}
		out.Blocks = append(out.Blocks, types.BlockReport{
			Key:      fmt.Sprintf("%08X", desc.Key),
			Type:     desc.Type.String(),
			Repaired: repaired,
		})
	}

	if trainerPayload != nil {
		if err := c.commitBlock(trainerDesc, trainerPayload); err != nil {
			return nil, err
		}
		out.Modified = true
		for i, desc := range c.directory {
			if desc.Offset == trainerDesc.Offset {
				out.Blocks[i].Modified = true
				break
			}
		}
	}

	if !digestWasValid || out.Modified {
		c.RewriteDigest()
	}
	out.DigestRepaired = !digestWasValid
	return out, nil
}
