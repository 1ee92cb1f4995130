package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectSaveFixture(t *testing.T) {
	c := openFixture(t, saveHex)
	out := Inspect(c)

	assert.True(t, out.OK)
	assert.Equal(t, 296, out.SizeBytes)
	assert.Equal(t, 7, out.BlockCount)
	assert.True(t, out.DigestValid)
	assert.Empty(t, out.Warnings)
	require.Len(t, out.Blocks, 7)

	// Scalar blocks carry their decoded value.
	assert.Equal(t, "B34B4BEF", out.Blocks[2].Key)
	assert.Equal(t, "uint32", out.Blocks[2].Type)
	assert.Equal(t, uint32(56789), out.Blocks[2].Value)
	assert.Equal(t, uint64(123456), out.Blocks[0].Value)

	// Composite blocks do not.
	assert.Equal(t, "object", out.Blocks[1].Type)
	assert.Nil(t, out.Blocks[1].Value)
	assert.Equal(t, "array", out.Blocks[3].Type)
	assert.Equal(t, "bool", out.Blocks[3].SubType)
	assert.Nil(t, out.Blocks[3].Value)
	assert.Equal(t, "bool-true", out.Blocks[4].Type)

	require.NotNil(t, out.Trainer)
	assert.Equal(t, "Aurora", out.Trainer.Name)
	assert.Equal(t, "0000000042", out.Trainer.ID)
	assert.Equal(t, "FEMALE", out.Trainer.Gender)
	assert.Equal(t, 3, out.Trainer.MemberRank)
	assert.Equal(t, uint32(1500), out.Trainer.MemberRankExp)
	assert.Equal(t, "npln-user-0001", out.Trainer.NplnUserID)
	assert.Equal(t, 7, out.Trainer.BirthdayMonth)
	assert.Equal(t, 15, out.Trainer.BirthdayDay)
}

func TestInspectStaleDigest(t *testing.T) {
	c, err := Open(mustHex(t, saveCorruptHex))
	require.NoError(t, err)
	out := Inspect(c)

	assert.True(t, out.OK)
	assert.False(t, out.DigestValid)

	codes := make([]string, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, "DIGEST_MISMATCH")

	// The trainer record still decodes; display tooling decides what to do
	// with an inconsistent container, not the codec.
	require.NotNil(t, out.Trainer)
	assert.Equal(t, "Aurora", out.Trainer.Name)
}

func TestInspectWithoutTrainerBlock(t *testing.T) {
	c := openFixture(t, smallHex)
	out := Inspect(c)

	assert.True(t, out.OK)
	assert.Equal(t, 4, out.BlockCount)
	assert.Nil(t, out.Trainer)
	assert.Empty(t, out.Warnings)

	assert.Equal(t, "464970DF", out.Blocks[0].Key)
	assert.Equal(t, uint32(7), out.Blocks[1].Value)
	assert.Equal(t, "uint16", out.Blocks[2].SubType)
	assert.Equal(t, "bool-false", out.Blocks[3].Type)
}

func TestInspectDoesNotMutate(t *testing.T) {
	c := openFixture(t, saveHex)
	Inspect(c)
	assert.Equal(t, mustHex(t, saveHex), c.Bytes())
}
