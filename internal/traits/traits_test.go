package traits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullToken(id string) TokenMetadata {
	return TokenMetadata{
		TokenID: id,
		Attributes: []Attribute{
			{TraitType: "Speed", Value: 62.0},
			{TraitType: "Stamina", Value: "48"},
			{TraitType: "Accel", Value: 55.0},
			{TraitType: "Agility", Value: 41.0},
			{TraitType: "Heart", Value: 59.0},
			{TraitType: "Focus", Value: 37.0},
			{TraitType: "Rarity", Value: "Epic"},
			{TraitType: "Coat", Value: "Midnight"},
		},
	}
}

func TestDeriveBase(t *testing.T) {
	b := DeriveBase(fullToken("tok-1"))
	require.NotNil(t, b)
	assert.Equal(t, 62.0, b.Speed)
	assert.Equal(t, 48.0, b.Stamina, "string-typed numeric traits parse")
	assert.Equal(t, 37.0, b.Focus)
}

func TestDeriveBaseMalformed(t *testing.T) {
	missing := fullToken("tok-2")
	missing.Attributes = missing.Attributes[:4]
	assert.Nil(t, DeriveBase(missing), "missing stat traits yield nil")

	garbage := fullToken("tok-3")
	garbage.Attributes[0].Value = "fast"
	assert.Nil(t, DeriveBase(garbage), "non-numeric stat trait yields nil")

	negative := fullToken("tok-4")
	negative.Attributes[0].Value = -3.0
	assert.Nil(t, DeriveBase(negative))
}

func TestDeriveAllSkipsBadTokens(t *testing.T) {
	src := NewSource()
	bad := fullToken("tok-bad")
	bad.Attributes[2].Value = map[string]any{"weird": true}
	src.Replace([]TokenMetadata{fullToken("tok-a"), bad, fullToken("tok-b")})

	all := src.DeriveAll()
	assert.Len(t, all, 2)
	assert.Contains(t, all, "tok-a")
	assert.Contains(t, all, "tok-b")
	assert.NotContains(t, all, "tok-bad")
}

func TestSourceLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.json")
	payload := `[
		{"token_id": "tok-9", "attributes": [
			{"trait_type": "speed", "value": 70},
			{"trait_type": "stamina", "value": 30},
			{"trait_type": "accel", "value": 44},
			{"trait_type": "agility", "value": 52},
			{"trait_type": "heart", "value": 61},
			{"trait_type": "focus", "value": 28},
			{"trait_type": "rarity", "value": "legendary"}
		]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	src := NewSource()
	require.NoError(t, src.LoadFile(path))

	b := src.BaseStats("tok-9")
	require.NotNil(t, b)
	assert.Equal(t, 70.0, b.Speed)
	assert.Nil(t, src.BaseStats("tok-unknown"))

	meta, ok := src.Token("tok-9")
	require.True(t, ok)
	r, ok := Rarity(meta)
	require.True(t, ok)
	assert.Equal(t, RarityLegendary, r)
}

func TestRarityUnknown(t *testing.T) {
	meta := fullToken("tok-5")
	meta.Attributes[6].Value = "mythic"
	_, ok := Rarity(meta)
	assert.False(t, ok)

	meta.Attributes = meta.Attributes[:6]
	_, ok = Rarity(meta)
	assert.False(t, ok)
}

func TestReplaceRefreshesDataset(t *testing.T) {
	src := NewSource()
	src.Replace([]TokenMetadata{fullToken("tok-a")})
	_, ok := src.Token("tok-a")
	require.True(t, ok)

	src.Replace([]TokenMetadata{fullToken("tok-b")})
	_, ok = src.Token("tok-a")
	assert.False(t, ok, "replace swaps the whole dataset")
	_, ok = src.Token("tok-b")
	assert.True(t, ok)
}
