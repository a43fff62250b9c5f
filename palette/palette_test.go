package palette

import (
	"errors"
	"testing"

	"github.com/mmuldo/seasonmatch/colorspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()

	require.Len(t, p, 9)
	assert.Equal(t, []string{
		"Soft Summer",
		"Cool Summer",
		"Light Summer",
		"Bright Winter",
		"Deep Winter",
		"Soft Autumn",
		"Warm Autumn",
		"Light Spring",
		"Bright Spring",
	}, p.Names())

	for _, s := range p {
		assert.Len(t, s.Swatches, 8, "season %s", s.Name)
	}
	assert.NoError(t, p.Validate())
}

func TestDefaultIsACopy(t *testing.T) {
	p := Default()
	p[0].Name = "Mutated"
	p[0].Swatches[0] = "#000000"

	fresh := Default()
	assert.Equal(t, "Soft Summer", fresh[0].Name)
	assert.Equal(t, "#8aa3b5", fresh[0].Swatches[0])
}

func TestGet(t *testing.T) {
	p := Default()

	swatches, ok := p.Get("Deep Winter")
	require.True(t, ok)
	assert.Equal(t, "#1b365d", swatches[0])

	_, ok = p.Get("Mild Monsoon")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	p := Palette{
		{Name: "Fine", Swatches: []string{"#abc", "8aa3b5"}},
		{Name: "Broken", Swatches: []string{"#1b365d", "zzz"}},
	}

	e := p.Validate()
	require.Error(t, e)
	assert.Contains(t, e.Error(), "Broken")
	assert.True(t, errors.Is(e, colorspace.ErrInvalidColorFormat))
}

func TestUpsert(t *testing.T) {
	var p Palette
	p = upsert(p, "A", []string{"#111111"})
	p = upsert(p, "B", []string{"#222222"})
	p = upsert(p, "A", []string{"#333333"})

	require.Equal(t, []string{"A", "B"}, p.Names())
	swatches, _ := p.Get("A")
	assert.Equal(t, []string{"#333333"}, swatches)
}
