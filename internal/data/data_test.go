package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSpriteTable(t *testing.T) {
	path := writeFile(t, "sprites.yaml", `
- key: block
  rows: 3
  cols: 4
  value: 7
- key: glyph
  art: |
    #.#
    .#
`)
	tbl, err := LoadSpriteTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())
	assert.Equal(t, []string{"block", "glyph"}, tbl.Keys())
	assert.Nil(t, tbl.Get("missing"))

	block, err := tbl.Get("block").Pixels()
	require.NoError(t, err)
	assert.Equal(t, 12, block.CountNonZero())
	assert.Equal(t, uint8(7), block.At(2, 3))

	glyph, err := tbl.Get("glyph").Pixels()
	require.NoError(t, err)
	assert.Equal(t, 2, glyph.Rows)
	assert.Equal(t, 3, glyph.Cols)
	assert.Equal(t, uint8(0xFF), glyph.At(0, 0))
	assert.Equal(t, uint8(0), glyph.At(0, 1))
	assert.Equal(t, uint8(0xFF), glyph.At(1, 1))
	assert.Equal(t, uint8(0), glyph.At(1, 2), "short lines are padded unlit")
}

func TestSpriteTableErrors(t *testing.T) {
	_, err := LoadSpriteTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadSpriteTable(writeFile(t, "dup.yaml", "- {key: a, rows: 1, cols: 1}\n- {key: a, rows: 1, cols: 1}\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = LoadSpriteTable(writeFile(t, "nokey.yaml", "- {rows: 1, cols: 1}\n"))
	assert.ErrorContains(t, err, "missing key")

	tbl, err := LoadSpriteTable(writeFile(t, "empty.yaml", "- {key: hollow}\n"))
	require.NoError(t, err)
	_, err = tbl.Get("hollow").Pixels()
	assert.Error(t, err)
}

func TestLoadLevelTable(t *testing.T) {
	path := writeFile(t, "levels.yaml", `
- name: square
  entities:
    - sprite: square/30x30
      position: [2, 2]
      controller: knight
      clipped: true
    - sprite: square/30x30
      position: [17, 49]
      oscillate: {axis: col, amplitude: 3, frequency: 2}
- name: word
  title: the word
  script: word.lua
`)
	tbl, err := LoadLevelTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"square", "word"}, tbl.Names())
	assert.Equal(t, 2, tbl.Count())

	sq := tbl.Get("square")
	require.NotNil(t, sq)
	assert.Equal(t, "square", sq.Title, "title defaults to name")
	require.Len(t, sq.Entities, 2)
	assert.Equal(t, [2]float64{2, 2}, sq.Entities[0].Position)
	assert.Equal(t, ControllerKnight, sq.Entities[0].Controller)
	assert.True(t, sq.Entities[0].Clipped)
	assert.Nil(t, sq.Entities[0].Velocity)
	require.NotNil(t, sq.Entities[1].Oscillate)
	assert.Equal(t, 3.0, sq.Entities[1].Oscillate.Amplitude)

	word := tbl.Get("word")
	assert.Equal(t, "the word", word.Title)
	assert.Equal(t, "word.lua", word.Script)
	assert.Empty(t, word.Entities)
}

func TestLevelTableValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", "- {title: x}\n", "missing name"},
		{"duplicate", "- {name: a}\n- {name: a}\n", "duplicate"},
		{"controller", "- name: a\n  entities: [{controller: mouse}]\n", "unknown controller"},
		{"axis", "- name: a\n  entities: [{oscillate: {axis: z}}]\n", "oscillate axis"},
		{"yaml", "- name: [\n", "parse level table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLevelTable(writeFile(t, "levels.yaml", tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
