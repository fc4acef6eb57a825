package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice/internal/diagfmt"
	"lattice/internal/parser"
)

func TestDumpTreeJSON(t *testing.T) {
	file := parser.Parse("fn f() {")
	var buf bytes.Buffer
	require.NoError(t, diagfmt.DumpTreeJSON(&buf, file.Syntax()))

	var got diagfmt.TreeJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.NotNil(t, got.Root)
	assert.Equal(t, "SOURCE_FILE", got.Root.Kind)
	assert.Equal(t, [2]uint32{0, 8}, got.Root.Range)
	require.Len(t, got.Root.Children, 1)

	fn := got.Root.Children[0]
	assert.Equal(t, "FN_DEF", fn.Kind)
	assert.Equal(t, "fn", fn.Children[0].Text)
	assert.Empty(t, fn.Text, "composite nodes carry no text")

	require.Len(t, got.Errors, 1)
	assert.Equal(t, "expected R_CURLY", got.Errors[0].Message)
	assert.Equal(t, uint32(8), got.Errors[0].Offset)
	assert.Equal(t, "SYN2007", got.Errors[0].Code)
}
