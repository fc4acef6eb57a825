package testkit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lattice/internal/diag"
	"lattice/internal/parser"
	"lattice/internal/syntax"
	"lattice/internal/testkit"
)

func buildTree(text string, build func(b *syntax.Builder)) syntax.Node {
	b := syntax.NewBuilder(text)
	build(b)
	return b.Finish().Root()
}

func TestBlockStructure_PairedSiblings(t *testing.T) {
	root := buildTree("{}", func(b *syntax.Builder) {
		b.StartNode(syntax.SourceFile)
		b.StartNode(syntax.Block)
		b.Token(syntax.LCurly, 1)
		b.Token(syntax.RCurly, 1)
		b.FinishNode()
		b.FinishNode()
	})

	require.NoError(t, testkit.CheckBlockStructure(root))
	assert.NotPanics(t, func() { testkit.ValidateBlockStructure(root) })
}

func TestBlockStructure_DifferentParents(t *testing.T) {
	root := buildTree("{}", func(b *syntax.Builder) {
		b.StartNode(syntax.SourceFile)
		b.StartNode(syntax.Block)
		b.Token(syntax.LCurly, 1)
		b.FinishNode()
		b.StartNode(syntax.Error)
		b.Token(syntax.RCurly, 1)
		b.FinishNode()
		b.FinishNode()
	})

	err := testkit.CheckBlockStructure(root)
	require.Error(t, err)

	var inv *testkit.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, diag.InvBlockStructure, inv.Code)
	assert.Equal(t, syntax.RCurly, inv.Node.Kind())
	assert.Contains(t, inv.Message, "unpaired curlies")
	// full text and the structural dump
	assert.Contains(t, inv.Message, "\n{}\n")
	assert.Contains(t, inv.Message, "ERROR@[1; 2)")

	assert.Panics(t, func() { testkit.ValidateBlockStructure(root) })
}

func TestBlockStructure_FloatingCurlies(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		build func(b *syntax.Builder)
	}{
		{
			name: "sibling before open",
			text: "x{}",
			build: func(b *syntax.Builder) {
				b.StartNode(syntax.SourceFile)
				b.StartNode(syntax.Block)
				b.Token(syntax.Ident, 1)
				b.Token(syntax.LCurly, 1)
				b.Token(syntax.RCurly, 1)
				b.FinishNode()
				b.FinishNode()
			},
		},
		{
			name: "sibling after close",
			text: "{}x",
			build: func(b *syntax.Builder) {
				b.StartNode(syntax.SourceFile)
				b.StartNode(syntax.Block)
				b.Token(syntax.LCurly, 1)
				b.Token(syntax.RCurly, 1)
				b.Token(syntax.Ident, 1)
				b.FinishNode()
				b.FinishNode()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testkit.CheckBlockStructure(buildTree(tt.text, tt.build))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "floating curlies")
			assert.Contains(t, err.Error(), tt.text)
		})
	}
}

func TestBlockStructure_UnmatchedCloseIgnored(t *testing.T) {
	root := buildTree("}", func(b *syntax.Builder) {
		b.StartNode(syntax.SourceFile)
		b.StartNode(syntax.Error)
		b.Token(syntax.RCurly, 1)
		b.FinishNode()
		b.FinishNode()
	})
	assert.NoError(t, testkit.CheckBlockStructure(root))
}

func TestBlockStructure_Nested(t *testing.T) {
	root := buildTree("{{}}", func(b *syntax.Builder) {
		b.StartNode(syntax.SourceFile)
		b.StartNode(syntax.Block)
		b.Token(syntax.LCurly, 1)
		b.StartNode(syntax.BlockExpr)
		b.StartNode(syntax.Block)
		b.Token(syntax.LCurly, 1)
		b.Token(syntax.RCurly, 1)
		b.FinishNode()
		b.FinishNode()
		b.Token(syntax.RCurly, 1)
		b.FinishNode()
		b.FinishNode()
	})
	assert.NoError(t, testkit.CheckBlockStructure(root))
}

func TestBlockStructure_ParserOutput(t *testing.T) {
	inputs := []string{
		"fn f() {}",
		"fn f() { if x { 1 } else { 2 } }",
		"struct S { a: i32, b: i32 }",
		"}}} fn f( { {",
		"{ { }",
		"fn f() { let x = { 1 }; while y { } }",
		"fn f(a: i32, { }",
		"fn f() { g(1, { 2 }) }",
	}
	for _, in := range inputs {
		root := parser.Parse(in).Syntax()
		assert.NoError(t, testkit.CheckBlockStructure(root), "input %q", in)
	}
}
