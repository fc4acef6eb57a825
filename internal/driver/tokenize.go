package driver

import (
	"fmt"

	"lattice/internal/diag"
	"lattice/internal/lexer"
	"lattice/internal/source"
	"lattice/internal/syntax"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []lexer.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file. Tokens include trivia and the final EOF token.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := newBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: lexer.DiagReporter{R: diag.BagReporter{Bag: bag}},
	})

	// собираем все токены до EOF включительно
	var tokens []lexer.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == syntax.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
