// Package fuzztests houses Go fuzz harnesses for the lexer, the parser and
// the tree dump. Every parse is followed by the block-structure and tree
// shape checks from internal/testkit, so a fuzz failure means the parser
// produced a tree it promised never to produce.
//
// Назначение: прогонять произвольные байты через lexer/parser/dump.
//
// Не делает: генерацию корпусов на диск (это `lattice fuzz`).
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/diag, internal/diagfmt, internal/testkit.
package fuzztests
