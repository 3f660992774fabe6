// Package parser builds packet trees from tokens.
//
// Grammar:
//
//	list   := '[' ']' | '[' packet (',' packet)* ']'
//	packet := list | integer
//
// The top level of every line must be a list followed by end of input. The
// parser keeps a two-token window (previous, current) over the lexer and
// stops at the first error; there is no recovery and no partial tree.
//
// Trees are produced through a Builder, so the same grammar code fills either
// heap-owned packet.Values or nodes of a packet.Arena.
package parser
