// Package token provides tokenization support for the MCDOC schema DSL.
//
// [Lex] tokenizes a full source buffer into a slice of [Token] values that
// borrow their bytes from the input. The lexer is infallible at this layer:
// bytes it cannot classify become a [TUnknown] token with their span, and it
// is left to the parser to decide whether and how to report that.
package token
