package token

import "fmt"

// PrintTokens writes a human-readable dump of toks to stdout, prefixed by
// msg. Useful for ad-hoc debugging of the lexer, mirroring the teacher
// repo's token.PrintTokens.
func PrintTokens(toks []Token, msg string) {
	fmt.Printf("%s tokens:\n", msg)
	for _, t := range toks {
		fmt.Printf("\t%s\n", t.Info())
	}
}
