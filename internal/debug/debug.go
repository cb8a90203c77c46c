// Package debug provides env-var-gated tracing switches for the MCDOC
// pipeline, read once at init rather than threaded through every call.
package debug

import (
	"os"
	"strconv"
)

type flags struct {
	Lexer     bool
	Parser    bool
	Resolver  bool
	Validator bool
	Analyzer  bool
}

var f *flags

func init() {
	f = &flags{}
	f.Lexer = boolEnv("MCDOC_DEBUG_LEXER")
	f.Parser = boolEnv("MCDOC_DEBUG_PARSER")
	f.Resolver = boolEnv("MCDOC_DEBUG_RESOLVER")
	f.Validator = boolEnv("MCDOC_DEBUG_VALIDATOR")
	f.Analyzer = boolEnv("MCDOC_DEBUG_ANALYZER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lexer() bool     { return f.Lexer }
func Parser() bool    { return f.Parser }
func Resolver() bool  { return f.Resolver }
func Validator() bool { return f.Validator }
func Analyzer() bool  { return f.Analyzer }
