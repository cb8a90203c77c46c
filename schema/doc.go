// Package schema implements the MCDOC abstract schema tree, the
// recursive-descent parser that produces it, and the resolver that merges
// many parsed files into a single read-only Schema Index.
//
// The pipeline is: [Parse] turns MCDOC source into a [Unit]; [Resolve]
// merges a set of Units (possibly spanning many files) into an [Index] that
// the validator package queries by dispatcher key or qualified name.
package schema
