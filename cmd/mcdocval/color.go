package main

import (
	"github.com/fatih/color"

	"github.com/mcdocval/mcdoc/validator"
)

// kindColor assigns one color per ErrorKind, mirroring the teacher's
// encode.Colors map-of-attribute-to-SprintfFunc approach but keyed on our
// own domain's error kinds instead of IR node types.
var kindColor = map[validator.ErrorKind]func(string, ...any) string{
	validator.KindSyntaxError:          color.New(color.FgRed, color.Bold).SprintfFunc(),
	validator.KindSchemaError:          color.New(color.FgRed, color.Bold).SprintfFunc(),
	validator.KindTypeMismatch:         color.New(color.FgYellow).SprintfFunc(),
	validator.KindMissingField:         color.New(color.FgYellow).SprintfFunc(),
	validator.KindUnknownField:         color.New(color.FgMagenta).SprintfFunc(),
	validator.KindConstraintViolation:  color.New(color.FgYellow).SprintfFunc(),
	validator.KindInvalidResourceId:    color.New(color.FgRed).SprintfFunc(),
	validator.KindUnknownRegistryValue: color.New(color.FgRed).SprintfFunc(),
	validator.KindUnknownDispatchKey:   color.New(color.FgRed).SprintfFunc(),
}

func colorizeKind(enabled bool, kind validator.ErrorKind) string {
	if !enabled {
		return string(kind)
	}
	if f, ok := kindColor[kind]; ok {
		return f(string(kind))
	}
	return string(kind)
}

func colorizePath(enabled bool, path string) string {
	if !enabled || path == "" {
		return path
	}
	return color.CyanString(path)
}

func greenString(s string) string { return color.GreenString(s) }
func redString(s string) string   { return color.RedString(s) }
