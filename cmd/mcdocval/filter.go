package main

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/mcdocval/mcdoc/validator"
)

// compileErrorFilter compiles a --filter expression once and returns a
// predicate over ValidationError, the way the teacher's eval/script.go
// compiles a user expression once via expr.Compile and runs it per value
// via expr.Run.
func compileErrorFilter(src string) (func(validator.ValidationError) (bool, error), error) {
	if src == "" {
		return func(validator.ValidationError) (bool, error) { return true, nil }, nil
	}
	prg, err := expr.Compile(src, expr.Env(errorEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling --filter expression: %w", err)
	}
	return func(e validator.ValidationError) (bool, error) {
		out, err := expr.Run(prg, errorEnv{Kind: string(e.Kind), Path: e.Path, Message: e.Message})
		if err != nil {
			return false, err
		}
		return out.(bool), nil
	}, nil
}

type errorEnv struct {
	Kind    string
	Path    string
	Message string
}

func compileDependencyFilter(src string) (func(validator.Dependency) (bool, error), error) {
	if src == "" {
		return func(validator.Dependency) (bool, error) { return true, nil }, nil
	}
	prg, err := expr.Compile(src, expr.Env(dependencyEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling --filter expression: %w", err)
	}
	return func(d validator.Dependency) (bool, error) {
		out, err := expr.Run(prg, dependencyEnv{
			Registry:   d.Registry,
			Value:      d.Value,
			Path:       d.Path,
			IsTag:      d.IsTag,
			SourceFile: d.SourceFile,
		})
		if err != nil {
			return false, err
		}
		return out.(bool), nil
	}, nil
}

type dependencyEnv struct {
	Registry   string
	Value      string
	Path       string
	IsTag      bool
	SourceFile string
}
