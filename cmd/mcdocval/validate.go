package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

type ValidateConfig struct {
	*MainConfig
	ResourceType string `cli:"name=type desc='dispatch resource type, e.g. minecraft:recipe'"`

	Validate *cli.Command
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "check").
		WithSynopsis("validate -type <resourceType> [doc-files...]").
		WithDescription("validate JSON documents against the loaded MCDOC schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return runValidate(cfg, cc, args)
		})
}

func runValidate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	if cfg.ResourceType == "" {
		return fmt.Errorf("%w: validate requires -type <resourceType>", cli.ErrUsage)
	}
	in, err := loadInstance(cfg.MainConfig)
	if err != nil {
		return err
	}
	if len(in.SchemaErrors()) != 0 {
		for _, e := range in.SchemaErrors() {
			fmt.Fprintf(os.Stderr, "schema error: %v\n", e)
		}
	}

	filterErr, err := compileErrorFilter(cfg.Filter)
	if err != nil {
		return err
	}

	docFiles := args
	if len(docFiles) == 0 {
		docFiles = []string{"-"}
	}

	allValid := true
	for _, docFile := range docFiles {
		value, err := readJSONFile(docFile)
		if err != nil {
			return err
		}
		res := in.Validate(value, cfg.ResourceType, cfg.Version)
		if !res.IsValid {
			allValid = false
		}

		if cfg.JSON {
			enc := json.NewEncoder(cc.Out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}

		color := cfg.useColor(cc.Out)
		for _, e := range res.Errors {
			ok, err := filterErr(e)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			fmt.Fprintf(cc.Out, "%s: %s: %s: %s\n", docFile, colorizeKind(color, e.Kind), colorizePath(color, e.Path), e.Message)
		}
		for _, d := range res.Dependencies {
			fmt.Fprintf(cc.Out, "%s: dependency %s -> %s (path %s)\n", docFile, d.Registry, d.Value, d.Path)
		}
		if res.IsValid {
			fmt.Fprintf(cc.Out, "%s: ok\n", docFile)
		}
	}
	if !allValid {
		return fmt.Errorf("one or more documents failed validation")
	}
	return nil
}
