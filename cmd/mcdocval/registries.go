package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

type RegistriesConfig struct {
	*MainConfig
	ResourceType string `cli:"name=type desc='dispatch resource type, e.g. minecraft:recipe'"`

	Registries *cli.Command
}

func RegistriesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RegistriesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Registries, "registries").
		WithAliases("r", "req-registries").
		WithSynopsis("registries -type <resourceType> <doc-file>").
		WithDescription("list the registries a document's #[id] fields would require, without full validation").
		WithRun(func(cc *cli.Context, args []string) error {
			return runRegistries(cfg, cc, args)
		})
}

func runRegistries(cfg *RegistriesConfig, cc *cli.Context, args []string) error {
	if cfg.ResourceType == "" || len(args) != 1 {
		return fmt.Errorf("%w: registries requires -type <resourceType> and exactly one document file", cli.ErrUsage)
	}
	in, err := loadInstance(cfg.MainConfig)
	if err != nil {
		return err
	}
	value, err := readJSONFile(args[0])
	if err != nil {
		return err
	}
	names := in.RequiredRegistries(value, cfg.ResourceType)
	for _, name := range names {
		fmt.Fprintln(cc.Out, name)
	}
	return nil
}
