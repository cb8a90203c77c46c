package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

// MainCommand builds the mcdocval command tree, mirroring the way the
// teacher's go-tony/cmd/o assembles MainCommand from per-subcommand
// constructors sharing one MainConfig.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "mcdocval").
		WithSynopsis("mcdocval [opts] command [opts]").
		WithDescription("mcdocval validates Minecraft datapack JSON resources against MCDOC schemas.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mcdocvalMain(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			DatapackCommand(cfg),
			RegistriesCommand(cfg),
			DiffCommand(cfg),
		)
}

// mcdocvalMain dispatches to the chosen subcommand, the way the teacher's
// oMain does for go-tony's "o" command.
func mcdocvalMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}
