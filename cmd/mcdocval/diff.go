package main

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scott-cotton/cli"
)

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff <a.mcdoc> <b.mcdoc>").
		WithDescription("line-level diff of two MCDOC schema sources, e.g. across game versions").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly 2 arguments (a.mcdoc b.mcdoc)", cli.ErrUsage)
	}
	fromData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	toData, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	fromLines, toLines, lineArr := dmp.DiffLinesToChars(string(fromData), string(toData))
	diffs := dmp.DiffMain(fromLines, toLines, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArr)

	color := cfg.useColor(cc.Out)
	for _, d := range diffs {
		for _, line := range splitKeepEmpty(d.Text) {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(cc.Out, prefixLine(color, "+", line, true))
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(cc.Out, prefixLine(color, "-", line, false))
			case diffmatchpatch.DiffEqual:
				fmt.Fprintln(cc.Out, "  "+line)
			}
		}
	}
	return nil
}

func splitKeepEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func prefixLine(color bool, sign, line string, insert bool) string {
	if !color {
		return sign + " " + line
	}
	if insert {
		return greenString(sign + " " + line)
	}
	return redString(sign + " " + line)
}
