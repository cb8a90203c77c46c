package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/scott-cotton/cli"
)

type DatapackConfig struct {
	*MainConfig

	Datapack *cli.Command
}

func DatapackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DatapackConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Datapack, "datapack").
		WithAliases("d", "analyze").
		WithSynopsis("datapack <dir>").
		WithDescription("validate every JSON resource under a datapack directory").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDatapack(cfg, cc, args)
		})
}

func runDatapack(cfg *DatapackConfig, cc *cli.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: datapack requires exactly 1 argument (datapack directory)", cli.ErrUsage)
	}
	in, err := loadInstance(cfg.MainConfig)
	if err != nil {
		return err
	}

	root := args[0]
	files := map[string][]byte{}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking datapack dir %s: %w", root, err)
	}

	res := in.AnalyzeDatapack(files, cfg.Version)

	if cfg.JSON {
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	filterErr, err := compileErrorFilter(cfg.Filter)
	if err != nil {
		return err
	}
	color := cfg.useColor(cc.Out)
	for _, file := range sortedKeys(res.ErrorsByFile) {
		for _, e := range res.ErrorsByFile[file] {
			ok, err := filterErr(e)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			fmt.Fprintf(cc.Out, "%s: %s: %s: %s\n", file, colorizeKind(color, e.Kind), colorizePath(color, e.Path), e.Message)
		}
	}
	fmt.Fprintf(cc.Out, "processed %d files, %d failed, %d dependencies in %s\n",
		res.FilesProcessed, res.FilesFailed, len(res.Dependencies), res.AnalysisTime)
	if !res.IsValid {
		return fmt.Errorf("datapack has invalid resources")
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
