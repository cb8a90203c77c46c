package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcdocval/mcdoc"
)

// loadInstance walks cfg.SchemaDir for .mcdoc files and cfg.Registries (if
// set) for registry data, building one mcdoc.Instance the way the
// teacher's loadSchema builds one *schema.Schema from a single file --
// generalized here to a directory, since an MCDOC schema is normally
// spread across many modules.
func loadInstance(cfg *MainConfig) (*mcdoc.Instance, error) {
	files := map[string]string{}
	err := filepath.WalkDir(cfg.SchemaDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".mcdoc") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(cfg.SchemaDir, p)
		if err != nil {
			rel = p
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading schema dir %s: %w", cfg.SchemaDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .mcdoc files found under %s", cfg.SchemaDir)
	}

	registries := map[string]any{}
	if cfg.Registries != "" {
		data, err := os.ReadFile(cfg.Registries)
		if err != nil {
			return nil, fmt.Errorf("reading registries file %s: %w", cfg.Registries, err)
		}
		if err := json.Unmarshal(data, &registries); err != nil {
			return nil, fmt.Errorf("parsing registries file %s: %w", cfg.Registries, err)
		}
	}

	in, err := mcdoc.New(files, registries, cfg.Version)
	if err != nil {
		return nil, err
	}
	return in, nil
}

func readJSONFile(path string) (any, error) {
	var r interface {
		Read([]byte) (int, error)
	}
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return value, nil
}
