// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// config mirrors the command line flags; a YAML file passed via
// --config provides defaults for flags the user left unset.
type config struct {
	MetricsAddr string `yaml:"metricsAddr"`
	DataDir     string `yaml:"dataDir"`
	Capacity    int    `yaml:"capacity"`
	K           int    `yaml:"k"`
	Pages       int    `yaml:"pages"`
	Ops         int    `yaml:"ops"`
	Workers     int    `yaml:"workers"`
}

func loadConfig(ctx *cli.Context) (*config, error) {
	var cfg config
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

// resolveString prefers an explicitly set flag, then the config value,
// then the flag default.
func resolveString(ctx *cli.Context, name, fromConfig string) string {
	if !isSet(ctx, name) && fromConfig != "" {
		return fromConfig
	}
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}

// resolveInt prefers an explicitly set flag, then the config value,
// then the flag default.
func resolveInt(ctx *cli.Context, name string, fromConfig int) int {
	if !isSet(ctx, name) && fromConfig != 0 {
		return fromConfig
	}
	if v := ctx.Int(name); v != 0 {
		return v
	}
	return ctx.GlobalInt(name)
}

func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}
