// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"

	isatty "github.com/mattn/go-isatty"
	"github.com/pborman/uuid"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/mooleetzi/minidb/log"
	"github.com/mooleetzi/minidb/metrics"
)

var (
	version   string
	gitCommit string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%.8s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "minidb",
		Usage:     "workload driver for the minidb storage engine cores",
		Copyright: "2026 The minidb developers",
		Flags: []cli.Flag{
			verbosityFlag,
			jsonLogsFlag,
			metricsAddrFlag,
			configFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "trie",
				Usage: "run a copy-on-write trie workload",
				Flags: []cli.Flag{
					opsFlag,
					workersFlag,
					keyLenFlag,
					historyFlag,
				},
				Action: trieAction,
			},
			{
				Name:  "pool",
				Usage: "run a buffer pool workload",
				Flags: []cli.Flag{
					dataDirFlag,
					capacityFlag,
					lookBackFlag,
					pagesFlag,
					opsFlag,
				},
				Action: poolAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup applies global flags and returns the resolved config plus a
// teardown func. Every command calls it first.
func setup(ctx *cli.Context) (*config, func(), error) {
	initLogger(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	runID := uuid.New()
	logger.Info("starting run", "version", fullVersion(), "run", runID)

	if addr := resolveString(ctx, metricsAddrFlag.Name, cfg.MetricsAddr); addr != "" {
		metrics.InitializePrometheusMetrics()
		stop, err := startMetricsServer(addr)
		if err != nil {
			return nil, nil, err
		}
		return cfg, stop, nil
	}
	return cfg, func() {}, nil
}

func initLogger(ctx *cli.Context) {
	lvl := slog.Level(ctx.GlobalInt(verbosityFlag.Name))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, lvl)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd())
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}
