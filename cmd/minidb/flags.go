// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 0,
		Usage: "log verbosity as an slog level (-8=trace 0=info 8=error)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "emit logs as JSON lines",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "listening address of the metrics server (disabled if empty)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML file providing defaults for unset flags",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the page store (in-memory store if empty)",
	}
	capacityFlag = cli.IntFlag{
		Name:  "capacity",
		Value: 64,
		Usage: "buffer pool capacity in frames",
	}
	lookBackFlag = cli.IntFlag{
		Name:  "k",
		Value: 2,
		Usage: "LRU-K look-back depth",
	}
	pagesFlag = cli.IntFlag{
		Name:  "pages",
		Value: 256,
		Usage: "number of distinct pages touched by the workload",
	}
	opsFlag = cli.IntFlag{
		Name:  "ops",
		Value: 100000,
		Usage: "number of operations to run",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Value: 4,
		Usage: "number of concurrent workers",
	}
	keyLenFlag = cli.IntFlag{
		Name:  "key-len",
		Value: 16,
		Usage: "maximum key length in bytes",
	}
	historyFlag = cli.IntFlag{
		Name:  "history",
		Value: 128,
		Usage: "number of trie versions retained for point-in-time reads",
	}
)
