// Copyright (c) 2026 The minidb developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"net"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mooleetzi/minidb/co"
	"github.com/mooleetzi/minidb/metrics"
)

// startMetricsServer exposes /metrics and /healthz on addr. The
// returned func shuts the server down.
func startMetricsServer(addr string) (func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen metrics API addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	srv := &http.Server{Handler: handlers.CompressHandler(router)}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	logger.Info("metrics server started", "addr", listener.Addr())

	return func() {
		srv.Close()
		goes.Wait()
	}, nil
}
