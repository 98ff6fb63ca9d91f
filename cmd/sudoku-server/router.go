package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", handleStatus)
	mux.HandleFunc("POST /v1/solve", handleSolve)
	mux.HandleFunc("GET /v1/solve/{id}", handleGetSession)
	mux.HandleFunc("POST /v1/batch", handleBatch)
	mux.HandleFunc("GET /v1/records", handleRecords)

	mux.HandleFunc("/v1/solver/connect", handleConnectWs)

	return useMiddleware(mux,
		corsMiddleware,
		loggingMiddleware,
	)
}
