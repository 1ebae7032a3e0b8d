// Package server exposes the jobs over an admin HTTP API.
//
// Routes:
//
//	GET  /health       liveness
//	GET  /metrics      Prometheus metrics
//	GET  /jobs         job names and the last run of each
//	POST /jobs/:name   run discover, sync or provision
//
// A job already in progress makes POST /jobs/:name answer 409.
package server
