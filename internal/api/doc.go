// Package api provides the HTTP REST API and WebSocket server for the
// Smart Room gateway.
//
// It exposes the aggregate room snapshot, derived analytics, a command
// endpoint that forwards control messages onto the bus, a Prometheus
// scrape endpoint, and a WebSocket push channel for dashboards.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
