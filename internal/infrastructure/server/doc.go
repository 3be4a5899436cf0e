// Package server wires configuration, storage, domain services, the HTTP API
// and the realtime hub into one process and owns its lifecycle.
package server
