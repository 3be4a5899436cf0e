// Package main is the entry point for the Linkup backend server.
//
// The server provides:
//   - REST API under /api (auth, user, post, connection, notification)
//   - Realtime presence and push events over WebSocket at /ws
//   - Prometheus metrics at /metrics
//   - Uploaded images at /uploads
//
// Configuration:
//   - Environment variables, optionally loaded from a .env file
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	PORT=5000 MONGODB_URL=mongodb://localhost:27017 ./server
//
//	# Development mode with in-memory storage
//	DB_DRIVER=memory ./server -dev
//
// Startup aborts when the database cannot be reached.
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
