/*
Package monitoring provides Prometheus metrics for the backend.

# Overview

Each Metrics value owns a private registry, tracking HTTP traffic, realtime
connections and events, presence size, and notifications.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.ConnectionOpened()
	metrics.SetPresenceUsers(registry.Len())
*/
package monitoring
