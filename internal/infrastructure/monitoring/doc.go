/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the backend
service, tracking HTTP requests, window manager activity, file system
mutations, power transitions, store latency and WebSocket traffic.

# Features

- HTTP request metrics (latency, throughput, size)
- Window counts and operations
- Virtual file system size and mutations
- Power state gauge and transition counters
- Key-value store latency (Metrics implements store.Observer)
- WebSocket connection metrics
- System metrics (uptime, Go runtime, process)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.SetWindows(3, 1)
	metrics.RecordPowerTransition("active", "locked")

# Metrics Endpoint

Each collector owns a registry; expose it with:

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
