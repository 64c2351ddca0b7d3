/*
Package monitoring provides Prometheus metrics collection.

Each Metrics value carries its own registry, so collectors never fight
over global registration. Tracked series cover HTTP requests, tool
calls, and terminal session lifecycle.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "terminal.send_input")
	// ... perform operation ...
	timer.Stop("success")
*/
package monitoring
