package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultPingTimeout     = 3 * time.Second
	DefaultConnectRetry    = 15 * time.Second

	DefaultBenchRecords      = 10000
	DefaultBenchProjectID    = 10
	DefaultBenchReportFile   = "benchmark_results.txt"
	DefaultBenchCacheTTL     = 60 * time.Second
	DefaultBenchComputeDelay = 500 * time.Millisecond
)
