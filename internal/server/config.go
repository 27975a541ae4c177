package server

import "github.com/ayeshahabib/scamshield/internal/logging"

// RateLimitConfig bounds how fast a single client may submit scans.
type RateLimitConfig struct {
	Enabled bool
	// RPS is the sustained requests-per-second allowance per client IP.
	RPS float64
	// Burst is the short-term allowance above RPS.
	Burst int
}

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string
	// DBPath is the SQLite file backing scan history and the blacklist.
	DBPath string
	// Logger may be nil; a stdout JSON logger is used then.
	Logger logging.Logger
	// RateLimit applies to POST /api/scan only.
	RateLimit RateLimitConfig
}
