package internal

import "time"

// Minecraft constants
const (
	// DefaultJavaPort is the port a Java Edition server listens on unless configured otherwise.
	DefaultJavaPort = 25565

	// DefaultBedrockPort is the port a Bedrock Edition server listens on unless configured otherwise.
	DefaultBedrockPort = 19132
)

// Timing constants
const (
	// DefaultQueryTimeout bounds a single status query against the game server.
	DefaultQueryTimeout = 5 * time.Second

	// DefaultPollInterval is how often the status view asks the proxy for a fresh status.
	DefaultPollInterval = 10 * time.Second

	// ShutdownTimeout is how long the HTTP server is given to drain on close.
	ShutdownTimeout = 5 * time.Second

	// SentryFlushTimeout is how long pending Sentry events are given on close.
	SentryFlushTimeout = 2 * time.Second
)

// Environment variables read on start.
const (
	EnvServerIP   = "MINECRAFT_SERVER_IP"
	EnvServerPort = "MINECRAFT_SERVER_PORT"
)

// Route constants
const (
	// StatusRoute is the path of the status proxy endpoint.
	StatusRoute = "/api/server-status"
)
