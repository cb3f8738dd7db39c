package statuspage

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/restartfu/gophig"
	"github.com/samber/lo"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/internal"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/proxy"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/query"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/util"
)

// Config holds the status page configuration: where to serve, which Minecraft
// server to report on and how clients poll it.
type Config struct {
	StatusPage struct {
		SentryDsn string
		LogLevel  string // Can be "debug", "info", "warn", "error"
		Address   string
	}
	Minecraft struct {
		// Host is overridden by MINECRAFT_SERVER_IP, Port by MINECRAFT_SERVER_PORT.
		Host         string
		Port         int
		Edition      string // Can be "java" or "bedrock"
		QueryTimeout util.Duration
	}
	View struct {
		PollInterval util.Duration
		// StatusURL is the endpoint polled by statuswatch.
		StatusURL string
	}
}

// DefaultConfig returns a config with prefilled default values.
func DefaultConfig() Config {
	c := Config{}

	c.StatusPage.SentryDsn = ""
	c.StatusPage.LogLevel = "info"
	c.StatusPage.Address = ":8080"

	c.Minecraft.Host = ""
	c.Minecraft.Port = 0 // Default port of the edition.
	c.Minecraft.Edition = string(query.EditionJava)
	c.Minecraft.QueryTimeout = util.Duration(internal.DefaultQueryTimeout)

	c.View.PollInterval = util.Duration(internal.DefaultPollInterval)
	c.View.StatusURL = "http://127.0.0.1:8080" + internal.StatusRoute

	return c
}

// logLevels maps the LogLevel names accepted in config.toml to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel maps a LogLevel name to its slog.Level. Unknown names yield
// slog.LevelInfo along with an error.
func ParseLogLevel(level string) (slog.Level, error) {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl, nil
	}
	return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
}

// configPath is the file ReadConfig loads, relative to the working directory.
const configPath = "./config.toml"

// ReadConfig builds the configuration in three layers: the defaults, written
// to config.toml on first start, then the values in config.toml, then
// MINECRAFT_SERVER_IP and MINECRAFT_SERVER_PORT, which take priority over the
// file. The result is validated before it is returned.
func ReadConfig() (Config, error) {
	g := gophig.NewGophig[Config](configPath, gophig.TOMLMarshaler{}, os.ModePerm)
	if _, err := g.LoadConf(); os.IsNotExist(err) {
		if err := g.SaveConf(DefaultConfig()); err != nil {
			return Config{}, fmt.Errorf("write default %s: %w", configPath, err)
		}
	}
	c, err := g.LoadConf()
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", configPath, err)
	}
	if c, err = ApplyEnvironment(c, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// ApplyEnvironment overrides the Minecraft server address of c with the
// MINECRAFT_SERVER_IP and MINECRAFT_SERVER_PORT variables, where set. A port
// that is not a number between 1 and 65535 is an error.
func ApplyEnvironment(c Config, lookup func(string) (string, bool)) (Config, error) {
	host, _ := lookup(internal.EnvServerIP)
	c.Minecraft.Host = lo.CoalesceOrEmpty(strings.TrimSpace(host), c.Minecraft.Host)

	if raw, ok := lookup(internal.EnvServerPort); ok && strings.TrimSpace(raw) != "" {
		port, err := parsePort(raw)
		if err != nil {
			return c, fmt.Errorf("%s: %w", internal.EnvServerPort, err)
		}
		c.Minecraft.Port = port
	}
	return c, nil
}

// parsePort ...
func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

// Validate checks the values that cannot be defaulted and fills in the rest.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.StatusPage.LogLevel); err != nil {
		return err
	}
	edition, err := query.ParseEdition(c.Minecraft.Edition)
	if err != nil {
		return err
	}
	c.Minecraft.Edition = string(edition)

	switch {
	case c.Minecraft.Port == 0:
		c.Minecraft.Port = edition.DefaultPort()
	case c.Minecraft.Port < 0 || c.Minecraft.Port > 65535:
		return fmt.Errorf("minecraft port %d out of range", c.Minecraft.Port)
	}

	c.StatusPage.Address = lo.CoalesceOrEmpty(c.StatusPage.Address, ":8080")
	if c.Minecraft.QueryTimeout <= 0 {
		c.Minecraft.QueryTimeout = util.Duration(internal.DefaultQueryTimeout)
	}
	if c.View.PollInterval <= 0 {
		c.View.PollInterval = util.Duration(internal.DefaultPollInterval)
	}
	return nil
}

// Proxy returns the configuration of the status proxy endpoint.
func (c Config) Proxy() proxy.Config {
	return proxy.Config{
		Host:    c.Minecraft.Host,
		Port:    c.Minecraft.Port,
		Timeout: c.Minecraft.QueryTimeout.Std(),
	}
}

// PollInterval ...
func (c Config) PollInterval() time.Duration {
	return c.View.PollInterval.Std()
}
