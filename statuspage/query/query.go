// Package query performs status queries against a Minecraft server. The
// protocol exchange itself is delegated to go-mc (Java Edition) and go-raknet
// (Bedrock Edition); this package only adapts their results into Info.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smell-of-curry/pokebedrock-status/statuspage/internal"
)

var (
	// ErrMalformedResponse is returned when the server answered, but not with a status we could read.
	ErrMalformedResponse = errors.New("malformed status response")
	// ErrUnknownEdition is returned by New for an edition it has no querier for.
	ErrUnknownEdition = errors.New("unknown edition")
)

// Info is the status of a server, as reported by a single query.
type Info struct {
	PlayersOnline int
	PlayersMax    int
	Version       string
	// MOTD is the message of the day with all formatting removed.
	MOTD string
}

// Querier queries the status of the server at host:port. The context carries the
// deadline of the query; implementations must give up once it is done.
type Querier interface {
	Query(ctx context.Context, host string, port int) (Info, error)
}

// Edition ...
type Edition string

const (
	EditionJava    Edition = "java"
	EditionBedrock Edition = "bedrock"
)

// ParseEdition parses an edition name, case-insensitively. An empty name is Java.
func ParseEdition(s string) (Edition, error) {
	switch e := Edition(strings.ToLower(strings.TrimSpace(s))); e {
	case "", EditionJava:
		return EditionJava, nil
	case EditionBedrock:
		return EditionBedrock, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEdition, s)
	}
}

// DefaultPort returns the port servers of the edition listen on by default.
func (e Edition) DefaultPort() int {
	if e == EditionBedrock {
		return internal.DefaultBedrockPort
	}
	return internal.DefaultJavaPort
}

// New returns the Querier for the edition passed.
func New(e Edition) (Querier, error) {
	switch e {
	case EditionJava:
		return NewJava(), nil
	case EditionBedrock:
		return NewBedrock(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEdition, string(e))
	}
}
