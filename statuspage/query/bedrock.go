package query

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/sandertv/go-raknet"
	"github.com/sandertv/gophertunnel/minecraft/text"
)

// Bedrock queries Bedrock Edition servers using a RakNet unconnected ping.
type Bedrock struct {
	ping func(ctx context.Context, addr string) ([]byte, error)
}

// NewBedrock ...
func NewBedrock() *Bedrock {
	return &Bedrock{ping: raknet.PingContext}
}

// Query ...
func (b *Bedrock) Query(ctx context.Context, host string, port int) (Info, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	raw, err := b.ping(ctx, addr)
	if err != nil {
		return Info{}, fmt.Errorf("ping %s: %w", addr, err)
	}
	return decodePong(string(raw))
}

// decodePong reads the fields of a pong: edition;motd;protocol;version;players;max;...
func decodePong(pong string) (Info, error) {
	frag := splitPong(pong)
	if len(frag) < 6 {
		return Info{}, fmt.Errorf("%w: pong has %d fields", ErrMalformedResponse, len(frag))
	}
	online, err := strconv.Atoi(strings.TrimSpace(frag[4]))
	if err != nil {
		return Info{}, fmt.Errorf("%w: player count %q", ErrMalformedResponse, frag[4])
	}
	maxPlayers, err := strconv.Atoi(strings.TrimSpace(frag[5]))
	if err != nil {
		return Info{}, fmt.Errorf("%w: max player count %q", ErrMalformedResponse, frag[5])
	}
	return Info{
		PlayersOnline: online,
		PlayersMax:    maxPlayers,
		Version:       frag[3],
		MOTD:          text.Clean(frag[1]),
	}, nil
}

// splitPong splits s on semicolons, honouring backslash escapes.
func splitPong(s string) []string {
	var runes []rune
	var tokens []string
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			inEscape = false
			runes = append(runes, r)
		case r == '\\':
			inEscape = true
		case r == ';':
			tokens = append(tokens, string(runes))
			runes = runes[:0]
		default:
			runes = append(runes, r)
		}
	}
	return append(tokens, string(runes))
}
