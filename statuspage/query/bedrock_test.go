package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBedrockQuery(t *testing.T) {
	var gotAddr string
	b := &Bedrock{ping: func(_ context.Context, addr string) ([]byte, error) {
		gotAddr = addr
		return []byte("MCPE;§cPoke§bBedrock;766;1.21.50;12;500;1234567890;Hub;Adventure;1;19132;19133;"), nil
	}}

	info, err := b.Query(context.Background(), "play.example.net", 19132)
	require.NoError(t, err)
	assert.Equal(t, "play.example.net:19132", gotAddr)
	assert.Equal(t, Info{PlayersOnline: 12, PlayersMax: 500, Version: "1.21.50", MOTD: "PokeBedrock"}, info)
}

func TestBedrockQueryPingError(t *testing.T) {
	cause := errors.New("i/o timeout")
	b := &Bedrock{ping: func(context.Context, string) ([]byte, error) {
		return nil, cause
	}}

	_, err := b.Query(context.Background(), "localhost", 19132)
	assert.ErrorIs(t, err, cause)
}

func TestDecodePongMalformed(t *testing.T) {
	tests := []struct {
		name string
		pong string
	}{
		{name: "too short", pong: "MCPE;motd;766"},
		{name: "bad player count", pong: "MCPE;motd;766;1.21.50;many;500"},
		{name: "bad max count", pong: "MCPE;motd;766;1.21.50;1;lots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePong(tt.pong)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestSplitPongEscapes(t *testing.T) {
	assert.Equal(t, []string{"MCPE", "a;b", "c\\d"}, splitPong(`MCPE;a\;b;c\\d`))
}
