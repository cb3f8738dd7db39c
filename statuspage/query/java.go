package query

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Tnze/go-mc/bot"
	"github.com/Tnze/go-mc/chat"
)

// javaStatus is the JSON document a Java Edition server returns to a status request.
type javaStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players *struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description chat.Message `json:"description"`
}

// Java queries Java Edition servers using the Server List Ping exchange.
type Java struct {
	ping func(ctx context.Context, addr string) ([]byte, time.Duration, error)
}

// NewJava ...
func NewJava() *Java {
	return &Java{ping: bot.PingAndListContext}
}

// Query ...
func (j *Java) Query(ctx context.Context, host string, port int) (Info, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	raw, _, err := j.ping(ctx, addr)
	if err != nil {
		return Info{}, fmt.Errorf("ping %s: %w", addr, err)
	}
	return decodeJavaStatus(raw)
}

// decodeJavaStatus ...
func decodeJavaStatus(raw []byte) (Info, error) {
	var st javaStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if st.Players == nil {
		return Info{}, fmt.Errorf("%w: no players section", ErrMalformedResponse)
	}
	return Info{
		PlayersOnline: st.Players.Online,
		PlayersMax:    st.Players.Max,
		Version:       st.Version.Name,
		MOTD:          st.Description.ClearString(),
	}, nil
}
