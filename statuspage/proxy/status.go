package proxy

import "github.com/smell-of-curry/pokebedrock-status/statuspage/query"

// Error messages carried by offline responses.
const (
	MessageConfigMissing = "Server configuration missing"
	MessageQueryFailed   = "Failed to connect to server"
	MessageFetchFailed   = "Failed to fetch server status"
)

// Players ...
type Players struct {
	Online int `json:"online"`
	Max    int `json:"max"`
}

// Status is the body of a status response. Online responses carry Players,
// Version and MOTD; offline responses carry only Error. Use Online and
// Offline to build one.
type Status struct {
	Online  bool     `json:"online"`
	Players *Players `json:"players,omitempty"`
	Version string   `json:"version,omitempty"`
	MOTD    string   `json:"motd,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// OnlineStatus returns the status of a server that answered with info.
func OnlineStatus(info query.Info) Status {
	return Status{
		Online:  true,
		Players: &Players{Online: info.PlayersOnline, Max: info.PlayersMax},
		Version: info.Version,
		MOTD:    info.MOTD,
	}
}

// OfflineStatus returns the status of a server that could not be queried, with a reason for the user.
func OfflineStatus(message string) Status {
	return Status{Online: false, Error: message}
}
