package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PanelKind is one of the mutually exclusive things the view can show.
type PanelKind int

const (
	PanelLoading PanelKind = iota
	PanelOnline
	PanelOffline
)

// String ...
func (k PanelKind) String() string {
	switch k {
	case PanelLoading:
		return "loading"
	case PanelOnline:
		return "online"
	default:
		return "offline"
	}
}

// timeLayout matches the hour:minute:second clock shown to users.
const timeLayout = "3:04:05 PM"

// fallbackOfflineMessage is shown for offline statuses without an error.
const fallbackOfflineMessage = "Unable to connect to server"

// Panel is the rendered form of a State. Only the fields of its Kind are set.
type Panel struct {
	Kind  PanelKind
	Title string

	Players    string
	MaxPlayers string
	Version    string

	Message string
	Updated string

	RefreshLabel    string
	RefreshDisabled bool
}

var printer = message.NewPrinter(language.English)

// Render decides what the view shows for s. The kind depends on s.Loading and
// the online flag of s.Status only.
func Render(s State) Panel {
	p := Panel{
		RefreshLabel:    lo.Ternary(s.Loading, "Refreshing...", "Refresh"),
		RefreshDisabled: s.Loading,
	}

	switch {
	case s.Loading:
		p.Kind = PanelLoading
		p.Title = "Loading server status..."
	case s.Status != nil && s.Status.Online:
		p.Kind = PanelOnline
		p.Title = "Server Online"

		var online, maxPlayers int
		if s.Status.Players != nil {
			online, maxPlayers = s.Status.Players.Online, s.Status.Players.Max
		}
		p.Players = printer.Sprintf("%d", online)
		p.MaxPlayers = printer.Sprintf("/ %d players", maxPlayers)
		if s.Status.Version != "" {
			p.Version = "Version: " + s.Status.Version
		}
		p.Updated = stamp("Last updated", s.LastUpdate)
	default:
		p.Kind = PanelOffline
		p.Title = "Server Offline"
		p.Message = fallbackOfflineMessage
		if s.Status != nil && s.Status.Error != "" {
			p.Message = s.Status.Error
		}
		p.Updated = stamp("Last checked", s.LastUpdate)
	}
	return p
}

// stamp ...
func stamp(label string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, t.Local().Format(timeLayout))
}

// String renders the panel as plain text lines.
func (p Panel) String() string {
	lines := []string{p.Title}
	switch p.Kind {
	case PanelOnline:
		lines = append(lines, p.Players+" "+p.MaxPlayers)
		lines = append(lines, lo.Compact([]string{p.Version, p.Updated})...)
	case PanelOffline:
		lines = append(lines, lo.Compact([]string{p.Message, p.Updated})...)
	}
	return strings.Join(lines, "\n")
}
