// Package source describes where room availability comes from.
package source

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Config kinds accepted by Parse and returned by Kind.
const (
	KindEmbedded = "embedded_command"
	KindCrawler  = "crawling_server"
	KindDisabled = "disabled"

	// kindEmbeddedAlias is the name older configs use for the embedded host.
	kindEmbeddedAlias = "tauri_webview"
)

// DataSource is one of EmbeddedCommand, RemoteCrawler or Disabled. The
// unexported method keeps the set closed.
type DataSource interface {
	dataSource()
	String() string
}

// EmbeddedCommand asks the co-located application host to run the lookup.
type EmbeddedCommand struct{}

// RemoteCrawler points at a browser-automation server.
type RemoteCrawler struct {
	Host string
	Port uint16
}

// Disabled means no backend is configured.
type Disabled struct{}

func (EmbeddedCommand) dataSource() {}
func (RemoteCrawler) dataSource()   {}
func (Disabled) dataSource()        {}

func (EmbeddedCommand) String() string { return "embedded command" }
func (Disabled) String() string        { return "disabled" }

func (r RemoteCrawler) String() string {
	return "crawler " + r.Addr()
}

// Addr joins host and port.
func (r RemoteCrawler) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(int(r.Port)))
}

// Parse builds a DataSource from its config representation. Host and port
// are only consulted for the crawler kind.
func Parse(kind, host string, port int) (DataSource, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindEmbedded, kindEmbeddedAlias:
		return EmbeddedCommand{}, nil
	case KindCrawler:
		host = strings.TrimSpace(host)
		if host == "" {
			return nil, fmt.Errorf("crawling server host is empty")
		}
		if port < 0 || port > 65535 {
			return nil, fmt.Errorf("crawling server port %d out of range", port)
		}
		return RemoteCrawler{Host: host, Port: uint16(port)}, nil
	case KindDisabled:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown data source kind %q", kind)
	}
}

// Kind returns the config name for ds. A nil source reports as disabled.
func Kind(ds DataSource) string {
	switch ds.(type) {
	case EmbeddedCommand:
		return KindEmbedded
	case RemoteCrawler:
		return KindCrawler
	default:
		return KindDisabled
	}
}
