package transport

import (
	"net"

	"github.com/frankiez/gpio-httpd/config"
)

// Transport accepts connections and hands each of them to the callback in its own goroutine.
type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close()
	Wait()
}
