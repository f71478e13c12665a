package transport

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frankiez/gpio-httpd/config"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

var ErrNotBound = errors.New("transport: listener isn't bound")

// TCP is a plain TCP transport serving a bounded number of connections at once.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)
	return err
}

// Addr returns the bound address, which is useful when binding to port 0.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Listen runs the accept loop until Stop is called or the listener fails. Before
// accepting, a slot out of cfg.MaxConnections is taken, so while all of them are busy new
// connections wait in the kernel backlog. The callback owns the connection and must close it.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	if t.l == nil {
		return ErrNotBound
	}

	slots := make(chan struct{}, max(cfg.MaxConnections, 1))

	for !t.stop.Load() {
		if !acquire(slots, cfg.AcceptLoopInterruptPeriod) {
			continue
		}

		if err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod)); err != nil {
			<-slots
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			<-slots

			if IsTimeout(err) {
				continue
			}

			return err
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer func() {
				<-slots
				t.wg.Done()
			}()

			cb(conn)
		}(conn)
	}

	return nil
}

func acquire(slots chan<- struct{}, timeout time.Duration) bool {
	select {
	case slots <- struct{}{}:
		return true
	default:
	}

	wait := time.NewTimer(timeout)
	defer wait.Stop()

	select {
	case slots <- struct{}{}:
		return true
	case <-wait.C:
		return false
	}
}

// Stop makes the accept loop exit on its next iteration. The call doesn't block.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}

// Wait blocks until every spawned connection callback returned.
func (t *TCP) Wait() {
	t.wg.Wait()
}
