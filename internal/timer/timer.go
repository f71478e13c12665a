package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Resolution is the frequency at which the clock is updated. Half a second is
// precise enough for I/O deadlines and for the Date header, which has a
// resolution of one second anyway.
const Resolution = 500 * time.Millisecond

var (
	millis = new(atomic.Int64)
	start  sync.Once
)

// Now returns the current time rounded down to the Resolution. The first call starts
// the background ticker, so the clock costs nothing unless it's used.
func Now() time.Time {
	start.Do(run)
	ms := millis.Load()

	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}

func run() {
	millis.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			millis.Store(time.Now().UnixMilli())
		}
	}()
}
