// Package player defines a unified abstraction layer for media playback engines.
package player

import (
	"sync/atomic"
)

// Run starts playback of the request and blocks until the session ends,
// either because the user quit the player or because the stream reached
// its end. It reports the last observed playback position in seconds,
// which callers persist for resuming.
func Run(p Player, request *Request) (position int64, err error) {
	if err := p.Play(request); err != nil {
		return 0, err
	}

	var last int64
	p.StartIPCTicker(func(timePos, duration int) {
		atomic.StoreInt64(&last, int64(timePos))
	})
	defer p.StopIPCTicker()

	eof := make(chan struct{}, 1)
	listener := NewEventListener(p.Socket(), func(property string, data interface{}) {
		if property != "eof-reached" {
			return
		}
		if reached, ok := data.(bool); ok && reached {
			select {
			case eof <- struct{}{}:
			default:
			}
		}
	})

	// Backends without a socket play fire-and-forget; the session then
	// only tracks process exit.
	if err := listener.Start(); err == nil {
		defer listener.Stop()
	}

	select {
	case <-p.Wait():
	case <-eof:
		// mpv idles at end of stream instead of exiting
		_ = p.Close()
	}

	return atomic.LoadInt64(&last), nil
}
