package common

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine tracked by wg, with panic recovery.
// A panic is logged and swallowed so sibling goroutines and the server keep running;
// wg.Done is always called.
//
// Example:
//
//	var wg sync.WaitGroup
//	common.SafeGo(&wg, logger, "enrichPlace", func() {
//	    results[i] = enrich(ctx, summaries[i])
//	})
//	wg.Wait()
func SafeGo(wg *sync.WaitGroup, logger arbor.ILogger, name string, fn func()) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				buf := make([]byte, 4096)
				n := runtime.Stack(buf, false)
				stackTrace := string(buf[:n])

				if logger != nil {
					logger.Error().
						Str("goroutine", name).
						Str("panic", fmt.Sprintf("%v", r)).
						Str("stack", stackTrace).
						Msg("Recovered from panic in goroutine - continuing service operation")
				} else {
					fmt.Fprintf(os.Stderr, "PANIC in goroutine %s: %v\n%s\n", name, r, stackTrace)
				}
			}
		}()

		fn()
	}()
}
