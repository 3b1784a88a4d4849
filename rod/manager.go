package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRecycleAfter is the number of pages rendered before the browser is
// replaced with a fresh process.
const DefaultRecycleAfter = 50

// BrowserManager owns the headless Chrome process behind a Fetcher and
// replaces it after a fixed number of pages. A replaced browser keeps
// serving the pages already open on it and is shut down when the last of
// them is released.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu           sync.Mutex
	current      *generation
	recycleAfter int64
	closed       bool
}

// generation is one browser process and the pages it has served.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int64
	inFlight int
	retired  bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithRecycleAfter sets how many pages a browser renders before it is
// replaced. Values below 1 are ignored.
func WithRecycleAfter(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.recycleAfter = n
		}
	}
}

// NewBrowserManager launches a headless browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{recycleAfter: DefaultRecycleAfter}
	for _, opt := range opts {
		opt(bm)
	}

	gen, err := launch()
	if err != nil {
		return nil, err
	}
	bm.current = gen
	return bm, nil
}

// Acquire returns the browser to open the next page on, replacing the
// current one first if it has rendered its quota of pages. The returned
// release func must be called once the page is closed.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, fmt.Errorf("browser manager closed")
	}
	if bm.current.pages >= bm.recycleAfter {
		bm.recycle()
	}

	gen := bm.current
	gen.pages++
	gen.inFlight++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(gen) })
	}
	return gen.browser, release, nil
}

// Close shuts the browser down. Pages still open are interrupted. Close is
// safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.shutdown()
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed. It exists so tests can verify cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

func (bm *BrowserManager) release(gen *generation) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	gen.inFlight--
	if gen.retired && gen.inFlight == 0 {
		_ = gen.shutdown()
	}
}

// recycle swaps in a fresh browser. The old one stays in service if the
// new launch fails. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	gen, err := launch()
	if err != nil {
		return
	}

	old := bm.current
	old.retired = true
	if old.inFlight == 0 {
		_ = old.shutdown()
	}
	bm.current = gen
}

// launch starts Chrome with flags that keep background tabs rendering at
// full speed.
func launch() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &generation{browser: browser, launcher: l}, nil
}

func (g *generation) shutdown() error {
	err := g.browser.Close()
	g.launcher.Kill()
	return err
}
