package mock

import "github.com/fwojciec/recipeset"

var _ recipeset.Windower = (*Windower)(nil)

// Windower is a mock implementation of recipeset.Windower.
type Windower struct {
	WindowFn func(html string) (*recipeset.ExtractedHTML, error)
}

func (w *Windower) Window(html string) (*recipeset.ExtractedHTML, error) {
	return w.WindowFn(html)
}
