// Package stackview defines the stack display surface and the plot
// image cache backing the graphics cells.
package stackview

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mfagan/keypad/internal/cache/lru"
)

// View renders the value stack. Lines arrive bottom-of-stack first, so
// the top of the stack is the last line, matching how the stack grows on
// screen.
type View interface {
	// Refresh replaces the displayed stack with lines.
	Refresh(lines []string)
}

// Nop is a View that discards everything. Useful in tests and headless
// runs.
type Nop struct{}

// Refresh discards the lines.
func (Nop) Refresh([]string) {}

// DefaultPlotCapacity bounds the plot cache when no configuration
// overrides it.
const DefaultPlotCapacity = 16

// PlotCache caches rendered plot images by payload content. Re-plotting
// the same stack element is common (toggling between elements, undo and
// redo), and renders are expensive, so a small LRU amortizes them.
type PlotCache struct {
	cache *lru.Cache[string, []byte]
}

// NewPlotCache creates a plot cache holding at most capacity images.
func NewPlotCache(capacity int) (*PlotCache, error) {
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &PlotCache{cache: c}, nil
}

// Render returns the image for payload, calling render only on a cache
// miss. Render errors are not cached.
func (p *PlotCache) Render(payload []byte, render func() ([]byte, error)) ([]byte, error) {
	k := plotKey(payload)
	if img, ok := p.cache.Get(k); ok {
		return img, nil
	}

	img, err := render()
	if err != nil {
		return nil, err
	}
	p.cache.Set(k, img)
	return img, nil
}

// Len returns the number of cached images.
func (p *PlotCache) Len() int {
	return p.cache.Len()
}

// plotKey hashes the payload so the map key stays small regardless of
// plot description size.
func plotKey(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
