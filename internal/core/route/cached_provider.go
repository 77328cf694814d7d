package route

import (
	"context"
	"strings"
	"sync"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/util"
)

// CachedProvider wraps another provider and remembers results per endpoint pair
type CachedProvider struct {
	provider RouteProvider

	mu    sync.RWMutex
	cache map[string]*model.RouteResult
}

// NewCachedProvider creates a new cached route provider
func NewCachedProvider(provider RouteProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    make(map[string]*model.RouteResult),
	}
}

// GetProviderName returns the wrapped provider's name
func (p *CachedProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}

// Route returns a cached result when the same endpoints were asked before
func (p *CachedProvider) Route(ctx context.Context, req model.RouteRequest) (*model.RouteResult, error) {
	key := cacheKey(req)

	p.mu.RLock()
	cached, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		util.LogDebugf("Using cached route for %s", key)
		return cached, nil
	}

	result, err := p.provider.Route(ctx, req)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[key] = result
	p.mu.Unlock()
	return result, nil
}

// Clear drops all cached routes
func (p *CachedProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]*model.RouteResult)
}

func cacheKey(req model.RouteRequest) string {
	normalize := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	}
	return normalize(req.Origin) + "|" + normalize(req.Destination)
}
