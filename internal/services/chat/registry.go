package chat

import (
	"sync"

	"github.com/culinai/chef/internal/i18n"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry keeps one Conversation per device, evicting the least recently
// used once full.
type Registry struct {
	mu       sync.Mutex
	provider Provider
	cache    *lru.Cache[string, *Conversation]
}

func NewRegistry(provider Provider, size int) (*Registry, error) {
	cache, err := lru.New[string, *Conversation](size)
	if err != nil {
		return nil, err
	}
	return &Registry{provider: provider, cache: cache}, nil
}

// Get returns the device's conversation, creating it in lang if absent.
func (r *Registry) Get(deviceID string, lang i18n.Language) *Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conv, ok := r.cache.Get(deviceID); ok {
		return conv
	}
	conv := NewConversation(r.provider, lang)
	r.cache.Add(deviceID, conv)
	return conv
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
