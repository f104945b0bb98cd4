package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/nchci/hciflow/pkg/store"
)

// NewStore builds the session store from a URL. "memory" (or empty) selects
// the in-process store; redis:// URLs select Redis.
func NewStore(url string, ttl time.Duration) store.Store {
	switch {
	case url == "" || url == "memory":
		return store.NewMemory(ttl)
	case strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://"):
		s, err := store.NewRedis(url, ttl)
		if err != nil {
			panic(fmt.Errorf("failed to create redis store: %w", err))
		}

		return s
	default:
		panic("Unsupported store url: " + url)
	}
}
