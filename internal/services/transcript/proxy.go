package transcript

import "sync/atomic"

// ProxyConfig holds rotating-proxy credentials. They are passed to the
// Provider as-is; this package never interprets them.
type ProxyConfig struct {
	Username string
	Password string
}

// Enabled reports whether both credentials are set.
func (p *ProxyConfig) Enabled() bool {
	return p != nil && p.Username != "" && p.Password != ""
}

// ProxyStore holds the process-wide proxy configuration.
//
// Go Pattern: atomic.Pointer swaps an immutable snapshot. A gateway call
// loads the pointer once and threads that value through every provider
// request it makes, so a concurrent update can never be observed halfway
// through a call.
type ProxyStore struct {
	current atomic.Pointer[ProxyConfig]
}

// NewProxyStore creates a store with an optional initial configuration.
func NewProxyStore(initial *ProxyConfig) *ProxyStore {
	s := &ProxyStore{}
	if initial != nil {
		s.Set(*initial)
	}
	return s
}

// Load returns the current snapshot, or nil when no proxy is configured.
func (s *ProxyStore) Load() *ProxyConfig {
	return s.current.Load()
}

// Set replaces the snapshot. Calls already in flight keep the old one.
func (s *ProxyStore) Set(cfg ProxyConfig) {
	s.current.Store(&cfg)
}
