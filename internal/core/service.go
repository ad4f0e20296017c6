// Package core provides the DNS switching state machine.
package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/dns-switcher/internal/config"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
)

// Status represents the state of the last DNS operation.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Resolver is the system DNS boundary used by the service.
// *dns.Manager implements it.
type Resolver interface {
	QueryActiveDNS(ctx context.Context) (dns.ServerList, error)
	ApplyDNS(ctx context.Context, servers dns.ServerList) error
	FlushCache(ctx context.Context) error
}

// StatusListener is a callback invoked when the DNS status changes.
type StatusListener func(snap Snapshot)

// Service owns the current DNS status, server list and classification.
//
// Every operation bumps a generation counter and runs the blocking OS call
// in a goroutine. A completion is applied only if no newer operation
// started in the meantime, so a stale result never overwrites a newer one.
type Service struct {
	mu             sync.RWMutex
	status         Status
	servers        dns.ServerList
	classification dns.Classification
	generation     uint64
	seq            uint64
	lastError      error
	custom         config.CustomDNS
	table          *dns.ProviderTable
	resolver       Resolver
	ctx            context.Context
	cancel         context.CancelFunc
	inflight       sync.WaitGroup
	statusListener StatusListener
}

// NewService creates a service in the loading state with an empty list.
// A nil table means dns.DefaultProviders.
func NewService(resolver Resolver, table *dns.ProviderTable, custom config.CustomDNS) *Service {
	if table == nil {
		table = dns.DefaultProviders()
	}
	custom.Servers = custom.Servers.Clone()

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		status:   StatusLoading,
		custom:   custom,
		table:    table,
		resolver: resolver,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetStatusListener sets a callback that will be called on every status change.
func (s *Service) SetStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusListener = listener
}

// Start reads the active DNS configuration for the first time.
func (s *Service) Start() {
	logger.Info("DNS service starting (custom %q: %v)", s.custom.Name, []string(s.custom.Servers))
	s.Refresh()
}

// Stop cancels in-flight commands and discards their results.
func (s *Service) Stop() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()

	s.cancel()
	logger.Info("DNS service stopped")
}

// Wait blocks until every dispatched operation, including the refresh
// chained after an apply, has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// Providers returns the known providers in display order.
func (s *Service) Providers() []dns.Provider {
	return s.table.Providers()
}

// Custom returns the user-defined DNS entry.
func (s *Service) Custom() config.CustomDNS {
	c := s.custom
	c.Servers = c.Servers.Clone()
	return c
}

// dispatch runs fn for generation gen in a tracked goroutine. A panic in
// fn ends the generation in StatusError.
func (s *Service) dispatch(name string, gen uint64, fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer logger.RecoverWith(name, func(r any) {
			s.fail(gen, fmt.Errorf("%s: panic: %v", name, r))
		})
		fn()
	}()
}

// fail moves generation gen to StatusError unless it was superseded.
func (s *Service) fail(gen uint64, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.status = StatusError
	s.lastError = err
	notify := s.publishLocked()
	s.mu.Unlock()

	notify()
}
