package core

import (
	"fmt"
	"strings"

	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
)

// Target selects what SwitchTo applies: a table provider or the custom entry.
type Target struct {
	Provider dns.ProviderID
}

// CustomTarget selects the user-defined servers.
func CustomTarget() Target {
	return Target{Provider: dns.CustomID}
}

// ProviderTarget selects a provider from the table.
func ProviderTarget(id dns.ProviderID) Target {
	return Target{Provider: id}
}

// ParseTarget maps user input such as "google" or "custom" to a Target.
func ParseTarget(s string) Target {
	return Target{Provider: dns.ProviderID(strings.ToLower(strings.TrimSpace(s)))}
}

// IsCustom reports whether t selects the custom entry.
func (t Target) IsCustom() bool {
	return t.Provider == dns.CustomID
}

func (t Target) String() string {
	return string(t.Provider)
}

// Refresh re-reads the active DNS servers. The list is cleared right away
// so stale servers are never shown while the query runs.
func (s *Service) Refresh() {
	s.mu.Lock()
	s.startRefreshLocked()
	notify := s.publishLocked()
	s.mu.Unlock()

	notify()
}

// Clear restores automatic DNS and then re-reads the result.
func (s *Service) Clear() {
	logger.DNS("Clearing DNS servers")
	s.apply("clear", nil)
}

// SwitchTo applies the servers of target and then re-reads the result.
// An unknown provider is rejected with dns.ErrUnknownProvider before any
// state changes.
func (s *Service) SwitchTo(target Target) error {
	servers, err := s.resolveTarget(target)
	if err != nil {
		logger.Warning("Switch rejected: %v", err)
		return err
	}

	logger.DNS("Switching to %s: %v", target, []string(servers))
	s.apply("switch-"+target.String(), servers)
	return nil
}

func (s *Service) resolveTarget(target Target) (dns.ServerList, error) {
	if target.IsCustom() {
		return s.custom.Servers.Clone(), nil
	}
	servers, ok := s.table.Lookup(target.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dns.ErrUnknownProvider, target.Provider)
	}
	return servers, nil
}

// beginLocked starts a new generation in the loading state.
func (s *Service) beginLocked() uint64 {
	s.generation++
	s.status = StatusLoading
	s.servers = nil
	s.classification = dns.Unknown
	s.lastError = nil
	return s.generation
}

func (s *Service) startRefreshLocked() {
	gen := s.beginLocked()
	s.dispatch("refresh", gen, func() {
		s.finishRefresh(gen)
	})
}

func (s *Service) finishRefresh(gen uint64) {
	servers, err := s.resolver.QueryActiveDNS(s.ctx)
	if err != nil {
		logger.Error("DNS query failed: %v", err)
		s.fail(gen, err)
		return
	}
	if servers == nil {
		servers = dns.ServerList{}
	}
	// custom and table never change after construction
	classification := dns.Classify(servers, s.custom.Servers, s.table)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		logger.Debug("Discarding superseded refresh #%d", gen)
		return
	}
	s.servers = servers.Clone()
	s.classification = classification
	s.status = StatusSuccess
	label := s.labelLocked()
	notify := s.publishLocked()
	s.mu.Unlock()

	logger.DNS("Active servers %v (%s)", []string(servers), label)
	notify()
}

func (s *Service) apply(name string, servers dns.ServerList) {
	s.mu.Lock()
	gen := s.beginLocked()
	s.dispatch(name, gen, func() {
		s.finishApply(gen, servers)
	})
	notify := s.publishLocked()
	s.mu.Unlock()

	notify()
}

func (s *Service) finishApply(gen uint64, servers dns.ServerList) {
	if err := s.resolver.ApplyDNS(s.ctx, servers); err != nil {
		// No corrective refresh: it could report the old servers as a success.
		logger.Error("%v", err)
		s.fail(gen, err)
		return
	}
	if err := s.resolver.FlushCache(s.ctx); err != nil {
		logger.Warning("%v", err)
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		logger.Debug("Discarding superseded apply #%d", gen)
		return
	}
	s.startRefreshLocked()
	notify := s.publishLocked()
	s.mu.Unlock()

	notify()
}
