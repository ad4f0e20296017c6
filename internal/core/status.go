package core

import "github.com/user/dns-switcher/internal/dns"

// Snapshot is a copy of the service state for display.
type Snapshot struct {
	Status         Status
	Servers        dns.ServerList
	Classification dns.Classification

	// Label names the classification: the provider name, the custom entry
	// name, or "Unknown".
	Label      string
	CustomName string

	// Generation increases with every operation.
	Generation uint64

	// Seq increases with every state transition. Listeners may be called
	// concurrently; a snapshot whose Seq is not greater than one already
	// rendered is stale.
	Seq uint64

	// Err is the cause of StatusError, for logs and tooltips.
	Err error
}

// Snapshot returns the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Status returns the current status.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		Status:         s.status,
		Servers:        s.servers.Clone(),
		Classification: s.classification,
		Label:          s.labelLocked(),
		CustomName:     s.custom.Name,
		Generation:     s.generation,
		Seq:            s.seq,
		Err:            s.lastError,
	}
}

func (s *Service) labelLocked() string {
	switch s.classification.Kind {
	case dns.KindCustom:
		return s.custom.Name
	case dns.KindProvider:
		if p, ok := s.table.Get(s.classification.Provider); ok {
			return p.Name
		}
		return string(s.classification.Provider)
	default:
		return "Unknown"
	}
}

// publishLocked records a state transition and captures it for the
// listener. The returned func delivers it and must be called after the
// lock is released.
func (s *Service) publishLocked() func() {
	s.seq++
	listener := s.statusListener
	snap := s.snapshotLocked()
	return func() {
		if listener != nil {
			listener(snap)
		}
	}
}
