package dns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/user/dns-switcher/internal/logger"
)

const (
	scutilBinary       = "scutil"
	networksetupBinary = "networksetup"

	// DefaultNetworkService is the service DNS is applied to unless configured.
	DefaultNetworkService = "Wi-Fi"

	// AutoNetworkService selects the first enabled network service.
	AutoNetworkService = "auto"

	// emptySentinel tells networksetup to fall back to DHCP-provided DNS.
	emptySentinel = "Empty"
)

// Manager reads and applies the system DNS configuration through the
// macOS command line tools.
type Manager struct {
	mu      sync.Mutex
	runner  CommandRunner
	service string
}

// NewManager creates a manager that applies DNS to the given network
// service. An empty service means DefaultNetworkService; AutoNetworkService
// resolves the primary service on every apply.
func NewManager(runner CommandRunner, service string) *Manager {
	if runner == nil {
		runner = ExecRunner{}
	}
	if service == "" {
		service = DefaultNetworkService
	}
	return &Manager{
		runner:  runner,
		service: service,
	}
}

// QueryActiveDNS returns the nameservers of the scoped resolver configuration.
func (m *Manager) QueryActiveDNS(ctx context.Context) (ServerList, error) {
	stdout, stderr, err := m.runner.Run(ctx, scutilBinary, "--dns")
	if err != nil {
		return nil, &QueryError{Detail: string(stderr), Err: err}
	}

	servers, err := ParseScutilDNS(string(stdout))
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return servers, nil
}

// ApplyDNS sets the nameservers of the network service. An empty list
// restores automatic DNS.
func (m *Manager) ApplyDNS(ctx context.Context, servers ServerList) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	service, err := m.resolveService(ctx)
	if err != nil {
		return &ApplyError{Servers: servers.Clone(), Err: err}
	}

	args := []string{"-setdnsservers", service}
	if len(servers) == 0 {
		args = append(args, emptySentinel)
	} else {
		args = append(args, servers...)
	}

	logger.DNS("networksetup %s", strings.Join(args, " "))
	stdout, stderr, err := m.runner.Run(ctx, networksetupBinary, args...)
	if err != nil {
		return &ApplyError{
			Servers: servers.Clone(),
			Detail:  strings.TrimSpace(string(stderr) + "\n" + string(stdout)),
			Err:     err,
		}
	}
	return nil
}

// FlushCache flushes the resolver cache so the new servers take effect.
func (m *Manager) FlushCache(ctx context.Context) error {
	if _, stderr, err := m.runner.Run(ctx, "dscacheutil", "-flushcache"); err != nil {
		return fmt.Errorf("failed to flush DNS cache: %w: %s", err, strings.TrimSpace(string(stderr)))
	}
	// mDNSResponder might not be running
	if _, _, err := m.runner.Run(ctx, "killall", "-HUP", "mDNSResponder"); err != nil {
		logger.Debug("killall mDNSResponder: %v", err)
	}
	return nil
}

// Service returns the configured network service name.
func (m *Manager) Service() string {
	return m.service
}

func (m *Manager) resolveService(ctx context.Context) (string, error) {
	if !strings.EqualFold(m.service, AutoNetworkService) {
		return m.service, nil
	}
	return m.primaryNetworkService(ctx)
}

// primaryNetworkService returns the first enabled service in service order.
func (m *Manager) primaryNetworkService(ctx context.Context) (string, error) {
	stdout, stderr, err := m.runner.Run(ctx, networksetupBinary, "-listallnetworkservices")
	if err != nil {
		return "", fmt.Errorf("failed to list network services: %w: %s", err, strings.TrimSpace(string(stderr)))
	}

	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "An asterisk") {
			continue
		}
		// disabled services are prefixed with '*'
		if !strings.HasPrefix(line, "*") {
			return line, nil
		}
	}
	return "", ErrNoNetworkService
}
