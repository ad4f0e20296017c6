// Package probe checks that nameservers answer DNS queries and measures
// their latency.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/user/dns-switcher/internal/logger"
)

const (
	defaultTimeout = 3 * time.Second
	defaultDomain  = "google.com"
)

var (
	// ErrNoServers is returned when there is nothing to probe.
	ErrNoServers = errors.New("probe: no servers to check")

	// errCheckAborted marks a result whose check did not complete.
	errCheckAborted = errors.New("probe: check aborted")
)

// Result is the health of a single nameserver.
type Result struct {
	Server  string
	Online  bool
	Latency time.Duration

	// Err is non-nil when the server did not answer or answered with a
	// failure code.
	Err error
}

// Prober sends a test query to each nameserver.
type Prober struct {
	client *dns.Client
	domain string
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the per-query timeout. The default is 3 seconds.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

// WithDomain sets the name that is resolved. The default is google.com.
func WithDomain(domain string) Option {
	return func(p *Prober) {
		if domain != "" {
			p.domain = domain
		}
	}
}

// New creates a Prober using UDP queries.
func New(opts ...Option) *Prober {
	p := &Prober{
		client: &dns.Client{Net: "udp", Timeout: defaultTimeout},
		domain: defaultDomain,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe checks all servers concurrently. Results keep the order of servers.
func (p *Prober) Probe(ctx context.Context, servers []string) ([]Result, error) {
	if len(servers) == 0 {
		return nil, ErrNoServers
	}

	results := make([]Result, len(servers))
	var wg sync.WaitGroup
	for i, server := range servers {
		i, server := i, server
		results[i] = Result{Server: server, Err: errCheckAborted}
		wg.Add(1)
		logger.SafeGo("probe-"+server, func() {
			defer wg.Done()
			results[i] = p.check(ctx, server)
		})
	}
	wg.Wait()

	return results, ctx.Err()
}

func (p *Prober) check(ctx context.Context, server string) Result {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(p.domain), dns.TypeA)
	msg.RecursionDesired = true

	start := time.Now()
	resp, _, err := p.client.ExchangeContext(ctx, msg, withPort(server))
	latency := time.Since(start)

	if err != nil {
		return Result{Server: server, Err: err}
	}
	if resp.Rcode != dns.RcodeSuccess {
		return Result{
			Server: server,
			Err:    fmt.Errorf("unexpected response code: %s", dns.RcodeToString[resp.Rcode]),
		}
	}
	return Result{Server: server, Online: true, Latency: latency}
}

// withPort appends the DNS port when server has none.
func withPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, "53")
}
