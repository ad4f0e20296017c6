package probe

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestDNSServer starts a local DNS server and returns its address.
func startTestDNSServer(t *testing.T, handler dns.HandlerFunc) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err, "failed to listen")

	server := &dns.Server{
		PacketConn: pc,
		Handler:    handler,
	}

	started := make(chan struct{})
	server.NotifyStartedFunc = func() { close(started) }
	go func() {
		_ = server.ActivateAndServe()
	}()
	<-started

	t.Cleanup(func() { _ = server.Shutdown() })
	return pc.LocalAddr().String()
}

func answerA(w dns.ResponseWriter, r *dns.Msg) {
	m := new(dns.Msg)
	m.SetReply(r)
	m.Answer = append(m.Answer, &dns.A{
		Hdr: dns.RR_Header{
			Name:   r.Question[0].Name,
			Rrtype: dns.TypeA,
			Class:  dns.ClassINET,
			Ttl:    60,
		},
		A: net.ParseIP("1.2.3.4"),
	})
	_ = w.WriteMsg(m)
}

func TestProbeOnline(t *testing.T) {
	asked := make(chan string, 1)
	addr := startTestDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		select {
		case asked <- r.Question[0].Name:
		default:
		}
		answerA(w, r)
	})

	p := New(WithDomain("example.com"), WithTimeout(time.Second))
	results, err := p.Probe(context.Background(), []string{addr})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, results[0].Online)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, addr, results[0].Server)
	assert.Equal(t, "example.com.", <-asked)
}

func TestProbeFailureCode(t *testing.T) {
	addr := startTestDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeServerFailure)
		_ = w.WriteMsg(m)
	})

	results, err := New().Probe(context.Background(), []string{addr})
	require.NoError(t, err)
	assert.False(t, results[0].Online)
	assert.ErrorContains(t, results[0].Err, "SERVFAIL")
}

func TestProbeKeepsOrder(t *testing.T) {
	online := startTestDNSServer(t, answerA)
	silent := startTestDNSServer(t, func(w dns.ResponseWriter, r *dns.Msg) {})

	results, err := New(WithTimeout(200*time.Millisecond)).Probe(context.Background(), []string{silent, online})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, silent, results[0].Server)
	assert.False(t, results[0].Online)
	assert.Error(t, results[0].Err)

	assert.Equal(t, online, results[1].Server)
	assert.True(t, results[1].Online)
}

func TestProbeNoServers(t *testing.T) {
	_, err := New().Probe(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoServers))
}

func TestWithPort(t *testing.T) {
	assert.Equal(t, "8.8.8.8:53", withPort("8.8.8.8"))
	assert.Equal(t, "127.0.0.1:5353", withPort("127.0.0.1:5353"))
}
