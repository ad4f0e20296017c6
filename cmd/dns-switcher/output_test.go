package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/user/dns-switcher/internal/config"
	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
	"github.com/user/dns-switcher/internal/probe"
)

func TestWriteStatusText(t *testing.T) {
	var buf bytes.Buffer
	snap := core.Snapshot{
		Status:         core.StatusSuccess,
		Servers:        dns.ServerList{"1.1.1.1", "1.0.0.1"},
		Classification: dns.KnownProvider(dns.ProviderCloudflare),
		Label:          "Cloudflare",
	}

	require.NoError(t, writeStatus(&buf, snap, formatText))
	assert.Equal(t, "DNS: Cloudflare\n  1.1.1.1\n  1.0.0.1\n", buf.String())
}

func TestWriteStatusTextAutomatic(t *testing.T) {
	var buf bytes.Buffer
	snap := core.Snapshot{Status: core.StatusSuccess, Servers: dns.ServerList{}, Label: "Unknown"}

	require.NoError(t, writeStatus(&buf, snap, formatText))
	assert.Equal(t, "DNS: automatic (no manual servers)\n", buf.String())
}

func TestWriteStatusYAML(t *testing.T) {
	var buf bytes.Buffer
	snap := core.Snapshot{
		Status:         core.StatusSuccess,
		Servers:        dns.ServerList{"9.9.9.9"},
		Classification: dns.Custom,
		Label:          "Home",
	}

	require.NoError(t, writeStatus(&buf, snap, formatYAML))

	var got statusView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, "custom", got.Kind)
	assert.Empty(t, got.Provider)
	assert.Equal(t, "Home", got.Label)
	assert.Equal(t, []string{"9.9.9.9"}, got.Servers)
}

func TestStatusViewError(t *testing.T) {
	v := newStatusView(core.Snapshot{
		Status: core.StatusError,
		Label:  "Unknown",
		Err:    errors.New("scutil failed"),
	})

	assert.Equal(t, "error", v.Status)
	assert.Equal(t, "unknown", v.Kind)
	assert.Equal(t, []string{}, v.Servers)
	assert.Equal(t, "scutil failed", v.Error)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("yaml"))
	assert.Error(t, validateFormat("json"))
}

func TestWriteProviders(t *testing.T) {
	var buf bytes.Buffer
	custom := config.CustomDNS{Servers: dns.ServerList{"10.0.0.1"}, Name: "Office"}

	require.NoError(t, writeProviders(&buf, dns.DefaultProviders().Providers(), custom))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "google")
	assert.Contains(t, out, "8.8.8.8, 8.8.4.4")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "Office")
	assert.Contains(t, out, "10.0.0.1")
}

func TestWriteProbe(t *testing.T) {
	var buf bytes.Buffer
	results := []probe.Result{
		{Server: "1.1.1.1", Online: true, Latency: 12 * time.Millisecond},
		{Server: "10.9.9.9", Err: errors.New("i/o timeout")},
	}

	require.NoError(t, writeProbe(&buf, results))

	out := buf.String()
	assert.Contains(t, out, "1.1.1.1")
	assert.Contains(t, out, "online")
	assert.Contains(t, out, "12ms")
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "i/o timeout")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"tray", "status", "use", "clear", "providers", "probe", "logs"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestProvidersCommandMissingConfig(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"providers", "--config", t.TempDir() + "/missing.yaml"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestTrayConfigErrorBeforeLogCapture(t *testing.T) {
	root := newRootCommand()
	var stderr bytes.Buffer
	root.SetArgs([]string{"tray", "--config", t.TempDir() + "/missing.yaml"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&stderr)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
	assert.Contains(t, stderr.String(), "missing.yaml")

	// the log file (and the stderr redirect) must not have been opened
	assert.Empty(t, logger.GetLogPath())
}
