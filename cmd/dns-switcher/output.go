package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/dns-switcher/internal/config"
	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/probe"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatText, formatYAML)
	}
}

// statusView is the machine-readable form of a snapshot.
type statusView struct {
	Status   string   `yaml:"status"`
	Kind     string   `yaml:"kind"`
	Provider string   `yaml:"provider,omitempty"`
	Label    string   `yaml:"label"`
	Servers  []string `yaml:"servers"`
	Error    string   `yaml:"error,omitempty"`
}

func newStatusView(snap core.Snapshot) statusView {
	v := statusView{
		Status:   string(snap.Status),
		Kind:     snap.Classification.Kind.String(),
		Provider: string(snap.Classification.Provider),
		Label:    snap.Label,
		Servers:  snap.Servers,
	}
	if v.Servers == nil {
		v.Servers = []string{}
	}
	if snap.Err != nil {
		v.Error = snap.Err.Error()
	}
	return v
}

func writeStatus(w io.Writer, snap core.Snapshot, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newStatusView(snap)); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(snap.Servers) == 0 {
		_, err := fmt.Fprintln(w, "DNS: automatic (no manual servers)")
		return err
	}
	if _, err := fmt.Fprintf(w, "DNS: %s\n", snap.Label); err != nil {
		return err
	}
	for _, s := range snap.Servers {
		if _, err := fmt.Fprintf(w, "  %s\n", s); err != nil {
			return err
		}
	}
	return nil
}

func writeProviders(w io.Writer, providers []dns.Provider, custom config.CustomDNS) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSERVERS")
	for _, p := range providers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.Servers, ", "))
	}
	fmt.Fprintf(tw, "%s\t%s\t%s\n", dns.CustomID, custom.Name, strings.Join(custom.Servers, ", "))
	return tw.Flush()
}

func writeProbe(w io.Writer, results []probe.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SERVER\tSTATUS\tLATENCY")
	for _, r := range results {
		if !r.Online {
			fmt.Fprintf(tw, "%s\toffline\t%v\n", r.Server, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\tonline\t%s\n", r.Server, r.Latency.Round(time.Millisecond))
	}
	return tw.Flush()
}
