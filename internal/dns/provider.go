package dns

import "fmt"

// ProviderID identifies a known DNS provider.
type ProviderID string

// CustomID is reserved for the user-defined entry and never names a provider.
const CustomID ProviderID = "custom"

const (
	ProviderGoogle     ProviderID = "google"
	ProviderCloudflare ProviderID = "cloudflare"
	ProviderQuad9      ProviderID = "quad9"
)

// Provider is a named, fixed list of nameservers.
type Provider struct {
	ID      ProviderID
	Name    string
	Servers ServerList
}

// ProviderTable maps provider ids to their nameservers.
// It is immutable once built; lookups keep table order.
type ProviderTable struct {
	providers []Provider
}

// DefaultProviders returns the built-in provider table.
func DefaultProviders() *ProviderTable {
	t, err := NewProviderTable(
		Provider{ID: ProviderGoogle, Name: "Google", Servers: ServerList{"8.8.8.8", "8.8.4.4"}},
		Provider{ID: ProviderCloudflare, Name: "Cloudflare", Servers: ServerList{"1.1.1.1", "1.0.0.1"}},
		Provider{ID: ProviderQuad9, Name: "Quad9", Servers: ServerList{"9.9.9.9", "149.112.112.112"}},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// NewProviderTable builds a table from the given providers.
func NewProviderTable(providers ...Provider) (*ProviderTable, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("provider table is empty")
	}

	seen := make(map[ProviderID]bool, len(providers))
	t := &ProviderTable{providers: make([]Provider, 0, len(providers))}
	for _, p := range providers {
		switch {
		case p.ID == "":
			return nil, fmt.Errorf("provider id is required")
		case p.ID == CustomID:
			return nil, fmt.Errorf("provider id %q is reserved", p.ID)
		case seen[p.ID]:
			return nil, fmt.Errorf("duplicate provider id %q", p.ID)
		case len(p.Servers) == 0:
			return nil, fmt.Errorf("provider %q has no servers", p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" {
			p.Name = string(p.ID)
		}
		p.Servers = p.Servers.Clone()
		t.providers = append(t.providers, p)
	}
	return t, nil
}

// Lookup returns a copy of the servers for id.
func (t *ProviderTable) Lookup(id ProviderID) (ServerList, bool) {
	p, ok := t.Get(id)
	if !ok {
		return nil, false
	}
	return p.Servers, true
}

// Get returns the provider registered under id.
func (t *ProviderTable) Get(id ProviderID) (Provider, bool) {
	for _, p := range t.providers {
		if p.ID == id {
			p.Servers = p.Servers.Clone()
			return p, true
		}
	}
	return Provider{}, false
}

// ReverseLookup returns the first provider whose servers equal list in order.
func (t *ProviderTable) ReverseLookup(list ServerList) (ProviderID, bool) {
	for _, p := range t.providers {
		if p.Servers.Equal(list) {
			return p.ID, true
		}
	}
	return "", false
}

// Providers returns the providers in table order.
func (t *ProviderTable) Providers() []Provider {
	out := make([]Provider, len(t.providers))
	for i, p := range t.providers {
		p.Servers = p.Servers.Clone()
		out[i] = p
	}
	return out
}
