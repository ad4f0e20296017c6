// Package config handles loading and validation of the custom DNS entry.
package config

import "github.com/user/dns-switcher/internal/dns"

// FileName is the name of the configuration file.
const FileName = "dns_config.yaml"

// CustomDNS is the user-defined DNS entry read from the configuration file.
type CustomDNS struct {
	Servers dns.ServerList `yaml:"custom_dns"`
	Name    string         `yaml:"custom_dns_name"`

	// NetworkService is the macOS network service DNS is applied to.
	// Empty means "Wi-Fi"; "auto" picks the first enabled service.
	NetworkService string `yaml:"network_service,omitempty"`
}
