package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoCustomDNS is returned when custom_dns is missing or empty.
	ErrNoCustomDNS = errors.New("custom_dns must list at least one server")

	// ErrNoCustomName is returned when custom_dns_name is missing.
	ErrNoCustomName = errors.New("custom_dns_name is required")
)

// Validate validates the custom DNS entry.
func (c *CustomDNS) Validate() error {
	if len(c.Servers) == 0 {
		return ErrNoCustomDNS
	}
	for i, s := range c.Servers {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("custom_dns[%d] is empty", i)
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNoCustomName
	}
	return nil
}
