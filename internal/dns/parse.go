package dns

import (
	"regexp"
	"strings"
)

// scopedMarker opens the per-interface section of `scutil --dns`.
const scopedMarker = "DNS configuration (for scoped queries)"

var nameserverRe = regexp.MustCompile(`nameserver\[\d+\] : (\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)

// ParseScutilDNS extracts the scoped nameservers from `scutil --dns` output,
// in the order they appear. A section without nameservers yields an empty
// list; a missing section is an error.
func ParseScutilDNS(output string) (ServerList, error) {
	idx := strings.Index(output, scopedMarker)
	if idx < 0 {
		return nil, ErrMarkerNotFound
	}

	servers := ServerList{}
	for _, m := range nameserverRe.FindAllStringSubmatch(output[idx+len(scopedMarker):], -1) {
		servers = append(servers, m[1])
	}
	return servers, nil
}
