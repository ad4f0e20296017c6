// Package dns reads and writes the system resolver configuration and
// classifies nameserver lists against known providers.
package dns

// ServerList is an ordered list of IPv4 nameserver addresses.
// Order matters: it is the order handed to the OS and the order compared
// during classification.
type ServerList []string

// Equal reports whether both lists hold the same addresses in the same order.
// A nil list equals an empty one.
func (l ServerList) Equal(other ServerList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the list.
func (l ServerList) Clone() ServerList {
	if l == nil {
		return nil
	}
	out := make(ServerList, len(l))
	copy(out, l)
	return out
}
