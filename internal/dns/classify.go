package dns

// Kind is the category a server list falls into.
type Kind int

const (
	KindUnknown Kind = iota
	KindProvider
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Classification names the category of a server list. Provider is set only
// for KindProvider.
type Classification struct {
	Kind     Kind
	Provider ProviderID
}

// Unknown is the zero classification.
var Unknown = Classification{}

// Custom is the classification of the user-defined list.
var Custom = Classification{Kind: KindCustom}

// KnownProvider returns the classification for a table provider.
func KnownProvider(id ProviderID) Classification {
	return Classification{Kind: KindProvider, Provider: id}
}

// Classify determines which category list belongs to. The custom list is
// checked before the provider table.
func Classify(list, custom ServerList, table *ProviderTable) Classification {
	if list.Equal(custom) {
		return Custom
	}
	if table != nil {
		if id, ok := table.ReverseLookup(list); ok {
			return KnownProvider(id)
		}
	}
	return Unknown
}
