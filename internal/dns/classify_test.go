package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	table := DefaultProviders()
	custom := ServerList{"192.168.1.53", "192.168.1.54"}

	tests := []struct {
		name string
		list ServerList
		want Classification
	}{
		{"google", ServerList{"8.8.8.8", "8.8.4.4"}, KnownProvider(ProviderGoogle)},
		{"cloudflare", ServerList{"1.1.1.1", "1.0.0.1"}, KnownProvider(ProviderCloudflare)},
		{"custom", ServerList{"192.168.1.53", "192.168.1.54"}, Custom},
		{"google reversed", ServerList{"8.8.4.4", "8.8.8.8"}, Unknown},
		{"custom reversed", ServerList{"192.168.1.54", "192.168.1.53"}, Unknown},
		{"google prefix", ServerList{"8.8.8.8"}, Unknown},
		{"empty", ServerList{}, Unknown},
		{"nil", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.list, custom, table))
		})
	}
}

func TestClassifyCustomTakesPrecedence(t *testing.T) {
	shared := ServerList{"9.9.9.9", "149.112.112.112"}
	table, err := NewProviderTable(Provider{ID: "quad9", Servers: shared})
	require.NoError(t, err)

	assert.Equal(t, Custom, Classify(shared, shared, table))
	assert.Equal(t, KnownProvider("quad9"), Classify(shared, ServerList{"10.0.0.1"}, table))
}

func TestClassifyNilTable(t *testing.T) {
	assert.Equal(t, Unknown, Classify(ServerList{"8.8.8.8", "8.8.4.4"}, ServerList{"10.0.0.1"}, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "provider", KindProvider.String())
	assert.Equal(t, "custom", KindCustom.String())
}
