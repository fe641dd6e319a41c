package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockProvider struct {
	name   string
	errOut error
}

func (m MockProvider) Name() string                                     { return m.name }
func (m MockProvider) Ping(ctx context.Context) error                   { return m.errOut }
func (m MockProvider) ListModels(ctx context.Context) ([]string, error) { return nil, nil }
func (m MockProvider) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	return "", nil
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		providers  []Provider
		wantOnline []bool
	}{
		{
			name: "mixed statuses",
			providers: []Provider{
				MockProvider{name: "ok_prov", errOut: nil},
				MockProvider{name: "bad_prov", errOut: &ProviderAuthError{ProviderName: "bad_prov", Msg: "no key"}},
			},
			wantOnline: []bool{true, false},
		},
		{
			name:       "no providers",
			providers:  nil,
			wantOnline: []bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := CheckAll(context.Background(), tt.providers)
			assert.Equal(t, len(tt.wantOnline), len(results))
			for i, r := range results {
				assert.Equal(t, tt.providers[i].Name(), r.Name)
				assert.Equal(t, tt.wantOnline[i], r.IsOnline)
				if !r.IsOnline {
					assert.Equal(t, "no key", r.ErrorMsg)
				}
			}
		})
	}
}
