package schema

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Stale(t *testing.T) {
	registry, err := NewRegistry("2.0.0")
	require.NoError(t, err)

	tests := []struct {
		stored  string
		stale   bool
		wantErr error
	}{
		{stored: "1.0.0", stale: true},
		{stored: "1.9.9", stale: true},
		{stored: "2.0.0", stale: false},
		{stored: "2.1.0", wantErr: ErrFutureVersion},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			stale, err := registry.Stale(tt.stored)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stale, stale)
		})
	}

	_, err = registry.Stale("not-a-version")
	assert.Error(t, err)
}

func TestRegistry_Register(t *testing.T) {
	registry, err := NewRegistry("2.0.0")
	require.NoError(t, err)

	identity := func(content []byte) ([]byte, error) { return content, nil }

	assert.NoError(t, registry.Register("1.0.0", identity))
	assert.Error(t, registry.Register("2.0.0", identity))
	assert.Error(t, registry.Register("3.0.0", identity))
	assert.Error(t, registry.Register("bogus", identity))
}

func TestRegistry_Transform(t *testing.T) {
	registry, err := NewRegistry("2.0.0")
	require.NoError(t, err)
	require.NoError(t, registry.Register("1.0.0", func(content []byte) ([]byte, error) {
		return bytes.ToUpper(content), nil
	}))

	out, err := registry.Transform([]byte(`abc`), "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []byte(`ABC`), out)

	_, err = registry.Transform([]byte(`abc`), "1.5.0")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestNewRegistry_InvalidVersion(t *testing.T) {
	_, err := NewRegistry("two point oh")
	assert.Error(t, err)
}
