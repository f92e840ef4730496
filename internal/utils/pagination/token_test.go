package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	startedAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(startedAt, "log-42")
	assert.NotEmpty(t, token)

	decodedTime, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, startedAt.Equal(decodedTime))
	assert.Equal(t, "log-42", decodedID)
}

func TestEncodeTokenNormalizesToUTC(t *testing.T) {
	amsterdam := time.FixedZone("CEST", 2*60*60)
	startedAt := time.Date(2024, 5, 15, 16, 0, 0, 0, amsterdam)

	decodedTime, _, err := DecodeToken(EncodeToken(startedAt, "id"))
	require.NoError(t, err)
	assert.True(t, startedAt.Equal(decodedTime))
	assert.Equal(t, time.UTC, decodedTime.Location())
}

func TestDecodeTokenErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing separator", base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))},
		{"empty id", base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|"))},
		{"bad time", base64.URLEncoding.EncodeToString([]byte("yesterday|id"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
