package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := OrderCursor{
		OrderDate: time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC),
		ID:        1234,
	}

	decoded, err := DecodeCursor(EncodeCursor(cursor))
	require.NoError(t, err)

	assert.True(t, cursor.OrderDate.Equal(decoded.OrderDate))
	assert.Equal(t, cursor.ID, decoded.ID)
}

func TestDecodeEmptyCursorStartsAtTop(t *testing.T) {
	cursor, err := DecodeCursor("")
	require.NoError(t, err)

	assert.Equal(t, int64(1<<63-1), cursor.ID)
	assert.WithinDuration(t, time.Now(), cursor.OrderDate, time.Minute)
}

func TestDecodeCursorGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	assert.Error(t, err)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"valid inputs pass through", 3, 25, 3, 25},
		{"zero page becomes first", 0, 10, 1, 10},
		{"negative page becomes first", -4, 10, 1, 10},
		{"zero size uses default", 2, 0, 2, DefaultPageSize},
		{"negative size uses default", 1, -1, 1, DefaultPageSize},
		{"both zero", 0, 0, 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := normalizePage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
