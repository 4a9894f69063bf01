package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemp(t *testing.T) {
	seen := make(map[string]bool)
	for attempt := 0; attempt < 100; attempt++ {
		id := NewTemp()
		require.Len(t, id, 9)
		assert.True(t, IsTemporary(id))
		assert.False(t, seen[id], "временные идентификаторы не должны повторяться")
		seen[id] = true
	}
}

func TestNewDurable(t *testing.T) {
	id := NewDurable()
	require.Len(t, id, DurableLen)
	assert.False(t, IsTemporary(id))
	for _, r := range id {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "короткий локальный id", id: "abc123", want: true},
		{name: "id из 9 символов", id: "k3j2h1g0f", want: true},
		{name: "постоянный 24-символьный hex", id: "65f1a2b3c4d5e6f7a8b9c0d1", want: false},
		{name: "пустая строка", id: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTemporary(tt.id))
		})
	}
}
