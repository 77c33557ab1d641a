package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
	"pgregory.net/rapid"
)

func TestSessionStore_SetAndLast(t *testing.T) {
	store := NewSessionStore()

	_, ok := store.Last(10)
	assert.False(t, ok)

	store.Set(10, &tele.Message{ID: 42})

	last, ok := store.Last(10)
	require.True(t, ok)
	assert.Equal(t, 42, last.MessageID)
	assert.Equal(t, int64(10), last.ChatID)
}

func TestSessionStore_RewriteReplacesPointer(t *testing.T) {
	store := NewSessionStore()

	store.Set(10, &tele.Message{ID: 1})
	store.Set(10, &tele.Message{ID: 2})

	last, ok := store.Last(10)
	require.True(t, ok)
	assert.Equal(t, 2, last.MessageID)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_PerChatIsolation(t *testing.T) {
	store := NewSessionStore()

	store.Set(10, &tele.Message{ID: 1})
	store.Set(20, &tele.Message{ID: 2})

	// One chat's turn never touches another chat's pointer
	store.Clear(10)

	_, ok := store.Last(10)
	assert.False(t, ok)

	last, ok := store.Last(20)
	require.True(t, ok)
	assert.Equal(t, 2, last.MessageID)
}

func TestSessionStore_SetNilIsNoop(t *testing.T) {
	store := NewSessionStore()
	store.Set(10, nil)

	_, ok := store.Last(10)
	assert.False(t, ok)
}

// TestSessionStorePointerProperty checks that after any sequence of sends
// each chat tracks exactly its own most recent message.
func TestSessionStorePointerProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := NewSessionStore()
		expected := make(map[int64]int)

		numEvents := rapid.IntRange(1, 50).Draw(t, "numEvents")
		for i := 0; i < numEvents; i++ {
			chatID := rapid.Int64Range(1, 5).Draw(t, "chatID")
			messageID := i + 1
			store.Set(chatID, &tele.Message{ID: messageID})
			expected[chatID] = messageID
		}

		if store.Len() != len(expected) {
			t.Fatalf("Expected %d tracked chats, got %d", len(expected), store.Len())
		}
		for chatID, messageID := range expected {
			last, ok := store.Last(chatID)
			if !ok {
				t.Fatalf("Chat %d lost its pointer", chatID)
			}
			if last.MessageID != messageID {
				t.Fatalf("Chat %d: expected message %d, got %d", chatID, messageID, last.MessageID)
			}
			if last.ChatID != chatID {
				t.Fatalf("Chat %d: pointer carries chat %d", chatID, last.ChatID)
			}
		}
	})
}
