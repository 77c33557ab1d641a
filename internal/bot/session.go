package bot

import (
	"sync"

	tele "gopkg.in/telebot.v3"
)

// LastMessage identifies the most recent bot-sent message in one chat.
type LastMessage struct {
	ChatID    int64
	MessageID int
}

// SessionStore tracks the last bot-sent message per chat. Each chat owns
// its own pointer, so one chat's turn never deletes another chat's
// message.
type SessionStore struct {
	mu   sync.RWMutex
	last map[int64]LastMessage
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{last: make(map[int64]LastMessage)}
}

// Last returns the chat's last bot message, if one is tracked.
func (s *SessionStore) Last(chatID int64) (LastMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.last[chatID]
	return msg, ok
}

// Set records a freshly sent message as the chat's last bot message.
func (s *SessionStore) Set(chatID int64, msg *tele.Message) {
	if msg == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[chatID] = LastMessage{
		ChatID:    chatID,
		MessageID: msg.ID,
	}
}

// Clear forgets the chat's last bot message.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.last, chatID)
}

// Len returns the number of chats with a tracked message.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.last)
}
