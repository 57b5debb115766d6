package chatclient

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const conversationIdKey = "conversationId"

// SessionStore keeps the conversation id across conversation instances for a
// short while, the way a browser tab's session storage would. Entries expire
// on their own; nothing else is persisted.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		cache: cache.New(30*time.Minute, 10*time.Minute),
	}
}

func (s *SessionStore) ConversationId() (string, bool) {
	v, found := s.cache.Get(conversationIdKey)
	if !found {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func (s *SessionStore) SetConversationId(id string) {
	s.cache.Set(conversationIdKey, id, cache.DefaultExpiration)
}

func (s *SessionStore) Clear() {
	s.cache.Delete(conversationIdKey)
}
