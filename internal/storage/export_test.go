package storage

// Put stores raw bytes under key without validation.
func (s *SessionStorage) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = append([]byte(nil), data...)
}

func (s *SessionStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

func (s *ReminderStorage) Get(chatID int64) (ReminderMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[chatID]
	return msg, ok
}
