package conversation

import "sync"

// Session stores the dialogue step and collected draft for one chat.
type Session struct {
	Step  Step
	Draft Draft

	mu sync.Mutex
}

// Reset returns the session to idle and discards the draft.
func (s *Session) Reset() {
	s.Step = StepIdle
	s.Draft = Draft{}
}

// Store keeps sessions keyed by chat id, in process memory only. Sessions are
// created lazily and lost on restart; only confirmed bookings are durable.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory Store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Do runs fn with the chat's session while holding that session's lock, so
// the read-modify-write of one turn never interleaves with another message
// from the same chat. Different chats proceed in parallel.
func (s *Store) Do(chatID int64, fn func(*Session)) {
	sess := s.session(chatID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess)
}

// StepOf reports the chat's current step, StepIdle if no session exists.
func (s *Store) StepOf(chatID int64) Step {
	var step Step
	s.Do(chatID, func(sess *Session) { step = sess.Step })
	return step
}

func (s *Store) session(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{Step: StepIdle}
		s.sessions[chatID] = sess
	}
	return sess
}
