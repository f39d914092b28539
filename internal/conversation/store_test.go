package conversation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreCreatesSessionLazily(t *testing.T) {
	s := NewStore()
	assert.Equal(t, StepIdle, s.StepOf(42))
}

func TestStoreMutatesInPlace(t *testing.T) {
	s := NewStore()
	s.Do(1, func(sess *Session) {
		sess.Step = StepRecipient
		sess.Draft.RecipientName = "Juan"
	})
	s.Do(1, func(sess *Session) {
		assert.Equal(t, StepRecipient, sess.Step)
		assert.Equal(t, "Juan", sess.Draft.RecipientName)
	})
}

func TestStoreSerializesPerChat(t *testing.T) {
	s := NewStore()
	const workers = 32
	const rounds = 50

	// The counter is only safe if Do serializes access per chat.
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				s.Do(7, func(*Session) { counter++ })
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*rounds, counter)
}

func TestSessionReset(t *testing.T) {
	sess := &Session{Step: StepDistance, Draft: Draft{RecipientName: "Juan"}}
	sess.Reset()
	assert.Equal(t, StepIdle, sess.Step)
	assert.Equal(t, Draft{}, sess.Draft)
}
