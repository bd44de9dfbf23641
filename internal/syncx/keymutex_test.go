package syncx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("events_u1")
			counter++
			km.Unlock("events_u1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyMutex_IndependentKeysDoNotBlock(t *testing.T) {
	km := NewKeyMutex()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done // would deadlock if "b" waited on "a"
	km.Unlock("a")
}

func TestKeyMutex_UnlockUnknownKeyPanics(t *testing.T) {
	km := NewKeyMutex()
	require.Panics(t, func() { km.Unlock("never-locked") })
}
