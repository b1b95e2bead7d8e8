package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndVerify(t *testing.T) {
	s := NewUserStore()

	require.NoError(t, s.Register("alice", "s3cret"))

	assert.True(t, s.Verify("alice", "s3cret"))
	assert.False(t, s.Verify("alice", "wrong"))
	assert.False(t, s.Verify("nobody", "s3cret"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := NewUserStore()

	require.NoError(t, s.Register("alice", "first"))
	err := s.Register("alice", "second")
	assert.ErrorIs(t, err, ErrUserExists)

	// The original credentials stay intact.
	assert.True(t, s.Verify("alice", "first"))
	assert.False(t, s.Verify("alice", "second"))
}

func TestConcurrentRegistrationOfSameUsername(t *testing.T) {
	s := NewUserStore()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Register("alice", fmt.Sprintf("password-%d", i))
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrUserExists)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one registration may win")
}
