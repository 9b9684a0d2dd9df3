package utils

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenDigits = regexp.MustCompile(`^\d{10}$`)

func TestRandomAccountNumber_Format(t *testing.T) {
	for i := 0; i < 500; i++ {
		n, err := RandomAccountNumber()
		require.NoError(t, err)
		assert.Regexp(t, tenDigits, n)
	}
}

func TestAllocate_RetriesOnCollision(t *testing.T) {
	candidates := []string{"0000000001", "0000000002", "0000000003"}
	a := NewAccountNumberAllocator(10)
	a.next = func() (string, error) {
		c := candidates[0]
		candidates = candidates[1:]
		return c, nil
	}
	taken := map[string]bool{"0000000001": true, "0000000002": true}
	checks := 0
	checker := AccountNumberCheckerFunc(func(_ context.Context, n string) (bool, error) {
		checks++
		return taken[n], nil
	})

	n, err := a.Allocate(context.Background(), checker)
	require.NoError(t, err)
	assert.Equal(t, "0000000003", n)
	assert.Equal(t, 3, checks)
}

func TestAllocate_FailsClosedPastCap(t *testing.T) {
	a := NewAccountNumberAllocator(5)
	checks := 0
	alwaysTaken := AccountNumberCheckerFunc(func(context.Context, string) (bool, error) {
		checks++
		return true, nil
	})

	_, err := a.Allocate(context.Background(), alwaysTaken)
	assert.ErrorIs(t, err, ErrAccountNumberExhausted)
	assert.Equal(t, 5, checks)
}

func TestAllocate_CheckerError(t *testing.T) {
	a := NewAccountNumberAllocator(5)
	boom := errors.New("db down")
	_, err := a.Allocate(context.Background(), AccountNumberCheckerFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestAllocate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAccountNumberAllocator(5).Allocate(ctx, AccountNumberCheckerFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAccountNumberAllocator_DefaultCap(t *testing.T) {
	assert.Equal(t, DefaultAccountNumberAttempts, NewAccountNumberAllocator(0).maxAttempts)
}

func TestAllocate_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	var mu sync.Mutex
	claimed := map[string]bool{}
	// Claiming inside the check mirrors a unique index rejecting the loser of a race.
	claim := AccountNumberCheckerFunc(func(_ context.Context, n string) (bool, error) {
		mu.Lock()
		defer mu.Unlock()
		if claimed[n] {
			return true, nil
		}
		claimed[n] = true
		return false, nil
	})

	a := NewAccountNumberAllocator(50)
	results := make(chan string, 64)
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := a.Allocate(context.Background(), claim)
			if err == nil {
				results <- n
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for n := range results {
		assert.False(t, seen[n], "duplicate account number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, 64)
}
