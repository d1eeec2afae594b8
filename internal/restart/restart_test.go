package restart

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolReturnsTheLowestCostAttempt(t *testing.T) {
	var mu sync.Mutex
	lowest := -1
	result := Pool(2, 100*time.Millisecond, 1, func(rng *rand.Rand) Result[int] {
		n := rng.Intn(1000)
		mu.Lock()
		if lowest < 0 || n < lowest {
			lowest = n
		}
		mu.Unlock()
		return Result[int]{Value: n, Cost: float64(n)}
	})
	assert.GreaterOrEqual(t, result.Value, 0)
	assert.Less(t, result.Value, 1000)
	assert.Equal(t, lowest, result.Value)
}

func TestPoolDefaultsWorkersWhenNonPositive(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	result := Pool(0, 30*time.Millisecond, 1, func(rng *rand.Rand) Result[int] {
		mu.Lock()
		calls++
		mu.Unlock()
		return Result[int]{Value: 1, Cost: 0}
	})
	assert.Equal(t, 1, result.Value)
	assert.Greater(t, calls, 0)
}
