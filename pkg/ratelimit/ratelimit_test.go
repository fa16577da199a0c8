package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{name: "burst allows initial requests", rps: 1, burst: 3, calls: 3, wantPass: 3},
		{name: "exceeding burst blocks", rps: 1, burst: 2, calls: 5, wantPass: 2},
		{name: "zero burst treated as one", rps: 1, burst: 0, calls: 3, wantPass: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)
			defer krl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if krl.Allow("1.2.3.4") {
					passed++
				}
			}
			assert.Equal(t, tt.wantPass, passed)
		})
	}
}

func TestKeyedRateLimiter_KeysIndependent(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
	assert.Equal(t, 2, krl.Len())
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	krl.Allow("old")
	krl.evictIdle(time.Now().Add(time.Hour))
	assert.Equal(t, 0, krl.Len())
}

