package http

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiters_ReusesLimiterPerIP(t *testing.T) {
	l := newIPLimiters()
	now := time.Now()

	first := l.get("10.0.0.1", now)
	second := l.get("10.0.0.1", now)
	assert.Same(t, first, second)
	assert.Equal(t, 1, l.size())
}

func TestIPLimiters_EvictsIdleEntries(t *testing.T) {
	l := newIPLimiters()
	now := time.Now()

	for i := 0; i <= limiterSweepSize; i++ {
		l.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256), now)
	}
	assert.Equal(t, limiterSweepSize+1, l.size())

	// The next lookup crosses the threshold and sweeps everything idle
	// past the TTL, so the table never grows for the process lifetime.
	l.get("192.168.0.1", now.Add(limiterIdleTTL+time.Minute))
	assert.Equal(t, 1, l.size())
}

func TestIPLimiters_KeepsActiveEntriesThroughSweep(t *testing.T) {
	l := newIPLimiters()
	now := time.Now()

	for i := 0; i <= limiterSweepSize; i++ {
		l.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256), now)
	}
	// The sweeping lookup itself stays in the table with a fresh
	// timestamp and survives subsequent lookups.
	later := now.Add(limiterIdleTTL + time.Minute)
	l.get("10.0.0.0", later)
	l.get("192.168.0.1", later.Add(time.Second))

	assert.Equal(t, 2, l.size())
}

func TestIPLimiters_EnforcesBurst(t *testing.T) {
	l := newIPLimiters()
	lim := l.get("10.0.0.1", time.Now())

	allowed := 0
	for i := 0; i < 50; i++ {
		if lim.Allow() {
			allowed++
		}
	}
	assert.LessOrEqual(t, allowed, 41)
	assert.GreaterOrEqual(t, allowed, 40)
}
