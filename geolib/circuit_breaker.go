package geolib

import (
	"sync"
	"time"
)

// circuitBreaker blocks an upstream after too many consecutive failures
// and lets a single probe through once the cooldown has passed. A probe
// that succeeds closes the breaker again, a probe that fails restarts
// the cooldown.
type circuitBreaker struct {
	mutex sync.Mutex

	failures  uint
	threshold uint
	cooldown  time.Duration
	openedAt  time.Time
	probing   bool
}

func (c *circuitBreaker) allow() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.failures < c.threshold {
		return true
	}

	if time.Since(c.openedAt) < c.cooldown || c.probing {
		return false
	}

	c.probing = true

	return true
}

func (c *circuitBreaker) report(err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.probing = false

	if err == nil {
		c.failures = 0

		return
	}

	c.failures++

	if c.failures >= c.threshold {
		c.openedAt = time.Now()
	}
}

func newCircuitBreaker(threshold uint, cooldown time.Duration) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
	}
}
