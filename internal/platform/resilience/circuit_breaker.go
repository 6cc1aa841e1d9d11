package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type trialWindow struct {
	inFlight int
	passed   int
}

// CircuitBreaker guards the stats API. After FailureThreshold consecutive
// failures it rejects calls for OpenTimeout, then lets HalfOpenMaxReq trial calls
// through before closing again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	state    CircuitState
	failures int
	openedAt time.Time
	trials   trialWindow
	onChange func(from, to CircuitState)
}

// NewCircuitBreaker builds a closed breaker; zero limits in cfg fall back to
// the defaults. Enabled is ignored here, see NewFromConfig.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers fn to run on every transition. fn runs with the
// breaker lock held and must not call back into the breaker.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Do runs fn when the breaker allows it and records the outcome.
func (b *CircuitBreaker) Do(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.coolingDown() {
		return ErrCircuitOpen
	}
	if b.state == CircuitStateOpen {
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state != CircuitStateHalfOpen {
		return nil
	}
	if b.trials.inFlight >= b.cfg.HalfOpenMaxReq {
		return ErrCircuitOpen
	}
	b.trials.inFlight++
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateClosed {
		b.failures = 0
		return
	}
	if b.state != CircuitStateHalfOpen {
		return
	}
	b.releaseTrial()
	b.trials.passed++
	if b.trials.passed >= b.cfg.HalfOpenMaxReq && b.trials.inFlight == 0 {
		b.moveTo(CircuitStateClosed)
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.releaseTrial()
		b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		// a late failure from a call admitted before opening restarts the cool-down
		b.openedAt = b.now()
	}
}

// State reports half-open once the cool-down has elapsed, even before the
// next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && !b.coolingDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) coolingDown() bool {
	return b.state == CircuitStateOpen && b.now().Sub(b.openedAt) < b.cfg.OpenTimeout
}

func (b *CircuitBreaker) releaseTrial() {
	if b.trials.inFlight > 0 {
		b.trials.inFlight--
	}
}

// moveTo resets the counters owned by the target state and notifies the
// listener when the state actually changes.
func (b *CircuitBreaker) moveTo(to CircuitState) {
	from := b.state
	b.state = to
	b.trials = trialWindow{}
	switch to {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
