package core

import "time"

// RetryPolicy describes how a failed restore is retried
type RetryPolicy struct {
	// MaxRetries caps the attempts made after the first failure.
	// Zero retries until the restore succeeds or fails permanently.
	MaxRetries int

	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// NewDefaultRetryPolicy creates a RetryPolicy with default values
func NewDefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      10,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     30 * time.Second,
	}
}

// Unlimited reports whether the policy never gives up on temporary errors
func (p RetryPolicy) Unlimited() bool {
	return p.MaxRetries <= 0
}
