package middleware

import (
	"context"
	"fmt"

	"github.com/smithykit/runtime/logging"
)

// InterceptorContext is the mutable state an Interceptor hook observes
// and, for modify_* hooks, is permitted to replace pieces of. Not every
// field is populated at every hook: Request is nil until after
// serialization, Response is nil until after transmit, and so on.
type InterceptorContext struct {
	Operation string

	Input    any
	Request  any
	Response any
	Output   any

	// Attempt is the 1-based retry attempt number, valid from
	// before_attempt onward.
	Attempt int
}

// Interceptor implements the fixed set of lifecycle hooks an operation
// invocation passes through, in order, once per call (with the
// before_attempt..after_attempt hooks run once per retry attempt).
//
// A hook whose name starts with modify_ may replace the relevant field
// on InterceptorContext (Input, Request, or Output); all others only
// observe.
//
// Embed NopInterceptor to implement a subset of hooks.
type Interceptor interface {
	BeforeExecution(context.Context, *InterceptorContext) error
	ModifyBeforeSerialization(context.Context, *InterceptorContext) error
	BeforeSerialization(context.Context, *InterceptorContext) error
	AfterSerialization(context.Context, *InterceptorContext) error
	ModifyBeforeRetryLoop(context.Context, *InterceptorContext) error

	BeforeAttempt(context.Context, *InterceptorContext) error
	ModifyBeforeSigning(context.Context, *InterceptorContext) error
	BeforeSigning(context.Context, *InterceptorContext) error
	AfterSigning(context.Context, *InterceptorContext) error
	ModifyBeforeTransmit(context.Context, *InterceptorContext) error
	BeforeTransmit(context.Context, *InterceptorContext) error
	AfterTransmit(context.Context, *InterceptorContext) error
	ModifyBeforeDeserialization(context.Context, *InterceptorContext) error
	BeforeDeserialization(context.Context, *InterceptorContext) error
	AfterDeserialization(context.Context, *InterceptorContext) error
	ModifyBeforeAttemptCompletion(context.Context, *InterceptorContext) error
	AfterAttempt(context.Context, *InterceptorContext) error

	ModifyBeforeCompletion(context.Context, *InterceptorContext) error
	AfterExecution(context.Context, *InterceptorContext) error
}

// NopInterceptor implements Interceptor with every hook a no-op.
// Embed it to pick up the hooks you don't need to override.
type NopInterceptor struct{}

func (NopInterceptor) BeforeExecution(context.Context, *InterceptorContext) error             { return nil }
func (NopInterceptor) ModifyBeforeSerialization(context.Context, *InterceptorContext) error    { return nil }
func (NopInterceptor) BeforeSerialization(context.Context, *InterceptorContext) error          { return nil }
func (NopInterceptor) AfterSerialization(context.Context, *InterceptorContext) error           { return nil }
func (NopInterceptor) ModifyBeforeRetryLoop(context.Context, *InterceptorContext) error        { return nil }
func (NopInterceptor) BeforeAttempt(context.Context, *InterceptorContext) error                { return nil }
func (NopInterceptor) ModifyBeforeSigning(context.Context, *InterceptorContext) error          { return nil }
func (NopInterceptor) BeforeSigning(context.Context, *InterceptorContext) error                { return nil }
func (NopInterceptor) AfterSigning(context.Context, *InterceptorContext) error                 { return nil }
func (NopInterceptor) ModifyBeforeTransmit(context.Context, *InterceptorContext) error         { return nil }
func (NopInterceptor) BeforeTransmit(context.Context, *InterceptorContext) error               { return nil }
func (NopInterceptor) AfterTransmit(context.Context, *InterceptorContext) error                { return nil }
func (NopInterceptor) ModifyBeforeDeserialization(context.Context, *InterceptorContext) error  { return nil }
func (NopInterceptor) BeforeDeserialization(context.Context, *InterceptorContext) error        { return nil }
func (NopInterceptor) AfterDeserialization(context.Context, *InterceptorContext) error         { return nil }
func (NopInterceptor) ModifyBeforeAttemptCompletion(context.Context, *InterceptorContext) error {
	return nil
}
func (NopInterceptor) AfterAttempt(context.Context, *InterceptorContext) error          { return nil }
func (NopInterceptor) ModifyBeforeCompletion(context.Context, *InterceptorContext) error { return nil }
func (NopInterceptor) AfterExecution(context.Context, *InterceptorContext) error         { return nil }

var _ Interceptor = NopInterceptor{}

// hookFunc is a bound reference to one Interceptor hook method.
type hookFunc func(context.Context, *InterceptorContext) error

// InterceptorChain runs an ordered list of interceptors at each
// lifecycle point, applying the error policy appropriate to the hook
// kind:
//
//   - modify_* hooks: the first error aborts the remaining hooks *at
//     this lifecycle point* and is returned immediately, so the caller
//     can short-circuit straight to modify_before_completion.
//   - every other hook: all interceptors run regardless of earlier
//     failures; each error that a later one supersedes is logged, and
//     only the last one is returned to the caller.
type InterceptorChain struct {
	Interceptors []Interceptor
}

func (c *InterceptorChain) runModify(ctx context.Context, ic *InterceptorContext, pick func(Interceptor) hookFunc) error {
	for _, interceptor := range c.Interceptors {
		if err := pick(interceptor)(ctx, ic); err != nil {
			return err
		}
	}
	return nil
}

func (c *InterceptorChain) runAll(ctx context.Context, ic *InterceptorContext, pick func(Interceptor) hookFunc) error {
	var last error
	for _, interceptor := range c.Interceptors {
		if err := pick(interceptor)(ctx, ic); err != nil {
			if last != nil {
				GetLogger(ctx).Logf(logging.Warn, "interceptor hook error superseded: %v", last)
			}
			last = err
		}
	}
	return last
}

func (c *InterceptorChain) BeforeExecution(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeExecution })
}

func (c *InterceptorChain) ModifyBeforeSerialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeSerialization })
}

func (c *InterceptorChain) BeforeSerialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeSerialization })
}

func (c *InterceptorChain) AfterSerialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterSerialization })
}

func (c *InterceptorChain) ModifyBeforeRetryLoop(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeRetryLoop })
}

func (c *InterceptorChain) BeforeAttempt(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeAttempt })
}

func (c *InterceptorChain) ModifyBeforeSigning(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeSigning })
}

func (c *InterceptorChain) BeforeSigning(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeSigning })
}

func (c *InterceptorChain) AfterSigning(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterSigning })
}

func (c *InterceptorChain) ModifyBeforeTransmit(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeTransmit })
}

func (c *InterceptorChain) BeforeTransmit(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeTransmit })
}

func (c *InterceptorChain) AfterTransmit(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterTransmit })
}

func (c *InterceptorChain) ModifyBeforeDeserialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeDeserialization })
}

func (c *InterceptorChain) BeforeDeserialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.BeforeDeserialization })
}

func (c *InterceptorChain) AfterDeserialization(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterDeserialization })
}

func (c *InterceptorChain) ModifyBeforeAttemptCompletion(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeAttemptCompletion })
}

func (c *InterceptorChain) AfterAttempt(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterAttempt })
}

func (c *InterceptorChain) ModifyBeforeCompletion(ctx context.Context, ic *InterceptorContext) error {
	return c.runModify(ctx, ic, func(i Interceptor) hookFunc { return i.ModifyBeforeCompletion })
}

func (c *InterceptorChain) AfterExecution(ctx context.Context, ic *InterceptorContext) error {
	return c.runAll(ctx, ic, func(i Interceptor) hookFunc { return i.AfterExecution })
}

var _ Interceptor = (*InterceptorChain)(nil)

// RunAttempt drives one retry attempt's worth of hooks -- before_attempt
// through after_attempt -- stopping at the first modify_* error per the
// chain's error policy and otherwise returning the phase at which
// failure occurred so the retry loop can decide whether to retry.
func (c *InterceptorChain) RunAttempt(ctx context.Context, ic *InterceptorContext, transmit func(context.Context, *InterceptorContext) error) error {
	if err := c.BeforeAttempt(ctx, ic); err != nil {
		return fmt.Errorf("before_attempt: %w", err)
	}
	if err := c.ModifyBeforeSigning(ctx, ic); err != nil {
		return fmt.Errorf("modify_before_signing: %w", err)
	}
	if err := c.BeforeSigning(ctx, ic); err != nil {
		return fmt.Errorf("before_signing: %w", err)
	}
	if err := c.AfterSigning(ctx, ic); err != nil {
		return fmt.Errorf("after_signing: %w", err)
	}
	if err := c.ModifyBeforeTransmit(ctx, ic); err != nil {
		return fmt.Errorf("modify_before_transmit: %w", err)
	}
	if err := c.BeforeTransmit(ctx, ic); err != nil {
		return fmt.Errorf("before_transmit: %w", err)
	}

	transmitErr := transmit(ctx, ic)

	if err := c.AfterTransmit(ctx, ic); err != nil {
		return fmt.Errorf("after_transmit: %w", err)
	}
	if transmitErr != nil {
		return transmitErr
	}

	if err := c.ModifyBeforeDeserialization(ctx, ic); err != nil {
		return fmt.Errorf("modify_before_deserialization: %w", err)
	}
	if err := c.BeforeDeserialization(ctx, ic); err != nil {
		return fmt.Errorf("before_deserialization: %w", err)
	}
	if err := c.AfterDeserialization(ctx, ic); err != nil {
		return fmt.Errorf("after_deserialization: %w", err)
	}
	if err := c.ModifyBeforeAttemptCompletion(ctx, ic); err != nil {
		return fmt.Errorf("modify_before_attempt_completion: %w", err)
	}
	return c.AfterAttempt(ctx, ic)
}
