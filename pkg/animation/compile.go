// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package animation

import (
	"context"
	"fmt"
	"sync"

	"github.com/gomlx/convarithmetic/internal/workerspool"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Compiler turns the markup of one job into a page.
type Compiler interface {
	Compile(ctx context.Context, jobName string, markup []byte) error
}

// Result of compiling one step.
type Result struct {
	Step int
	Job  string

	// Err is nil if the step was compiled successfully.
	Err error
}

// Compile the steps of the animation, each in its own task of the pool.
//
// A failing step (including a panic) is reported in its Result and doesn't stop the others: there are no
// retries. The results are returned in the order of steps. If onDone is not nil, it is called for each result
// as soon as it is available, one call at a time.
func (a *Animation) Compile(ctx context.Context, compiler Compiler, pool *workerspool.Pool, steps []int,
	onDone func(Result)) []Result {
	results := make([]Result, len(steps))
	var onDoneMu sync.Mutex
	for i, step := range steps {
		job := a.JobName(step)
		pool.WaitToStart(func() {
			result := Result{Step: step, Job: job}
			result.Err = compileStep(ctx, a, compiler, step, job)
			if result.Err != nil {
				klog.Errorf("step %d (%s) failed: %v", step, job, result.Err)
			}
			results[i] = result
			if onDone != nil {
				onDoneMu.Lock()
				defer onDoneMu.Unlock()
				onDone(result)
			}
		})
	}
	pool.Wait()
	return results
}

func compileStep(ctx context.Context, a *Animation, compiler Compiler, step int, job string) (err error) {
	exception := exceptions.Try(func() {
		if err = ctx.Err(); err != nil {
			return
		}
		var markup []byte
		markup, err = a.Markup(step)
		if err != nil {
			return
		}
		err = compiler.Compile(ctx, job, markup)
	})
	if exception != nil {
		if e, ok := exception.(error); ok {
			return errors.WithMessagef(e, "panic while compiling %s", job)
		}
		return errors.Errorf("panic while compiling %s: %s", job, fmt.Sprint(exception))
	}
	return err
}

// Failed returns the results with an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}
