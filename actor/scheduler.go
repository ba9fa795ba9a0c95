/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package actor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/ergon/errors"
	"github.com/tochemey/ergon/log"
)

// scheduler delivers messages to actors in the future. Every delivery is an ordinary tell.
type scheduler struct {
	mu              sync.Mutex
	quartzScheduler quartz.Scheduler
	started         *atomic.Bool
	node            *Node
	logger          log.Logger
	stopTimeout     time.Duration
}

func newScheduler(node *Node, logger log.Logger, stopTimeout time.Duration) *scheduler {
	quartzScheduler, _ := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	return &scheduler{
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
		node:            node,
		logger:          logger,
		stopTimeout:     stopTimeout,
	}
}

// Start starts the scheduler
func (x *scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started")
}

// Stop removes every scheduled delivery and stops the scheduler
func (x *scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(ctx, x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped")
}

// schedule registers a job telling message to the actor with the given trigger.
func (x *scheduler) schedule(message any, to Ref, trigger quartz.Trigger) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return "", gerrors.ErrSchedulerNotStarted
	}

	tellJob := job.NewFunctionJob[bool](func(ctx context.Context) (bool, error) {
		err := x.node.Tell(ctx, to, message)
		return err == nil, err
	})

	reference := newID()
	detail := quartz.NewJobDetail(tellJob, quartz.NewJobKey(reference))
	if err := x.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		x.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return "", err
	}
	return reference, nil
}

// cancel removes a scheduled delivery.
func (x *scheduler) cancel(reference string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	if err := x.quartzScheduler.DeleteJob(quartz.NewJobKey(reference)); err != nil {
		return gerrors.ErrScheduledReferenceNotFound
	}
	return nil
}

// ScheduleOnce tells message to the actor once, after delay.
// It returns a reference that can be passed to CancelSchedule.
func (x *Node) ScheduleOnce(_ context.Context, message any, to Ref, delay time.Duration) (string, error) {
	if delay <= 0 {
		return "", gerrors.ErrInvalidInterval
	}
	return x.scheduler.schedule(message, to, quartz.NewRunOnceTrigger(delay))
}

// Schedule tells message to the actor every interval until the schedule is cancelled.
func (x *Node) Schedule(_ context.Context, message any, to Ref, interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", gerrors.ErrInvalidInterval
	}
	return x.scheduler.schedule(message, to, quartz.NewSimpleTrigger(interval))
}

// ScheduleWithCron tells message to the actor on the given cron expression,
// evaluated in the local time zone.
func (x *Node) ScheduleWithCron(_ context.Context, message any, to Ref, cronExpression string) (string, error) {
	trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
	if err != nil {
		x.logger.Error(fmt.Errorf("failed to schedule message: %w", err))
		return "", err
	}
	return x.scheduler.schedule(message, to, trigger)
}

// CancelSchedule removes the scheduled delivery with the given reference.
func (x *Node) CancelSchedule(reference string) error {
	return x.scheduler.cancel(reference)
}
