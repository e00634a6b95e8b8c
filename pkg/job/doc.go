// Package job schedules digest runs with River, the Postgres-native queue.
//
// A Manager registers scheduled tasks: anything with Name(), Schedule() and
// Handle(ctx) methods. Schedules are five-field cron expressions evaluated in
// the configured location, so "0 8 * * *" fires at 08:00 local time:
//
//	manager, err := job.NewManager(pool,
//		job.WithScheduledTask(task),
//		job.WithLocation(loc),
//		job.WithMaxAttempts(3),
//		job.WithCancelIf(func(err error) bool {
//			return errors.Is(err, dispatch.ErrConfiguration)
//		}),
//		job.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	if err := manager.Start(ctx); err != nil {
//		return err
//	}
//	defer manager.Stop(context.WithoutCancel(ctx))
//
// Failed attempts are retried by River up to the attempt limit. Errors
// matched by WithCancelIf cancel the job instead, since retrying a bad
// configuration only repeats the failure.
//
// An Enqueuer inserts jobs without working them. `digest trigger` uses one to
// request an immediate run from the serving process:
//
//	enq, err := job.NewEnqueuer(pool)
//	inserted, err := enq.Enqueue(ctx, "digest:letters", job.UniqueFor(time.Minute))
//
// River's schema must be migrated first (rivermigrate), which `digest migrate`
// does alongside the store migrations.
package job
