// Package health serves the liveness and readiness endpoints of `digest serve`.
//
// [LivenessHandler] always answers OK while the process runs. [ReadinessHandler]
// executes a set of [Checks] in parallel under a timeout and answers 503 when
// any of them fails. [Router] mounts both on a chi router:
//
//	handler := health.Router(health.Checks{
//		"database": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//		"jobs":     job.Healthcheck(manager),
//	}, health.WithLogger(log))
//
//	err := health.Serve(ctx, health.ServerConfig{
//		Address:       ":8080",
//		Handler:       handler,
//		Logger:        log,
//		ShutdownHooks: []func(context.Context) error{manager.Shutdown()},
//	})
//
// Responses are plain text unless the client sends Accept: application/json
// or ?format=json:
//
//	{"status":"unhealthy","checks":{"database":{"status":"unhealthy","error":"..."}}}
package health
