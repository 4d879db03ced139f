// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"database": db.Healthcheck(conn),
//		"redis":    redis.Healthcheck(client),
//	}))
//
// Readiness runs every check concurrently under one timeout (5s by
// default) and answers 503 when any check fails. Responses are plain text
// ("OK" or "Service Unavailable") unless the client asks for JSON with an
// Accept header or ?format=json:
//
//	{"status":"unhealthy","checks":{"database":{"status":"healthy","latency":"1.2ms"},
//	 "redis":{"status":"unhealthy","error":"dial tcp: connection refused","latency":"3ms"}}}
package health
