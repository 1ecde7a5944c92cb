package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is the minimal database surface the health check needs.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CollectResult reports the service status and per-dependency reachability.
type CollectResult struct {
	Status       string                 `json:"status"`
	UptimeSecs   int64                  `json:"uptime_secs"`
	Dependencies map[string]interface{} `json:"dependencies"`
}

var startTime = time.Now()

// CollectHealth pings the database and, when configured, redis. Status is
// "ok" only when every configured dependency answers.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	deps := map[string]interface{}{}
	status := "ok"

	if db != nil {
		if err := db.Ping(ctx); err != nil {
			deps["database"] = map[string]string{"status": "down", "error": err.Error()}
			status = "degraded"
		} else {
			deps["database"] = map[string]string{"status": "up"}
		}
	}
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			deps["redis"] = map[string]string{"status": "down", "error": err.Error()}
			status = "degraded"
		} else {
			deps["redis"] = map[string]string{"status": "up"}
		}
	}

	return CollectResult{
		Status:       status,
		UptimeSecs:   int64(time.Since(startTime).Seconds()),
		Dependencies: deps,
	}
}
