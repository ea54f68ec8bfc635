package worker

import (
	"context"
	"log/slog"

	"homologation-service/internal/services"
)

// RegisterCatalogJobs attaches the periodic catalog maintenance jobs:
// refreshing stale snapshots and sweeping expired expansion cache entries.
// The refresh keeps cached snapshots from drifting behind admin edits applied
// by another replica, where the local invalidation hook never fires.
func RegisterCatalogJobs(scheduler *JobScheduler, catalogService *services.CatalogService, quoteService *services.QuoteService) {
	scheduler.AddJob(Job{
		Name: "snapshot-refresh",
		Run: func(ctx context.Context) {
			catalogService.RefreshStale(ctx)
		},
	})
	scheduler.AddJob(Job{
		Name: "expansion-cache-sweep",
		Run: func(ctx context.Context) {
			removed := quoteService.ExpansionCache().Purge()
			if removed > 0 {
				slog.Debug("expansion cache sweep", "removed", removed)
			}
		},
	})
}
