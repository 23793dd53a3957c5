package snapshot

import "go.uber.org/fx"

// Module exposes the snapshot engine and its scheduler via Fx.
var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Provide(NewService),
	fx.Provide(NewScheduler),
	fx.Invoke(runScheduler),
)
