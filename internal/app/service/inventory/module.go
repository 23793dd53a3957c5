package inventory

import "go.uber.org/fx"

// Module exposes the inventory reader via Fx.
var Module = fx.Options(
	fx.Provide(NewReader),
)
