package snapshot

import "go.uber.org/fx"

// Module provides the local cart snapshot cache.
var Module = fx.Provide(NewCache)
