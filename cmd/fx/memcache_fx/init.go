package memcache_fx

import (
	"go.uber.org/fx"

	"flowstate/internal/config"
	mem "flowstate/pkg/memcache"
)

var Module = fx.Provide(provideResetTokenStore)

func provideResetTokenStore(cfg config.MailConfig) mem.ResetTokenStore {
	return mem.NewResetTokens(mem.DefaultResetTokenCapacity, cfg.ResetTTL)
}
