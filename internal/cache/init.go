package cache

import (
	"github.com/marketixlab/invoicegen/internal/config"
	"github.com/marketixlab/invoicegen/internal/logger"
)

// Initialize builds the cache used by the template loader
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache",
		"enabled", cfg.Cache.Enabled,
		"ttl", cfg.Cache.TTL.String(),
	)
	return NewInMemoryCache(cfg)
}
