package storage

import "github.com/prasetyodt/railbooking/config"

// FromConfig builds the configured adapter for one namespace. An
// unset backend falls back to file storage under the configured dir.
func FromConfig(cfg *config.Config, namespace string) Store {
	switch cfg.Storage.Backend {
	case "redis":
		return NewRedisStore(cfg.Redis, namespace)
	default:
		dir := cfg.Storage.Dir
		if dir == "" {
			dir = ".railbooking"
		}
		return NewFileStore(dir, namespace)
	}
}
