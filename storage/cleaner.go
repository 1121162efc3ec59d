package storage

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Cleaner removes stored files by their stored relative path.
// It is best effort: missing files are skipped and failures never stop the loop.
type Cleaner struct {
	store  FileStore
	route  string
	logger zerolog.Logger
}

func NewCleaner(store FileStore, route string) *Cleaner {
	return &Cleaner{
		store:  store,
		route:  NormalizeRoute(route),
		logger: log.With().Str("component", "fileCleanup").Logger(),
	}
}

// Remove deletes the files behind paths and returns the failures it logged.
func (c *Cleaner) Remove(paths ...string) []error {
	var failures []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		name, err := NameFromURL(c.route, p)
		if err != nil {
			c.logger.Warn().Str("path", p).Msg("refusing to remove path outside upload store")
			failures = append(failures, fmt.Errorf("%s: %w", p, err))
			continue
		}
		if err := c.store.Remove(name); err != nil {
			if IsNotExist(err) {
				continue
			}
			c.logger.Error().Err(err).Str("path", p).Msg("failed to remove stored file")
			failures = append(failures, err)
		}
	}
	return failures
}
