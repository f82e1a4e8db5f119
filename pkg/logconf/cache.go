package logconf

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Built configs, keyed by normalized parameters. Entries live for the
// process lifetime: distinct keys are bounded by the number of distinct
// test configurations in a suite, so nothing is ever evicted.
var (
	cacheMu sync.Mutex
	cache   = make(map[string]*Config)
)

// Get returns the Config for the given parameters, building it on first
// use. Repeated calls with identical arguments return the identical
// cached instance; a custom hook participates in the key by identity.
// Get never applies anything, so callers can inspect or compose the
// result before deciding whether to initialize.
func Get(targets []string, level Severity, custom logrus.Hook) (*Config, error) {
	normalized, err := normalizeTargets(targets)
	if err != nil {
		return nil, err
	}
	key := cacheKey(normalized, level, custom)

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cfg, ok := cache[key]; ok {
		return cfg, nil
	}
	cfg, err := Build(normalized, level, custom)
	if err != nil {
		return nil, err
	}
	cache[key] = cfg
	return cfg, nil
}

func cacheKey(sortedTargets []string, level Severity, custom logrus.Hook) string {
	sinkID := "-"
	if custom != nil {
		sinkID = fmt.Sprintf("%p", custom)
	}
	// Targets are quoted before joining so a name containing the separator
	// cannot collide with a multi-target set.
	quoted := make([]string, len(sortedTargets))
	for i, target := range sortedTargets {
		quoted[i] = strconv.Quote(target)
	}
	return strings.Join(quoted, ",") + "|" + level.String() + "|" + sinkID
}
