package ignore

import (
	"path/filepath"

	"github.com/arthur-debert/anvil/pkg/logging"
)

// DefaultPatterns is the base ignore set applied when no explicit patterns
// are given.
var DefaultPatterns = []string{".DS_Store"}

// Func reports which entries of a directory the expansion should skip.
// It receives the directory being listed and its entry names, and returns
// the subset of names to leave out. The signature matches what the
// expander feeds it, one directory at a time.
type Func func(dir string, names []string) map[string]struct{}

// New builds an ignore function from glob patterns matched against entry
// names, not full paths. A nil patterns slice falls back to
// DefaultPatterns while a supplied empty slice ignores nothing; addons
// are appended on top of whichever base applies, so callers can extend
// the default set without restating it.
func New(patterns, addons []string) Func {
	logger := logging.GetLogger("ignore")

	base := patterns
	if base == nil {
		base = DefaultPatterns
	}

	combined := make([]string, 0, len(base)+len(addons))
	combined = append(combined, base...)
	combined = append(combined, addons...)

	logger.Debug().Strs("patterns", combined).Msg("Ignore patterns configured")

	return func(dir string, names []string) map[string]struct{} {
		skipped := make(map[string]struct{})
		for _, name := range names {
			for _, pattern := range combined {
				if matched, _ := filepath.Match(pattern, name); matched {
					skipped[name] = struct{}{}
					break
				}
			}
		}
		if len(skipped) > 0 {
			logger.Trace().
				Str("dir", dir).
				Int("count", len(skipped)).
				Msg("Skipping ignored entries")
		}
		return skipped
	}
}
