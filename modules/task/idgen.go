package task

import (
	"fmt"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

// Alphabet for the random id suffix. Lowercase base36 keeps ids readable
// in URLs and log lines.
const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// idSuffixLength is the length of the random suffix.
const idSuffixLength = 9

// NewIDGenerator returns a generator producing task ids of the form
// task_<unix-ms>_<random>. The timestamp prefix keeps ids roughly
// sortable by creation time; the suffix guards against collisions within
// the same millisecond.
func NewIDGenerator() (func() string, error) {
	suffix, err := nanoid.CustomASCII(idAlphabet, idSuffixLength)
	if err != nil {
		return nil, fmt.Errorf("failed to build id generator: %w", err)
	}

	return func() string {
		return fmt.Sprintf("task_%d_%s", time.Now().UnixMilli(), suffix())
	}, nil
}
