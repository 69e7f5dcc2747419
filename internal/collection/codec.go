package collection

import (
	"encoding/json"
	"log/slog"
)

// The storage medium is outside our control: blobs may be corrupted,
// truncated, or written by a stale app version. Decoding therefore goes
// element by element and drops anything that fails the schema check instead
// of trusting the blob wholesale.

// decodeAll decodes a JSON array blob into records, skipping entries that
// fail to unmarshal or fail check. A blob that is not an array at all is
// treated as empty.
func decodeAll[T any](data []byte, check func(T) error, logger *slog.Logger, key string) []T {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		logger.Warn("discarding unreadable collection blob", "key", key, "error", err)
		return nil
	}

	out := make([]T, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			dropped++
			continue
		}
		if check != nil {
			if err := check(rec); err != nil {
				dropped++
				continue
			}
		}
		out = append(out, rec)
	}
	if dropped > 0 {
		logger.Warn("dropped records failing schema validation", "key", key, "dropped", dropped)
	}
	return out
}

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
