package itinerary

import (
	"encoding/json"
	"fmt"

	"tripmate/models"
	"tripmate/utils"
)

// MergeState deep-merges patch into st. Objects merge key by key; any other value,
// arrays included, replaces what was there.
func MergeState(st models.ItineraryState, patch map[string]any) (models.ItineraryState, error) {
	if len(patch) == 0 {
		return st, nil
	}
	b, err := json.Marshal(st)
	if err != nil {
		return st, err
	}
	var base map[string]any
	if err := json.Unmarshal(b, &base); err != nil {
		return st, err
	}

	merged := mergeMaps(base, patch)

	b, err = json.Marshal(merged)
	if err != nil {
		return st, fmt.Errorf("state patch: %v: %w", err, utils.ErrValidation)
	}
	var out models.ItineraryState
	if err := json.Unmarshal(b, &out); err != nil {
		return st, fmt.Errorf("state patch does not fit the itinerary schema: %v: %w", err, utils.ErrValidation)
	}
	return out, nil
}

func mergeMaps(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = mergeMaps(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
	return dst
}
