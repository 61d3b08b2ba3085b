package config

// mergeConfigs merges the overlay config onto the base config. Scalar fields
// from the overlay win when set; maps are merged key-by-key with overlay
// values winning; the default item list is replaced wholesale when the
// overlay provides one.
func mergeConfigs(base, overlay *Config) *Config {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	merged := *base

	if overlay.Version != "" {
		merged.Version = overlay.Version
	}
	if overlay.Store.Path != "" {
		merged.Store.Path = overlay.Store.Path
	}
	if overlay.Watchlist.ID != "" {
		merged.Watchlist.ID = overlay.Watchlist.ID
	}
	if overlay.Watchlist.IDLength != 0 {
		merged.Watchlist.IDLength = overlay.Watchlist.IDLength
	}
	if len(overlay.DefaultItems) > 0 {
		merged.DefaultItems = overlay.DefaultItems
	}

	merged.Metadata = mergeMaps(base.Metadata, overlay.Metadata)
	merged.Extensions = mergeMaps(base.Extensions, overlay.Extensions)

	return &merged
}

// mergeMaps shallow-merges overlay onto base, recursing one level into
// nested maps so extension sections can be partially overridden.
func mergeMaps(base, overlay map[string]interface{}) map[string]interface{} {
	if len(base) == 0 {
		return overlay
	}
	if len(overlay) == 0 {
		return base
	}

	merged := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		if overlayMap, ok := v.(map[string]interface{}); ok {
			if baseMap, ok := merged[k].(map[string]interface{}); ok {
				merged[k] = mergeMaps(baseMap, overlayMap)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}
