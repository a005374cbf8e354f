package taxonomy

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
)

// ExtraLikelyMasterLanguage marks a target item or value whose label still
// matches the master label verbatim and probably needs localizing.
const ExtraLikelyMasterLanguage = "likely_master_language"

// MergeItems reconciles a freshly fetched item list with the previously
// cached one. The fetch wins on every field it supplies; fields only the
// cache knows (for example a manually set priority) survive, and items the
// fetch no longer returns stay in the result. The same keyed merge is applied
// one level deeper on values. Neither input slice is mutated.
func MergeItems(cached, fetched []MappableItem) []MappableItem {
	cachedIdx := make(map[string]*MappableItem, len(cached))
	for i := range cached {
		cachedIdx[cached[i].Key] = &cached[i]
	}

	merged := make([]MappableItem, 0, len(fetched)+len(cached))
	seen := make(map[string]struct{}, len(fetched))
	for i := range fetched {
		f := fetched[i]
		seen[f.Key] = struct{}{}
		if c, ok := cachedIdx[f.Key]; ok {
			merged = append(merged, mergeItem(*c, f))
		} else {
			merged = append(merged, cloneItem(f))
		}
	}
	for i := range cached {
		if _, ok := seen[cached[i].Key]; !ok {
			merged = append(merged, cloneItem(cached[i]))
		}
	}
	return merged
}

func mergeItem(cached, fetched MappableItem) MappableItem {
	out := cloneItem(cached)
	if fetched.Label != "" {
		out.Label = fetched.Label
	}
	out.Extra = mergeExtra(cached.Extra, fetched.Extra)
	out.Values = mergeValues(cached.Values, fetched.Values)
	return out
}

func mergeValues(cached, fetched []MappableValue) []MappableValue {
	if len(cached) == 0 && len(fetched) == 0 {
		return nil
	}
	cachedIdx := make(map[string]*MappableValue, len(cached))
	for i := range cached {
		cachedIdx[cached[i].Key] = &cached[i]
	}

	merged := make([]MappableValue, 0, len(fetched)+len(cached))
	seen := make(map[string]struct{}, len(fetched))
	for i := range fetched {
		f := fetched[i]
		seen[f.Key] = struct{}{}
		c, ok := cachedIdx[f.Key]
		if !ok {
			merged = append(merged, cloneValue(f))
			continue
		}
		v := cloneValue(*c)
		if f.Label != "" {
			v.Label = f.Label
		}
		if f.Color != "" {
			v.Color = f.Color
		}
		if f.Priority != nil {
			p := *f.Priority
			v.Priority = &p
		}
		v.Extra = mergeExtra(c.Extra, f.Extra)
		merged = append(merged, v)
	}
	for i := range cached {
		if _, ok := seen[cached[i].Key]; !ok {
			merged = append(merged, cloneValue(cached[i]))
		}
	}
	return merged
}

func mergeExtra(cached, fetched map[string]any) map[string]any {
	if len(cached) == 0 && len(fetched) == 0 {
		return nil
	}
	out := make(map[string]any, len(cached)+len(fetched))
	for k, v := range cached {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out
}

// AnnotateTarget flags every target item (and value) whose label still equals
// the master label for the same key, compared case-insensitively. Returns a
// new slice; inputs are not mutated.
func AnnotateTarget(master, target []MappableItem) []MappableItem {
	masterIdx := ItemIndex(master)
	out := make([]MappableItem, 0, len(target))
	for i := range target {
		t := cloneItem(target[i])
		m, ok := masterIdx[t.Key]
		if !ok {
			out = append(out, t)
			continue
		}
		if t.Label != "" && strings.EqualFold(t.Label, m.Label) {
			t.Extra = setExtra(t.Extra, ExtraLikelyMasterLanguage, true)
		}
		for vi := range t.Values {
			mv := m.FindValue(t.Values[vi].Key)
			if mv != nil && t.Values[vi].Label != "" && strings.EqualFold(t.Values[vi].Label, mv.Label) {
				t.Values[vi].Extra = setExtra(t.Values[vi].Extra, ExtraLikelyMasterLanguage, true)
			}
		}
		out = append(out, t)
	}
	return out
}

// SortItemsByLabel orders items (and their values) by label using the given
// collator. Stable so equal labels keep their fetch order.
func SortItemsByLabel(items []MappableItem, c *collate.Collator) {
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].Label, items[j].Label) < 0
	})
	for i := range items {
		vs := items[i].Values
		sort.SliceStable(vs, func(a, b int) bool {
			return c.CompareString(vs[a].Label, vs[b].Label) < 0
		})
	}
}

func setExtra(extra map[string]any, key string, val any) map[string]any {
	if extra == nil {
		extra = make(map[string]any, 1)
	}
	extra[key] = val
	return extra
}

func cloneItem(it MappableItem) MappableItem {
	out := it
	if it.Values != nil {
		out.Values = make([]MappableValue, len(it.Values))
		for i := range it.Values {
			out.Values[i] = cloneValue(it.Values[i])
		}
	}
	out.Extra = cloneExtra(it.Extra)
	return out
}

func cloneValue(v MappableValue) MappableValue {
	out := v
	if v.Priority != nil {
		p := *v.Priority
		out.Priority = &p
	}
	out.Extra = cloneExtra(v.Extra)
	return out
}

func cloneExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
