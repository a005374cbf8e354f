package shoptet

import (
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/taxonomy"
)

// Normalization of Shoptet payloads into MappableItem. Keys prefer the
// stable code and fall back to the guid; labels prefer the display name.

func normalizeFlags(flags []FlagWire) []taxonomy.MappableItem {
	items := make([]taxonomy.MappableItem, 0, len(flags))
	for _, f := range flags {
		if f.Code == "" {
			continue
		}
		item := taxonomy.MappableItem{
			Key:   f.Code,
			Label: f.Title,
		}
		if f.Main {
			item.Extra = map[string]any{"main": true}
		}
		items = append(items, item)
	}
	return items
}

func normalizeParameters(params []ParameterWire) []taxonomy.MappableItem {
	items := make([]taxonomy.MappableItem, 0, len(params))
	for _, p := range params {
		key := p.Code
		if key == "" {
			key = p.GUID
		}
		if key == "" {
			continue
		}
		label := p.DisplayName
		if label == "" {
			label = p.Name
		}
		item := taxonomy.MappableItem{
			Key:   key,
			Label: label,
		}
		if p.GUID != "" && p.GUID != key {
			item.Extra = map[string]any{"guid": p.GUID}
		}
		if p.Priority != nil {
			if item.Extra == nil {
				item.Extra = map[string]any{}
			}
			item.Extra["priority"] = *p.Priority
		}
		item.Values = normalizeParameterValues(p.Values)
		items = append(items, item)
	}
	return items
}

func normalizeProducts(wire []ProductWire) []integration.ProductDetail {
	out := make([]integration.ProductDetail, 0, len(wire))
	for _, p := range wire {
		if p.GUID == "" {
			continue
		}
		// An unparseable price degrades to zero; the snapshot is display
		// data, not money movement.
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			price = decimal.Zero
		}
		out = append(out, integration.ProductDetail{
			RemoteGUID:          p.GUID,
			Code:                p.Code,
			Name:                p.Name,
			Price:               price,
			Currency:            p.CurrencyCode,
			DefaultCategoryGUID: p.DefaultCategory.GUID,
		})
	}
	return out
}

func normalizeParameterValues(values []ParameterValueWire) []taxonomy.MappableValue {
	if len(values) == 0 {
		return nil
	}
	out := make([]taxonomy.MappableValue, 0, len(values))
	for _, v := range values {
		key := v.Code
		if key == "" {
			key = v.GUID
		}
		if key == "" {
			continue
		}
		val := taxonomy.MappableValue{
			Key:      key,
			Label:    v.Name,
			Color:    v.Color,
			Priority: v.Priority,
		}
		if v.GUID != "" && v.GUID != key {
			val.Extra = map[string]any{"guid": v.GUID}
		}
		out = append(out, val)
	}
	return out
}
