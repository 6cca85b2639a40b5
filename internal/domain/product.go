package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Feed keys understood by Product.Field.
const (
	KeyID                  = "id"
	KeySKU                 = "sku"
	KeyTitle               = "title"
	KeyPrice               = "price"
	KeyVendor              = "vendor"
	KeyInventoryQuantity   = "inventory_quantity"
	KeyCustomSymbol        = "custom_symbol"
	KeyCustomKodProducenta = "custom_kod_producenta"
	KeyCustomManufacturer  = "custom_manufacturer"
	KeyCustomTyp           = "custom_typ"
	KeyCustomCategory      = "custom_category"
	KeyCustomFi            = "custom_fi"
	KeyCustomSrednica      = "custom_srednica"
	KeyFi                  = "fi"
	KeyMetafieldDiameter   = "metafields.custom.diameter"
	KeyDiameter            = "diameter"
	KeyRodzaj              = "rodzaj"
)

// Fallback chains, in precedence order.
var (
	SKUKeys          = []string{KeySKU, KeyCustomSymbol, KeyCustomKodProducenta}
	ManufacturerKeys = []string{KeyVendor, KeyCustomManufacturer}
	DiameterKeys     = []string{KeyCustomFi, KeyCustomSrednica, KeyFi, KeyMetafieldDiameter, KeyDiameter}
	SearchKeys       = []string{
		KeyTitle,
		KeyCustomSymbol,
		KeyCustomKodProducenta,
		KeyVendor,
		KeyCustomManufacturer,
		KeyCustomTyp,
		KeyRodzaj,
		KeySKU,
	}
)

type Variant struct {
	ID                Field `json:"id"`
	SKU               Field `json:"sku"`
	Price             Field `json:"price"`
	InventoryQuantity Field `json:"inventory_quantity"`
}

// Variants decodes leniently: a non-array value yields no variants and
// entries that are not objects are dropped.
type Variants []Variant

func (v *Variants) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = nil
		return nil
	}

	out := make(Variants, 0, len(raw))
	for _, entry := range raw {
		var variant Variant
		if err := json.Unmarshal(entry, &variant); err != nil {
			continue
		}
		out = append(out, variant)
	}

	*v = out
	return nil
}

// Metafields maps namespace -> key -> value. Non-object values are ignored.
type Metafields map[string]map[string]Field

func (m *Metafields) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = nil
		return nil
	}

	out := make(Metafields, len(raw))
	for namespace, body := range raw {
		var fields map[string]Field
		if err := json.Unmarshal(body, &fields); err != nil {
			continue
		}
		out[namespace] = fields
	}

	*m = out
	return nil
}

func (m Metafields) Get(namespace, key string) Field {
	return m[namespace][key]
}

// Product is a feed record. The pipeline only ever reads it.
type Product struct {
	ID                  Field      `json:"id"`
	SKU                 Field      `json:"sku"`
	Title               Field      `json:"title"`
	Price               Field      `json:"price"`
	Vendor              Field      `json:"vendor"`
	InventoryQuantity   Field      `json:"inventory_quantity"`
	Variants            Variants   `json:"variants,omitempty"`
	Metafields          Metafields `json:"metafields,omitempty"`
	CustomSymbol        Field      `json:"custom_symbol,omitempty"`
	CustomKodProducenta Field      `json:"custom_kod_producenta,omitempty"`
	CustomManufacturer  Field      `json:"custom_manufacturer,omitempty"`
	CustomTyp           Field      `json:"custom_typ,omitempty"`
	CustomCategory      Field      `json:"custom_category,omitempty"`
	CustomFi            Field      `json:"custom_fi,omitempty"`
	CustomSrednica      Field      `json:"custom_srednica,omitempty"`
	Fi                  Field      `json:"fi,omitempty"`
	Diameter            Field      `json:"diameter,omitempty"`
	Rodzaj              Field      `json:"rodzaj,omitempty"`

	// Available is decoded for completeness but never decides purchasability;
	// stock is always derived from inventory quantities.
	Available Field `json:"available,omitempty"`
}

// Field returns the value stored under a feed key, or "" for unknown keys.
func (p Product) Field(key string) Field {
	switch key {
	case KeyID:
		return p.ID
	case KeySKU:
		return p.SKU
	case KeyTitle:
		return p.Title
	case KeyPrice:
		return p.Price
	case KeyVendor:
		return p.Vendor
	case KeyInventoryQuantity:
		return p.InventoryQuantity
	case KeyCustomSymbol:
		return p.CustomSymbol
	case KeyCustomKodProducenta:
		return p.CustomKodProducenta
	case KeyCustomManufacturer:
		return p.CustomManufacturer
	case KeyCustomTyp:
		return p.CustomTyp
	case KeyCustomCategory:
		return p.CustomCategory
	case KeyCustomFi:
		return p.CustomFi
	case KeyCustomSrednica:
		return p.CustomSrednica
	case KeyFi:
		return p.Fi
	case KeyMetafieldDiameter:
		return p.Metafields.Get("custom", "diameter")
	case KeyDiameter:
		return p.Diameter
	case KeyRodzaj:
		return p.Rodzaj
	default:
		return ""
	}
}

// Resolve returns the first non-blank value among keys, trimmed, or "".
func Resolve(p Product, keys ...string) string {
	return ResolveOr(p, "", keys...)
}

// ResolveOr is Resolve with an explicit final default.
func ResolveOr(p Product, fallback string, keys ...string) string {
	for _, key := range keys {
		if v := p.Field(key); !v.Blank() {
			return strings.TrimSpace(v.String())
		}
	}
	return fallback
}

// FirstPresent returns the first non-empty value among keys exactly as the
// feed sent it. Whitespace-only values count as present.
func FirstPresent(p Product, keys ...string) string {
	for _, key := range keys {
		if v := p.Field(key); v != "" {
			return v.String()
		}
	}
	return ""
}

// PriceDecimal parses the price, accepting a comma as decimal separator.
func (p Product) PriceDecimal() (decimal.Decimal, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(p.Price.String()), ",", ".")
	if raw == "" {
		return decimal.Zero, false
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return price, true
}
