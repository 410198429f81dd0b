// Package region holds the static delivery region catalog and its shipping tiers.
package region

import (
	"errors"
	"strings"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// Tier prices in EGP.
const (
	DeltaNorthPrice model.Money = 70
	SuezPrice       model.Money = 50
	UpperEgyptPrice model.Money = 120
)

// ErrUnknownRegion is returned when a region name is not in the catalog.
var ErrUnknownRegion = errors.New("unknown region")

var catalog = []model.Region{
	{Name: "Cairo", ArabicName: "القاهرة", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Giza", ArabicName: "الجيزة", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Qalyubia", ArabicName: "القليوبية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Alexandria", ArabicName: "الإسكندرية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Beheira", ArabicName: "البحيرة", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Kafr El Sheikh", ArabicName: "كفر الشيخ", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Dakahlia", ArabicName: "الدقهلية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Sharqia", ArabicName: "الشرقية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Gharbia", ArabicName: "الغربية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Monufia", ArabicName: "المنوفية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Damietta", ArabicName: "دمياط", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Port Said", ArabicName: "بورسعيد", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Ismailia", ArabicName: "الإسماعيلية", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Suez", ArabicName: "السويس", Price: SuezPrice, Tier: model.TierCanalException},
	{Name: "North Sinai", ArabicName: "شمال سيناء", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "South Sinai", ArabicName: "جنوب سيناء", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},
	{Name: "Matrouh", ArabicName: "مرسى مطروح", Price: DeltaNorthPrice, Tier: model.TierDeltaNorth},

	{Name: "Beni Suef", ArabicName: "بني سويف", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Faiyum", ArabicName: "الفيوم", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Minya", ArabicName: "المنيا", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Asyut", ArabicName: "أسيوط", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Sohag", ArabicName: "سوهاج", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Qena", ArabicName: "قنا", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Luxor", ArabicName: "الأقصر", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Aswan", ArabicName: "أسوان", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "Red Sea", ArabicName: "البحر الأحمر", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
	{Name: "New Valley", ArabicName: "الوادي الجديد", Price: UpperEgyptPrice, Tier: model.TierUpperEgypt},
}

// Table is a read-only index over the region catalog.
type Table struct {
	regions []model.Region
	byName  map[string]model.Region
}

// NewTable builds the table for the built-in catalog.
func NewTable() *Table {
	return newTable(catalog)
}

func newTable(regions []model.Region) *Table {
	t := &Table{
		regions: regions,
		byName:  make(map[string]model.Region, len(regions)*2),
	}
	for _, r := range regions {
		t.byName[normalize(r.Name)] = r
		if r.ArabicName != "" {
			t.byName[strings.TrimSpace(r.ArabicName)] = r
		}
	}
	return t
}

// Lookup returns the region registered under name (English, case-insensitive, or Arabic).
func (t *Table) Lookup(name string) (model.Region, error) {
	r, ok := t.byName[normalize(name)]
	if !ok {
		r, ok = t.byName[strings.TrimSpace(name)]
	}
	if !ok {
		return model.Region{}, ErrUnknownRegion
	}
	return r, nil
}

// ShippingPrice returns the tier price for name and whether the name is known.
func (t *Table) ShippingPrice(name string) (model.Money, bool) {
	r, err := t.Lookup(name)
	if err != nil {
		return 0, false
	}
	return r.Price, true
}

// All returns a copy of the catalog in display order.
func (t *Table) All() []model.Region {
	out := make([]model.Region, len(t.regions))
	copy(out, t.regions)
	return out
}

// ByTier returns the regions of one tier in display order.
func (t *Table) ByTier(tier model.Tier) []model.Region {
	var out []model.Region
	for _, r := range t.regions {
		if r.Tier == tier {
			out = append(out, r)
		}
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
