package region

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

func TestTable_Lookup_Suez(t *testing.T) {
	table := NewTable()

	r, err := table.Lookup("Suez")

	require.NoError(t, err)
	assert.Equal(t, model.Money(50), r.Price)
	assert.Equal(t, model.TierCanalException, r.Tier)
}

func TestTable_Lookup_DeltaNorth(t *testing.T) {
	table := NewTable()

	for _, name := range []string{
		"Cairo", "Giza", "Qalyubia", "Alexandria", "Beheira", "Kafr El Sheikh", "Dakahlia",
		"Sharqia", "Gharbia", "Monufia", "Damietta", "Port Said", "Ismailia", "North Sinai",
		"South Sinai", "Matrouh",
	} {
		price, ok := table.ShippingPrice(name)
		assert.True(t, ok, name)
		assert.Equal(t, model.Money(70), price, name)
	}
}

func TestTable_Lookup_UpperEgypt(t *testing.T) {
	table := NewTable()

	for _, name := range []string{
		"Beni Suef", "Faiyum", "Minya", "Asyut", "Sohag", "Qena", "Luxor", "Aswan", "Red Sea", "New Valley",
	} {
		price, ok := table.ShippingPrice(name)
		assert.True(t, ok, name)
		assert.Equal(t, model.Money(120), price, name)
	}
}

func TestTable_Lookup_CaseAndWhitespaceInsensitive(t *testing.T) {
	table := NewTable()

	r, err := table.Lookup("  kafr el SHEIKH ")

	require.NoError(t, err)
	assert.Equal(t, "Kafr El Sheikh", r.Name)
}

func TestTable_Lookup_ArabicName(t *testing.T) {
	table := NewTable()

	r, err := table.Lookup("السويس")

	require.NoError(t, err)
	assert.Equal(t, "Suez", r.Name)
	assert.Equal(t, model.Money(50), r.Price)
}

func TestTable_Lookup_Unknown(t *testing.T) {
	table := NewTable()

	_, err := table.Lookup("Atlantis")
	assert.True(t, errors.Is(err, ErrUnknownRegion))

	price, ok := table.ShippingPrice("Atlantis")
	assert.False(t, ok)
	assert.Equal(t, model.Money(0), price)
}

func TestTable_TierSizes(t *testing.T) {
	table := NewTable()

	assert.Len(t, table.All(), 27)
	assert.Len(t, table.ByTier(model.TierDeltaNorth), 16)
	assert.Len(t, table.ByTier(model.TierCanalException), 1)
	assert.Len(t, table.ByTier(model.TierUpperEgypt), 10)
}

func TestTable_All_ReturnsCopy(t *testing.T) {
	table := NewTable()

	regions := table.All()
	regions[0].Price = 999

	r, err := table.Lookup(regions[0].Name)
	require.NoError(t, err)
	assert.Equal(t, model.Money(70), r.Price)
}
