package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Find(t *testing.T) {
	catalog := Catalog{
		{ID: "a", Brand: "Nova", Model: "P2"},
		{ID: "b", Brand: "Alu"},
	}

	item, ok := catalog.Find("a")
	require.True(t, ok)
	assert.Equal(t, "Nova P2", item.Label())

	item.Brand = "changed"
	again, _ := catalog.Find("a")
	assert.Equal(t, "Nova", again.Brand)

	b, _ := catalog.Find("b")
	assert.Equal(t, "Alu", b.Label())

	_, ok = catalog.Find("")
	assert.False(t, ok)
	_, ok = catalog.Find("zzz")
	assert.False(t, ok)
}

func TestCatalogItem_DecodesLooseNumbers(t *testing.T) {
	var item CatalogItem
	raw := `{"id":"m1","type":"module","width":"320","height":160,"price":"","maxPower":"450","currency":"USD"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Equal(t, KindModule, item.Kind)
	assert.Equal(t, 320.0, item.Width.Float())
	assert.Zero(t, item.Price.Float())
	assert.Equal(t, 450.0, item.MaxPower.Float())
	assert.True(t, item.HasSize())
}

func TestLedger_Stock(t *testing.T) {
	ledger := Ledger{
		{ItemID: "cab", Direction: DirectionIn, Qty: 100},
		{ItemID: "cab", Direction: DirectionOut, Qty: 20},
		{ItemID: "cab", Direction: "adjust", Qty: 0.1},
		{ItemID: "mod", Direction: DirectionIn, Qty: 0.1},
		{ItemID: "mod", Direction: DirectionIn, Qty: 0.2},
		{ItemID: "", Direction: DirectionIn, Qty: 5},
	}

	assert.Equal(t, 79.9, ledger.Stock("cab"))
	assert.Equal(t, 0.3, ledger.Stock("mod"))
	assert.Zero(t, ledger.Stock("unknown"))

	levels := ledger.StockLevels()
	assert.Len(t, levels, 2)
	assert.Equal(t, 79.9, levels["cab"])
	assert.Equal(t, 0.3, levels["mod"])
}

func TestScreenSpec_ScreenCount(t *testing.T) {
	for raw, want := range map[string]float64{`{}`: 1, `{"screenQty":"3"}`: 3, `{"screenQty":0}`: 1, `{"screenQty":-2}`: 1, `{"screenQty":"x"}`: 1} {
		var spec ScreenSpec
		require.NoError(t, json.Unmarshal([]byte(raw), &spec))
		assert.Equal(t, want, spec.ScreenCount(), raw)
	}
}

func TestScreenSpec_Duplicate(t *testing.T) {
	spec := ScreenSpec{
		ID:        "orig",
		Name:      "Lobby",
		ModuleID:  "m1",
		Extras:    []ExtraComponent{{ID: "x1", ComponentID: "c"}},
		Overrides: map[string]Override{"modules": {Qty: Some(3)}},
	}

	dup := spec.Duplicate()
	assert.NotEqual(t, spec.ID, dup.ID)
	assert.NotEmpty(t, dup.ID)
	assert.Equal(t, "m1", dup.ModuleID)
	assert.Nil(t, dup.Overrides)

	dup.Extras[0].ComponentID = "changed"
	assert.Equal(t, "c", spec.Extras[0].ComponentID)
}

func TestSizingMode_Normalize(t *testing.T) {
	assert.Equal(t, SizingUp, SizingMode("ceil").Normalize())
	assert.Equal(t, SizingDown, SizingMode(" Down ").Normalize())
	assert.Equal(t, SizingNearest, SizingMode("").Normalize())
	assert.Equal(t, SizingNearest, SizingMode("nearest").Normalize())
}
