package cart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func product(id string, cents int64) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   "Product " + id,
		Price:  domain.Cents(cents),
		Images: domain.ImageList{"https://img.example/" + id + ".jpg", "https://img.example/" + id + "-2.jpg"},
	}
}

func TestAddItemMergesSameKey(t *testing.T) {
	l := New(DefaultPricing)
	p1 := product("p1", 2500)

	require.NoError(t, l.AddItem(p1, "M", 2))
	require.NoError(t, l.AddItem(p1, "M", 1))

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "https://img.example/p1.jpg", lines[0].Image)
	assert.Equal(t, 3, l.ItemCount())
}

func TestAddItemDistinguishesSizes(t *testing.T) {
	l := New(DefaultPricing)
	p1 := product("p1", 2500)

	require.NoError(t, l.AddItem(p1, "M", 1))
	require.NoError(t, l.AddItem(p1, "L", 1))
	require.NoError(t, l.AddItem(p1, "", 1))
	require.NoError(t, l.AddItem(product("p2", 1000), "M", 1))

	lines := l.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, LineKey{ProductID: "p1", Size: "M"}, lines[0].Key())
	assert.Equal(t, LineKey{ProductID: "p1", Size: "L"}, lines[1].Key())
	assert.Equal(t, LineKey{ProductID: "p1"}, lines[2].Key())
	assert.Equal(t, LineKey{ProductID: "p2", Size: "M"}, lines[3].Key())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	l := New(DefaultPricing)
	assert.ErrorIs(t, l.AddItem(product("p1", 100), "M", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, l.AddItem(product("p1", 100), "M", -3), ErrInvalidQuantity)
	assert.Empty(t, l.Lines())
}

func TestAddItemBoundsQuantity(t *testing.T) {
	l := New(DefaultPricing)
	p := product("p1", 200)
	assert.ErrorIs(t, l.AddItem(p, "M", math.MaxInt/2+1), ErrInvalidQuantity)
	assert.ErrorIs(t, l.AddItem(p, "M", MaxQuantity+1), ErrInvalidQuantity)

	require.NoError(t, l.AddItem(p, "M", MaxQuantity-1))
	assert.ErrorIs(t, l.AddItem(p, "M", 2), ErrInvalidQuantity)
	require.NoError(t, l.AddItem(p, "M", 1))

	assert.Equal(t, MaxQuantity, l.ItemCount())
	assert.Equal(t, domain.Cents(200*MaxQuantity), l.Subtotal())
	assert.Equal(t, domain.Money(0), l.ShippingCost())
}

func TestSetQuantityRejectsAboveMax(t *testing.T) {
	l := New(DefaultPricing)
	key := LineKey{ProductID: "p1", Size: "S"}
	require.NoError(t, l.AddItem(product("p1", 1000), "S", 2))

	assert.ErrorIs(t, l.SetQuantity(key, MaxQuantity+1), ErrInvalidQuantity)
	assert.Equal(t, 2, l.ItemCount())
	require.NoError(t, l.SetQuantity(key, MaxQuantity))
	assert.Equal(t, MaxQuantity, l.ItemCount())
}

func TestAddItemKeepsFirstPriceSnapshot(t *testing.T) {
	l := New(DefaultPricing)
	p := product("p1", 2000)
	require.NoError(t, l.AddItem(p, "", 1))
	p.Price = domain.Cents(9999)
	require.NoError(t, l.AddItem(p, "", 1))
	assert.Equal(t, domain.Cents(4000), l.Subtotal())
}

func TestSetQuantity(t *testing.T) {
	l := New(DefaultPricing)
	require.NoError(t, l.AddItem(product("p1", 1000), "S", 1))
	require.NoError(t, l.AddItem(product("p2", 1000), "S", 1))

	l.SetQuantity(LineKey{ProductID: "p1", Size: "S"}, 5)
	assert.Equal(t, 6, l.ItemCount())

	l.SetQuantity(LineKey{ProductID: "missing"}, 4)
	assert.Len(t, l.Lines(), 2)

	l.SetQuantity(LineKey{ProductID: "p1", Size: "S"}, 0)
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	l.SetQuantity(LineKey{ProductID: "p2", Size: "S"}, -1)
	assert.Empty(t, l.Lines())
}

func TestRemoveItemUnknownKeyIsNoop(t *testing.T) {
	l := New(DefaultPricing)
	require.NoError(t, l.AddItem(product("p1", 1000), "M", 1))
	l.RemoveItem(LineKey{ProductID: "p1", Size: "L"})
	assert.Len(t, l.Lines(), 1)
	l.RemoveItem(LineKey{ProductID: "p1", Size: "M"})
	assert.Empty(t, l.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	l := New(DefaultPricing)
	require.NoError(t, l.AddItem(product("p1", 1000), "M", 1))
	lines := l.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, l.ItemCount())
}

func TestShippingThreshold(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		shipping int64
		total    int64
	}{
		{"subtotal 85", 8500, 1000, 9500},
		{"subtotal 120", 12000, 0, 12000},
		{"exactly 100 still pays", 10000, 1000, 11000},
		{"one cent over", 10001, 0, 10001},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := New(DefaultPricing)
			require.NoError(t, l.AddItem(product("p", tc.subtotal), "", 1))
			assert.Equal(t, domain.Cents(tc.subtotal), l.Subtotal())
			assert.Equal(t, domain.Cents(tc.shipping), l.ShippingCost())
			assert.Equal(t, domain.Cents(tc.total), l.Total())
		})
	}
}

func TestEmptyCartPaysFlatRate(t *testing.T) {
	l := New(DefaultPricing)
	assert.Equal(t, domain.Money(0), l.Subtotal())
	assert.Equal(t, domain.Cents(1000), l.ShippingCost())
	assert.Equal(t, 0, l.ItemCount())
}

func TestFreeShippingRemaining(t *testing.T) {
	l := New(Pricing{FreeShippingThreshold: domain.Cents(5000), FlatShippingRate: domain.Cents(500)})
	require.NoError(t, l.AddItem(product("p1", 4000), "", 1))
	assert.Equal(t, domain.Cents(1001), l.FreeShippingRemaining())

	require.NoError(t, l.AddItem(product("p1", 4000), "", 1))
	assert.Equal(t, domain.Money(0), l.FreeShippingRemaining())
	assert.Equal(t, domain.Money(0), l.ShippingCost())
}

func TestClear(t *testing.T) {
	l := New(DefaultPricing)
	require.NoError(t, l.AddItem(product("p1", 1000), "M", 2))
	l.Clear()
	assert.Empty(t, l.Lines())
	assert.Equal(t, domain.Money(0), l.Subtotal())
}

func TestLedgerInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	products := []domain.Product{product("a", 1999), product("b", 4550), product("c", 12000)}
	sizes := []string{"", "S", "M"}

	for iter := 0; iter < 100; iter++ {
		l := New(DefaultPricing)
		for op := 0; op < 30; op++ {
			p := products[rng.Intn(len(products))]
			key := LineKey{ProductID: p.ID, Size: sizes[rng.Intn(len(sizes))]}
			switch rng.Intn(3) {
			case 0:
				require.NoError(t, l.AddItem(p, key.Size, 1+rng.Intn(4)))
			case 1:
				l.SetQuantity(key, rng.Intn(5)-1)
			case 2:
				l.RemoveItem(key)
			}

			seen := map[LineKey]bool{}
			var sum domain.Money
			count := 0
			for _, line := range l.Lines() {
				require.False(t, seen[line.Key()], "duplicate key %v", line.Key())
				seen[line.Key()] = true
				require.Positive(t, line.Quantity)
				sum += line.LineTotal()
				count += line.Quantity
			}
			require.Equal(t, sum, l.Subtotal())
			require.Equal(t, count, l.ItemCount())
			require.Equal(t, l.Subtotal()+l.ShippingCost(), l.Total())
		}
	}
}
