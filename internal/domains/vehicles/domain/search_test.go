package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func mustVehicle(t *testing.T, brand, model string, year int, color string, price float64) *Vehicle {
	t.Helper()
	v, err := NewVehicle(brand, model, year, color, price)
	require.NoError(t, err)
	return v
}

func TestSearchCriteria_Validate(t *testing.T) {
	cases := []struct {
		name     string
		criteria SearchCriteria
		wantErr  error
	}{
		{"empty criteria", SearchCriteria{}, nil},
		{"valid ranges", SearchCriteria{MinPrice: ptr(1000.0), MaxPrice: ptr(5000.0), MinYear: ptr(2010), MaxYear: ptr(2020)}, nil},
		{"equal price bounds", SearchCriteria{MinPrice: ptr(1000.0), MaxPrice: ptr(1000.0)}, nil},
		{"negative min price", SearchCriteria{MinPrice: ptr(-1.0)}, ErrNegativePrice},
		{"negative max price", SearchCriteria{MaxPrice: ptr(-1.0)}, ErrNegativePrice},
		{"inverted price range", SearchCriteria{MinPrice: ptr(5000.0), MaxPrice: ptr(1000.0)}, ErrInvalidPriceRange},
		{"year out of range", SearchCriteria{Year: ptr(1899)}, ErrInvalidYear},
		{"min year out of range", SearchCriteria{MinYear: ptr(1800)}, ErrInvalidYear},
		{"inverted year range", SearchCriteria{MinYear: ptr(2020), MaxYear: ptr(2010)}, ErrInvalidYearRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.criteria.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSearchCriteria_Matches_Substrings(t *testing.T) {
	v := mustVehicle(t, "Volkswagen", "Golf GTI", 2019, "Dark Blue", 32000)

	assert.True(t, SearchCriteria{Brand: "volks"}.Matches(v))
	assert.True(t, SearchCriteria{Model: "gti"}.Matches(v))
	assert.True(t, SearchCriteria{Color: "BLUE"}.Matches(v))
	assert.True(t, SearchCriteria{Brand: "wagen", Model: "golf", Color: "dark"}.Matches(v))
	assert.False(t, SearchCriteria{Brand: "toyota"}.Matches(v))
	// Blank filters are ignored rather than matched literally.
	assert.True(t, SearchCriteria{Brand: "  "}.Matches(v))
}

func TestSearchCriteria_Matches_PriceBounds(t *testing.T) {
	v := mustVehicle(t, "Fiat", "Uno", 2015, "Red", 18000)

	assert.True(t, SearchCriteria{MinPrice: ptr(18000.0)}.Matches(v))
	assert.True(t, SearchCriteria{MaxPrice: ptr(18000.0)}.Matches(v))
	assert.False(t, SearchCriteria{MinPrice: ptr(18000.01)}.Matches(v))
	assert.False(t, SearchCriteria{MaxPrice: ptr(17999.99)}.Matches(v))
}

func TestSearchCriteria_Matches_ExactYearWinsOverRange(t *testing.T) {
	v := mustVehicle(t, "Honda", "Civic", 2018, "Silver", 27000)

	// The exact year filter suppresses the range bounds entirely.
	c := SearchCriteria{Year: ptr(2018), MinYear: ptr(2020), MaxYear: ptr(2024)}
	assert.True(t, c.Matches(v))

	c = SearchCriteria{Year: ptr(2019), MinYear: ptr(2015), MaxYear: ptr(2020)}
	assert.False(t, c.Matches(v))
}

func TestSearchCriteria_Matches_Availability(t *testing.T) {
	available := mustVehicle(t, "Honda", "Fit", 2017, "White", 15000)
	sold := mustVehicle(t, "Honda", "Fit", 2017, "White", 15000)
	require.NoError(t, sold.ApplyPayment("PAY-9", PaymentPaid, ""))

	onlyAvailable := SearchCriteria{IsAvailable: ptr(true)}
	assert.True(t, onlyAvailable.Matches(available))
	assert.False(t, onlyAvailable.Matches(sold))

	onlySold := SearchCriteria{IsAvailable: ptr(false)}
	assert.False(t, onlySold.Matches(available))
	assert.True(t, onlySold.Matches(sold))
}

func TestSortSearchResults_AvailableFirstThenPrice(t *testing.T) {
	soldCheap := mustVehicle(t, "A", "A", 2015, "Black", 1000)
	require.NoError(t, soldCheap.ApplyPayment("P1", PaymentPaid, ""))
	soldDear := mustVehicle(t, "B", "B", 2015, "Black", 9000)
	require.NoError(t, soldDear.ApplyPayment("P2", PaymentPaid, ""))
	freeCheap := mustVehicle(t, "C", "C", 2015, "Black", 2000)
	freeDear := mustVehicle(t, "D", "D", 2015, "Black", 8000)

	list := []*Vehicle{soldDear, freeDear, soldCheap, freeCheap}
	SortSearchResults(list)

	assert.Equal(t, []*Vehicle{freeCheap, freeDear, soldCheap, soldDear}, list)
}

func TestSortByPrice(t *testing.T) {
	a := mustVehicle(t, "A", "A", 2015, "Black", 3000)
	b := mustVehicle(t, "B", "B", 2015, "Black", 1000)
	c := mustVehicle(t, "C", "C", 2015, "Black", 2000)

	list := []*Vehicle{a, b, c}
	SortByPrice(list)

	assert.Equal(t, []*Vehicle{b, c, a}, list)
}
