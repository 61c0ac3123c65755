package compare

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaturalOrdersDigitRunsNumerically(t *testing.T) {
	values := []string{"item2", "item10", "item1"}
	sort.Slice(values, func(i, j int) bool { return Natural(values[i], values[j]) < 0 })
	require.Equal(t, []string{"item1", "item2", "item10"}, values)
}

func TestNaturalShorterTailSortsFirst(t *testing.T) {
	assert.Negative(t, Natural("A-1", "A-1b"))
	assert.Positive(t, Natural("A-1b", "A-1"))
	assert.Zero(t, Natural("A-1", "a-1"))
}

func TestNaturalMixedRuns(t *testing.T) {
	assert.Negative(t, Natural("JAE2-5", "JAE10-1"))
	assert.Negative(t, Natural("rack9", "rack10a"))
	assert.Positive(t, Natural("B01", "A99"))
}

func TestDimensionKeyNormalizesGlyphs(t *testing.T) {
	for _, s := range []string{"100x50x20", "100×50×20", "100*50*20", "100X50X20"} {
		key, n, ok := DimensionKey(s)
		require.True(t, ok, s)
		require.Equal(t, 3, n, s)
		assert.Equal(t, [3]float64{100, 50, 20}, key, s)
	}
}

func TestDimensionsComponentWise(t *testing.T) {
	assert.Negative(t, Dimensions("90x60x10", "100x50x20"), "90 < 100 on the first component")
	assert.Positive(t, Dimensions("100x50x20", "90x60x10"))
	assert.Zero(t, Dimensions("100x50", "100 x 50"))
}

func TestDimensionsMissingComponentsSortAfter(t *testing.T) {
	assert.Negative(t, Dimensions("100x50x20", "100x50"))
	assert.Positive(t, Dimensions("100x50", "100x50x20"))
}

func TestDimensionsUnparseableSortsLast(t *testing.T) {
	values := []string{"100x50x20", "N/A", "90x60x10"}
	sort.Slice(values, func(i, j int) bool { return Dimensions(values[i], values[j]) < 0 })
	require.Equal(t, []string{"90x60x10", "100x50x20", "N/A"}, values)
	assert.False(t, DimensionsParsed("N/A"))
	assert.True(t, DimensionsParsed("90x60x10"))
}

func TestDatesMissingSortsOldest(t *testing.T) {
	newer := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Negative(t, Dates(time.Time{}, newer), "missing date counts as 1900-01-01")
	assert.Zero(t, Dates(time.Time{}, time.Time{}))
}

func TestLocaleIsDeterministic(t *testing.T) {
	// Collation details are locale data; the pipeline only needs a
	// stable total order over the duplicated call.
	a, b := "東京精工", "大阪金型"
	first := Locale(a, b)
	assert.Equal(t, first, Locale(a, b))
	assert.Equal(t, -first, Locale(b, a))
	assert.Zero(t, Locale(a, a))
}
