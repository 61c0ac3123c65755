package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanadex/internal/domain"
)

func makeItems(n int) []*domain.Item {
	items := make([]*domain.Item, n)
	for i := 0; i < n; i++ {
		items[i] = &domain.Item{
			MoldID: fmt.Sprintf("%d", i+1),
			Kind:   domain.KindMold,
			Code:   fmt.Sprintf("item%d", i+1),
		}
	}
	return items
}

func TestPaginationClamp(t *testing.T) {
	c := NewCardRenderer(24)
	c.Render(makeItems(50), 1)
	require.Equal(t, 3, c.TotalPages(), "50 items at 24 per page is 3 pages")

	c.SetPage(5)
	c.Render(c.Items(), c.Page())
	assert.Equal(t, 3, c.Page(), "page must clamp to the last page, never an empty one")
	assert.Len(t, c.PageItems(), 2)
}

func TestEmptyResultSetStillHasOnePage(t *testing.T) {
	c := NewCardRenderer(24)
	c.Render(nil, 7)
	assert.Equal(t, 1, c.TotalPages())
	assert.Equal(t, 1, c.Page())
	assert.Empty(t, c.PageItems())
}

func TestDefaultSortIsProductionDateDescending(t *testing.T) {
	old := &domain.Item{MoldID: "1", Kind: domain.KindMold,
		ProductionDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &domain.Item{MoldID: "2", Kind: domain.KindMold,
		ProductionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	undated := &domain.Item{MoldID: "3", Kind: domain.KindMold}

	c := NewCardRenderer(24)
	c.Render([]*domain.Item{old, undated, newer}, 1)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "2", items[0].ID())
	assert.Equal(t, "1", items[1].ID())
	assert.Equal(t, "3", items[2].ID(), "missing dates sort as oldest")
}

func TestSharedSortPreferenceUsed(t *testing.T) {
	c := NewCardRenderer(24)
	c.SetSortFunction(func() domain.SortSpec {
		return domain.SortSpec{Field: "code", Direction: "asc"}
	})

	items := []*domain.Item{
		{MoldID: "1", Kind: domain.KindMold, Code: "item10"},
		{MoldID: "2", Kind: domain.KindMold, Code: "item2"},
	}
	c.Render(items, 1)
	assert.Equal(t, "item2", c.Items()[0].Code, "natural ascending by code")
}

func TestUnknownSortFieldLeavesOrderAlone(t *testing.T) {
	c := NewCardRenderer(24)
	c.SetSortFunction(func() domain.SortSpec {
		return domain.SortSpec{Field: "deleted-field", Direction: "asc"}
	})

	items := makeItems(3)
	c.Render(items, 1)
	for i, item := range c.Items() {
		assert.Equal(t, items[i].ID(), item.ID())
	}
}

func TestSelectAllResultsSpansAllPages(t *testing.T) {
	c := NewCardRenderer(24)
	c.Render(makeItems(50), 1)

	c.SelectAllResults()
	assert.Equal(t, 50, c.SelectionCount(), "card select-all covers every page")
}

func TestToggleSelectAndCallbackNumericIDs(t *testing.T) {
	c := NewCardRenderer(24)
	items := makeItems(2)
	items = append(items, &domain.Item{MoldID: "not-a-number", Kind: domain.KindMold})
	c.Render(items, 1)

	var got []int
	c.SetSelectionChangedFunction(func(ids []int) { got = ids })

	c.ToggleSelect("1")
	c.ToggleSelect("2")
	c.ToggleSelect("not-a-number")
	assert.Equal(t, []int{1, 2}, got, "unparseable ids are filtered from the callback")
	assert.Equal(t, 3, c.SelectionCount(), "the string set still holds all three")

	c.ToggleSelect("1")
	assert.Equal(t, []int{2}, got)
}

func TestSetSelectionDoesNotFireCallback(t *testing.T) {
	c := NewCardRenderer(24)
	c.Render(makeItems(3), 1)

	fired := false
	c.SetSelectionChangedFunction(func([]int) { fired = true })

	c.SetSelection([]string{"1", "3"})
	assert.False(t, fired, "coordinator sync must not recurse through the callback")
	assert.True(t, c.IsSelected("1"))
	assert.True(t, c.IsSelected("3"))
	assert.False(t, c.IsSelected("2"))
}

func TestItemClickCallback(t *testing.T) {
	c := NewCardRenderer(24)
	items := makeItems(1)
	c.Render(items, 1)

	var clicked *domain.Item
	c.SetItemClickFunction(func(i *domain.Item) { clicked = i })

	c.Click(items[0])
	require.NotNil(t, clicked)
	assert.Equal(t, "1", clicked.ID())
}
