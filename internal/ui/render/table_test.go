package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

func tableItems(n int) []*domain.Item {
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

func TestPageScopedSelectAllVsAllResults(t *testing.T) {
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(tableItems(150))
	require.Equal(t, 3, tr.TotalPages())

	tr.SetPage(2)
	tr.ToggleSelectAll()
	assert.Equal(t, 50, tr.SelectionCount(), "header checkbox selects only the visible page")
	for _, item := range tr.PageItems() {
		assert.True(t, tr.IsSelected(item.ID()))
	}

	tr.ToggleSelectAll()
	assert.Zero(t, tr.SelectionCount(), "second toggle unselects the page")

	tr.SelectAllResults()
	assert.Equal(t, 150, tr.SelectionCount(), "bulk-audit path selects every filtered row")
}

func TestPagePreservedAcrossRerenders(t *testing.T) {
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(tableItems(150))
	tr.SetPage(2)

	tr.Render(tableItems(150))
	assert.Equal(t, 2, tr.Page(), "table re-render keeps the page, unlike the card view")

	tr.Render(tableItems(60))
	assert.Equal(t, 2, tr.Page())

	tr.Render(tableItems(10))
	assert.Equal(t, 1, tr.Page(), "but the page still clamps when the list shrinks")
}

func TestHeaderClickTogglesDirection(t *testing.T) {
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(tableItems(3))

	tr.ClickColumn(ColumnCode)
	assert.Equal(t, ColumnCode, tr.SortColumn())
	assert.Equal(t, "desc", tr.SortDirection(), "a new column opens descending")

	tr.ClickColumn(ColumnCode)
	assert.Equal(t, "asc", tr.SortDirection())

	tr.ClickColumn(ColumnID)
	assert.Equal(t, ColumnID, tr.SortColumn())
	assert.Equal(t, "desc", tr.SortDirection())
}

func TestNaturalSortOnPlainColumn(t *testing.T) {
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(tableItems(10)) // codes item1..item10

	tr.SetSort(ColumnCode, "asc")
	rows := tr.Filtered()
	assert.Equal(t, "item1", rows[0].Code)
	assert.Equal(t, "item2", rows[1].Code)
	assert.Equal(t, "item10", rows[9].Code, "digit runs compare numerically")
}

func TestDimensionSortPinsUnparseableLast(t *testing.T) {
	items := []*domain.Item{
		{MoldID: "1", Kind: domain.KindMold, Dimensions: "100x50x20"},
		{MoldID: "2", Kind: domain.KindMold, Dimensions: "N/A"},
		{MoldID: "3", Kind: domain.KindMold, Dimensions: "90x60x10"},
	}
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(items)

	tr.SetSort(ColumnDimensions, "asc")
	rows := tr.Filtered()
	assert.Equal(t, "90x60x10", rows[0].Dimensions)
	assert.Equal(t, "100x50x20", rows[1].Dimensions)
	assert.Equal(t, "N/A", rows[2].Dimensions)

	tr.SetSort(ColumnDimensions, "desc")
	rows = tr.Filtered()
	assert.Equal(t, "100x50x20", rows[0].Dimensions)
	assert.Equal(t, "N/A", rows[2].Dimensions, "unparseable stays last in either direction")
}

func TestStatusDateSortDiffersFromProductionDate(t *testing.T) {
	produced2020 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	produced2024 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []*domain.Item{
		{MoldID: "1", Kind: domain.KindMold, ProductionDate: produced2024,
			Status: &domain.ItemStatus{Text: "IN", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}},
		{MoldID: "2", Kind: domain.KindMold, ProductionDate: produced2020,
			Status: &domain.ItemStatus{Text: "OUT", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}},
	}
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(items)

	tr.SetSort(ColumnProductionDate, "desc")
	assert.Equal(t, "1", tr.Filtered()[0].ID())

	tr.SetSort(ColumnStatusDate, "desc")
	assert.Equal(t, "2", tr.Filtered()[0].ID(), "latest check-in/out wins, not manufacture date")
}

func TestUnknownSortColumnIsNoop(t *testing.T) {
	tr := NewTableRenderer(50, nil, nil)
	items := tableItems(3)
	tr.SetItems(items)

	tr.SetSort("ghost-column", "asc")
	for i, row := range tr.Filtered() {
		assert.Equal(t, items[i].ID(), row.ID(), "stale sort keys leave the order unchanged")
	}
}

func TestColumnFilterIncludeSet(t *testing.T) {
	items := []*domain.Item{
		{MoldID: "1", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "IN"}},
		{MoldID: "2", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "OUT"}},
		{MoldID: "3", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "IN"}},
	}
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(items)

	assert.Equal(t, []string{"IN", "OUT"}, tr.ColumnValues(ColumnStatus))

	tr.SetColumnFilter(ColumnStatus, []string{"IN"})
	assert.True(t, tr.HasColumnFilter(ColumnStatus))
	assert.Len(t, tr.Filtered(), 2)

	// Checking every box again removes the restriction
	tr.SetColumnFilter(ColumnStatus, []string{"IN", "OUT"})
	assert.False(t, tr.HasColumnFilter(ColumnStatus))
	assert.Len(t, tr.Filtered(), 3)
}

func TestColumnFilterReportsActiveIncludeSet(t *testing.T) {
	items := []*domain.Item{
		{MoldID: "1", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "IN"}},
		{MoldID: "2", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "OUT"}},
		{MoldID: "3", Kind: domain.KindMold, Status: &domain.ItemStatus{Text: "修理中"}},
	}
	tr := NewTableRenderer(50, nil, nil)
	tr.SetItems(items)

	assert.Nil(t, tr.ColumnFilter(ColumnStatus), "unrestricted column has no include set")

	tr.SetColumnFilter(ColumnStatus, []string{"OUT", "IN"})
	assert.Equal(t, []string{"IN", "OUT"}, tr.ColumnFilter(ColumnStatus))
}

func TestClearColumnFiltersIsSilent(t *testing.T) {
	bus := eventbus.New(nil)
	tr := NewTableRenderer(50, bus, nil)
	tr.SetItems(tableItems(5))
	tr.SetColumnFilter(ColumnCode, []string{"item1"})

	emitted := 0
	bus.Subscribe(eventbus.EventTableFiltered, func(eventbus.DomainEvent) { emitted++ })
	bus.Subscribe(eventbus.EventResultsUpdated, func(eventbus.DomainEvent) { emitted++ })

	tr.ClearColumnFilters()
	assert.Zero(t, emitted, "coordinator-driven clearing must not re-enter the pipeline")
	assert.Len(t, tr.Filtered(), 5)
}

func TestUserRecomputationReemits(t *testing.T) {
	bus := eventbus.New(nil)
	tr := NewTableRenderer(50, bus, nil)
	tr.SetItems(tableItems(3))

	var tableEvents []eventbus.TableFilteredEvent
	var updates []eventbus.ResultsUpdatedEvent
	bus.Subscribe(eventbus.EventTableFiltered, func(e eventbus.DomainEvent) {
		tableEvents = append(tableEvents, e.(eventbus.TableFilteredEvent))
	})
	bus.Subscribe(eventbus.EventResultsUpdated, func(e eventbus.DomainEvent) {
		updates = append(updates, e.(eventbus.ResultsUpdatedEvent))
	})

	tr.ClickColumn(ColumnCode)

	require.Len(t, tableEvents, 1)
	assert.Equal(t, ColumnCode, tableEvents[0].SortColumn)
	assert.Equal(t, "desc", tableEvents[0].SortDirection)
	require.Len(t, updates, 1)
	assert.Equal(t, domain.OriginTable, updates[0].Origin)
	assert.Equal(t, 3, updates[0].Total)
}

func TestScrollLockIsPurelyPresentational(t *testing.T) {
	bus := eventbus.New(nil)
	tr := NewTableRenderer(50, bus, nil)
	tr.SetItems(tableItems(3))

	emitted := 0
	bus.Subscribe(eventbus.EventTableFiltered, func(eventbus.DomainEvent) { emitted++ })

	before := tr.Filtered()
	tr.ToggleScrollLock()
	assert.True(t, tr.ScrollLocked())
	assert.Equal(t, before, tr.Filtered())
	assert.Zero(t, emitted)
}
