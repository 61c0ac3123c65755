package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanadex/internal/config"
	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
	"kanadex/internal/filter"
	"kanadex/internal/search"
	"kanadex/internal/ui/coordinator"
	"kanadex/internal/ui/render"
)

func TestCategoryCycle(t *testing.T) {
	assert.Equal(t, domain.CategoryMold, nextCategory(domain.CategoryAll))
	assert.Equal(t, domain.CategoryCutter, nextCategory(domain.CategoryMold))
	assert.Equal(t, domain.CategoryAll, nextCategory(domain.CategoryCutter))
}

func TestSortFieldCycleWrapsAround(t *testing.T) {
	seen := map[string]bool{}
	field := "productionDate"
	for range sortCycle {
		field = nextSortField(field)
		assert.False(t, seen[field], "cycle revisited %s early", field)
		seen[field] = true
	}
	assert.Equal(t, "productionDate", field)
}

func TestSortFieldCycleRecoversFromUnknownField(t *testing.T) {
	assert.Equal(t, sortCycle[0], nextSortField("bogus"))
}

type stubSource struct {
	items []*domain.Item
}

func (s *stubSource) GetAllItems() []*domain.Item { return s.items }
func (s *stubSource) Ready() bool                 { return true }

func newTestModel(t *testing.T, items []*domain.Item) *Model {
	t.Helper()
	bus := eventbus.New(nil)
	src := &stubSource{items: items}
	se := search.NewEngine(src, bus, nil)
	fe := filter.NewEngine(bus, se, src, nil)
	card := render.NewCardRenderer(24)
	table := render.NewTableRenderer(50, bus, nil)
	coord := coordinator.NewCoordinator(bus, se, fe, card, table, nil)

	m := NewModel(Deps{
		Bus:    bus,
		Config: config.DefaultConfig(),
		Search: se,
		Filter: fe,
		Card:   card,
		Table:  table,
		Coord:  coord,
	})
	se.PerformSearch()
	return m
}

func statusItems(n int) []*domain.Item {
	items := make([]*domain.Item, 0, n)
	for i := 1; i <= n; i++ {
		status := "IN"
		if i%2 == 0 {
			status = "OUT"
		}
		items = append(items, &domain.Item{
			MoldID: fmt.Sprintf("%d", i),
			Kind:   domain.KindMold,
			Name:   "金型" + fmt.Sprintf("%d", i),
			Status: &domain.ItemStatus{Text: status},
		})
	}
	return items
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "ctrl+a":
			msg = tea.KeyMsg{Type: tea.KeyCtrlA}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

// goToStatusColumn opens the column picker and moves the cursor to the
// status column, the last entry in the display order.
func goToStatusColumn(m *Model) {
	press(m, "o")
	for i := 0; i < len(render.Columns)-1; i++ {
		press(m, "j")
	}
}

func TestColumnFilterPopupNarrowsTable(t *testing.T) {
	m := newTestModel(t, statusItems(6))
	press(m, "tab")
	require.Equal(t, coordinator.ViewTable, m.coord.CurrentView())

	goToStatusColumn(m)
	require.Equal(t, modeColumnPick, m.mode)

	press(m, "enter")
	require.Equal(t, modeColumnFilter, m.mode)
	assert.True(t, m.filterChecked["IN"], "every value starts checked")
	assert.True(t, m.filterChecked["OUT"], "every value starts checked")

	// Uncheck IN (values are ordered, so the cursor starts on it) and apply
	press(m, " ", "enter")
	assert.Equal(t, modeNormal, m.mode)
	assert.True(t, m.table.HasColumnFilter(render.ColumnStatus))
	require.Len(t, m.table.Filtered(), 3)
	for _, row := range m.table.Filtered() {
		assert.Equal(t, "OUT", row.StatusText())
	}
}

func TestColumnFilterPopupRestoresExistingChecks(t *testing.T) {
	m := newTestModel(t, statusItems(6))
	press(m, "tab")
	m.table.SetColumnFilter(render.ColumnStatus, []string{"OUT"})

	goToStatusColumn(m)
	press(m, "enter")

	assert.True(t, m.filterChecked["OUT"])
	assert.False(t, m.filterChecked["IN"], "values outside the active include set start unchecked")
}

func TestColumnFilterSearchAndSelectAllToggle(t *testing.T) {
	m := newTestModel(t, statusItems(6))
	press(m, "tab")
	goToStatusColumn(m)
	press(m, "enter")

	press(m, "i", "n")
	assert.Equal(t, "in", m.filterSearch)
	require.Equal(t, []string{"IN"}, m.visibleFilterValues())

	// All visible values are checked, so the toggle unchecks them
	press(m, "ctrl+a")
	assert.False(t, m.filterChecked["IN"])
	assert.True(t, m.filterChecked["OUT"], "hidden values keep their state")

	press(m, "backspace", "backspace")
	assert.Empty(t, m.filterSearch)

	press(m, "enter")
	require.Len(t, m.table.Filtered(), 3)
	assert.Equal(t, "OUT", m.table.Filtered()[0].StatusText())
}

func TestColumnPickerClearsFilter(t *testing.T) {
	m := newTestModel(t, statusItems(4))
	press(m, "tab")
	m.table.SetColumnFilter(render.ColumnStatus, []string{"OUT"})
	require.Len(t, m.table.Filtered(), 2)

	goToStatusColumn(m)
	press(m, "x")
	assert.False(t, m.table.HasColumnFilter(render.ColumnStatus))
	assert.Len(t, m.table.Filtered(), 4)
}

func TestColumnPickerHeaderSortFlowsToSidebar(t *testing.T) {
	m := newTestModel(t, statusItems(4))
	press(m, "tab")

	// Cursor starts on the id column; the opening click sorts descending
	press(m, "o", "s")
	assert.Equal(t, render.ColumnID, m.table.SortColumn())
	assert.Equal(t, "desc", m.table.SortDirection())
	assert.Equal(t, "id", m.filterEngine.Sort().Field, "header sort is mirrored into the shared sort spec")

	press(m, "s")
	assert.Equal(t, "asc", m.table.SortDirection())

	press(m, "esc")
	assert.Equal(t, modeNormal, m.mode)
}

func TestColumnPickerOnlyInTableView(t *testing.T) {
	m := newTestModel(t, statusItems(4))
	press(m, "o")
	assert.Equal(t, modeNormal, m.mode, "the card view has no column headers to operate on")
}
