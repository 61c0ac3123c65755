package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

type stubSource struct {
	items []*domain.Item
	ready bool
}

func (s *stubSource) GetAllItems() []*domain.Item { return s.items }
func (s *stubSource) Ready() bool                 { return s.ready }

func mold(id, code, name string) *domain.Item {
	return &domain.Item{MoldID: id, Kind: domain.KindMold, Code: code, Name: name}
}

func cutter(id, code, name string) *domain.Item {
	return &domain.Item{CutterID: id, Kind: domain.KindCutter, Code: code, Name: name}
}

func TestKeywordAndOfOrSemantics(t *testing.T) {
	a := mold("1", "JAE01", "")
	b := mold("2", "PS02", "jae-type")
	c := mold("3", "XX", "")
	src := &stubSource{items: []*domain.Item{a, b, c}, ready: true}

	e := NewEngine(src, nil, nil)
	e.SetQuery("jae, ps")

	results := e.PerformSearch()
	require.Len(t, results, 1, "only the item matching both keywords somewhere should survive")
	assert.Equal(t, "2", results[0].ID())
}

func TestCategoryAppliedBeforeQuery(t *testing.T) {
	items := []*domain.Item{
		mold("1", "abc-100", ""),
		mold("2", "zzz", ""),
		cutter("10", "k-1", ""),
		cutter("11", "k-2", ""),
	}
	src := &stubSource{items: items, ready: true}

	e := NewEngine(src, nil, nil)
	e.SetCategory(domain.CategoryCutter)
	e.SetQuery("abc")

	assert.Empty(t, e.PerformSearch(),
		"a mold matching the query must not leak through the cutter category")
}

func TestEmptyQueryKeepsEverythingInCategory(t *testing.T) {
	items := []*domain.Item{mold("1", "a", ""), cutter("2", "b", "")}
	src := &stubSource{items: items, ready: true}

	e := NewEngine(src, nil, nil)
	assert.Len(t, e.PerformSearch(), 2)

	e.SetCategory(domain.CategoryMold)
	assert.Len(t, e.PerformSearch(), 1)
}

func TestNotReadyStoreYieldsEmpty(t *testing.T) {
	src := &stubSource{items: []*domain.Item{mold("1", "a", "")}, ready: false}
	e := NewEngine(src, nil, nil)
	assert.Empty(t, e.PerformSearch())
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"jae", "ps"}, SplitKeywords("JAE, ps"))
	assert.Equal(t, []string{"a", "b"}, SplitKeywords("a、b"))
	assert.Equal(t, []string{"a", "b"}, SplitKeywords("a，  b ,, "))
	assert.Nil(t, SplitKeywords("  "))
}

func TestMatchesJoinedFields(t *testing.T) {
	item := mold("1", "M-9", "")
	item.Customer = &domain.CompanyInfo{Name: "Nippon Plastics"}
	src := &stubSource{items: []*domain.Item{item}, ready: true}

	e := NewEngine(src, nil, nil)
	e.SetQuery("nippon")
	assert.Len(t, e.PerformSearch(), 1)
}

func TestPublishesResultsUpdatedWithSearchOrigin(t *testing.T) {
	src := &stubSource{items: []*domain.Item{mold("1", "abc", "")}, ready: true}
	bus := eventbus.New(nil)

	var got *eventbus.ResultsUpdatedEvent
	bus.Subscribe(eventbus.EventResultsUpdated, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ResultsUpdatedEvent)
		got = &ev
	})

	e := NewEngine(src, bus, nil)
	e.SetQuery("abc")
	e.PerformSearch()

	require.NotNil(t, got)
	assert.Equal(t, domain.OriginSearch, got.Origin)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "abc", got.Query)
}
