// Package search implements the keyword search over the item list:
// comma-separated keywords, each matched case-insensitively against all
// searchable fields of an item (AND across keywords, OR across fields).
package search

import (
	"strings"

	"go.uber.org/zap"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

// ItemSource is the data store surface the engine needs
type ItemSource interface {
	GetAllItems() []*domain.Item
	Ready() bool
}

// Engine holds the current query/category and performs searches on
// demand. It is stateless over the item list itself.
type Engine struct {
	source   ItemSource
	bus      eventbus.EventBus
	log      *zap.Logger
	query    string
	category domain.Category
}

// NewEngine creates a search engine over the given item source
func NewEngine(source ItemSource, bus eventbus.EventBus, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		source:   source,
		bus:      bus,
		log:      log,
		category: domain.CategoryAll,
	}
}

// SetQuery updates the raw query. No side effects beyond trimming.
func (e *Engine) SetQuery(q string) {
	e.query = strings.TrimSpace(q)
}

// SetCategory updates the category filter
func (e *Engine) SetCategory(c domain.Category) {
	if c == "" {
		c = domain.CategoryAll
	}
	e.category = c
}

// Query returns the current query string
func (e *Engine) Query() string { return e.query }

// Category returns the current category
func (e *Engine) Category() domain.Category { return e.category }

// PerformSearch filters the full item list by category, then by the
// keyword query, and publishes the result set. A not-ready store yields
// an empty result, never an error; readiness is the store's concern.
func (e *Engine) PerformSearch() []*domain.Item {
	var results []*domain.Item

	if e.source != nil && e.source.Ready() {
		keywords := SplitKeywords(e.query)
		for _, item := range e.source.GetAllItems() {
			if !e.category.Matches(item.Kind) {
				continue
			}
			if matchesAll(item, keywords) {
				results = append(results, item)
			}
		}
	}

	e.log.Debug("search performed",
		zap.String("query", e.query),
		zap.String("category", string(e.category)),
		zap.Int("results", len(results)))

	if e.bus != nil {
		e.bus.Publish(eventbus.SearchPerformedEvent{Query: e.query})
		e.bus.Publish(eventbus.ResultsUpdatedEvent{
			Results:  results,
			Total:    len(results),
			Query:    e.query,
			Category: e.category,
			Origin:   domain.OriginSearch,
		})
	}
	return results
}

// keywordSeparators covers ASCII and full-width commas plus the
// Japanese enumeration comma, all common in operator input.
var keywordSeparators = strings.NewReplacer("，", ",", "、", ",")

// SplitKeywords splits a raw query into lower-cased keyword tokens,
// dropping empty and whitespace-only tokens. An empty slice means no
// query filtering at all.
func SplitKeywords(query string) []string {
	var keywords []string
	for _, token := range strings.Split(keywordSeparators.Replace(query), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		keywords = append(keywords, strings.ToLower(token))
	}
	return keywords
}

// matchesAll reports whether every keyword is a substring of at least
// one of the item's searchable fields
func matchesAll(item *domain.Item, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	fields := item.SearchText()
	for _, kw := range keywords {
		found := false
		for _, field := range fields {
			if field == "" {
				continue
			}
			if strings.Contains(strings.ToLower(field), kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
