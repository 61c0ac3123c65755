// Package datastore loads the warehouse CSV exports, joins the mold and
// cutter rows with their rack/company/customer/design tables and serves
// the denormalized item list to the search pipeline.
package datastore

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"kanadex/internal/domain"
	"kanadex/internal/eventbus"
)

// StatusSource supplies the latest status-log entry per item id. The
// history store implements it; a nil source just leaves statuses empty.
type StatusSource interface {
	LatestStatuses() (map[string]domain.ItemStatus, error)
}

// Store holds the denormalized item list built from the CSV tables.
// GetAllItems is cheap and may be called on every keystroke.
type Store struct {
	mu       sync.RWMutex
	dir      string
	bus      eventbus.EventBus
	log      *zap.Logger
	statuses StatusSource

	items []*domain.Item
	byID  map[string]*domain.Item
	ready bool
}

// New creates a store over a data directory. Call Load before use.
func New(dir string, bus eventbus.EventBus, statuses StatusSource, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dir:      dir,
		bus:      bus,
		log:      log,
		statuses: statuses,
		byID:     make(map[string]*domain.Item),
	}
}

// Ready reports whether a load has completed. Callers must not rely on
// GetAllItems before this returns true; the search engine treats a
// not-ready store as an empty result set.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// GetAllItems returns the full denormalized item list. The slice is
// rebuilt on every load; callers treat items as immutable.
func (s *Store) GetAllItems() []*domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// GetItem looks an item up by its canonical id
func (s *Store) GetItem(id string) *domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Load reads all tables and rebuilds the item list. The reloaded flag is
// carried on the DataReady event so the UI can distinguish the first load
// from a file-watch refresh.
func (s *Store) Load(reloaded bool) error {
	molds, err := readTable(filepath.Join(s.dir, "molds.csv"))
	if err != nil {
		return fmt.Errorf("loading molds: %w", err)
	}
	cutters, err := readTable(filepath.Join(s.dir, "cutters.csv"))
	if err != nil {
		return fmt.Errorf("loading cutters: %w", err)
	}
	racks, err := readTable(filepath.Join(s.dir, "racks.csv"))
	if err != nil {
		return fmt.Errorf("loading racks: %w", err)
	}
	layers, err := readTable(filepath.Join(s.dir, "rack_layers.csv"))
	if err != nil {
		return fmt.Errorf("loading rack layers: %w", err)
	}
	companies, err := readTable(filepath.Join(s.dir, "companies.csv"))
	if err != nil {
		return fmt.Errorf("loading companies: %w", err)
	}
	designs, err := readTable(filepath.Join(s.dir, "designs.csv"))
	if err != nil {
		return fmt.Errorf("loading designs: %w", err)
	}

	j := &joiner{
		racks:     racks,
		rackByID:  racks.index("rackid"),
		layers:    layers,
		layerByID: layers.index("racklayerid"),
		companies: companies,
		compByID:  companies.index("companyid"),
		designs:   designs,
		designBy:  designs.index("itemid"),
	}

	var latest map[string]domain.ItemStatus
	if s.statuses != nil {
		latest, err = s.statuses.LatestStatuses()
		if err != nil {
			// The item list is still usable without status joins
			s.log.Warn("failed to load status log", zap.Error(err))
		}
	}

	items := make([]*domain.Item, 0, len(molds.rows)+len(cutters.rows))
	byID := make(map[string]*domain.Item, cap(items))

	for _, row := range molds.rows {
		item := j.buildMold(molds, row)
		if item == nil {
			s.log.Warn("skipping mold row without id")
			continue
		}
		attachStatus(item, latest)
		items = append(items, item)
		byID[item.ID()] = item
	}
	for _, row := range cutters.rows {
		item := j.buildCutter(cutters, row)
		if item == nil {
			s.log.Warn("skipping cutter row without id")
			continue
		}
		attachStatus(item, latest)
		items = append(items, item)
		byID[item.ID()] = item
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.ready = true
	s.mu.Unlock()

	s.log.Info("data loaded",
		zap.Int("items", len(items)),
		zap.Bool("reloaded", reloaded))

	if s.bus != nil {
		s.bus.Publish(eventbus.DataReadyEvent{ItemCount: len(items), Reloaded: reloaded})
	}
	return nil
}

func attachStatus(item *domain.Item, latest map[string]domain.ItemStatus) {
	if latest == nil {
		return
	}
	if st, ok := latest[item.ID()]; ok {
		s := st
		item.Status = &s
	}
}

// joiner resolves foreign keys against the side tables
type joiner struct {
	racks     *table
	rackByID  map[string][]string
	layers    *table
	layerByID map[string][]string
	companies *table
	compByID  map[string][]string
	designs   *table
	designBy  map[string][]string
}

func (j *joiner) buildMold(t *table, row []string) *domain.Item {
	id := t.get(row, "moldid")
	if id == "" {
		return nil
	}
	item := &domain.Item{
		MoldID:         id,
		Kind:           domain.KindMold,
		Code:           t.get(row, "moldcode"),
		Name:           t.get(row, "moldname"),
		Dimensions:     t.get(row, "dimensions"),
		ProductionDate: parseDate(t.get(row, "productiondate")),
		Notes:          t.get(row, "notes"),
	}
	j.joinShared(item, t, row)
	precompute(item)
	return item
}

func (j *joiner) buildCutter(t *table, row []string) *domain.Item {
	id := t.get(row, "cutterid")
	if id == "" {
		return nil
	}
	item := &domain.Item{
		CutterID:       id,
		Kind:           domain.KindCutter,
		Code:           t.get(row, "cutterno"),
		Name:           t.get(row, "cuttername"),
		Dimensions:     t.get(row, "cutterdimensions"),
		ProductionDate: parseDate(t.get(row, "productiondate")),
		Notes:          t.get(row, "notes"),
	}
	if item.Dimensions == "" {
		item.Dimensions = t.get(row, "dimensions")
	}
	j.joinShared(item, t, row)
	precompute(item)
	return item
}

func (j *joiner) joinShared(item *domain.Item, t *table, row []string) {
	if layerRow, ok := j.layerByID[t.get(row, "racklayerid")]; ok {
		item.RackLayer = &domain.RackLayerInfo{
			RackLayerID: j.layers.get(layerRow, "racklayerid"),
			Layer:       j.layers.get(layerRow, "layer"),
			Position:    j.layers.get(layerRow, "position"),
		}
		if rackRow, ok := j.rackByID[j.layers.get(layerRow, "rackid")]; ok {
			item.Rack = &domain.RackInfo{
				RackID:   j.racks.get(rackRow, "rackid"),
				RackName: j.racks.get(rackRow, "rackname"),
				Location: j.racks.get(rackRow, "location"),
			}
		}
	}
	item.StorageCompany = j.company(t.get(row, "storagecompanyid"))
	item.Customer = j.company(t.get(row, "customerid"))
	item.Company = j.company(t.get(row, "companyid"))

	if designRow, ok := j.designBy[item.ID()]; ok {
		item.Design = &domain.DesignInfo{
			DrawingNumber:  j.designs.get(designRow, "drawingnumber"),
			EquipmentCode:  j.designs.get(designRow, "equipmentcode"),
			ProductName:    j.designs.get(designRow, "productname"),
			PlasticType:    j.designs.get(designRow, "plastictype"),
			PlasticSubType: j.designs.get(designRow, "plasticsubtype"),
			CavityCount:    j.designs.get(designRow, "cavitycount"),
			JobNote:        j.designs.get(designRow, "jobnote"),
		}
	}
}

func (j *joiner) company(id string) *domain.CompanyInfo {
	row, ok := j.compByID[id]
	if !ok {
		return nil
	}
	return &domain.CompanyInfo{
		CompanyID: j.companies.get(row, "companyid"),
		Name:      j.companies.get(row, "companyname"),
		ShortName: j.companies.get(row, "shortname"),
	}
}

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// precompute fills the Display* fields the renderers consume read-only
func precompute(item *domain.Item) {
	item.DisplayCode = item.CodeText()
	item.DisplayName = item.NameText()
	item.DisplayDimensions = item.DimensionsText()
	if item.ProductionDate.IsZero() {
		item.DisplayDate = "-"
	} else {
		item.DisplayDate = item.ProductionDate.Format("2006/01/02")
	}
	if item.Rack != nil {
		item.DisplayLocation = item.Rack.Location
	}
	item.DisplayLocation = orDash(item.DisplayLocation)
	item.DisplayRackLocation = rackLocation(item)
	item.DisplayStorageCompany = item.StorageCompanyText()
	item.DisplayCustomer = item.CustomerText()
}

func rackLocation(item *domain.Item) string {
	if item.Rack == nil {
		return "-"
	}
	loc := item.Rack.RackName
	if item.RackLayer != nil && item.RackLayer.Layer != "" {
		loc += "-" + item.RackLayer.Layer
		if item.RackLayer.Position != "" {
			loc += "(" + item.RackLayer.Position + ")"
		}
	}
	if loc == "" {
		return "-"
	}
	return loc
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
