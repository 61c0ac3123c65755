package domain

import "time"

// ItemKind distinguishes molds from cutters
type ItemKind string

const (
	KindMold   ItemKind = "mold"
	KindCutter ItemKind = "cutter"
)

// Category is the search category selector ("all" matches every kind)
type Category string

const (
	CategoryAll    Category = "all"
	CategoryMold   Category = "mold"
	CategoryCutter Category = "cutter"
)

// Matches reports whether an item kind falls under this category
func (c Category) Matches(kind ItemKind) bool {
	switch c {
	case CategoryAll, "":
		return true
	case CategoryMold:
		return kind == KindMold
	case CategoryCutter:
		return kind == KindCutter
	}
	return false
}

// DesignInfo holds drawing/design data joined from the design table
type DesignInfo struct {
	DrawingNumber  string
	EquipmentCode  string
	ProductName    string
	PlasticType    string
	PlasticSubType string
	CavityCount    string
	JobNote        string
}

// RackInfo describes the rack an item is stored on
type RackInfo struct {
	RackID   string
	RackName string
	Location string
}

// RackLayerInfo describes the layer/position within a rack
type RackLayerInfo struct {
	RackLayerID string
	Layer       string
	Position    string
}

// CompanyInfo is shared by storage companies, customers and makers
type CompanyInfo struct {
	CompanyID string
	Name      string
	ShortName string
}

// ItemStatus is the latest known check-in/check-out state of an item
type ItemStatus struct {
	Text string
	Date time.Time
}

// Item is the canonical searchable record: a mold or a cutter with the
// rack/company/customer/design rows already joined in by the data store.
// Exactly one of MoldID/CutterID is set and Kind agrees with it.
// Renderers treat items as immutable; selection and sort order live outside.
type Item struct {
	MoldID   string
	CutterID string
	Kind     ItemKind

	Code string
	Name string

	Dimensions     string
	ProductionDate time.Time // zero means unknown

	// Display fields precomputed by the data store
	DisplayCode           string
	DisplayName           string
	DisplayDimensions     string
	DisplayDate           string
	DisplayLocation       string
	DisplayRackLocation   string
	DisplayStorageCompany string
	DisplayCustomer       string

	Notes string

	// Joined sub-records, frequently absent for incomplete rows
	Design         *DesignInfo
	Rack           *RackInfo
	RackLayer      *RackLayerInfo
	StorageCompany *CompanyInfo
	Customer       *CompanyInfo
	Company        *CompanyInfo
	Status         *ItemStatus
}

// ID returns the canonical string id (MoldID or CutterID)
func (i *Item) ID() string {
	if i.MoldID != "" {
		return i.MoldID
	}
	return i.CutterID
}

const placeholder = "-"

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// CodeText returns the display code, falling back to the raw code
func (i *Item) CodeText() string {
	if i.DisplayCode != "" {
		return i.DisplayCode
	}
	return orDash(i.Code)
}

// NameText returns the display name, never empty
func (i *Item) NameText() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return orDash(i.Name)
}

// DimensionsText returns the display dimensions, never empty
func (i *Item) DimensionsText() string {
	if i.DisplayDimensions != "" {
		return i.DisplayDimensions
	}
	return orDash(i.Dimensions)
}

// LocationText returns the rack location string or a placeholder
func (i *Item) LocationText() string {
	if i.DisplayLocation != "" {
		return i.DisplayLocation
	}
	if i.Rack != nil && i.Rack.Location != "" {
		return i.Rack.Location
	}
	return placeholder
}

// RackLocationText returns rack name + layer or a placeholder
func (i *Item) RackLocationText() string {
	if i.DisplayRackLocation != "" {
		return i.DisplayRackLocation
	}
	return placeholder
}

// StorageCompanyText returns the storage company name or a placeholder
func (i *Item) StorageCompanyText() string {
	if i.DisplayStorageCompany != "" {
		return i.DisplayStorageCompany
	}
	if i.StorageCompany != nil {
		return orDash(i.StorageCompany.Name)
	}
	return placeholder
}

// CustomerText returns the customer name or a placeholder
func (i *Item) CustomerText() string {
	if i.DisplayCustomer != "" {
		return i.DisplayCustomer
	}
	if i.Customer != nil {
		return orDash(i.Customer.Name)
	}
	return placeholder
}

// StatusText returns the latest status text or a placeholder
func (i *Item) StatusText() string {
	if i.Status != nil && i.Status.Text != "" {
		return i.Status.Text
	}
	return placeholder
}

// StatusDate returns the latest status-log timestamp (zero if none).
// Distinct from ProductionDate: one is "when manufactured/assigned",
// the other "when last checked in/out".
func (i *Item) StatusDate() time.Time {
	if i.Status != nil {
		return i.Status.Date
	}
	return time.Time{}
}

// DrawingNumberText returns the design drawing number or a placeholder
func (i *Item) DrawingNumberText() string {
	if i.Design != nil && i.Design.DrawingNumber != "" {
		return i.Design.DrawingNumber
	}
	return placeholder
}

// EquipmentCodeText returns the design equipment code or a placeholder
func (i *Item) EquipmentCodeText() string {
	if i.Design != nil && i.Design.EquipmentCode != "" {
		return i.Design.EquipmentCode
	}
	return placeholder
}

// PlasticTypeText returns the plastic type or a placeholder
func (i *Item) PlasticTypeText() string {
	if i.Design != nil && i.Design.PlasticType != "" {
		return i.Design.PlasticType
	}
	return placeholder
}

// SearchText collects every searchable text field of the item. Keyword
// search matches each keyword against all of these, so absent sub-records
// simply contribute nothing.
func (i *Item) SearchText() []string {
	fields := []string{
		i.MoldID,
		i.CutterID,
		i.Code,
		i.Name,
		i.Dimensions,
		i.Notes,
		i.DisplayCode,
		i.DisplayName,
		i.DisplayDimensions,
		i.DisplayDate,
		i.DisplayLocation,
		i.DisplayRackLocation,
		i.DisplayStorageCompany,
		i.DisplayCustomer,
		string(i.Kind),
	}
	if i.Design != nil {
		fields = append(fields,
			i.Design.DrawingNumber,
			i.Design.EquipmentCode,
			i.Design.ProductName,
			i.Design.PlasticType,
			i.Design.PlasticSubType,
			i.Design.CavityCount,
			i.Design.JobNote,
		)
	}
	if i.Rack != nil {
		fields = append(fields, i.Rack.RackID, i.Rack.RackName, i.Rack.Location)
	}
	if i.RackLayer != nil {
		fields = append(fields, i.RackLayer.Layer, i.RackLayer.Position)
	}
	if i.StorageCompany != nil {
		fields = append(fields, i.StorageCompany.Name, i.StorageCompany.ShortName)
	}
	if i.Customer != nil {
		fields = append(fields, i.Customer.Name, i.Customer.ShortName)
	}
	if i.Company != nil {
		fields = append(fields, i.Company.Name, i.Company.ShortName)
	}
	if i.Status != nil {
		fields = append(fields, i.Status.Text)
	}
	return fields
}

// SortSpec is the single shared sort preference consumed by both result
// views and the filter sidebar.
type SortSpec struct {
	Field     string
	Direction string // "asc" or "desc"
}

// DefaultSort is the sort applied when nothing else was chosen
func DefaultSort() SortSpec {
	return SortSpec{Field: "productionDate", Direction: "desc"}
}
