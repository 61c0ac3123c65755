package filter

import "kanadex/internal/domain"

// Field is one facet in the sidebar: a stable id, the label shown to the
// operator and a getter extracting the faceted string from an item.
type Field struct {
	ID     string
	Label  string
	Getter func(*domain.Item) string
}

// Catalog is the fixed, ordered facet list. The ids double as the sort
// vocabulary shared with the card view and the coordinator's table-column
// mapping, so changing them is a breaking change.
var Catalog = []Field{
	{ID: "id", Label: "管理番号", Getter: func(i *domain.Item) string { return i.ID() }},
	{ID: "code", Label: "コード", Getter: (*domain.Item).CodeText},
	{ID: "name", Label: "名称", Getter: (*domain.Item).NameText},
	{ID: "kind", Label: "種別", Getter: func(i *domain.Item) string { return string(i.Kind) }},
	{ID: "size", Label: "サイズ", Getter: (*domain.Item).DimensionsText},
	{ID: "location", Label: "保管場所", Getter: (*domain.Item).LocationText},
	{ID: "rackLocation", Label: "棚位置", Getter: (*domain.Item).RackLocationText},
	{ID: "storageCompany", Label: "保管会社", Getter: (*domain.Item).StorageCompanyText},
	{ID: "customer", Label: "得意先", Getter: (*domain.Item).CustomerText},
	{ID: "company", Label: "メーカー", Getter: func(i *domain.Item) string {
		if i.Company != nil && i.Company.Name != "" {
			return i.Company.Name
		}
		return "-"
	}},
	{ID: "status", Label: "状態", Getter: (*domain.Item).StatusText},
	{ID: "plasticType", Label: "樹脂", Getter: (*domain.Item).PlasticTypeText},
	{ID: "drawingNumber", Label: "図面番号", Getter: (*domain.Item).DrawingNumberText},
	{ID: "equipmentCode", Label: "設備コード", Getter: (*domain.Item).EquipmentCodeText},
	{ID: "notes", Label: "備考", Getter: func(i *domain.Item) string { return i.Notes }},
}

// FieldByID looks a facet up by id, nil when unknown
func FieldByID(id string) *Field {
	for idx := range Catalog {
		if Catalog[idx].ID == id {
			return &Catalog[idx]
		}
	}
	return nil
}
