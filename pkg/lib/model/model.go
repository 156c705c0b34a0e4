// Package model holds the wire shapes shared between the engine, its
// storage collaborators and the API layer. Shapes round-trip through
// encoding/json without loss: storing a view, reloading it and re-applying
// it is observably identical.
package model

// PropertyType is the declared type of one column of a module's schema.
// The type is immutable once records reference the property.
type PropertyType string

const (
	PropertyTypeText        PropertyType = "text"
	PropertyTypeRichText    PropertyType = "rich_text"
	PropertyTypeNumber      PropertyType = "number"
	PropertyTypeSelect      PropertyType = "select"
	PropertyTypeMultiSelect PropertyType = "multi_select"
	PropertyTypeDate        PropertyType = "date"
	PropertyTypeBoolean     PropertyType = "boolean"
	PropertyTypeRelation    PropertyType = "relation"
	PropertyTypeIcon        PropertyType = "icon"
	PropertyTypeProgress    PropertyType = "progress"
)

// SelectOption is one allowed choice of a select or multi_select property.
type SelectOption struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Property is one typed column definition. Ids are stable and unique
// within a module's schema.
type Property struct {
	Id       string         `json:"id"`
	Name     string         `json:"name"`
	Type     PropertyType   `json:"type"`
	Order    int            `json:"order"`
	Width    int            `json:"width,omitempty"`
	Visible  bool           `json:"visible"`
	Frozen   bool           `json:"frozen,omitempty"`
	Required bool           `json:"required,omitempty"`
	Options  []SelectOption `json:"options,omitempty"`
}

func (p Property) Copy() Property {
	cp := p
	if p.Options != nil {
		cp.Options = make([]SelectOption, len(p.Options))
		copy(cp.Options, p.Options)
	}
	return cp
}

type ViewType string

const (
	ViewTypeTable    ViewType = "table"
	ViewTypeBoard    ViewType = "board"
	ViewTypeCalendar ViewType = "calendar"
	ViewTypeTimeline ViewType = "timeline"
	ViewTypeGallery  ViewType = "gallery"
	ViewTypeList     ViewType = "list"
)

func (vt ViewType) IsValid() bool {
	switch vt {
	case ViewTypeTable, ViewTypeBoard, ViewTypeCalendar,
		ViewTypeTimeline, ViewTypeGallery, ViewTypeList:
		return true
	}
	return false
}

type FilterLogic string

const (
	FilterLogicAnd FilterLogic = "and"
	FilterLogicOr  FilterLogic = "or"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterConfig carries operator-specific extras.
type FilterConfig struct {
	// IncludeTime keeps the time-of-day of date operands instead of
	// comparing at day granularity.
	IncludeTime bool `json:"includeTime,omitempty"`
	// WholeWord restricts text contains to whole-word matches.
	WholeWord bool `json:"wholeWord,omitempty"`
	// Regex treats the text operand as a regular expression.
	Regex bool `json:"regex,omitempty"`
	// NumberOfDays parameterizes the past/next N days operators.
	NumberOfDays int `json:"numberOfDays,omitempty"`
}

// Filter is one predicate attached to a view. Filters are evaluated
// left-to-right in Order; consecutive filters sharing a GroupId form a
// parenthesized sub-expression joined to the running result by the
// group's first member's Logic.
type Filter struct {
	Id            string        `json:"id,omitempty"`
	Order         int           `json:"order"`
	PropertyId    string        `json:"propertyId"`
	Operator      Operator      `json:"operator"`
	Value         any           `json:"value,omitempty"`
	Logic         FilterLogic   `json:"logic,omitempty"`
	GroupId       *int          `json:"groupId,omitempty"`
	Enabled       bool          `json:"enabled"`
	CaseSensitive bool          `json:"caseSensitive,omitempty"`
	Config        *FilterConfig `json:"config,omitempty"`
}

func (f Filter) Copy() Filter {
	cp := f
	if f.GroupId != nil {
		gid := *f.GroupId
		cp.GroupId = &gid
	}
	if f.Config != nil {
		cfg := *f.Config
		cp.Config = &cfg
	}
	return cp
}

type EmptyStringHandling string

const (
	EmptyStringFirst  EmptyStringHandling = "first"
	EmptyStringLast   EmptyStringHandling = "last"
	EmptyStringAsNull EmptyStringHandling = "as_null"
)

// SortConfig carries per-key comparison extras.
type SortConfig struct {
	CaseSensitive bool `json:"caseSensitive,omitempty"`
	// Locale selects locale-aware collation for strings ("" means
	// codepoint order).
	Locale string `json:"locale,omitempty"`
	// TreatAsNumber parses string values as numbers before comparing,
	// falling back to string comparison when the parse fails.
	TreatAsNumber bool `json:"treatAsNumber,omitempty"`
	// DateFormat hints parsing of non-ISO date strings.
	DateFormat string `json:"dateFormat,omitempty"`
	// CustomOrder pins an explicit value order; values not listed fall
	// back to the regular key comparison.
	CustomOrder []string `json:"customOrder,omitempty"`
	NullsFirst  bool     `json:"nullsFirst,omitempty"`
	// EmptyStringHandling places empty strings first, last, or groups
	// them with nulls.
	EmptyStringHandling EmptyStringHandling `json:"emptyStringHandling,omitempty"`
	// IncludeTime compares date keys with time-of-day instead of at day
	// granularity.
	IncludeTime bool `json:"includeTime,omitempty"`
}

// Sort is one ordering key attached to a view. Order 0 is the primary key.
type Sort struct {
	Id         string        `json:"id,omitempty"`
	Order      int           `json:"order"`
	PropertyId string        `json:"propertyId"`
	Direction  SortDirection `json:"direction"`
	Enabled    bool          `json:"enabled"`
	Config     *SortConfig   `json:"config,omitempty"`
}

func (s Sort) Copy() Sort {
	cp := s
	if s.Config != nil {
		cfg := *s.Config
		if s.Config.CustomOrder != nil {
			cfg.CustomOrder = make([]string, len(s.Config.CustomOrder))
			copy(cfg.CustomOrder, s.Config.CustomOrder)
		}
		cp.Config = &cfg
	}
	return cp
}

// View is one named presentation of a module's records.
type View struct {
	Id                string         `json:"id"`
	Name              string         `json:"name"`
	Type              ViewType       `json:"type"`
	IsDefault         bool           `json:"isDefault"`
	Frozen            bool           `json:"frozen,omitempty"`
	VisibleProperties []string       `json:"visibleProperties"`
	GroupBy           string         `json:"groupBy,omitempty"`
	Filters           []Filter       `json:"filters"`
	Sorts             []Sort         `json:"sorts"`
	Config            map[string]any `json:"config,omitempty"`
}

func (v View) Copy() View {
	cp := v
	cp.VisibleProperties = make([]string, len(v.VisibleProperties))
	copy(cp.VisibleProperties, v.VisibleProperties)
	cp.Filters = make([]Filter, len(v.Filters))
	for i, f := range v.Filters {
		cp.Filters[i] = f.Copy()
	}
	cp.Sorts = make([]Sort, len(v.Sorts))
	for i, s := range v.Sorts {
		cp.Sorts[i] = s.Copy()
	}
	if v.Config != nil {
		cp.Config = make(map[string]any, len(v.Config))
		for k, val := range v.Config {
			cp.Config[k] = val
		}
	}
	return cp
}

// FrozenConfig declares which schema parts a module owns and keeps
// immutable for its users.
type FrozenConfig struct {
	PropertyIds      []string `json:"propertyIds,omitempty"`
	ViewIds          []string `json:"viewIds,omitempty"`
	CanAddProperties bool     `json:"canAddProperties"`
	CanAddViews      bool     `json:"canAddViews"`
}

func (fc FrozenConfig) Copy() FrozenConfig {
	cp := fc
	cp.PropertyIds = make([]string, len(fc.PropertyIds))
	copy(cp.PropertyIds, fc.PropertyIds)
	cp.ViewIds = make([]string, len(fc.ViewIds))
	copy(cp.ViewIds, fc.ViewIds)
	return cp
}
