// Package bundle ships the built-in modules: their property schemas,
// default views and frozen configuration. The data here is the seed
// copied per owner on first access; owners then evolve their own copy.
package bundle

import (
	"github.com/lifekeep/docview/pkg/lib/model"
)

// Module is one built-in record collection.
type Module struct {
	Id         string
	Name       string
	Properties []model.Property
	Views      []model.View
	Frozen     model.FrozenConfig
}

// PropertyById resolves a seed property, satisfying the evaluator's
// schema interface.
func (m Module) PropertyById(id string) (model.Property, bool) {
	for _, p := range m.Properties {
		if p.Id == id {
			return p, true
		}
	}
	return model.Property{}, false
}

// Copy returns a deep copy safe to hand to an owner.
func (m Module) Copy() Module {
	c := Module{Id: m.Id, Name: m.Name, Frozen: m.Frozen.Copy()}
	c.Properties = make([]model.Property, len(m.Properties))
	for i, p := range m.Properties {
		c.Properties[i] = p.Copy()
	}
	c.Views = make([]model.View, len(m.Views))
	for i, v := range m.Views {
		c.Views[i] = v.Copy()
	}
	return c
}

func options(names ...string) []model.SelectOption {
	opts := make([]model.SelectOption, len(names))
	for i, n := range names {
		opts[i] = model.SelectOption{Id: n, Name: n}
	}
	return opts
}

var tasks = Module{
	Id:   "tasks",
	Name: "Tasks",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "status", Name: "Status", Type: model.PropertyTypeSelect, Order: 1, Visible: true, Frozen: true,
			Options: options("todo", "doing", "done")},
		{Id: "dueDate", Name: "Due date", Type: model.PropertyTypeDate, Order: 2, Visible: true},
		{Id: "priority", Name: "Priority", Type: model.PropertyTypeSelect, Order: 3, Visible: true,
			Options: options("low", "medium", "high")},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 4, Visible: true},
		{Id: "assignee", Name: "Assignee", Type: model.PropertyTypeRelation, Order: 5},
		{Id: "done", Name: "Done", Type: model.PropertyTypeBoolean, Order: 6},
		{Id: "notes", Name: "Notes", Type: model.PropertyTypeRichText, Order: 7},
	},
	Views: []model.View{
		{Id: "tasks_all", Name: "All tasks", Type: model.ViewTypeTable, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "status", "dueDate", "priority", "tags"},
			Sorts: []model.Sort{
				{Id: "tasks_all_due", PropertyId: "dueDate", Direction: model.SortAsc, Enabled: true},
			}},
		{Id: "tasks_board", Name: "Board", Type: model.ViewTypeBoard, GroupBy: "status",
			VisibleProperties: []string{"title", "dueDate", "priority"}},
		{Id: "tasks_today", Name: "Today", Type: model.ViewTypeList,
			VisibleProperties: []string{"title", "status", "priority"},
			Filters: []model.Filter{
				{Id: "tasks_today_due", PropertyId: "dueDate", Operator: model.OpIsToday, Enabled: true},
			},
			Sorts: []model.Sort{
				{Id: "tasks_today_prio", PropertyId: "priority", Direction: model.SortDesc, Enabled: true,
					Config: &model.SortConfig{CustomOrder: []string{"high", "medium", "low"}}},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title", "status"},
		ViewIds:          []string{"tasks_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var goals = Module{
	Id:   "goals",
	Name: "Goals",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "status", Name: "Status", Type: model.PropertyTypeSelect, Order: 1, Visible: true,
			Options: options("active", "achieved", "abandoned")},
		{Id: "progress", Name: "Progress", Type: model.PropertyTypeProgress, Order: 2, Visible: true},
		{Id: "targetDate", Name: "Target date", Type: model.PropertyTypeDate, Order: 3, Visible: true},
		{Id: "notes", Name: "Notes", Type: model.PropertyTypeRichText, Order: 4},
	},
	Views: []model.View{
		{Id: "goals_all", Name: "All goals", Type: model.ViewTypeTable, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "status", "progress", "targetDate"}},
		{Id: "goals_active", Name: "Active", Type: model.ViewTypeGallery,
			VisibleProperties: []string{"title", "progress", "targetDate"},
			Filters: []model.Filter{
				{Id: "goals_active_status", PropertyId: "status", Operator: model.OpEquals, Value: "active", Enabled: true},
			},
			Sorts: []model.Sort{
				{Id: "goals_active_target", PropertyId: "targetDate", Direction: model.SortAsc, Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title"},
		ViewIds:          []string{"goals_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var journal = Module{
	Id:   "journal",
	Name: "Journal",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true},
		{Id: "date", Name: "Date", Type: model.PropertyTypeDate, Order: 1, Visible: true, Frozen: true, Required: true},
		{Id: "mood", Name: "Mood", Type: model.PropertyTypeSelect, Order: 2, Visible: true,
			Options: options("great", "good", "neutral", "bad")},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 3},
		{Id: "content", Name: "Content", Type: model.PropertyTypeRichText, Order: 4},
	},
	Views: []model.View{
		{Id: "journal_all", Name: "All entries", Type: model.ViewTypeList, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "date", "mood"},
			Sorts: []model.Sort{
				{Id: "journal_all_date", PropertyId: "date", Direction: model.SortDesc, Enabled: true},
			}},
		{Id: "journal_month", Name: "This month", Type: model.ViewTypeCalendar,
			VisibleProperties: []string{"title", "date", "mood"},
			Filters: []model.Filter{
				{Id: "journal_month_date", PropertyId: "date", Operator: model.OpIsThisMonth, Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title", "date"},
		ViewIds:          []string{"journal_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var books = Module{
	Id:   "books",
	Name: "Books",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "author", Name: "Author", Type: model.PropertyTypeText, Order: 1, Visible: true},
		{Id: "status", Name: "Status", Type: model.PropertyTypeSelect, Order: 2, Visible: true,
			Options: options("to_read", "reading", "read")},
		{Id: "rating", Name: "Rating", Type: model.PropertyTypeNumber, Order: 3, Visible: true},
		{Id: "pages", Name: "Pages", Type: model.PropertyTypeNumber, Order: 4},
		{Id: "finishedDate", Name: "Finished", Type: model.PropertyTypeDate, Order: 5},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 6},
	},
	Views: []model.View{
		{Id: "books_all", Name: "Library", Type: model.ViewTypeTable, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "author", "status", "rating"},
			Sorts: []model.Sort{
				{Id: "books_all_title", PropertyId: "title", Direction: model.SortAsc, Enabled: true},
			}},
		{Id: "books_board", Name: "Reading board", Type: model.ViewTypeBoard, GroupBy: "status",
			VisibleProperties: []string{"title", "author", "rating"}},
		{Id: "books_year", Name: "Read this year", Type: model.ViewTypeGallery,
			VisibleProperties: []string{"title", "author", "rating"},
			Filters: []model.Filter{
				{Id: "books_year_done", PropertyId: "finishedDate", Operator: model.OpIsThisYear, Enabled: true},
			},
			Sorts: []model.Sort{
				{Id: "books_year_rating", PropertyId: "rating", Direction: model.SortDesc, Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title"},
		ViewIds:          []string{"books_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var projects = Module{
	Id:   "projects",
	Name: "Projects",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "status", Name: "Status", Type: model.PropertyTypeSelect, Order: 1, Visible: true, Frozen: true,
			Options: options("planned", "active", "on_hold", "done")},
		{Id: "startDate", Name: "Start", Type: model.PropertyTypeDate, Order: 2, Visible: true},
		{Id: "endDate", Name: "End", Type: model.PropertyTypeDate, Order: 3, Visible: true},
		{Id: "lead", Name: "Lead", Type: model.PropertyTypeRelation, Order: 4},
		{Id: "progress", Name: "Progress", Type: model.PropertyTypeProgress, Order: 5, Visible: true},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 6},
	},
	Views: []model.View{
		{Id: "projects_all", Name: "All projects", Type: model.ViewTypeTable, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "status", "startDate", "endDate", "progress"}},
		{Id: "projects_timeline", Name: "Timeline", Type: model.ViewTypeTimeline,
			VisibleProperties: []string{"title", "startDate", "endDate"},
			Sorts: []model.Sort{
				{Id: "projects_timeline_start", PropertyId: "startDate", Direction: model.SortAsc, Enabled: true},
			}},
		{Id: "projects_active", Name: "Active board", Type: model.ViewTypeBoard, GroupBy: "status",
			VisibleProperties: []string{"title", "progress", "endDate"},
			Filters: []model.Filter{
				{Id: "projects_active_status", PropertyId: "status", Operator: model.OpNotEquals, Value: "done", Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title", "status"},
		ViewIds:          []string{"projects_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var notes = Module{
	Id:   "notes",
	Name: "Notes",
	Properties: []model.Property{
		{Id: "title", Name: "Title", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 1, Visible: true},
		{Id: "pinned", Name: "Pinned", Type: model.PropertyTypeBoolean, Order: 2},
		{Id: "updatedAt", Name: "Updated", Type: model.PropertyTypeDate, Order: 3, Visible: true},
		{Id: "content", Name: "Content", Type: model.PropertyTypeRichText, Order: 4},
	},
	Views: []model.View{
		{Id: "notes_all", Name: "All notes", Type: model.ViewTypeList, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"title", "tags", "updatedAt"},
			Sorts: []model.Sort{
				{Id: "notes_all_updated", PropertyId: "updatedAt", Direction: model.SortDesc, Enabled: true},
			}},
		{Id: "notes_pinned", Name: "Pinned", Type: model.ViewTypeList,
			VisibleProperties: []string{"title", "tags"},
			Filters: []model.Filter{
				{Id: "notes_pinned_flag", PropertyId: "pinned", Operator: model.OpIsTrue, Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"title"},
		ViewIds:          []string{"notes_all"},
		CanAddProperties: true,
		CanAddViews:      true,
	},
}

var people = Module{
	Id:   "people",
	Name: "People",
	Properties: []model.Property{
		{Id: "name", Name: "Name", Type: model.PropertyTypeText, Order: 0, Visible: true, Frozen: true, Required: true},
		{Id: "email", Name: "Email", Type: model.PropertyTypeText, Order: 1, Visible: true},
		{Id: "birthday", Name: "Birthday", Type: model.PropertyTypeDate, Order: 2},
		{Id: "avatar", Name: "Avatar", Type: model.PropertyTypeIcon, Order: 3},
		{Id: "tags", Name: "Tags", Type: model.PropertyTypeMultiSelect, Order: 4},
	},
	Views: []model.View{
		{Id: "people_all", Name: "Directory", Type: model.ViewTypeTable, IsDefault: true, Frozen: true,
			VisibleProperties: []string{"name", "email", "tags"},
			Sorts: []model.Sort{
				{Id: "people_all_name", PropertyId: "name", Direction: model.SortAsc, Enabled: true},
			}},
	},
	Frozen: model.FrozenConfig{
		PropertyIds:      []string{"name"},
		ViewIds:          []string{"people_all"},
		CanAddProperties: true,
		CanAddViews:      false,
	},
}

var modules = []Module{tasks, goals, journal, books, projects, notes, people}

// Modules returns deep copies of every built-in module.
func Modules() []Module {
	out := make([]Module, len(modules))
	for i, m := range modules {
		out[i] = m.Copy()
	}
	return out
}

// ModuleById returns a deep copy of one built-in module.
func ModuleById(id string) (Module, bool) {
	for _, m := range modules {
		if m.Id == id {
			return m.Copy(), true
		}
	}
	return Module{}, false
}
