package commodities

import (
	"context"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

func Resource() crud.Resource[Commodity] {
	return crud.Resource[Commodity]{
		Name:     "commodity",
		Plural:   "commodities",
		Module:   rbac.ModuleCommodities,
		BasePath: "/dashboard/commodities",
		Columns: []ui.Column[Commodity]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(c Commodity) any { return c.Name }},
			{Key: "code", Header: "Code", Sortable: true, Value: func(c Commodity) any { return c.Code }},
			{Key: "category", Header: "Category", Sortable: true, Value: func(c Commodity) any { return c.Category }},
			{Key: "is_active", Header: "Active", Value: func(c Commodity) any { return c.IsActive }},
		},
		ID:    func(c Commodity) int64 { return c.ID },
		Label: func(c Commodity) string { return c.Name },
		Detail: func(c Commodity) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", c.Name),
				crud.Text("Code", c.Code),
				crud.Text("Category", c.Category),
				crud.Text("Description", c.Description),
				crud.Text("Active", c.IsActive),
			}
		},
		Form: func(_ context.Context, c Commodity) crud.Form {
			if c.ID == 0 && c.Name == "" {
				c.IsActive = true
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: c.Name, Required: true},
				{Name: "code", Label: "Code", Type: crud.FieldText, Value: c.Code, Required: true},
				{Name: "category", Label: "Category", Type: crud.FieldText, Value: c.Category},
				{Name: "description", Label: "Description", Type: crud.FieldTextarea, Value: c.Description},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: c.IsActive},
			}}
		},
		Decode: func(v url.Values) (Commodity, error) {
			return Commodity{
				Name:        crud.FormString(v, "name"),
				Code:        crud.FormString(v, "code"),
				Category:    crud.FormString(v, "category"),
				Description: crud.FormString(v, "description"),
				IsActive:    crud.FormBool(v, "is_active"),
			}, nil
		},
	}
}
