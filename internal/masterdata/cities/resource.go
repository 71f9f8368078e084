package cities

import (
	"context"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

func Resource() crud.Resource[City] {
	return crud.Resource[City]{
		Name:     "city",
		Plural:   "cities",
		Module:   rbac.ModuleCities,
		BasePath: "/dashboard/cities",
		Columns: []ui.Column[City]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(c City) any { return c.Name }},
			{Key: "code", Header: "Code", Sortable: true, Value: func(c City) any { return c.Code }},
			{Key: "country_name", Header: "Country", Sortable: true, Value: func(c City) any { return c.CountryName }},
			{Key: "is_active", Header: "Active", Value: func(c City) any { return c.IsActive }},
		},
		ID:    func(c City) int64 { return c.ID },
		Label: func(c City) string { return c.Name },
		Detail: func(c City) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", c.Name),
				crud.Text("Code", c.Code),
				crud.Text("Country", c.CountryName),
				crud.Text("Active", c.IsActive),
			}
		},
		Form: func(_ context.Context, c City) crud.Form {
			if c.ID == 0 && c.Name == "" {
				c.IsActive = true
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: c.Name, Required: true},
				{Name: "code", Label: "Code", Type: crud.FieldText, Value: c.Code, Required: true},
				{Name: "country_id", Label: "Country", Type: crud.FieldSearch, Value: crud.IDValue(c.CountryID), Display: c.CountryName,
					OptionsURL: "/dashboard/countries/options", Placeholder: "Select country", Required: true},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: c.IsActive},
			}}
		},
		Decode: func(v url.Values) (City, error) {
			return City{
				Name:      crud.FormString(v, "name"),
				Code:      crud.FormString(v, "code"),
				CountryID: crud.FormInt64(v, "country_id"),
				IsActive:  crud.FormBool(v, "is_active"),
			}, nil
		},
	}
}
