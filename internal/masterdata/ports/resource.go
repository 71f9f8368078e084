package ports

import (
	"context"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

func Resource() crud.Resource[Port] {
	return crud.Resource[Port]{
		Name:     "port-airport",
		Plural:   "ports-airports",
		Module:   rbac.ModulePortsAirports,
		BasePath: "/dashboard/ports-airports",
		Columns: []ui.Column[Port]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(p Port) any { return p.Name }},
			{Key: "code", Header: "Code", Sortable: true, Value: func(p Port) any { return p.Code }},
			{Key: "type", Header: "Type", Sortable: true, Value: func(p Port) any { return p.Type }},
			{Key: "city_name", Header: "City", Sortable: true, Value: func(p Port) any { return p.CityName }},
			{Key: "is_active", Header: "Active", Value: func(p Port) any { return p.IsActive }},
		},
		ID:    func(p Port) int64 { return p.ID },
		Label: func(p Port) string { return p.Name + " (" + p.Code + ")" },
		Detail: func(p Port) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", p.Name),
				crud.Text("Code", p.Code),
				crud.Text("Type", p.Type),
				crud.Text("City", p.CityName),
				crud.Text("Active", p.IsActive),
			}
		},
		Form: func(_ context.Context, p Port) crud.Form {
			if p.ID == 0 && p.Name == "" {
				p.IsActive = true
				p.Type = TypeAirport
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: p.Name, Required: true},
				{Name: "code", Label: "Code", Type: crud.FieldText, Value: p.Code, Required: true, Placeholder: "IATA or UN/LOCODE"},
				{Name: "type", Label: "Type", Type: crud.FieldSelect, Value: p.Type, Choices: crud.Choices(TypePort, TypeAirport), Required: true},
				{Name: "city_id", Label: "City", Type: crud.FieldSearch, Value: crud.IDValue(p.CityID), Display: p.CityName,
					OptionsURL: "/dashboard/cities/options", Placeholder: "Select city", Required: true},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: p.IsActive},
			}}
		},
		Decode: func(v url.Values) (Port, error) {
			return Port{
				Name:     crud.FormString(v, "name"),
				Code:     crud.FormString(v, "code"),
				Type:     crud.FormString(v, "type"),
				CityID:   crud.FormInt64(v, "city_id"),
				IsActive: crud.FormBool(v, "is_active"),
			}, nil
		},
	}
}
