package carriers

import (
	"context"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Resource describes how carriers are listed and edited.
func Resource() crud.Resource[Carrier] {
	return crud.Resource[Carrier]{
		Name:     "carrier",
		Plural:   "carriers",
		Module:   rbac.ModuleCarriers,
		BasePath: "/dashboard/carriers",
		Columns: []ui.Column[Carrier]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(c Carrier) any { return c.Name }},
			{Key: "code", Header: "Code", Sortable: true, Value: func(c Carrier) any { return c.Code }},
			{Key: "type", Header: "Type", Sortable: true, Value: func(c Carrier) any { return c.Type }},
			{Key: "contact_person", Header: "Contact", Sortable: true, Value: func(c Carrier) any { return c.ContactPerson }},
			{Key: "email", Header: "Email", Value: func(c Carrier) any { return c.Email }},
			{Key: "is_active", Header: "Active", Value: func(c Carrier) any { return c.IsActive }},
		},
		ID:    func(c Carrier) int64 { return c.ID },
		Label: func(c Carrier) string { return c.Name },
		Detail: func(c Carrier) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", c.Name),
				crud.Text("Code", c.Code),
				crud.Text("Type", c.Type),
				crud.Text("Contact Person", c.ContactPerson),
				crud.Text("Email", c.Email),
				crud.Text("Phone", c.Phone),
				crud.Text("Active", c.IsActive),
			}
		},
		Form: func(_ context.Context, c Carrier) crud.Form {
			if c.ID == 0 && c.Name == "" {
				c.IsActive = true
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: c.Name, Required: true},
				{Name: "code", Label: "Code", Type: crud.FieldText, Value: c.Code, Required: true},
				{Name: "type", Label: "Type", Type: crud.FieldSelect, Value: c.Type, Choices: crud.Choices(Types()...), Required: true},
				{Name: "contact_person", Label: "Contact Person", Type: crud.FieldText, Value: c.ContactPerson},
				{Name: "email", Label: "Email", Type: crud.FieldEmail, Value: c.Email},
				{Name: "phone", Label: "Phone", Type: crud.FieldText, Value: c.Phone},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: c.IsActive},
			}}
		},
		Decode: func(v url.Values) (Carrier, error) {
			return Carrier{
				Name:          crud.FormString(v, "name"),
				Code:          crud.FormString(v, "code"),
				Type:          crud.FormString(v, "type"),
				ContactPerson: crud.FormString(v, "contact_person"),
				Email:         crud.FormString(v, "email"),
				Phone:         crud.FormString(v, "phone"),
				IsActive:      crud.FormBool(v, "is_active"),
			}, nil
		},
	}
}
