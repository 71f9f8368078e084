package parties

import (
	"context"
	"net/url"
	"strconv"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Resource describes how parties are listed and edited.
func Resource() crud.Resource[Party] {
	return crud.Resource[Party]{
		Name:     "party",
		Plural:   "parties",
		Module:   rbac.ModuleParties,
		BasePath: "/dashboard/parties",
		Columns: []ui.Column[Party]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(p Party) any { return p.Name }},
			{Key: "short_name", Header: "Short Name", Sortable: true, Value: func(p Party) any { return p.ShortName }},
			{Key: "type", Header: "Type", Sortable: true, Value: func(p Party) any { return p.Type }},
			{Key: "credit_limit", Header: "Credit Limit", Sortable: true, Value: func(p Party) any { return p.CreditLimit }},
			{Key: "contact_person", Header: "Contact", Value: func(p Party) any { return p.ContactPerson }},
			{Key: "is_active", Header: "Active", Value: func(p Party) any { return p.IsActive }},
		},
		ID:    func(p Party) int64 { return p.ID },
		Label: func(p Party) string { return p.Name },
		Detail: func(p Party) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", p.Name),
				crud.Text("Short Name", p.ShortName),
				crud.Text("Type", p.Type),
				crud.Text("Billing Address", p.BillingAddress),
				crud.Text("Corporate Address", p.CorporateAddress),
				crud.Text("Credit Limit", p.CreditLimit),
				crud.Text("Credit Days", p.CreditDays),
				crud.Text("TDS Applicable", p.TDSApplicable),
				crud.Text("TDS Rate", p.TDSRate),
				crud.Text("Contact Person", p.ContactPerson),
				crud.Text("Phone", p.Phone),
				crud.Text("Email", p.Email),
				crud.Text("Active", p.IsActive),
				crud.Text("Created", p.CreatedAt),
			}
		},
		Form: func(_ context.Context, p Party) crud.Form {
			if p.ID == 0 && p.Name == "" {
				p.IsActive = true
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: p.Name, Required: true},
				{Name: "short_name", Label: "Short Name", Type: crud.FieldText, Value: p.ShortName},
				{Name: "type", Label: "Type", Type: crud.FieldSelect, Value: p.Type, Choices: crud.Choices(Types()...), Required: true},
				{Name: "billing_address", Label: "Billing Address", Type: crud.FieldTextarea, Value: p.BillingAddress},
				{Name: "corporate_address", Label: "Corporate Address", Type: crud.FieldTextarea, Value: p.CorporateAddress},
				{Name: "credit_limit", Label: "Credit Limit", Type: crud.FieldNumber, Step: "0.01", Value: crud.FloatValue(p.CreditLimit)},
				{Name: "credit_days", Label: "Credit Days", Type: crud.FieldNumber, Step: "1", Value: strconv.Itoa(p.CreditDays)},
				{Name: "tds_applicable", Label: "TDS Applicable", Type: crud.FieldCheckbox, Checked: p.TDSApplicable},
				{Name: "tds_rate", Label: "TDS Rate (%)", Type: crud.FieldNumber, Step: "0.01", Value: crud.FloatValue(p.TDSRate)},
				{Name: "contact_person", Label: "Contact Person", Type: crud.FieldText, Value: p.ContactPerson},
				{Name: "phone", Label: "Phone", Type: crud.FieldText, Value: p.Phone},
				{Name: "email", Label: "Email", Type: crud.FieldEmail, Value: p.Email},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: p.IsActive},
			}}
		},
		Decode: func(v url.Values) (Party, error) {
			return Party{
				Name:             crud.FormString(v, "name"),
				ShortName:        crud.FormString(v, "short_name"),
				Type:             crud.FormString(v, "type"),
				BillingAddress:   crud.FormString(v, "billing_address"),
				CorporateAddress: crud.FormString(v, "corporate_address"),
				CreditLimit:      crud.FormFloat(v, "credit_limit"),
				CreditDays:       int(crud.FormInt64(v, "credit_days")),
				TDSRate:          crud.FormFloat(v, "tds_rate"),
				TDSApplicable:    crud.FormBool(v, "tds_applicable"),
				ContactPerson:    crud.FormString(v, "contact_person"),
				Phone:            crud.FormString(v, "phone"),
				Email:            crud.FormString(v, "email"),
				IsActive:         crud.FormBool(v, "is_active"),
			}, nil
		},
		Filters: func(q url.Values, f *shared.ListFilters) {
			if t := q.Get("party_type"); t != "" {
				f.Type = t
			}
		},
	}
}
