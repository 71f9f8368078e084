package users

import (
	"context"
	"html/template"
	"net/url"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

func roleChoices() []crud.Choice {
	out := make([]crud.Choice, 0, len(rbac.Roles()))
	for _, r := range rbac.Roles() {
		out = append(out, crud.Choices(string(r))...)
	}
	return out
}

// Resource describes how accounts are listed and edited.
func Resource() crud.Resource[User] {
	return crud.Resource[User]{
		Name:     "user",
		Plural:   "users",
		Module:   rbac.ModuleUsers,
		BasePath: "/dashboard/users",
		Columns: []ui.Column[User]{
			{Key: "name", Header: "Name", Sortable: true, Value: func(u User) any { return u.Name }},
			{Key: "email", Header: "Email", Sortable: true, Value: func(u User) any { return u.Email }},
			{Key: "role", Header: "Role", Sortable: true, Value: func(u User) any { return string(u.Role) }},
			{Key: "status", Header: "Status", Sortable: true, Value: func(u User) any { return u.Status }, Cell: func(u User) template.HTML { return crud.Badge(u.Status) }},
			{Key: "last_login_at", Header: "Last Login", Sortable: true, Value: func(u User) any { return u.LastLoginAt }},
		},
		ID:    func(u User) int64 { return u.ID },
		Label: func(u User) string { return u.Name },
		Detail: func(u User) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Name", u.Name),
				crud.Text("Email", u.Email),
				crud.Text("Role", string(u.Role)),
				{Label: "Status", Value: crud.Badge(u.Status)},
				crud.Text("Phone", u.Phone),
				crud.Text("Department", u.Department),
				crud.Text("Last Login", u.LastLoginAt),
				crud.Text("Created", u.CreatedAt),
			}
		},
		Form: func(_ context.Context, u User) crud.Form {
			if u.ID == 0 && u.Email == "" {
				u.Status = StatusActive
				u.Role = rbac.RoleOperations
			}
			password := crud.Field{Name: "password", Label: "Password", Type: crud.FieldPassword, Required: u.ID == 0}
			if u.ID != 0 {
				password.Placeholder = "Leave blank to keep the current password"
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "name", Label: "Name", Type: crud.FieldText, Value: u.Name, Required: true},
				{Name: "email", Label: "Email", Type: crud.FieldEmail, Value: u.Email, Required: true},
				{Name: "role", Label: "Role", Type: crud.FieldSelect, Value: string(u.Role), Choices: roleChoices(), Required: true},
				{Name: "status", Label: "Status", Type: crud.FieldSelect, Value: u.Status, Choices: crud.Choices(Statuses()...), Required: true},
				{Name: "phone", Label: "Phone", Type: crud.FieldText, Value: u.Phone},
				{Name: "department", Label: "Department", Type: crud.FieldText, Value: u.Department},
				password,
			}}
		},
		Decode: func(v url.Values) (User, error) {
			return User{
				Name:       crud.FormString(v, "name"),
				Email:      crud.FormString(v, "email"),
				Role:       rbac.Role(crud.FormString(v, "role")),
				Status:     crud.FormString(v, "status"),
				Phone:      crud.FormString(v, "phone"),
				Department: crud.FormString(v, "department"),
				Password:   v.Get("password"),
			}, nil
		},
		Filters: func(q url.Values, f *shared.ListFilters) {
			if role := q.Get("role"); role != "" {
				f.Type = role
			}
		},
	}
}
