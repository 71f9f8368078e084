package masterawbs

import (
	"context"
	"html/template"
	"net/url"
	"time"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Resource describes how master AWBs are listed and edited.
func Resource() crud.Resource[MasterAWB] {
	return crud.Resource[MasterAWB]{
		Name:     "master-awb",
		Plural:   "master-awbs",
		Module:   rbac.ModuleMasterAWBs,
		BasePath: "/dashboard/master-awbs",
		Columns: []ui.Column[MasterAWB]{
			{Key: "master_number", Header: "MAWB Number", Sortable: true, Value: func(m MasterAWB) any { return m.MasterNumber }},
			{Key: "job_number", Header: "Job", Sortable: true, Value: func(m MasterAWB) any { return m.JobNumber }},
			{Key: "carrier_name", Header: "Carrier", Sortable: true, Value: func(m MasterAWB) any { return m.CarrierName }},
			{Key: "issue_date", Header: "Issue Date", Sortable: true, Value: func(m MasterAWB) any { return m.IssueDate }},
			{Key: "status", Header: "Status", Sortable: true, Value: func(m MasterAWB) any { return m.Status }, Cell: func(m MasterAWB) template.HTML { return crud.Badge(m.Status) }},
		},
		ID:    func(m MasterAWB) int64 { return m.ID },
		Label: func(m MasterAWB) string { return m.MasterNumber },
		Detail: func(m MasterAWB) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("MAWB Number", m.MasterNumber),
				{Label: "Status", Value: crud.Badge(m.Status)},
				crud.Text("Job", m.JobNumber),
				crud.Text("Carrier", m.CarrierName),
				crud.Text("Issue Date", m.IssueDate),
				crud.Text("Active", m.IsActive),
			}
		},
		Form: func(_ context.Context, m MasterAWB) crud.Form {
			if m.ID == 0 && m.MasterNumber == "" && m.JobID == 0 {
				m.IsActive = true
				m.Status = StatusDraft
				m.IssueDate = time.Now()
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "master_number", Label: "MAWB Number", Type: crud.FieldText, Value: m.MasterNumber, Placeholder: "Leave blank to auto-generate"},
				{Name: "job_id", Label: "Job", Type: crud.FieldSearch, Value: crud.IDValue(m.JobID), Display: m.JobNumber,
					OptionsURL: "/dashboard/jobs/options", Placeholder: "Select job", Required: true},
				{Name: "carrier_id", Label: "Carrier", Type: crud.FieldSearch, Value: crud.IDValue(m.CarrierID), Display: m.CarrierName,
					OptionsURL: "/dashboard/carriers/options", Placeholder: "Select carrier", Required: true},
				{Name: "issue_date", Label: "Issue Date", Type: crud.FieldDate, Value: crud.DateValue(&m.IssueDate), Required: true},
				{Name: "status", Label: "Status", Type: crud.FieldSelect, Value: m.Status, Choices: crud.Choices(Statuses()...)},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: m.IsActive},
			}}
		},
		Decode: func(v url.Values) (MasterAWB, error) {
			m := MasterAWB{
				MasterNumber: crud.FormString(v, "master_number"),
				JobID:        crud.FormInt64(v, "job_id"),
				CarrierID:    crud.FormInt64(v, "carrier_id"),
				Status:       crud.FormString(v, "status"),
				IsActive:     crud.FormBool(v, "is_active"),
			}
			if d := crud.FormDate(v, "issue_date"); d != nil {
				m.IssueDate = *d
			}
			return m, nil
		},
	}
}
