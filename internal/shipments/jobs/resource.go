package jobs

import (
	"context"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/ui"
)

// Resource describes how jobs are listed and edited.
func Resource() crud.Resource[Job] {
	return crud.Resource[Job]{
		Name:     "job",
		Plural:   "jobs",
		Module:   rbac.ModuleJobs,
		BasePath: "/dashboard/jobs",
		Columns: []ui.Column[Job]{
			{Key: "job_number", Header: "Job Number", Sortable: true, Value: func(j Job) any { return j.JobNumber }},
			{Key: "job_type", Header: "Type", Sortable: true, Value: func(j Job) any { return j.JobType }},
			{Key: "shipper_name", Header: "Shipper", Sortable: true, Value: func(j Job) any { return j.ShipperName }},
			{Key: "consignee_name", Header: "Consignee", Sortable: true, Value: func(j Job) any { return j.ConsigneeName }},
			{Key: "job_date", Header: "Job Date", Sortable: true, Value: func(j Job) any { return j.JobDate }},
			{Key: "status", Header: "Status", Sortable: true, Value: func(j Job) any { return j.Status }, Cell: statusBadge},
		},
		ID:    func(j Job) int64 { return j.ID },
		Label: func(j Job) string { return j.JobNumber },
		Detail: func(j Job) []crud.DetailRow {
			return []crud.DetailRow{
				crud.Text("Job Number", j.JobNumber),
				crud.Text("Type", j.JobType),
				{Label: "Status", Value: statusBadge(j)},
				crud.Text("Job Date", j.JobDate),
				crud.Text("Shipper", j.ShipperName),
				crud.Text("Consignee", j.ConsigneeName),
				crud.Text("Carrier", j.CarrierName),
				crud.Text("Origin", j.OriginPortName),
				crud.Text("Destination", j.DestinationPortName),
				crud.Text("ETD", j.ETD),
				crud.Text("ETA", j.ETA),
				crud.Text("Gross Weight", j.GrossWeight),
				crud.Text("Chargeable Weight", j.ChargeableWeight),
				crud.Text("Packages", j.PackageCount),
				crud.Text("Closed", j.ClosedDate),
			}
		},
		Form: func(_ context.Context, j Job) crud.Form {
			if j.ID == 0 && j.JobNumber == "" {
				j.IsActive = true
				j.JobType = TypeExport
				j.Status = StatusOpen
				j.JobDate = time.Now()
			}
			return crud.Form{Fields: []crud.Field{
				{Name: "job_number", Label: "Job Number", Type: crud.FieldText, Value: j.JobNumber, Placeholder: "Leave blank to auto-generate"},
				{Name: "job_type", Label: "Job Type", Type: crud.FieldSelect, Value: j.JobType, Choices: crud.Choices(TypeExport, TypeImport), Required: true},
				{Name: "job_date", Label: "Job Date", Type: crud.FieldDate, Value: crud.DateValue(&j.JobDate), Required: true},
				{Name: "status", Label: "Status", Type: crud.FieldSelect, Value: j.Status, Choices: crud.Choices(Statuses()...)},
				partyField("shipper_id", "Shipper", j.ShipperID, j.ShipperName, true),
				partyField("consignee_id", "Consignee", j.ConsigneeID, j.ConsigneeName, true),
				{Name: "notify_party_id", Label: "Notify Party", Type: crud.FieldSearch, Value: crud.OptionalIDValue(j.NotifyPartyID),
					OptionsURL: "/dashboard/parties/options", Placeholder: "Select party"},
				{Name: "carrier_id", Label: "Carrier", Type: crud.FieldSearch, Value: crud.IDValue(j.CarrierID), Display: j.CarrierName,
					OptionsURL: "/dashboard/carriers/options", Placeholder: "Select carrier", Required: true},
				portField("origin_port_id", "Origin Port", j.OriginPortID, j.OriginPortName, true),
				portField("destination_port_id", "Destination Port", j.DestinationPortID, j.DestinationPortName, true),
				{Name: "loading_port_id", Label: "Loading Port", Type: crud.FieldSearch, Value: crud.OptionalIDValue(j.LoadingPortID),
					OptionsURL: "/dashboard/ports-airports/options", Placeholder: "Select port"},
				{Name: "discharge_port_id", Label: "Discharge Port", Type: crud.FieldSearch, Value: crud.OptionalIDValue(j.DischargePortID),
					OptionsURL: "/dashboard/ports-airports/options", Placeholder: "Select port"},
				{Name: "sales_person_id", Label: "Sales Person", Type: crud.FieldSearch, Value: crud.OptionalIDValue(j.SalesPersonID),
					OptionsURL: "/dashboard/users/options", Placeholder: "Select user"},
				{Name: "etd", Label: "ETD", Type: crud.FieldDate, Value: crud.DateValue(j.ETD)},
				{Name: "eta", Label: "ETA", Type: crud.FieldDate, Value: crud.DateValue(j.ETA)},
				{Name: "gross_weight", Label: "Gross Weight (kg)", Type: crud.FieldNumber, Step: "0.001", Value: crud.FloatValue(j.GrossWeight)},
				{Name: "chargeable_weight", Label: "Chargeable Weight (kg)", Type: crud.FieldNumber, Step: "0.001", Value: crud.FloatValue(j.ChargeableWeight)},
				{Name: "package_count", Label: "Packages", Type: crud.FieldNumber, Step: "1", Value: strconv.Itoa(j.PackageCount)},
				{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: j.IsActive},
			}}
		},
		Decode: func(v url.Values) (Job, error) {
			j := Job{
				JobNumber:         crud.FormString(v, "job_number"),
				JobType:           crud.FormString(v, "job_type"),
				Status:            crud.FormString(v, "status"),
				ShipperID:         crud.FormInt64(v, "shipper_id"),
				ConsigneeID:       crud.FormInt64(v, "consignee_id"),
				NotifyPartyID:     crud.FormOptionalInt64(v, "notify_party_id"),
				CarrierID:         crud.FormInt64(v, "carrier_id"),
				OriginPortID:      crud.FormInt64(v, "origin_port_id"),
				DestinationPortID: crud.FormInt64(v, "destination_port_id"),
				LoadingPortID:     crud.FormOptionalInt64(v, "loading_port_id"),
				DischargePortID:   crud.FormOptionalInt64(v, "discharge_port_id"),
				SalesPersonID:     crud.FormOptionalInt64(v, "sales_person_id"),
				ETA:               crud.FormDate(v, "eta"),
				ETD:               crud.FormDate(v, "etd"),
				GrossWeight:       crud.FormFloat(v, "gross_weight"),
				ChargeableWeight:  crud.FormFloat(v, "chargeable_weight"),
				PackageCount:      int(crud.FormInt64(v, "package_count")),
				IsActive:          crud.FormBool(v, "is_active"),
			}
			if d := crud.FormDate(v, "job_date"); d != nil {
				j.JobDate = *d
			}
			return j, nil
		},
		Sections: func(j Job, gate *rbac.Gate) []crud.Section {
			if j.Status == StatusClosed || !gate.Allow(rbac.ModuleJobs, string(rbac.ActionUpdate)) {
				return nil
			}
			return []crud.Section{{
				Title: "Change Status",
				Form: &crud.InlineForm{
					Action: "/dashboard/jobs/" + strconv.FormatInt(j.ID, 10) + "/status",
					Submit: "Update Status",
					Fields: []crud.Field{{Name: "status", Label: "Status", Type: crud.FieldSelect, Value: j.Status, Choices: crud.Choices(Statuses()...)}},
				},
			}}
		},
		Filters: func(q url.Values, f *shared.ListFilters) {
			if t := q.Get("job_type"); t != "" {
				f.Type = t
			}
		},
	}
}

func partyField(name, label string, id int64, display string, required bool) crud.Field {
	return crud.Field{Name: name, Label: label, Type: crud.FieldSearch, Value: crud.IDValue(id), Display: display,
		OptionsURL: "/dashboard/parties/options", Placeholder: "Select " + label, Required: required}
}

func portField(name, label string, id int64, display string, required bool) crud.Field {
	return crud.Field{Name: name, Label: label, Type: crud.FieldSearch, Value: crud.IDValue(id), Display: display,
		OptionsURL: "/dashboard/ports-airports/options", Placeholder: "Select " + label, Required: required}
}

func statusBadge(j Job) template.HTML { return crud.Badge(j.Status) }
