package houseawbs

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"

	"github.com/freightdesk/freightdesk/internal/crud"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/shipments/masterawbs"
	"github.com/freightdesk/freightdesk/internal/ui"
)

const spareLines = 2

// Resource describes how house AWBs and their items are listed and edited.
func Resource() crud.Resource[HouseAWB] {
	return crud.Resource[HouseAWB]{
		Name:     "house-awb",
		Plural:   "house-awbs",
		Module:   rbac.ModuleHouseAWBs,
		BasePath: "/dashboard/house-awbs",
		Columns: []ui.Column[HouseAWB]{
			{Key: "house_number", Header: "HAWB Number", Sortable: true, Value: func(h HouseAWB) any { return h.HouseNumber }},
			{Key: "job_number", Header: "Job", Sortable: true, Value: func(h HouseAWB) any { return h.JobNumber }},
			{Key: "master_number", Header: "MAWB", Sortable: true, Value: func(h HouseAWB) any { return h.MasterNumber }},
			{Key: "shipper_name", Header: "Shipper", Sortable: true, Value: func(h HouseAWB) any { return h.ShipperName }},
			{Key: "consignee_name", Header: "Consignee", Sortable: true, Value: func(h HouseAWB) any { return h.ConsigneeName }},
			{Key: "issue_date", Header: "Issue Date", Sortable: true, Value: func(h HouseAWB) any { return h.IssueDate }},
			{Key: "status", Header: "Status", Sortable: true, Value: func(h HouseAWB) any { return h.Status }, Cell: func(h HouseAWB) template.HTML { return crud.Badge(h.Status) }},
		},
		ID:    func(h HouseAWB) int64 { return h.ID },
		Label: func(h HouseAWB) string { return h.HouseNumber },
		Detail: func(h HouseAWB) []crud.DetailRow {
			weight, volume, packages := h.Totals()
			return []crud.DetailRow{
				crud.Text("HAWB Number", h.HouseNumber),
				{Label: "Status", Value: crud.Badge(h.Status)},
				crud.Text("Job", h.JobNumber),
				crud.Text("MAWB", h.MasterNumber),
				crud.Text("Shipper", h.ShipperName),
				crud.Text("Consignee", h.ConsigneeName),
				crud.Text("Issue Date", h.IssueDate),
				crud.Text("Total Weight", weight),
				crud.Text("Total Volume", volume),
				crud.Text("Total Packages", packages),
			}
		},
		Sections: func(h HouseAWB, _ *rbac.Gate) []crud.Section {
			table := ui.NewSliceTable(h.Items, itemColumns(), ui.PageState{Page: 1, PageSize: 100}, ui.TableOptions{EmptyMessage: "No items"})
			return []crud.Section{{Title: "Items", Table: &table}}
		},
		Form: func(_ context.Context, h HouseAWB) crud.Form {
			if h.ID == 0 && h.HouseNumber == "" && h.JobID == 0 {
				h.IsActive = true
				h.Status = masterawbs.StatusDraft
				h.IssueDate = time.Now()
			}
			return crud.Form{
				Fields: []crud.Field{
					{Name: "house_number", Label: "HAWB Number", Type: crud.FieldText, Value: h.HouseNumber, Placeholder: "Leave blank to auto-generate"},
					{Name: "job_id", Label: "Job", Type: crud.FieldSearch, Value: crud.IDValue(h.JobID), Display: h.JobNumber,
						OptionsURL: "/dashboard/jobs/options", Placeholder: "Select job", Required: true},
					{Name: "master_id", Label: "Master AWB", Type: crud.FieldSearch, Value: crud.OptionalIDValue(h.MasterID), Display: h.MasterNumber,
						OptionsURL: "/dashboard/master-awbs/options", Placeholder: "Select master AWB"},
					{Name: "shipper_id", Label: "Shipper", Type: crud.FieldSearch, Value: crud.IDValue(h.ShipperID), Display: h.ShipperName,
						OptionsURL: "/dashboard/parties/options?party_type=shipper", Placeholder: "Select shipper", Required: true},
					{Name: "consignee_id", Label: "Consignee", Type: crud.FieldSearch, Value: crud.IDValue(h.ConsigneeID), Display: h.ConsigneeName,
						OptionsURL: "/dashboard/parties/options?party_type=consignee", Placeholder: "Select consignee", Required: true},
					{Name: "issue_date", Label: "Issue Date", Type: crud.FieldDate, Value: crud.DateValue(&h.IssueDate), Required: true},
					{Name: "status", Label: "Status", Type: crud.FieldSelect, Value: h.Status, Choices: crud.Choices(masterawbs.Statuses()...)},
					{Name: "is_active", Label: "Active", Type: crud.FieldCheckbox, Checked: h.IsActive},
				},
				Lines: itemLines(h.Items),
			}
		},
		Decode: func(v url.Values) (HouseAWB, error) {
			h := HouseAWB{
				HouseNumber: crud.FormString(v, "house_number"),
				JobID:       crud.FormInt64(v, "job_id"),
				MasterID:    crud.FormOptionalInt64(v, "master_id"),
				ShipperID:   crud.FormInt64(v, "shipper_id"),
				ConsigneeID: crud.FormInt64(v, "consignee_id"),
				Status:      crud.FormString(v, "status"),
				IsActive:    crud.FormBool(v, "is_active"),
			}
			if d := crud.FormDate(v, "issue_date"); d != nil {
				h.IssueDate = *d
			}
			for _, line := range crud.LineValues(v, "items") {
				h.Items = append(h.Items, Item{
					CommodityID:  crud.FormInt64(line, "commodity_id"),
					Description:  crud.FormString(line, "description"),
					Quantity:     crud.FormFloat(line, "quantity"),
					Unit:         crud.FormString(line, "unit"),
					Volume:       crud.FormFloat(line, "volume"),
					Weight:       crud.FormFloat(line, "weight"),
					PackageCount: int(crud.FormInt64(line, "package_count")),
					PackageType:  crud.FormString(line, "package_type"),
					Value:        crud.FormFloat(line, "value"),
					Currency:     crud.FormString(line, "currency"),
				})
			}
			return h, nil
		},
	}
}

func itemColumns() []ui.Column[Item] {
	return []ui.Column[Item]{
		{Key: "commodity_name", Header: "Commodity", Value: func(i Item) any { return i.CommodityName }},
		{Key: "description", Header: "Description", Value: func(i Item) any { return i.Description }},
		{Key: "quantity", Header: "Qty", Value: func(i Item) any { return fmt.Sprintf("%g %s", i.Quantity, i.Unit) }},
		{Key: "weight", Header: "Weight", Value: func(i Item) any { return i.Weight }},
		{Key: "volume", Header: "Volume", Value: func(i Item) any { return i.Volume }},
		{Key: "package_count", Header: "Packages", Value: func(i Item) any { return fmt.Sprintf("%d %s", i.PackageCount, i.PackageType) }},
		{Key: "value", Header: "Value", Value: func(i Item) any { return fmt.Sprintf("%.2f %s", i.Value, i.Currency) }},
	}
}

var lineColumns = []crud.Field{
	{Name: "commodity_id", Label: "Commodity", Type: crud.FieldSearch, OptionsURL: "/dashboard/commodities/options", Required: true},
	{Name: "description", Label: "Description", Type: crud.FieldText, Required: true},
	{Name: "quantity", Label: "Qty", Type: crud.FieldNumber, Step: "0.001", Required: true},
	{Name: "unit", Label: "Unit", Type: crud.FieldText, Placeholder: "PCS", Required: true},
	{Name: "weight", Label: "Weight", Type: crud.FieldNumber, Step: "0.001"},
	{Name: "volume", Label: "Volume", Type: crud.FieldNumber, Step: "0.001"},
	{Name: "package_count", Label: "Pkgs", Type: crud.FieldNumber, Step: "1"},
	{Name: "package_type", Label: "Pkg Type", Type: crud.FieldText},
	{Name: "value", Label: "Value", Type: crud.FieldNumber, Step: "0.01"},
	{Name: "currency", Label: "Cur", Type: crud.FieldText, Placeholder: "USD"},
}

func itemLines(items []Item) *crud.Lines {
	lines := &crud.Lines{Name: "items", Label: "Items", Columns: lineColumns}
	for i, it := range items {
		lines.Rows = append(lines.Rows, lineRow(i, it))
	}
	for i := 0; i < spareLines; i++ {
		lines.Rows = append(lines.Rows, lineRow(len(items)+i, Item{}))
	}
	return lines
}

func lineRow(idx int, it Item) []crud.Field {
	values := map[string]string{
		"commodity_id":  crud.IDValue(it.CommodityID),
		"description":   it.Description,
		"quantity":      numberValue(it.Quantity),
		"unit":          it.Unit,
		"weight":        numberValue(it.Weight),
		"volume":        numberValue(it.Volume),
		"package_count": "",
		"package_type":  it.PackageType,
		"value":         numberValue(it.Value),
		"currency":      it.Currency,
	}
	if it.PackageCount > 0 {
		values["package_count"] = strconv.Itoa(it.PackageCount)
	}
	row := make([]crud.Field, len(lineColumns))
	for i, col := range lineColumns {
		col.Name = fmt.Sprintf("items[%d].%s", idx, col.Name)
		col.Value = values[lineColumns[i].Name]
		if lineColumns[i].Name == "commodity_id" {
			col.Display = it.CommodityName
		}
		row[i] = col
	}
	return row
}

func numberValue(v float64) string {
	if v == 0 {
		return ""
	}
	return crud.FloatValue(v)
}
