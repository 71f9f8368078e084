package houseawbs

import (
	"fmt"
	"strings"

	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

func normalize(h HouseAWB) HouseAWB {
	h.HouseNumber = strings.ToUpper(strings.TrimSpace(h.HouseNumber))
	h.Status = strings.ToLower(strings.TrimSpace(h.Status))
	if h.MasterID != nil && *h.MasterID <= 0 {
		h.MasterID = nil
	}
	items := make([]Item, 0, len(h.Items))
	for _, it := range h.Items {
		it.Description = strings.TrimSpace(it.Description)
		it.Unit = strings.ToUpper(strings.TrimSpace(it.Unit))
		it.PackageType = strings.TrimSpace(it.PackageType)
		it.Currency = strings.ToUpper(strings.TrimSpace(it.Currency))
		if isBlank(it) {
			continue
		}
		items = append(items, it)
	}
	h.Items = items
	return h
}

// isBlank reports an untouched line from the form's spare rows.
func isBlank(it Item) bool {
	return it.CommodityID == 0 && it.Description == "" && it.Quantity == 0 && it.Weight == 0 && it.Volume == 0
}

// validate keys item failures as items[i].field to match the line inputs.
func validate(h HouseAWB) error {
	fields := map[string]string{}
	if err := rootshared.ValidateStruct(h); err != nil {
		f := rootshared.FieldErrors(err)
		if f == nil {
			return err
		}
		fields = f
	}
	if len(h.Items) == 0 {
		fields["items"] = "At least one item is required"
	}
	for i, it := range h.Items {
		err := rootshared.ValidateStruct(it)
		if err == nil {
			continue
		}
		f := rootshared.FieldErrors(err)
		if f == nil {
			return err
		}
		for k, msg := range f {
			fields[fmt.Sprintf("items[%d].%s", i, k)] = msg
		}
	}
	if len(fields) > 0 {
		return rootshared.NewValidationError(fields)
	}
	return nil
}
