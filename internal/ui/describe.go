package ui

import (
	"strconv"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/catalog"
	"github.com/gravitrone/rxmart/internal/ui/components"
)

func describeProduct(p api.Product) []components.TableRow {
	rows := []components.TableRow{{Label: "Name", Value: p.Name}}
	rows = appendRow(rows, "Generic", p.GenericName)
	rows = appendRow(rows, "Maker", p.Manufacturer)
	rows = appendRow(rows, "Category", p.Category)
	rows = appendRow(rows, "Form", p.Form)
	rows = appendRow(rows, "Unit", p.Unit)
	if p.Price > 0 {
		rows = append(rows, components.TableRow{Label: "Price", Value: catalog.FormatPrice(p.Price)})
	}
	if p.PrescriptionRequired {
		rows = append(rows, components.TableRow{Label: "Rx", Value: "prescription required", ValueColor: string(ColorWarning)})
	}
	return appendRow(rows, "About", catalog.PlainText(p.Description))
}

func describePharmacy(p api.Pharmacy) []components.TableRow {
	rows := []components.TableRow{{Label: "Name", Value: p.Name}}
	rows = appendRow(rows, "City", p.City)
	rows = appendRow(rows, "Address", p.Address)
	rows = appendRow(rows, "Phone", p.Phone)
	rows = appendRow(rows, "Pharmacist", p.Pharmacist)
	return append(rows, activeRow(p.Active))
}

func describePartner(p api.Partner) []components.TableRow {
	rows := []components.TableRow{{Label: "Name", Value: p.Name}}
	rows = appendRow(rows, "Email", p.Email)
	rows = appendRow(rows, "Phone", p.Phone)
	if p.PharmacyCount > 0 {
		rows = append(rows, components.TableRow{Label: "Pharmacies", Value: strconv.Itoa(p.PharmacyCount)})
	}
	return append(rows, activeRow(p.Active))
}

func describeOrder(o api.Order) []components.TableRow {
	rows := []components.TableRow{{Label: "Invoice", Value: o.Invoice}}
	rows = appendRow(rows, "Customer", o.Name)
	rows = appendRow(rows, "Status", o.Status)
	rows = appendRow(rows, "Pharmacy", o.PharmacyName)
	if o.ItemCount > 0 {
		rows = append(rows, components.TableRow{Label: "Items", Value: strconv.Itoa(o.ItemCount)})
	}
	rows = append(rows, components.TableRow{Label: "Total", Value: catalog.FormatPrice(o.Total)})
	if !o.CreatedAt.IsZero() {
		rows = append(rows, components.TableRow{Label: "Created", Value: o.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	return rows
}

func appendRow(rows []components.TableRow, label, value string) []components.TableRow {
	if value == "" {
		return rows
	}
	return append(rows, components.TableRow{Label: label, Value: value})
}

func activeRow(active bool) components.TableRow {
	if active {
		return components.TableRow{Label: "Status", Value: "active", ValueColor: string(ColorSuccess)}
	}
	return components.TableRow{Label: "Status", Value: "inactive", ValueColor: string(ColorMuted)}
}
