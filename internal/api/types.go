package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Message   string  `json:"message"`
	Data      T       `json:"data"`
	Paging    *Paging `json:"paging,omitempty"`
	TotalPage int     `json:"total_page,omitempty"`
	Page      int     `json:"page,omitempty"`
	Error     *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Cursor is a pagination cursor. Endpoints send it either as a JSON string
// or as a number.
type Cursor string

func (c *Cursor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cursor(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	*c = Cursor(n.String())
	return nil
}

func (c Cursor) String() string { return string(c) }

// Paging carries both pagination conventions used by the API: page-based
// endpoints fill Page and TotalPage, cursor-based ones fill Last and Next.
type Paging struct {
	Size      int    `json:"size"`
	Page      int    `json:"page,omitempty"`
	TotalPage int    `json:"total_page,omitempty"`
	Last      Cursor `json:"last,omitempty"`
	Next      bool   `json:"next"`
	Present   bool   `json:"-"` // any paging metadata arrived
}

// Page is one decoded list response.
type Page[T any] struct {
	Message string
	Items   []T
	Paging  Paging
}

// QueryParams are URL query parameters; empty values are dropped.
type QueryParams map[string]string

// --- Product ---

// Product is a catalog product sold by pharmacies.
type Product struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name,omitempty"`
	Manufacturer         string  `json:"manufacturer,omitempty"`
	Category             string  `json:"category,omitempty"`
	Form                 string  `json:"form,omitempty"`
	Unit                 string  `json:"unit,omitempty"`
	Price                float64 `json:"price,omitempty"`
	PrescriptionRequired bool    `json:"prescription_required,omitempty"`
	// Description is merchant supplied and may contain HTML.
	Description          string  `json:"description,omitempty"`
}

func (p Product) SearchKey() string   { return strconv.FormatInt(p.ID, 10) }
func (p Product) SearchLabel() string { return p.Name }

// --- Pharmacy ---

// Pharmacy is a store listed on the marketplace.
type Pharmacy struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city,omitempty"`
	Address    string  `json:"address,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Pharmacist string  `json:"pharmacist,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Active     bool    `json:"active"`
}

func (p Pharmacy) SearchKey() string   { return strconv.FormatInt(p.ID, 10) }
func (p Pharmacy) SearchLabel() string { return p.Name }

// --- Partner ---

// Partner is a company that manages one or more pharmacies.
type Partner struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PharmacyCount int    `json:"pharmacy_count,omitempty"`
	Active        bool   `json:"active"`
}

func (p Partner) SearchKey() string   { return strconv.FormatInt(p.ID, 10) }
func (p Partner) SearchLabel() string { return p.Name }

// --- Order ---

// Order is a customer order. Name holds the customer name.
type Order struct {
	ID           int64     `json:"id"`
	Invoice      string    `json:"invoice"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	PharmacyName string    `json:"pharmacy_name,omitempty"`
	Total        float64   `json:"total"`
	ItemCount    int       `json:"item_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (o Order) SearchKey() string { return strconv.FormatInt(o.ID, 10) }

func (o Order) SearchLabel() string {
	parts := make([]string, 0, 2)
	if strings.TrimSpace(o.Invoice) != "" {
		parts = append(parts, o.Invoice)
	}
	if strings.TrimSpace(o.Name) != "" {
		parts = append(parts, o.Name)
	}
	if len(parts) == 0 {
		return o.SearchKey()
	}
	return strings.Join(parts, " · ")
}

// --- Category ---

// Category groups products in the storefront.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	ProductCount int    `json:"product_count,omitempty"`
}

func (c Category) SearchKey() string   { return strconv.FormatInt(c.ID, 10) }
func (c Category) SearchLabel() string { return c.Name }
