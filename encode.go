package zenvoice

import (
	"bytes"
	"encoding/json"

	"github.com/etnz/zenvoice/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Keys of the three records of a book in the key-value store.
const (
	KeyBusiness  = "zen_business"
	KeyCustomers = "zen_customers"
	KeyInvoices  = "zen_invoices"
)

// UnmarshalJSON also accepts the legacy "gstin" key for the tax identifier.
func (p *BusinessProfile) UnmarshalJSON(b []byte) error {
	type plain BusinessProfile
	var v struct {
		plain
		GSTIN *string `json:"gstin"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = BusinessProfile(v.plain)
	if p.TaxID == "" && v.GSTIN != nil {
		p.TaxID = *v.GSTIN
	}
	return nil
}

// text is a json string that also accepts a number, stored as its literal.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = text(n.String())
	return nil
}

type lineItemRecord struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Qty   string `json:"qty"`
	Price string `json:"price"`
}

func (it LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineItemRecord{ID: it.ID, Name: it.Name, Qty: it.Qty, Price: it.Price})
}

// UnmarshalJSON accepts quantity and price either as strings or numbers.
func (it *LineItem) UnmarshalJSON(b []byte) error {
	var v struct {
		ID    ID     `json:"id"`
		Name  string `json:"name"`
		Qty   text   `json:"qty"`
		Price text   `json:"price"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*it = LineItem{ID: v.ID, Name: v.Name, Qty: string(v.Qty), Price: string(v.Price)}
	return nil
}

type invoiceRecord struct {
	ID              ID              `json:"id"`
	Number          string          `json:"number"`
	Date            date.Date       `json:"date"`
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
	Items           []LineItem      `json:"items"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
}

func (inv Invoice) MarshalJSON() ([]byte, error) {
	items := inv.Items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(invoiceRecord{
		ID:              inv.ID,
		Number:          inv.Number,
		Date:            inv.Date,
		CustomerName:    inv.CustomerName,
		CustomerAddress: inv.CustomerAddress,
		Items:           items,
		TaxRate:         inv.TaxRate,
		Subtotal:        inv.Subtotal,
		Tax:             inv.Tax,
		Total:           inv.Total,
	})
}

// UnmarshalJSON also accepts the legacy "gstRate" and "gst" keys.
func (inv *Invoice) UnmarshalJSON(b []byte) error {
	var v struct {
		ID              ID               `json:"id"`
		Number          string           `json:"number"`
		Date            date.Date        `json:"date"`
		CustomerName    string           `json:"customerName"`
		CustomerAddress string           `json:"customerAddress"`
		Items           []LineItem       `json:"items"`
		TaxRate         *decimal.Decimal `json:"taxRate"`
		GSTRate         *decimal.Decimal `json:"gstRate"`
		Subtotal        decimal.Decimal  `json:"subtotal"`
		Tax             *decimal.Decimal `json:"tax"`
		GST             *decimal.Decimal `json:"gst"`
		Total           decimal.Decimal  `json:"total"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*inv = Invoice{
		ID:              v.ID,
		Number:          v.Number,
		Date:            v.Date,
		CustomerName:    v.CustomerName,
		CustomerAddress: v.CustomerAddress,
		Items:           v.Items,
		TaxRate:         firstDecimal(v.TaxRate, v.GSTRate),
		Totals: Totals{
			Subtotal: v.Subtotal,
			Tax:      firstDecimal(v.Tax, v.GST),
			Total:    v.Total,
		},
	}
	return nil
}

func firstDecimal(ds ...*decimal.Decimal) decimal.Decimal {
	for _, d := range ds {
		if d != nil {
			return *d
		}
	}
	return decimal.Zero
}
