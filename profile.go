package zenvoice

// BusinessProfile is the issuer of every invoice of a book.
type BusinessProfile struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	TaxID         string `json:"taxId"`
	InvoicePrefix string `json:"invoicePrefix"`
	// NextInvoiceNo is the sequence counter, it feeds the next auto-generated
	// invoice number and is advanced once per new invoice.
	NextInvoiceNo int `json:"nextInvoiceNo"`
}

// DefaultProfile is the profile of a book that has never been configured.
func DefaultProfile() BusinessProfile {
	return BusinessProfile{
		Name:          "ZenVoice",
		Address:       "123 Business Street, City - PIN",
		TaxID:         "22AAAAA0000A1Z5",
		InvoicePrefix: "INV",
		NextInvoiceNo: 1,
	}
}

// NextNumber returns the number the next new invoice will get.
func (p BusinessProfile) NextNumber() string { return NextNumber(p.InvoicePrefix, p.NextInvoiceNo) }

// Customer is an entry of the customer list. Names are the lookup key.
type Customer struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
