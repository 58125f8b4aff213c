package zenvoice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/etnz/zenvoice/date"
	"github.com/etnz/zenvoice/kv"
)

func TestOpenBookDefaults(t *testing.T) {
	b, _ := newTestBook(t)
	if got, want := b.Profile(), DefaultProfile(); got != want {
		t.Errorf("Profile() = %+v, want %+v", got, want)
	}
	if n := len(b.Customers()); n != 0 {
		t.Errorf("len(Customers()) = %d, want 0", n)
	}
	if n := len(b.Invoices()); n != 0 {
		t.Errorf("len(Invoices()) = %d, want 0", n)
	}
}

func TestSequentialNumbering(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)

	first, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("Consulting", "3", "150.50")))
	if err != nil {
		t.Fatalf("SaveInvoice() unexpected error: %v", err)
	}
	if first.Number != "INV-001" {
		t.Errorf("first invoice Number = %q, want %q", first.Number, "INV-001")
	}
	if got := b.Profile().NextInvoiceNo; got != 2 {
		t.Errorf("NextInvoiceNo after first save = %d, want 2", got)
	}

	second, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("Support", "1", "10")))
	if err != nil {
		t.Fatalf("SaveInvoice() unexpected error: %v", err)
	}
	if second.Number != "INV-002" {
		t.Errorf("second invoice Number = %q, want %q", second.Number, "INV-002")
	}
	if got := b.Profile().NextInvoiceNo; got != 3 {
		t.Errorf("NextInvoiceNo after second save = %d, want 3", got)
	}
	if first.ID == second.ID || first.ID.IsZero() || second.ID.IsZero() {
		t.Errorf("invoice ids %v and %v must be assigned and distinct", first.ID, second.ID)
	}
}

func TestSaveInvoiceStoresTotals(t *testing.T) {
	b, _ := newTestBook(t)
	inv, err := b.SaveInvoice(context.Background(), draftFor(t, b, "Acme", item("Consulting", "3", "150.50"), item("", "9", "9")))
	if err != nil {
		t.Fatal(err)
	}
	if !inv.Subtotal.Equal(D("451.50")) || !inv.Tax.Equal(D("81.27")) || !inv.Total.Equal(D("532.77")) {
		t.Errorf("totals = %s / %s / %s, want 451.50 / 81.27 / 532.77", inv.Subtotal, inv.Tax, inv.Total)
	}
	if len(inv.Items) != 2 {
		t.Errorf("saved %d items, want the 2 draft items (blank ones are kept)", len(inv.Items))
	}
	if inv.Date != date.Of(testNow) {
		t.Errorf("Date = %v, want %v", inv.Date, date.Of(testNow))
	}
}

func TestEditInvoiceKeepsSequence(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)

	d := draftFor(t, b, "Acme", item("Consulting", "1", "100"))
	saved, err := b.SaveInvoice(ctx, d)
	if err != nil {
		t.Fatal(err)
	}
	next := b.Profile().NextInvoiceNo

	// saving the same draft again edits the invoice
	d.SetTaxRate(D("5"))
	if _, err := b.SaveInvoice(ctx, d); err != nil {
		t.Fatal(err)
	}
	// and so does loading it back
	current, ok := b.Invoice(saved.ID)
	if !ok {
		t.Fatalf("Invoice(%v) not found", saved.ID)
	}
	edit := b.EditDraft(current)
	edit.SetNumber("INV-999")
	edited, err := b.SaveInvoice(ctx, edit)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.Profile().NextInvoiceNo; got != next {
		t.Errorf("NextInvoiceNo after edits = %d, want %d", got, next)
	}
	invoices := b.Invoices()
	if len(invoices) != 1 {
		t.Fatalf("len(Invoices()) = %d, want 1", len(invoices))
	}
	if invoices[0].ID != saved.ID || invoices[0].Number != "INV-999" || edited.Number != "INV-999" {
		t.Errorf("edited invoice = %v %q, want id %v number INV-999", invoices[0].ID, invoices[0].Number, saved.ID)
	}
	if !invoices[0].Total.Equal(D("105")) {
		t.Errorf("edited invoice Total = %s, want 105", invoices[0].Total)
	}
}

func TestSaveInvoiceValidation(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		items    []LineItem
		hint     string
	}{
		{name: "no items", customer: "Acme", hint: "Add at least one item with a name"},
		{name: "only blank items", customer: "Acme", items: []LineItem{item("", "1", "10"), item("  ", "2", "3")}, hint: "Add at least one item with a name"},
		{name: "no customer", customer: "", items: []LineItem{item("A", "1", "1")}, hint: "Please select or add a customer"},
		{name: "blank customer", customer: "   ", items: []LineItem{item("A", "1", "1")}, hint: "Please select or add a customer"},
		{name: "nothing", customer: "", hint: "Add at least one item with a name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, store := newTestBook(t)
			before := b.Snapshot()

			_, err := b.SaveInvoice(context.Background(), draftFor(t, b, tc.customer, tc.items...))
			if !IsValidation(err) {
				t.Fatalf("SaveInvoice() error = %v, want a validation error", err)
			}
			if got := Hint(err); got != tc.hint {
				t.Errorf("Hint() = %q, want %q", got, tc.hint)
			}
			if got := b.Snapshot(); !sameJSON(t, got, before) {
				t.Errorf("book changed after a failed save: %+v", got)
			}
			if _, err := store.Store().Get(context.Background(), KeyInvoices); !kv.IsNotFound(err) {
				t.Errorf("a failed save wrote the invoices record")
			}
		})
	}
}

func TestSaveInvoiceAddsUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	if _, err := b.AddCustomer(ctx, "Acme", "1 Road"); err != nil {
		t.Fatal(err)
	}

	d := draftFor(t, b, "Globex", item("A", "1", "1"))
	d.SetCustomerAddress("2 Street")
	if _, err := b.SaveInvoice(ctx, d); err != nil {
		t.Fatal(err)
	}
	// a known customer is not duplicated, nor updated
	d = draftFor(t, b, "Acme", item("A", "1", "1"))
	d.SetCustomerAddress("elsewhere")
	if _, err := b.SaveInvoice(ctx, d); err != nil {
		t.Fatal(err)
	}

	customers := b.Customers()
	if len(customers) != 2 {
		t.Fatalf("len(Customers()) = %d, want 2: %+v", len(customers), customers)
	}
	if c := customers[1]; c.Name != "Globex" || c.Address != "2 Street" || c.ID.IsZero() {
		t.Errorf("implicit customer = %+v, want Globex at 2 Street with an id", c)
	}
	if c, _ := b.Customer("Acme"); c.Address != "1 Road" {
		t.Errorf("Acme address = %q, want it unchanged", c.Address)
	}
}

func TestAddCustomer(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)

	if _, err := b.AddCustomer(ctx, "", "somewhere"); !IsValidation(err) {
		t.Errorf("AddCustomer(\"\") error = %v, want a validation error", err)
	}
	a, err := b.AddCustomer(ctx, "Acme", "1 Road")
	if err != nil {
		t.Fatal(err)
	}
	g, err := b.AddCustomer(ctx, "Globex", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == g.ID {
		t.Errorf("customers share the id %v", a.ID)
	}
	if got := b.Customers(); len(got) != 2 || got[0] != a || got[1] != g {
		t.Errorf("Customers() = %+v, want [%+v %+v]", got, a, g)
	}
}

func TestRemoveCustomerKeepsInvoices(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	inv, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("A", "1", "1")))
	if err != nil {
		t.Fatal(err)
	}
	c, ok := b.Customer("Acme")
	if !ok {
		t.Fatal("customer Acme was not created by the save")
	}

	if !b.RemoveCustomer(ctx, c.ID) {
		t.Errorf("RemoveCustomer() = false, want true")
	}
	if b.RemoveCustomer(ctx, c.ID) {
		t.Errorf("second RemoveCustomer() = true, want false")
	}
	if len(b.Customers()) != 0 {
		t.Errorf("customer still listed after removal")
	}
	got, ok := b.Invoice(inv.ID)
	if !ok || !sameJSON(t, got, inv) {
		t.Errorf("invoice after customer removal = %+v, want %+v", got, inv)
	}
}

func TestRemoveInvoice(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	first, _ := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("A", "1", "1")))
	second, _ := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("B", "1", "1")))

	if !b.RemoveInvoice(ctx, first.ID) {
		t.Errorf("RemoveInvoice() = false, want true")
	}
	if invoices := b.Invoices(); len(invoices) != 1 || invoices[0].ID != second.ID {
		t.Errorf("Invoices() = %+v, want only %v", invoices, second.ID)
	}
	if got := b.Profile().NextInvoiceNo; got != 3 {
		t.Errorf("NextInvoiceNo = %d, want 3 (not rewound)", got)
	}
	if len(b.Customers()) != 1 {
		t.Errorf("RemoveInvoice() changed the customers")
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	b, store := newTestBook(t)
	p := DefaultProfile()
	p.Name = "Acme Corp"
	if err := b.UpdateProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, err := b.SaveInvoice(ctx, draftFor(t, b, "Globex", item("A", "1", "1"))); err != nil {
		t.Fatal(err)
	}
	profile := b.Profile()

	b.ClearAll(ctx)

	if len(b.Invoices()) != 0 || len(b.Customers()) != 0 {
		t.Errorf("ClearAll left %d invoices and %d customers", len(b.Invoices()), len(b.Customers()))
	}
	if got := b.Profile(); got != profile || got.NextInvoiceNo != 2 {
		t.Errorf("Profile() after ClearAll = %+v, want %+v", got, profile)
	}

	reopened := OpenBook(ctx, store)
	if len(reopened.Invoices()) != 0 || len(reopened.Customers()) != 0 || reopened.Profile() != profile {
		t.Errorf("ClearAll was not persisted: %+v", reopened.Snapshot())
	}
}

func TestUpdateProfileRejectsCounterBelowOne(t *testing.T) {
	ctx := context.Background()
	for _, next := range []int{0, -1} {
		b, store := newTestBook(t)
		p := b.Profile()
		p.Name = "Acme Corp"
		p.NextInvoiceNo = next

		err := b.UpdateProfile(ctx, p)
		if !IsValidation(err) {
			t.Fatalf("UpdateProfile(next=%d) error = %v, want a validation error", next, err)
		}
		if got, want := Hint(err), "The next invoice number must be at least 1"; got != want {
			t.Errorf("Hint() = %q, want %q", got, want)
		}
		if got := b.Profile(); got != DefaultProfile() {
			t.Errorf("Profile() = %+v, want it unchanged", got)
		}
		if got := b.NewDraft().Invoice().Number; got != "INV-001" {
			t.Errorf("new draft Number = %q, want INV-001", got)
		}
		if _, err := store.Store().Get(ctx, KeyBusiness); !kv.IsNotFound(err) {
			t.Errorf("profile was written: %v", err)
		}
	}
}

func TestUpdateProfileRenumbersFreshDraft(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	d := b.NewDraft()

	p := b.Profile()
	p.InvoicePrefix = "ZV"
	p.NextInvoiceNo = 40
	if err := b.UpdateProfile(ctx, p); err != nil {
		t.Fatal(err)
	}
	d.Sync(b.Profile())

	if got := d.Invoice().Number; got != "ZV-040" {
		t.Errorf("draft Number = %q, want %q", got, "ZV-040")
	}
	inv, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("A", "1", "1")))
	if err != nil {
		t.Fatal(err)
	}
	if inv.Number != "ZV-040" || b.Profile().NextInvoiceNo != 41 {
		t.Errorf("saved %q with next %d, want ZV-040 and 41", inv.Number, b.Profile().NextInvoiceNo)
	}
	if got := b.NewDraft().Invoice().Number; got != "ZV-041" {
		t.Errorf("next draft Number = %q, want %q", got, "ZV-041")
	}
}

func TestBookPersistence(t *testing.T) {
	ctx := context.Background()
	store := kv.NewAdapter(kv.NewMemory(), nil)
	clock := func() time.Time { return testNow }
	b := OpenBook(ctx, store, WithClock(clock))

	inv, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("Consulting", "3", "150.50")))
	if err != nil {
		t.Fatal(err)
	}

	reopened := OpenBook(ctx, store, WithClock(clock))
	if !sameJSON(t, reopened.Snapshot(), b.Snapshot()) {
		t.Errorf("reopened book = %+v, want %+v", reopened.Snapshot(), b.Snapshot())
	}
	got, ok := reopened.InvoiceByNumber("INV-001")
	if !ok || got.ID != inv.ID {
		t.Errorf("InvoiceByNumber(INV-001) = %v, %v, want %v", got.ID, ok, inv.ID)
	}

	// ids handed out by a reopened book never collide with stored ones
	c, err := reopened.AddCustomer(ctx, "Globex", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, other := range reopened.Customers()[:1] {
		if c.ID <= other.ID || c.ID <= inv.ID {
			t.Errorf("new id %v is not above stored ids %v and %v", c.ID, other.ID, inv.ID)
		}
	}
}

func TestOpenBookCorruptRecords(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	m.Set(ctx, KeyBusiness, []byte(`{"name":`))
	m.Set(ctx, KeyInvoices, []byte(`"not a list"`))
	m.Set(ctx, KeyCustomers, []byte(`[{"id":1,"name":"Acme","address":""}]`))

	b := OpenBook(ctx, kv.NewAdapter(m, nil))
	if b.Profile() != DefaultProfile() {
		t.Errorf("Profile() = %+v, want the default profile", b.Profile())
	}
	if len(b.Invoices()) != 0 {
		t.Errorf("Invoices() = %+v, want none", b.Invoices())
	}
	if len(b.Customers()) != 1 {
		t.Errorf("Customers() = %+v, want the stored customer", b.Customers())
	}
}

func TestFlushUpgradesLegacyRecords(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	m.Set(ctx, KeyBusiness, []byte(`{"name":"Acme","address":"","gstin":"29ABCDE1234F1Z5","invoicePrefix":"INV","nextInvoiceNo":4}`))
	m.Set(ctx, KeyInvoices, []byte(`[{"id":1,"number":"INV-003","date":"2025-07-01","customerName":"Globex","customerAddress":"","items":[{"id":2,"name":"A","qty":2,"price":10}],"gstRate":18,"subtotal":20,"gst":3.6,"total":23.6}]`))

	OpenBook(ctx, kv.NewAdapter(m, nil)).Flush(ctx)

	business, _ := m.Get(ctx, KeyBusiness)
	want := `{"name":"Acme","address":"","taxId":"29ABCDE1234F1Z5","invoicePrefix":"INV","nextInvoiceNo":4}`
	if string(business) != want {
		t.Errorf("business record = %s, want %s", business, want)
	}
	invoices, _ := m.Get(ctx, KeyInvoices)
	want = `[{"id":1,"number":"INV-003","date":"2025-07-01","customerName":"Globex","customerAddress":"","items":[{"id":2,"name":"A","qty":"2","price":"10"}],"taxRate":18,"subtotal":20,"tax":3.6,"total":23.6}]`
	if string(invoices) != want {
		t.Errorf("invoices record = %s, want %s", invoices, want)
	}
	customers, _ := m.Get(ctx, KeyCustomers)
	if string(customers) != `[]` {
		t.Errorf("customers record = %s, want []", customers)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	for i := 0; i < 7; i++ {
		if _, err := b.SaveInvoice(ctx, draftFor(t, b, "Acme", item("A", "1", "100"))); err != nil {
			t.Fatal(err)
		}
	}
	s := b.Stats()
	if s.Count != 7 {
		t.Errorf("Count = %d, want 7", s.Count)
	}
	if !s.TotalSales.Equal(D("826")) {
		t.Errorf("TotalSales = %s, want 826", s.TotalSales)
	}
	if len(s.Recent) != 5 || s.Recent[0].Number != "INV-007" || s.Recent[4].Number != "INV-003" {
		t.Errorf("Recent = %v, want INV-007 down to INV-003", numbers(s.Recent))
	}
}

func TestInvoicesIn(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBook(t)
	for _, on := range []string{"2025-06-30", "2025-07-01", "2025-07-31", "2025-08-01"} {
		d := draftFor(t, b, "Acme", item("A", "1", "100"))
		d.SetDate(date.MustParse(on))
		if _, err := b.SaveInvoice(ctx, d); err != nil {
			t.Fatal(err)
		}
	}
	july := date.NewRange(date.MustParse("2025-07-15"), date.Monthly)
	if got := numbers(b.InvoicesIn(july)); len(got) != 2 || got[0] != "INV-002" || got[1] != "INV-003" {
		t.Errorf("InvoicesIn(%v) = %v, want [INV-002 INV-003]", july, got)
	}
	if got := b.InvoicesIn(date.Range{}); len(got) != 4 {
		t.Errorf("InvoicesIn(open) returned %d invoices, want 4", len(got))
	}
}

func numbers(invoices []Invoice) []string {
	var out []string
	for _, inv := range invoices {
		out = append(out, inv.Number)
	}
	return out
}

// sameJSON compares two values through their JSON encoding.
func sameJSON(t *testing.T, a, b any) bool {
	t.Helper()
	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	jb, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	return string(ja) == string(jb)
}
