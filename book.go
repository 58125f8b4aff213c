package zenvoice

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/etnz/zenvoice/date"
	"github.com/etnz/zenvoice/kv"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Book holds the business profile, the customer list and the invoices. It is
// the only way to change them, and every change is persisted immediately
// through the adapter, one record per collection.
//
// Operations validate everything before changing anything: a failed operation
// leaves the book untouched. A Book is not safe for concurrent use.
type Book struct {
	store    *kv.Adapter
	log      *zap.Logger
	now      func() time.Time
	ids      *idGenerator
	validate *validator.Validate
	taxRate  decimal.Decimal

	profile   BusinessProfile
	customers []Customer
	invoices  []Invoice
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the book logger.
func WithLogger(log *zap.Logger) Option { return func(b *Book) { b.log = log } }

// WithClock sets the source of time, used for ids and draft dates.
func WithClock(now func() time.Time) Option { return func(b *Book) { b.now = now } }

// WithDefaultTaxRate sets the tax rate of new drafts.
func WithDefaultTaxRate(rate decimal.Decimal) Option { return func(b *Book) { b.taxRate = rate } }

// OpenBook loads a book from the store. Missing or unreadable records start
// from their defaults: DefaultProfile and empty lists.
func OpenBook(ctx context.Context, store *kv.Adapter, opts ...Option) *Book {
	b := &Book{
		store:    store,
		log:      zap.NewNop(),
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		taxRate:  DefaultTaxRate,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ids = newIDGenerator(b.now)

	b.profile = kv.Load(ctx, store, KeyBusiness, DefaultProfile())
	b.customers = kv.Load(ctx, store, KeyCustomers, []Customer{})
	b.invoices = kv.Load(ctx, store, KeyInvoices, []Invoice{})

	for _, c := range b.customers {
		b.ids.observe(c.ID)
	}
	for _, inv := range b.invoices {
		b.ids.observe(inv.ID)
		for _, it := range inv.Items {
			b.ids.observe(it.ID)
		}
	}
	return b
}

// Profile returns the business profile.
func (b *Book) Profile() BusinessProfile { return b.profile }

// Customers returns a copy of the customer list, in insertion order.
func (b *Book) Customers() []Customer { return slices.Clone(b.customers) }

// Invoices returns a copy of the invoice list, in insertion order.
func (b *Book) Invoices() []Invoice {
	return lo.Map(b.invoices, func(inv Invoice, _ int) Invoice { return inv.clone() })
}

// Today returns the current date of the book's clock.
func (b *Book) Today() date.Date { return date.Of(b.now()) }

// InvoicesIn returns the invoices dated within r, in book order.
func (b *Book) InvoicesIn(r date.Range) []Invoice {
	in := lo.Filter(b.invoices, func(inv Invoice, _ int) bool { return r.Contains(inv.Date) })
	return lo.Map(in, func(inv Invoice, _ int) Invoice { return inv.clone() })
}

// Customer returns the customer with that name.
func (b *Book) Customer(name string) (Customer, bool) {
	return lo.Find(b.customers, func(c Customer) bool { return c.Name == name })
}

// Invoice returns the invoice with that id.
func (b *Book) Invoice(id ID) (Invoice, bool) {
	inv, ok := lo.Find(b.invoices, func(inv Invoice) bool { return inv.ID == id })
	return inv.clone(), ok
}

// InvoiceByNumber returns the first invoice with that number. Numbers can be
// edited by hand so they are not guaranteed to be unique.
func (b *Book) InvoiceByNumber(number string) (Invoice, bool) {
	inv, ok := lo.Find(b.invoices, func(inv Invoice) bool { return inv.Number == number })
	return inv.clone(), ok
}

// NewDraft returns a fresh draft, numbered from the current profile, dated
// today and taxed at the default rate.
func (b *Book) NewDraft() *Draft {
	return newDraft(b.profile, date.Of(b.now()), b.taxRate, b.ids)
}

// EditDraft returns a draft loaded with a saved invoice.
func (b *Book) EditDraft(inv Invoice) *Draft { return editDraft(inv, b.ids) }

// draftRules are the conditions to save an invoice, in reporting order.
type draftRules struct {
	BillableItems int    `validate:"gt=0"`
	CustomerName  string `validate:"required"`
}

var draftHints = map[string]string{
	"BillableItems": "Add at least one item with a name",
	"CustomerName":  "Please select or add a customer",
}

// SaveInvoice stores the draft content.
//
// It fails with a validation error when no item has a description or the
// customer name is empty. A new invoice gets an id, is appended to the list
// and advances the sequence counter by one. An invoice already in the list is
// replaced and the counter is left alone. The customer is added to the
// customer list if no customer has that name yet.
//
// The draft is updated with the saved identity, saving it again edits the
// same invoice.
func (b *Book) SaveInvoice(ctx context.Context, d *Draft) (Invoice, error) {
	inv := d.Invoice()
	if err := b.check(draftRules{
		BillableItems: len(inv.BillableItems()),
		CustomerName:  strings.TrimSpace(inv.CustomerName),
	}, draftHints); err != nil {
		return Invoice{}, err
	}

	inv.Recompute()
	if inv.ID.IsZero() {
		inv.ID = b.ids.Next()
	}

	invoices := slices.Clone(b.invoices)
	profile := b.profile
	if i := slices.IndexFunc(invoices, func(x Invoice) bool { return x.ID == inv.ID }); i >= 0 {
		invoices[i] = inv
	} else {
		invoices = append(invoices, inv)
		profile.NextInvoiceNo++
	}

	customers := b.customers
	_, known := b.Customer(inv.CustomerName)
	if !known {
		customers = append(slices.Clone(b.customers), Customer{
			ID:      b.ids.Next(),
			Name:    inv.CustomerName,
			Address: inv.CustomerAddress,
		})
	}

	b.invoices = invoices
	b.store.Save(ctx, KeyInvoices, b.invoices)
	if profile != b.profile {
		b.profile = profile
		b.store.Save(ctx, KeyBusiness, b.profile)
	}
	if !known {
		b.customers = customers
		b.store.Save(ctx, KeyCustomers, b.customers)
	}

	b.log.Debug("invoice saved",
		zap.Stringer("id", inv.ID),
		zap.String("number", inv.Number),
		zap.Int("nextInvoiceNo", b.profile.NextInvoiceNo),
	)
	d.saved(inv)
	return inv.clone(), nil
}

type customerRules struct {
	Name string `validate:"required"`
}

var customerHints = map[string]string{
	"Name": "Name required",
}

// AddCustomer appends a customer with a fresh id. The name is required.
// Duplicate names are accepted, lookups by name return the first one.
func (b *Book) AddCustomer(ctx context.Context, name, address string) (Customer, error) {
	if err := b.check(customerRules{Name: strings.TrimSpace(name)}, customerHints); err != nil {
		return Customer{}, err
	}
	c := Customer{ID: b.ids.Next(), Name: name, Address: address}
	b.customers = append(slices.Clone(b.customers), c)
	b.store.Save(ctx, KeyCustomers, b.customers)
	return c, nil
}

// RemoveCustomer removes a customer. Invoices keep their customer snapshot.
// It reports whether a customer was removed.
func (b *Book) RemoveCustomer(ctx context.Context, id ID) bool {
	customers := lo.Reject(b.customers, func(c Customer, _ int) bool { return c.ID == id })
	if len(customers) == len(b.customers) {
		return false
	}
	b.customers = customers
	b.store.Save(ctx, KeyCustomers, b.customers)
	return true
}

// RemoveInvoice removes an invoice. The sequence counter is not rewound.
// It reports whether an invoice was removed.
func (b *Book) RemoveInvoice(ctx context.Context, id ID) bool {
	invoices := lo.Reject(b.invoices, func(inv Invoice, _ int) bool { return inv.ID == id })
	if len(invoices) == len(b.invoices) {
		return false
	}
	b.invoices = invoices
	b.store.Save(ctx, KeyInvoices, b.invoices)
	return true
}

type profileRules struct {
	NextInvoiceNo int `validate:"gte=1"`
}

var profileHints = map[string]string{
	"NextInvoiceNo": "The next invoice number must be at least 1",
}

// UpdateProfile replaces the business profile, sequence counter included.
// The counter must be at least 1, the profile is unchanged otherwise.
func (b *Book) UpdateProfile(ctx context.Context, p BusinessProfile) error {
	if err := b.check(profileRules{NextInvoiceNo: p.NextInvoiceNo}, profileHints); err != nil {
		return err
	}
	b.profile = p
	b.store.Save(ctx, KeyBusiness, b.profile)
	return nil
}

// ClearAll empties the customer and invoice lists. The profile, and its
// sequence counter, are kept.
func (b *Book) ClearAll(ctx context.Context) {
	b.customers = []Customer{}
	b.invoices = []Invoice{}
	b.store.Save(ctx, KeyInvoices, b.invoices)
	b.store.Save(ctx, KeyCustomers, b.customers)
}

// check validates rules and turns the first failing field into a validation
// error carrying the matching hint.
func (b *Book) check(rules any, hints map[string]string) error {
	err := b.validate.Struct(rules)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		if hint, ok := hints[errs[0].Field()]; ok {
			return validationError(hint)
		}
		return validationError(errs[0].Error())
	}
	return validationError(err.Error())
}

// Flush writes the three records of the book, in the current format.
func (b *Book) Flush(ctx context.Context) {
	b.store.Save(ctx, KeyBusiness, b.profile)
	b.store.Save(ctx, KeyCustomers, b.customers)
	b.store.Save(ctx, KeyInvoices, b.invoices)
}
