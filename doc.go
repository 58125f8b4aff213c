// Package zenvoice manages the invoices of a small business: a business
// profile, a customer list and sequentially numbered invoices. It is designed
// to be local-first, everything is kept in a key-value store the caller picks.
//
// The core functionalities include:
//   - Invoice totals: subtotal, tax and total derived from line items, see
//     ComputeTotals. Totals are never typed, always computed.
//   - Numbering: new invoices get <prefix>-<seq> from the business profile,
//     and the sequence advances once per new invoice, never on edits.
//   - Book: the single owner of the profile, customers and invoices. Every
//     change is validated first then persisted immediately, one record per
//     collection (see package kv).
//   - Drafts: the invoice being edited, with the input rules of quantities and
//     prices, and the auto-filled customer address.
//
// This package serves as the foundational logic for the `zen` command-line
// tool, document exports live in package renderer.
package zenvoice
