package invoices

import (
	"time"
)

// Invoice model. PaidDate is nil exactly while the invoice is unpaid.
type Invoice struct {
	ID       int64      `json:"id"`
	CompCode string     `json:"comp_code"`
	Amt      float64    `json:"amt"`
	Paid     bool       `json:"paid"`
	AddDate  time.Time  `json:"add_date"`
	PaidDate *time.Time `json:"paid_date"`
}

// InvoiceSummary is the row shape of the invoice listing.
type InvoiceSummary struct {
	ID       int64  `json:"id"`
	CompCode string `json:"comp_code"`
}

// CompanyRef carries the owning company fields embedded in a detailed read.
type CompanyRef struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// InvoiceWithCompany is the joined read: one invoice plus its owner. The
// outward JSON swaps the flat comp_code for the nested company object.
type InvoiceWithCompany struct {
	Invoice
	Company CompanyRef
}

// CreateInvoiceInput for issuing a new invoice against a company.
type CreateInvoiceInput struct {
	CompCode string
	Amt      float64
}

// UpdateInvoiceInput amends the amount and requests a paid-state change.
type UpdateInvoiceInput struct {
	Amt  float64
	Paid bool
}
