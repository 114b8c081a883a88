package companies

// Company represents a billing entity keyed by its slug-derived code. The code
// is immutable once created; name and description are replaceable.
type Company struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CompanySummary is the row shape of the company listing.
type CompanySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CompanyWithInvoices is the composite read: company fields plus the ids of
// every invoice billed to it. Callers must treat the ids as a set.
type CompanyWithInvoices struct {
	Company
	Invoices []int64 `json:"invoices"`
}

// CompanyInput carries the client-supplied fields for create and update.
type CompanyInput struct {
	Name        string
	Description string
}
