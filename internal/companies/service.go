package companies

import (
	"context"
	"fmt"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
	"github.com/ledgerline/ledgerline/internal/platform/slug"
)

// InvoiceIndex lists the invoice ids billed to a company. Implemented by the
// invoices repository; injected here so the composite read can join the two
// stores without a package cycle.
type InvoiceIndex interface {
	ListIDsByCompany(ctx context.Context, code string) ([]int64, error)
}

// Service handles company business logic.
type Service struct {
	repo     Repository
	invoices InvoiceIndex
}

// NewService builds a Service instance.
func NewService(repo Repository, invoices InvoiceIndex) *Service {
	return &Service{repo: repo, invoices: invoices}
}

// List returns every company ordered by name.
func (s *Service) List(ctx context.Context) ([]CompanySummary, error) {
	return s.repo.List(ctx)
}

// GetWithInvoices returns one company plus the ids of its invoices.
func (s *Service) GetWithInvoices(ctx context.Context, code string) (*CompanyWithInvoices, error) {
	company, err := s.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	ids, err := s.invoices.ListIDsByCompany(ctx, code)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return &CompanyWithInvoices{Company: *company, Invoices: ids}, nil
}

// Create derives the company code from the supplied name and persists the
// record. A name that slugs to nothing is rejected before touching the store.
func (s *Service) Create(ctx context.Context, input CompanyInput) (*Company, error) {
	code := slug.Make(input.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: name must contain at least one letter or digit", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, Company{Code: code, Name: input.Name, Description: input.Description})
}

// Update replaces the name and description of an existing company. The code
// never changes.
func (s *Service) Update(ctx context.Context, code string, input CompanyInput) (*Company, error) {
	return s.repo.Update(ctx, code, input)
}

// Delete removes a company. Dependent invoices are handled by the store's
// referential policy, not here.
func (s *Service) Delete(ctx context.Context, code string) error {
	return s.repo.Delete(ctx, code)
}
