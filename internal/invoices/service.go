package invoices

import (
	"context"
	"time"
)

// Service handles invoice business logic: CRUD, the payment-state transition
// on update, and the joined invoice-with-company read.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns every invoice in id order.
func (s *Service) List(ctx context.Context) ([]InvoiceSummary, error) {
	return s.repo.List(ctx)
}

// GetWithCompany returns one invoice with its owning company embedded.
func (s *Service) GetWithCompany(ctx context.Context, id int64) (*InvoiceWithCompany, error) {
	return s.repo.GetWithCompany(ctx, id)
}

// Create issues a new invoice. It starts unpaid with the add date stamped by
// the store.
func (s *Service) Create(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	return s.repo.Create(ctx, input)
}

// UpdatePayment amends the amount and applies the payment-state transition:
// the persisted state is read, the next state computed, and both written back
// in a single transaction. The amount passes through untouched.
func (s *Service) UpdatePayment(ctx context.Context, id int64, input UpdateInvoiceInput) (*Invoice, error) {
	var updated *Invoice
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		state, err := repo.GetPaymentState(ctx, id)
		if err != nil {
			return err
		}
		next := state.Transition(input.Paid, s.now())
		updated, err = repo.UpdatePayment(ctx, id, input.Amt, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
