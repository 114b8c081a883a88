package companies

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

type memoryCompanyRepo struct {
	companies map[string]Company
}

func newMemoryCompanyRepo() *memoryCompanyRepo {
	return &memoryCompanyRepo{companies: make(map[string]Company)}
}

func (r *memoryCompanyRepo) List(ctx context.Context) ([]CompanySummary, error) {
	var out []CompanySummary
	for _, c := range r.companies {
		out = append(out, CompanySummary{Code: c.Code, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryCompanyRepo) Get(ctx context.Context, code string) (*Company, error) {
	c, ok := r.companies[code]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &c, nil
}

func (r *memoryCompanyRepo) Create(ctx context.Context, company Company) (*Company, error) {
	if _, ok := r.companies[company.Code]; ok {
		return nil, httpx.ErrDuplicate
	}
	r.companies[company.Code] = company
	return &company, nil
}

func (r *memoryCompanyRepo) Update(ctx context.Context, code string, input CompanyInput) (*Company, error) {
	c, ok := r.companies[code]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	c.Name = input.Name
	c.Description = input.Description
	r.companies[code] = c
	return &c, nil
}

func (r *memoryCompanyRepo) Delete(ctx context.Context, code string) error {
	if _, ok := r.companies[code]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.companies, code)
	return nil
}

type staticInvoiceIndex map[string][]int64

func (idx staticInvoiceIndex) ListIDsByCompany(ctx context.Context, code string) ([]int64, error) {
	return idx[code], nil
}

func TestCreateDerivesCodeFromName(t *testing.T) {
	repo := newMemoryCompanyRepo()
	svc := NewService(repo, staticInvoiceIndex{})

	created, err := svc.Create(context.Background(), CompanyInput{Name: "Canoo", Description: "EV"})
	require.NoError(t, err)
	require.Equal(t, "canoo", created.Code)
	require.Equal(t, "Canoo", created.Name)
	require.Equal(t, "EV", created.Description)

	multi, err := svc.Create(context.Background(), CompanyInput{Name: "Apple Computer"})
	require.NoError(t, err)
	require.Equal(t, "apple-computer", multi.Code)
}

func TestCreateRejectsEmptySlug(t *testing.T) {
	svc := NewService(newMemoryCompanyRepo(), staticInvoiceIndex{})

	_, err := svc.Create(context.Background(), CompanyInput{Name: "!!!"})
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestCreateDuplicateCode(t *testing.T) {
	repo := newMemoryCompanyRepo()
	svc := NewService(repo, staticInvoiceIndex{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CompanyInput{Name: "Acme"})
	require.NoError(t, err)

	// "ACME" slugs to the same code.
	_, err = svc.Create(ctx, CompanyInput{Name: "ACME"})
	require.True(t, errors.Is(err, httpx.ErrDuplicate))
}

func TestGetWithInvoicesComposesBothStores(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	svc := NewService(repo, staticInvoiceIndex{"apple": {1, 2, 3}})

	got, err := svc.GetWithInvoices(context.Background(), "apple")
	require.NoError(t, err)
	require.Equal(t, "apple", got.Code)
	require.ElementsMatch(t, []int64{1, 2, 3}, got.Invoices)
}

func TestGetWithInvoicesEmptySet(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["ibm"] = Company{Code: "ibm", Name: "IBM"}
	svc := NewService(repo, staticInvoiceIndex{})

	got, err := svc.GetWithInvoices(context.Background(), "ibm")
	require.NoError(t, err)
	require.NotNil(t, got.Invoices)
	require.Empty(t, got.Invoices)
}

func TestGetWithInvoicesNotFound(t *testing.T) {
	svc := NewService(newMemoryCompanyRepo(), staticInvoiceIndex{})

	_, err := svc.GetWithInvoices(context.Background(), "ghost")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestUpdateKeepsCode(t *testing.T) {
	repo := newMemoryCompanyRepo()
	repo.companies["apple"] = Company{Code: "apple", Name: "Apple Computer", Description: "Maker of OSX."}
	svc := NewService(repo, staticInvoiceIndex{})

	updated, err := svc.Update(context.Background(), "apple", CompanyInput{Name: "Apple", Description: "Fruit company."})
	require.NoError(t, err)
	require.Equal(t, "apple", updated.Code)
	require.Equal(t, "Apple", updated.Name)
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(newMemoryCompanyRepo(), staticInvoiceIndex{})

	err := svc.Delete(context.Background(), "nope")
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestListOrdersByName(t *testing.T) {
	repo := newMemoryCompanyRepo()
	svc := NewService(repo, staticInvoiceIndex{})
	ctx := context.Background()

	for _, name := range []string{"Zebra", "Acme", "Midway"} {
		_, err := svc.Create(ctx, CompanyInput{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{"Acme", "Midway", "Zebra"}, []string{list[0].Name, list[1].Name, list[2].Name})
}
