package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID lists employees currently employed by the company
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs lists companies that have at least one active employee
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
