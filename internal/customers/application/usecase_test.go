package application

import (
	"context"
	"testing"

	"go-grocery/internal/customers/domain"
	"go-grocery/pkg/errors"
	"go-grocery/pkg/logger"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository
type MockCustomerRepository struct {
	customers map[string]*domain.Customer
	nextID    int
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, ok := m.customers[id]
	if !ok {
		return nil, domain.NewCustomerNotFound(id)
	}
	copied := *customer
	return &copied, nil
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	for _, customer := range m.customers {
		if customer.Email == email {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, domain.NewCustomerNotFoundByEmail(email)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0, len(m.customers))
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, customer := range m.customers {
		if customer.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCustomerRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	for _, customer := range m.customers {
		if customer.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	if customer.ID == "" {
		m.nextID++
		customer.ID = "customer-" + string(rune('0'+m.nextID))
	}
	copied := *customer
	m.customers[customer.ID] = &copied
	return nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.customers[id]; !ok {
		return domain.NewCustomerNotFound(id)
	}
	delete(m.customers, id)
	return nil
}

func newTestUseCase() (*CustomerUseCase, *MockCustomerRepository) {
	repo := NewMockCustomerRepository()
	log := logger.New("test", "debug", "json")
	return NewCustomerUseCase(repo, log), repo
}

func TestCreateCustomer_Success(t *testing.T) {
	useCase, _ := newTestUseCase()

	customer, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name:        "Ana Silva",
		Email:       "ana@example.com",
		PhoneNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if customer.ID == "" {
		t.Error("expected an ID to be assigned")
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	useCase, _ := newTestUseCase()

	if _, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Other Ana", Email: "ana@example.com", PhoneNumber: "555-0202",
	})
	if !errors.Is(err, errors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateCustomer_DuplicatePhoneNumber(t *testing.T) {
	useCase, _ := newTestUseCase()

	if _, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Bruno Costa", Email: "bruno@example.com", PhoneNumber: "555-0101",
	})
	if !errors.Is(err, errors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateCustomer_ChecksOnlyChangedValues(t *testing.T) {
	useCase, _ := newTestUseCase()

	customer, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Keeping her own email and phone must not trip the uniqueness check
	updated, err := useCase.UpdateCustomer(context.Background(), customer.ID, CustomerInput{
		Name: "Ana S. Costa", Email: "ana@example.com", PhoneNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Ana S. Costa" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
}

func TestUpdateCustomer_RejectsTakenEmail(t *testing.T) {
	useCase, _ := newTestUseCase()

	if _, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	customer, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Bruno Costa", Email: "bruno@example.com", PhoneNumber: "555-0202",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = useCase.UpdateCustomer(context.Background(), customer.ID, CustomerInput{
		Name: "Bruno Costa", Email: "ana@example.com", PhoneNumber: "555-0202",
	})
	if !errors.Is(err, errors.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	useCase, repo := newTestUseCase()

	customer, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := useCase.DeleteCustomer(context.Background(), customer.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.customers[customer.ID]; ok {
		t.Error("expected customer to be removed")
	}

	if err := useCase.DeleteCustomer(context.Background(), customer.ID); !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestGetCustomerByEmail(t *testing.T) {
	useCase, _ := newTestUseCase()

	if _, err := useCase.CreateCustomer(context.Background(), CustomerInput{
		Name: "Ana Silva", Email: "ana@example.com", PhoneNumber: "555-0101",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	customer, err := useCase.GetCustomerByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if customer.Name != "Ana Silva" {
		t.Errorf("expected Ana Silva, got %s", customer.Name)
	}

	if _, err := useCase.GetCustomerByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, errors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
