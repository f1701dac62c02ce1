package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"yatra/internal/domain"
	"yatra/internal/redis"
	"yatra/internal/repository"
	"yatra/internal/service"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockPaymentGateway is a scriptable implementation of service.PaymentGateway.
type MockPaymentGateway struct {
	mu      sync.Mutex
	intents map[string]*domain.PaymentIntent

	// ConfirmStatus is the status an intent transitions to on Confirm.
	// Defaults to succeeded.
	ConfirmStatus domain.IntentStatus

	// LastConfirmMethod records the payment method Confirm was called with.
	LastConfirmMethod string

	// Counters for verification
	AttachCalls         int32
	RetrieveCalls       int32
	ConfirmCalls        int32
	CreateCustomerCalls int32
	CreateKeyCalls      int32
	CreateIntentCalls   int32

	// Error injection
	AttachError         error
	RetrieveError       error
	ConfirmError        error
	CreateCustomerError error
	CreateKeyError      error
	CreateIntentError   error
}

// NewMockPaymentGateway creates a new mock gateway.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{
		intents:       make(map[string]*domain.PaymentIntent),
		ConfirmStatus: domain.IntentStatusSucceeded,
	}
}

// AddIntent seeds an intent into the mock gateway.
func (m *MockPaymentGateway) AddIntent(intent *domain.PaymentIntent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intents[intent.ID] = intent
}

func (m *MockPaymentGateway) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	atomic.AddInt32(&m.AttachCalls, 1)
	return m.AttachError
}

func (m *MockPaymentGateway) RetrieveIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	atomic.AddInt32(&m.RetrieveCalls, 1)
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	intent, ok := m.intents[paymentIntentID]
	if !ok {
		return nil, &service.GatewayError{Code: "resource_missing", Msg: "no such payment_intent"}
	}
	copy := *intent
	return &copy, nil
}

func (m *MockPaymentGateway) ConfirmIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*domain.PaymentIntent, error) {
	atomic.AddInt32(&m.ConfirmCalls, 1)
	if m.ConfirmError != nil {
		return nil, m.ConfirmError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastConfirmMethod = paymentMethodID
	intent, ok := m.intents[paymentIntentID]
	if !ok {
		return nil, &service.GatewayError{Code: "resource_missing", Msg: "no such payment_intent"}
	}
	intent.Status = m.ConfirmStatus
	if paymentMethodID != "" {
		intent.PaymentMethod = paymentMethodID
	}
	copy := *intent
	return &copy, nil
}

func (m *MockPaymentGateway) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	atomic.AddInt32(&m.CreateCustomerCalls, 1)
	if m.CreateCustomerError != nil {
		return nil, m.CreateCustomerError
	}
	return &domain.Customer{ID: "cus_mock", Name: name, Email: email}, nil
}

func (m *MockPaymentGateway) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	atomic.AddInt32(&m.CreateKeyCalls, 1)
	if m.CreateKeyError != nil {
		return "", m.CreateKeyError
	}
	return "ek_mock_secret", nil
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amountMinor int64, customerID string) (*domain.PaymentIntent, error) {
	atomic.AddInt32(&m.CreateIntentCalls, 1)
	if m.CreateIntentError != nil {
		return nil, m.CreateIntentError
	}
	intent := &domain.PaymentIntent{
		ID:           "pi_mock",
		Status:       domain.IntentStatusRequiresConfirmation,
		ClientSecret: "pi_mock_secret",
		Amount:       amountMinor,
		CustomerID:   customerID,
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intents[intent.ID] = intent
	copy := *intent
	return &copy, nil
}

// Ensure the service contract is satisfied.
var _ service.PaymentGateway = (*MockPaymentGateway)(nil)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu      sync.RWMutex
	rides   map[string]*domain.Ride
	drivers map[string]*domain.Driver

	// Counters for verification
	CreateCallCount       int32
	EnsureColumnCallCount int32
	BackfillCallCount     int32

	// Error injection
	CreateError       error
	ListError         error
	EnsureColumnError error
	BackfillError     error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides:   make(map[string]*domain.Ride),
		drivers: make(map[string]*domain.Driver),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

// AddDriver adds a driver for the ride listing join.
func (m *MockRideRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ride.PaymentIntentID != "" {
		for _, existing := range m.rides {
			if existing.PaymentIntentID == ride.PaymentIntentID {
				return repository.ErrDuplicateRide
			}
		}
	}
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ride := range m.rides {
		if ride.PaymentIntentID == paymentIntentID {
			copy := *ride
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RideWithDriver
	for _, ride := range m.rides {
		if ride.RiderID != riderID {
			continue
		}
		rd := &domain.RideWithDriver{Ride: *ride}
		if driver, ok := m.drivers[ride.DriverID]; ok {
			rd.Driver = *driver
		}
		result = append(result, rd)
	}
	return result, nil
}

func (m *MockRideRepository) EnsureRiderColumn(ctx context.Context) error {
	atomic.AddInt32(&m.EnsureColumnCallCount, 1)
	return m.EnsureColumnError
}

func (m *MockRideRepository) BackfillRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.BackfillCallCount, 1)
	if m.BackfillError != nil {
		return nil, m.BackfillError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated []*domain.Ride
	for _, ride := range m.rides {
		if ride.RiderID == "" {
			ride.RiderID = riderID
			copy := *ride
			updated = append(updated, &copy)
		}
	}
	return updated, nil
}

// GetRide returns a ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

// RideCount returns the number of stored rides.
func (m *MockRideRepository) RideCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

// Ensure the repository contract is satisfied.
var _ repository.RideRepository = (*MockRideRepository)(nil)

// ──────────────────────────────────────────────
// MOCK RIDE CACHE
// ──────────────────────────────────────────────

// MockRideCache is an in-memory implementation of RideCacheInterface.
type MockRideCache struct {
	mu    sync.Mutex
	rides map[string][]*domain.RideWithDriver

	InvalidateCallCount int32
}

// NewMockRideCache creates a new mock ride cache.
func NewMockRideCache() *MockRideCache {
	return &MockRideCache{rides: make(map[string][]*domain.RideWithDriver)}
}

func (m *MockRideCache) GetRiderRides(ctx context.Context, riderID string) ([]*domain.RideWithDriver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rides[riderID], nil
}

func (m *MockRideCache) SetRiderRides(ctx context.Context, riderID string, rides []*domain.RideWithDriver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[riderID] = rides
	return nil
}

func (m *MockRideCache) InvalidateRiderRides(ctx context.Context, riderID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, riderID)
	return nil
}

// Ensure the cache contract is satisfied.
var _ redis.RideCacheInterface = (*MockRideCache)(nil)
