package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/holiday-tracker/internal/domain"
	"github.com/pkordes/holiday-tracker/internal/repo"
	"github.com/pkordes/holiday-tracker/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Destination:   "Mallorca, Spain",
		Provider:      domain.ProviderSunweb,
		DepartureDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
		Adults:        2,
		CurrentPrice:  1299,
	}
}

func persistedTrip() domain.Trip {
	trip := validTrip()
	trip.ID = uuid.New()
	history, _ := domain.NewPriceHistory(trip.CurrentPrice, domain.InitialPriceNote, time.Now())
	trip.PriceHistory = history
	return trip
}

func echoRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back — useful for Create/Update
	// tests that only care about service logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_SeedsHistory(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	require.Len(t, got.PriceHistory, 1)
	assert.Equal(t, got.CurrentPrice, got.PriceHistory[0].Price)
	assert.Equal(t, domain.InitialPriceNote, got.PriceHistory[0].Notes)
}

func TestTripService_Create_Defaults(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Adults = 0
	trip.Children = 0

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Adults)
	assert.Equal(t, 0, got.Children)
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"missing destination", func(tr *domain.Trip) { tr.Destination = "   " }},
		{"unknown provider", func(tr *domain.Trip) { tr.Provider = "expedia" }},
		{"missing departure date", func(tr *domain.Trip) { tr.DepartureDate = time.Time{} }},
		{"missing return date", func(tr *domain.Trip) { tr.ReturnDate = time.Time{} }},
		{"return before departure", func(tr *domain.Trip) { tr.ReturnDate = tr.DepartureDate.AddDate(0, 0, -1) }},
		{"negative children", func(tr *domain.Trip) { tr.Children = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewTripService(echoRepo())

			trip := validTrip()
			tt.mutate(&trip)

			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_InvalidPrice(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.CurrentPrice = 0

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestTripService_Create_SameDayReturn(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.ReturnDate = trip.DepartureDate // day trip — valid

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.Create(context.Background(), validTrip())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID / List --------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	// Should return an empty slice, not nil — callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

// updateRepo returns a repo seeded with one trip whose Update echoes its input,
// plus a pointer to observe what was written.
func updateRepo(seed domain.Trip) (*mockTripRepo, *domain.Trip) {
	var written domain.Trip
	r := &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != seed.ID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return seed, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			written = t
			return t, nil
		},
	}
	return r, &written
}

func TestTripService_Update_PriceChangeExtendsLedger(t *testing.T) {
	seed := persistedTrip()
	r, written := updateRepo(seed)
	svc := service.NewTripService(r)

	got, err := svc.Update(context.Background(), seed.ID, domain.TripPatch{
		CurrentPrice: floatPtr(1199),
	})

	require.NoError(t, err)
	assert.Equal(t, 1199.0, got.CurrentPrice)
	require.Len(t, got.PriceHistory, 2)
	assert.Equal(t, 1199.0, got.PriceHistory[1].Price)
	assert.Equal(t, got.PriceHistory, written.PriceHistory)
}

func TestTripService_Update_MetadataOnlyKeepsLedger(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	got, err := svc.Update(context.Background(), seed.ID, domain.TripPatch{
		Hotel: strPtr("Hotel Sol"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Hotel Sol", got.Hotel)
	assert.Len(t, got.PriceHistory, 1)
}

func TestTripService_Update_NotFound(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	_, err := svc.Update(context.Background(), uuid.New(), domain.TripPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Update_MergedTripRevalidated(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	// Patching the destination to whitespace must be rejected.
	_, err := svc.Update(context.Background(), seed.ID, domain.TripPatch{
		Destination: strPtr("  "),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- RecordPrice tests -----------------------------------------------------

func TestTripService_RecordPrice(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	got, err := svc.RecordPrice(context.Background(), seed.ID, 1199, "Price drop!")

	require.NoError(t, err)
	assert.Equal(t, 1199.0, got.CurrentPrice)
	require.Len(t, got.PriceHistory, 2)
	assert.Equal(t, "Price drop!", got.PriceHistory[1].Notes)
}

func TestTripService_RecordPrice_SamePriceStillAppends(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	got, err := svc.RecordPrice(context.Background(), seed.ID, seed.CurrentPrice, "still the same")

	require.NoError(t, err)
	assert.Len(t, got.PriceHistory, 2)
}

func TestTripService_RecordPrice_InvalidPrice(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	_, err := svc.RecordPrice(context.Background(), seed.ID, -10, "")

	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestTripService_RecordPrice_NotFound(t *testing.T) {
	seed := persistedTrip()
	r, _ := updateRepo(seed)
	svc := service.NewTripService(r)

	_, err := svc.RecordPrice(context.Background(), uuid.New(), 100, "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- full price-drop flow --------------------------------------------------

// memRepo is a stateful single-trip repo for flow tests spanning several calls.
type memRepo struct {
	trip domain.Trip
}

func (m *memRepo) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	t.ID = uuid.New()
	m.trip = t
	return t, nil
}
func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	if id != m.trip.ID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return m.trip, nil
}
func (m *memRepo) List(_ context.Context) ([]domain.Trip, error) {
	return []domain.Trip{m.trip}, nil
}
func (m *memRepo) Update(_ context.Context, t domain.Trip) (domain.Trip, error) {
	if t.ID != m.trip.ID {
		return domain.Trip{}, domain.ErrNotFound
	}
	m.trip = t
	return t, nil
}
func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if id != m.trip.ID {
		return domain.ErrNotFound
	}
	m.trip = domain.Trip{}
	return nil
}

var _ repo.TripRepo = (*memRepo)(nil)

func TestTripService_PriceDropFlow(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTripService(&memRepo{})

	// Book a trip at 1299 — the ledger is seeded with the initial price.
	created, err := svc.Create(ctx, validTrip())
	require.NoError(t, err)
	require.Len(t, created.PriceHistory, 1)

	// The price drops to 1199.
	afterDrop, err := svc.RecordPrice(ctx, created.ID, 1199, "Price drop!")
	require.NoError(t, err)
	assert.Equal(t, 1199.0, afterDrop.CurrentPrice)
	require.Len(t, afterDrop.PriceHistory, 2)
	assert.Equal(t, 1299.0, afterDrop.PriceHistory[0].Price)
	assert.Equal(t, 1199.0, afterDrop.PriceHistory[1].Price)

	// A metadata edit afterwards leaves the ledger alone.
	final, err := svc.Update(ctx, created.ID, domain.TripPatch{Hotel: strPtr("Hotel Sol")})
	require.NoError(t, err)
	assert.Equal(t, "Hotel Sol", final.Hotel)
	assert.Len(t, final.PriceHistory, 2)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.NoError(t, err)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(r)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
