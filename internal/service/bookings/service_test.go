package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/CourtBook-ReservationService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	mu    sync.Mutex
	dates []time.Time
}

func (n *recordingNotifier) AvailabilityChanged(_ context.Context, date time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dates = append(n.dates, date)
}

func (n *recordingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.dates)
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Booking
	users    map[string]string // booking user id -> имя для ListWithUsers
	getErr   error
	listErr  error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{
		byID:  make(map[string]*domain.Booking),
		users: make(map[string]string),
	}
	for _, b := range bookings {
		copied := *b
		r.byID[b.ID] = &copied
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListActiveByUserAndDate(_ context.Context, userID string, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Booking
	for _, b := range r.byID {
		if b.UserID == userID && b.IsActive() && b.Date.Equal(date) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListWithUsers(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookingWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.BookingWithUser
	for _, b := range r.byID {
		if filter.Date != nil && !b.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		out = append(out, &domain.BookingWithUser{Booking: *b, UserName: r.users[b.UserID]})
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCanceled
	b.CanceledAt = &now
	b.UpdatedAt = now
	copied := *b
	return &copied, nil
}

func bookedFixture(id, userID string) *domain.Booking {
	return &domain.Booking{
		ID:     id,
		UserID: userID,
		Date:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		Court:  2,
		Hour:   14,
		Status: domain.StatusBooked,
	}
}

func newTestService(repo *fakeBookingRepo, notifier *recordingNotifier) *Service {
	return NewService(repo, fakeTxManager{}, notifier, nopLogger{})
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
	assert.NotNil(t, resp.CanceledAt)
	assert.Equal(t, 1, notifier.calls(), "freed slot must trigger an availability notification")
}

func TestCancel_ByAdmin(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
}

func TestCancel_ByStranger(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-2"})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, notifier.calls())
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &recordingNotifier{})

	_, err := svc.Cancel(context.Background(), "missing", models.Actor{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_AfterCheckIn(t *testing.T) {
	b := bookedFixture("b1", "user-1")
	b.Status = domain.StatusCheckedIn
	repo := newFakeBookingRepo(b)
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 0, notifier.calls())
}

func TestCancel_Twice(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	_, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-1"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, notifier.calls())
}

func TestCancel_LockTimeoutMapsToContention(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	repo.getErr = bookingRepo.ErrLockTimeout
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.Cancel(context.Background(), "b1", models.Actor{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrContention)
}

func TestCheckIn_ByAdmin(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	notifier := &recordingNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.CheckIn(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), resp.Status)
	// Занятость слота не изменилась
	assert.Equal(t, 0, notifier.calls())
}

func TestCheckIn_ByOwnerDenied(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.CheckIn(context.Background(), "b1", models.Actor{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCheckIn_CanceledBooking(t *testing.T) {
	b := bookedFixture("b1", "user-1")
	b.Status = domain.StatusCanceled
	repo := newFakeBookingRepo(b)
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.CheckIn(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckIn_Twice(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.CheckIn(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"))
	svc := newTestService(repo, &recordingNotifier{})

	_, err := svc.GetByID(context.Background(), "b1", models.Actor{UserID: "user-1"})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "b1", models.Actor{UserID: "admin-1", IsAdmin: true})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "b1", models.Actor{UserID: "user-2"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_IncludesTerminalStatuses(t *testing.T) {
	canceled := bookedFixture("b2", "user-1")
	canceled.Hour = 16
	canceled.Status = domain.StatusCanceled

	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"), canceled, bookedFixture("b3", "user-2"))
	svc := newTestService(repo, &recordingNotifier{})

	resp, err := svc.GetUserBookings(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	statuses := make(map[string]bool)
	for _, b := range resp.Bookings {
		assert.Equal(t, "user-1", b.UserID)
		statuses[b.Status] = true
	}
	assert.True(t, statuses[string(domain.StatusCanceled)], "history must include canceled bookings")
}

func TestGetMySlots(t *testing.T) {
	other := bookedFixture("b2", "user-1")
	other.Court = 5
	other.Hour = 19

	canceled := bookedFixture("b3", "user-1")
	canceled.Hour = 10
	canceled.Status = domain.StatusCanceled

	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"), other, canceled)
	svc := newTestService(repo, &recordingNotifier{})

	resp, err := svc.GetMySlots(context.Background(), "user-1", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2:14", "5:19"}, resp.Mine)
}

func TestGetAdminBookings_Filter(t *testing.T) {
	canceled := bookedFixture("b2", "user-1")
	canceled.Hour = 16
	canceled.Status = domain.StatusCanceled

	repo := newFakeBookingRepo(bookedFixture("b1", "user-1"), canceled)
	repo.users["user-1"] = "Alice"
	svc := newTestService(repo, &recordingNotifier{})

	resp, err := svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Alice", resp.Bookings[0].UserName)

	resp, err = svc.GetAdminBookings(context.Background(), &models.GetAdminBookingsRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}
