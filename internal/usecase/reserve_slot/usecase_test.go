package reserve_slot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBook-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/CourtBook-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeTxManager сериализует критические секции мьютексом,
// как это делает сериализуемая транзакция на строке слота
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bySlot   map[string]*domain.Booking
	slotErr  error
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bySlot: make(map[string]*domain.Booking)}
}

func slotMapKey(date time.Time, court, hour int) string {
	return fmt.Sprintf("%s|%d|%d", date.Format(domain.DateFormat), court, hour)
}

func (r *fakeBookingRepo) GetActiveBySlot(_ context.Context, date time.Time, court, hour int) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotErr != nil {
		return nil, r.slotErr
	}

	if b, ok := r.bySlot[slotMapKey(date, court, hour)]; ok && b.IsActive() {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	key := slotMapKey(booking.Date, booking.Court, booking.Hour)
	if existing, ok := r.bySlot[key]; ok && existing.IsActive() {
		// Уникальный индекс по активному слоту
		return nil, bookingRepo.ErrSlotTaken
	}

	r.seq++
	created := *booking
	created.ID = fmt.Sprintf("booking-%d", r.seq)
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.bySlot[key] = &created
	return &created, nil
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

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func testWindow() domain.OperatingWindow {
	return domain.OperatingWindow{OpenHour: 9, CloseHour: 21, Courts: 6}
}

func newTestUseCase(repo *fakeBookingRepo, notifier *recordingNotifier, now time.Time) *UseCase {
	uc := NewUseCase(repo, &fakeTxManager{}, notifier, testWindow(), nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	note := ptr.Ptr("after work")

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: "user-1",
		Date:   date,
		Court:  3,
		Hour:   18,
		Note:   note,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, 3, resp.Court)
	assert.Equal(t, 18, resp.Hour)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	require.NotNil(t, resp.Note)
	assert.Equal(t, *note, *resp.Note)
	assert.Equal(t, 1, notifier.calls())
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	req := &Request{UserID: "user-1", Date: date, Court: 1, Hour: 12}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Второй пользователь претендует на тот же слот
	req2 := &Request{UserID: "user-2", Date: date, Court: 1, Hour: 12}
	_, err = uc.Execute(context.Background(), req2)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Уведомление только об успешном бронировании
	assert.Equal(t, 1, notifier.calls())
}

func TestExecute_Validation(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	longNote := strings.Repeat("x", domain.MaxNoteLength+1)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "past date",
			req:     &Request{UserID: "u", Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Court: 1, Hour: 10},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "hour before opening",
			req:     &Request{UserID: "u", Date: future, Court: 1, Hour: 8},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "closing hour is not bookable",
			req:     &Request{UserID: "u", Date: future, Court: 1, Hour: 21},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "court zero",
			req:     &Request{UserID: "u", Date: future, Court: 0, Hour: 10},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "court beyond last",
			req:     &Request{UserID: "u", Date: future, Court: 7, Hour: 10},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "same day current hour already started",
			req:     &Request{UserID: "u", Date: today, Court: 1, Hour: 10},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "same day past hour",
			req:     &Request{UserID: "u", Date: today, Court: 1, Hour: 9},
			wantErr: ErrInvalidSlot,
		},
		{
			name:    "missing user id",
			req:     &Request{UserID: "", Date: future, Court: 1, Hour: 10},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "note too long",
			req:     &Request{UserID: "u", Date: future, Court: 1, Hour: 10, Note: &longNote},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			notifier := &recordingNotifier{}
			uc := newTestUseCase(repo, notifier, now)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, notifier.calls())
		})
	}
}

func TestExecute_SameDayFutureHour(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: "user-1",
		Date:   today,
		Court:  2,
		Hour:   11,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, resp.Hour)
}

func TestExecute_LockTimeoutMapsToContention(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.slotErr = bookingRepo.ErrLockTimeout
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{UserID: "u", Date: date, Court: 1, Hour: 10})

	assert.ErrorIs(t, err, ErrContention)
	assert.Equal(t, 0, notifier.calls())
}

func TestExecute_InsertRaceMapsToSlotTaken(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.createErr = bookingRepo.ErrSlotTaken
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{UserID: "u", Date: date, Court: 1, Hour: 10})

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	const workers = 50
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				UserID: fmt.Sprintf("user-%d", i),
				Date:   date,
				Court:  4,
				Hour:   15,
			})
		}(i)
	}
	wg.Wait()

	var successes, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			taken++
		}
	}

	assert.Equal(t, 1, successes, "exactly one booking must win the slot")
	assert.Equal(t, workers-1, taken)
	assert.Equal(t, 1, notifier.calls())
}

func TestExecute_CanceledSlotCanBeRebooked(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	req := &Request{UserID: "user-1", Date: date, Court: 1, Hour: 12}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Отмена освобождает слот для следующего бронирования
	repo.mu.Lock()
	repo.bySlot[slotMapKey(date, 1, 12)].Status = domain.StatusCanceled
	repo.mu.Unlock()

	resp2, err := uc.Execute(context.Background(), &Request{UserID: "user-2", Date: date, Court: 1, Hour: 12})
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, resp2.ID)
	assert.Equal(t, "user-2", resp2.UserID)
}

func TestExecute_DifferentSlotsDoNotConflict(t *testing.T) {
	repo := newFakeBookingRepo()
	notifier := &recordingNotifier{}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, notifier, now)

	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{UserID: "u1", Date: date, Court: 1, Hour: 10})
	require.NoError(t, err)

	// Тот же час, другой корт
	_, err = uc.Execute(context.Background(), &Request{UserID: "u2", Date: date, Court: 2, Hour: 10})
	require.NoError(t, err)

	// Тот же корт, другой час
	_, err = uc.Execute(context.Background(), &Request{UserID: "u3", Date: date, Court: 1, Hour: 11})
	require.NoError(t, err)
}
