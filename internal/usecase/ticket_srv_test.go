package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/reservation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const testCutoff = 3 * time.Hour

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeMovieRepo struct {
	movies  map[string]*entity.Movie
	failAll error
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.movies[movie.Title] = movie
	return nil
}

func (f *fakeMovieRepo) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	movie, ok := f.movies[title]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return movie, nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

// fakeShowtimeRepo mimics the store's conditional-write contract in memory.
// forcedConflicts makes the first N applies lose, to exercise the retry loop.
type fakeShowtimeRepo struct {
	mu              sync.Mutex
	showtimes       map[uuid.UUID]*entity.Showtime
	forcedConflicts int
	applies         int
}

func newFakeShowtimeRepo() *fakeShowtimeRepo {
	return &fakeShowtimeRepo{showtimes: make(map[uuid.UUID]*entity.Showtime)}
}

func (f *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	showtime, ok := f.showtimes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	snapshot := *showtime
	snapshot.Bookings = append([]entity.Booking(nil), showtime.Bookings...)
	return &snapshot, nil
}

func (f *fakeShowtimeRepo) CompareAndApply(ctx context.Context, id uuid.UUID, expectedVersion int64, bookings []entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applies++
	showtime, ok := f.showtimes[id]
	if !ok {
		return repository.ErrNotFound
	}
	if f.forcedConflicts > 0 {
		f.forcedConflicts--
		return repository.ErrVersionConflict
	}
	if showtime.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	showtime.Bookings = bookings
	showtime.Version++
	return nil
}

func (f *fakeShowtimeRepo) FindByBookingUser(ctx context.Context, userID string) ([]*entity.Showtime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Showtime
	for _, showtime := range f.showtimes {
		for _, b := range showtime.Bookings {
			if b.UserID == userID {
				snapshot := *showtime
				snapshot.Bookings = append([]entity.Booking(nil), showtime.Bookings...)
				out = append(out, &snapshot)
				break
			}
		}
	}
	return out, nil
}

type ticketEnv struct {
	service   TicketService
	movies    *fakeMovieRepo
	showtimes *fakeShowtimeRepo
	clock     *fixedClock
	showtime  *entity.Showtime
}

func newTicketEnv(t *testing.T, maxSeats int) *ticketEnv {
	t.Helper()

	start := time.Date(2026, time.June, 1, 20, 0, 0, 0, time.UTC)
	movie := &entity.Movie{ID: uuid.New(), Title: "Heat", Genre: "Crime", DurationInMinutes: 170, Rating: 8.3, ReleaseYear: 1995}
	showtime := &entity.Showtime{
		ID:        uuid.New(),
		MovieID:   movie.ID,
		Theater:   "Grand Hall",
		StartTime: start,
		MaxSeats:  maxSeats,
		Bookings:  []entity.Booking{},
		Version:   1,
	}

	movies := &fakeMovieRepo{movies: map[string]*entity.Movie{movie.Title: movie}}
	showtimes := newFakeShowtimeRepo()
	showtimes.showtimes[showtime.ID] = showtime

	clock := &fixedClock{now: start.Add(-24 * time.Hour)}
	repo := &repository.Repository{Movie: movies, Showtime: showtimes}
	engine := reservation.NewEngine(testCutoff)

	return &ticketEnv{
		service:   NewTicketService(repo, engine, clock, 5, zap.NewNop()),
		movies:    movies,
		showtimes: showtimes,
		clock:     clock,
		showtime:  showtime,
	}
}

func bookReq(env *ticketEnv, userID string, seat int) *request.BookTicketRequest {
	return &request.BookTicketRequest{
		UserID:     userID,
		MovieTitle: "Heat",
		ShowtimeID: env.showtime.ID.String(),
		SeatNumber: seat,
		Price:      12.50,
		Theater:    "Grand Hall",
	}
}

func TestBookTicket_ThenHistoryIncludesRecord(t *testing.T) {
	env := newTicketEnv(t, 10)
	ctx := context.Background()

	ticket, err := env.service.BookTicket(ctx, bookReq(env, "alice", 4))
	if err != nil {
		t.Fatalf("BookTicket: %v", err)
	}
	if ticket.SeatNumber != 4 || ticket.MovieTitle != "Heat" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}

	history, err := env.service.ListUserBookings(ctx, "alice")
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history len = %d, want 1", len(history))
	}
	record := history[0]
	if record.SeatNumber != 4 || record.Price != 12.50 || record.ShowtimeID != env.showtime.ID.String() {
		t.Fatalf("unexpected history record: %+v", record)
	}
}

func TestBookTicket_TerminalFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env *ticketEnv, req *request.BookTicketRequest)
		wantErr error
	}{
		{
			name: "unknown movie title",
			mutate: func(env *ticketEnv, req *request.BookTicketRequest) {
				req.MovieTitle = "Nonexistent"
			},
			wantErr: reservation.ErrMovieNotFound,
		},
		{
			name: "malformed showtime id",
			mutate: func(env *ticketEnv, req *request.BookTicketRequest) {
				req.ShowtimeID = "not-a-uuid"
			},
			wantErr: reservation.ErrInvalidIDFormat,
		},
		{
			name: "unknown showtime id",
			mutate: func(env *ticketEnv, req *request.BookTicketRequest) {
				req.ShowtimeID = uuid.NewString()
			},
			wantErr: reservation.ErrShowtimeNotFound,
		},
		{
			name: "movie store failure surfaces as store unavailable",
			mutate: func(env *ticketEnv, req *request.BookTicketRequest) {
				env.movies.failAll = fmt.Errorf("connection refused")
			},
			wantErr: reservation.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTicketEnv(t, 10)
			req := bookReq(env, "alice", 1)
			tt.mutate(env, req)

			if _, err := env.service.BookTicket(context.Background(), req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("BookTicket error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookTicket_SeatTakenAndCapacity(t *testing.T) {
	env := newTicketEnv(t, 2)
	ctx := context.Background()

	if _, err := env.service.BookTicket(ctx, bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := env.service.BookTicket(ctx, bookReq(env, "bob", 1)); !errors.Is(err, reservation.ErrSeatTaken) {
		t.Fatalf("duplicate seat error = %v, want ErrSeatTaken", err)
	}

	if _, err := env.service.BookTicket(ctx, bookReq(env, "bob", 2)); err != nil {
		t.Fatalf("second seat: %v", err)
	}

	if _, err := env.service.BookTicket(ctx, bookReq(env, "carol", 3)); !errors.Is(err, reservation.ErrCapacityExceeded) {
		t.Fatalf("full showtime error = %v, want ErrCapacityExceeded", err)
	}

	// A rejected booking leaves the collection exactly as it was.
	st, _ := env.showtimes.FindByID(ctx, env.showtime.ID)
	if len(st.Bookings) != 2 {
		t.Fatalf("bookings len = %d, want 2", len(st.Bookings))
	}
}

func TestBookTicket_RetriesThenSucceeds(t *testing.T) {
	env := newTicketEnv(t, 10)
	env.showtimes.forcedConflicts = 2

	if _, err := env.service.BookTicket(context.Background(), bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("BookTicket: %v", err)
	}
	if env.showtimes.applies != 3 {
		t.Fatalf("applies = %d, want 3", env.showtimes.applies)
	}
}

func TestBookTicket_ContentionAfterRetryBudget(t *testing.T) {
	env := newTicketEnv(t, 10)
	env.showtimes.forcedConflicts = 100

	if _, err := env.service.BookTicket(context.Background(), bookReq(env, "alice", 1)); !errors.Is(err, reservation.ErrContention) {
		t.Fatalf("BookTicket error = %v, want ErrContention", err)
	}
	if env.showtimes.applies != 5 {
		t.Fatalf("applies = %d, want 5 (retry budget)", env.showtimes.applies)
	}
}

func TestUpdateTicket_InvalidAction(t *testing.T) {
	env := newTicketEnv(t, 10)
	ctx := context.Background()

	if _, err := env.service.BookTicket(ctx, bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("BookTicket: %v", err)
	}

	newSeat := 2
	tests := []struct {
		name string
		req  *request.UpdateTicketRequest
	}{
		{
			name: "unknown action",
			req: &request.UpdateTicketRequest{
				UserID: "alice", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
				NewSeatNumber: &newSeat, Action: "upgrade",
			},
		},
		{
			name: "change without new seat",
			req: &request.UpdateTicketRequest{
				UserID: "alice", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
				Action: request.ActionChange,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.service.UpdateTicket(ctx, tt.req); !errors.Is(err, reservation.ErrInvalidAction) {
				t.Fatalf("UpdateTicket error = %v, want ErrInvalidAction", err)
			}
		})
	}
}

func TestUpdateTicket_CancelFreesSeatForRebooking(t *testing.T) {
	env := newTicketEnv(t, 1)
	ctx := context.Background()

	if _, err := env.service.BookTicket(ctx, bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("BookTicket: %v", err)
	}

	cancel := &request.UpdateTicketRequest{
		UserID: "alice", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
		Action: request.ActionCancel,
	}
	if _, err := env.service.UpdateTicket(ctx, cancel); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancel frees both the seat and the capacity slot.
	if _, err := env.service.BookTicket(ctx, bookReq(env, "bob", 1)); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}

	history, err := env.service.ListUserBookings(ctx, "alice")
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("cancelled booking still in history: %+v", history)
	}
}

func TestUpdateTicket_ChangeSeat(t *testing.T) {
	env := newTicketEnv(t, 10)
	ctx := context.Background()

	if _, err := env.service.BookTicket(ctx, bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("BookTicket: %v", err)
	}

	newSeat := 6
	change := &request.UpdateTicketRequest{
		UserID: "alice", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
		NewSeatNumber: &newSeat, Action: request.ActionChange,
	}
	ticket, err := env.service.UpdateTicket(ctx, change)
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if ticket.SeatNumber != 6 {
		t.Fatalf("ticket seat = %d, want 6", ticket.SeatNumber)
	}

	history, _ := env.service.ListUserBookings(ctx, "alice")
	if len(history) != 1 || history[0].SeatNumber != 6 || history[0].Price != 12.50 {
		t.Fatalf("unexpected history after change: %+v", history)
	}
}

func TestUpdateTicket_CutoffBoundary(t *testing.T) {
	env := newTicketEnv(t, 10)
	ctx := context.Background()

	if _, err := env.service.BookTicket(ctx, bookReq(env, "alice", 1)); err != nil {
		t.Fatalf("BookTicket: %v", err)
	}

	newSeat := 2
	change := &request.UpdateTicketRequest{
		UserID: "alice", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
		NewSeatNumber: &newSeat, Action: request.ActionChange,
	}

	// One second inside the freeze window fails.
	env.clock.now = env.showtime.StartTime.Add(-testCutoff).Add(time.Second)
	if _, err := env.service.UpdateTicket(ctx, change); !errors.Is(err, reservation.ErrCutoffPassed) {
		t.Fatalf("UpdateTicket error = %v, want ErrCutoffPassed", err)
	}

	// Exactly at the boundary still succeeds.
	env.clock.now = env.showtime.StartTime.Add(-testCutoff)
	if _, err := env.service.UpdateTicket(ctx, change); err != nil {
		t.Fatalf("UpdateTicket at boundary: %v", err)
	}
}

func TestUpdateTicket_CancelUnknownBookingPastCutoff(t *testing.T) {
	env := newTicketEnv(t, 10)
	env.clock.now = env.showtime.StartTime.Add(-time.Hour)

	cancel := &request.UpdateTicketRequest{
		UserID: "ghost", ShowtimeID: env.showtime.ID.String(), SeatNumber: 1,
		Action: request.ActionCancel,
	}
	if _, err := env.service.UpdateTicket(context.Background(), cancel); !errors.Is(err, reservation.ErrBookingNotFound) {
		t.Fatalf("UpdateTicket error = %v, want ErrBookingNotFound", err)
	}
}

func TestListUserBookings_EmptyIsNotAnError(t *testing.T) {
	env := newTicketEnv(t, 10)

	history, err := env.service.ListUserBookings(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListUserBookings: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Fatalf("history = %#v, want empty non-nil slice", history)
	}
}

func TestBookTicket_ConcurrentSameSeat(t *testing.T) {
	env := newTicketEnv(t, 10)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.service.BookTicket(ctx, bookReq(env, fmt.Sprintf("user-%d", i), 1))
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, reservation.ErrSeatTaken):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != workers-1 {
		t.Fatalf("wins = %d, losses = %d, want 1/%d", wins, losses, workers-1)
	}

	st, _ := env.showtimes.FindByID(ctx, env.showtime.ID)
	if len(st.Bookings) != 1 {
		t.Fatalf("bookings len = %d, want 1", len(st.Bookings))
	}
}

func TestBookTicket_ConcurrentDistinctSeats(t *testing.T) {
	env := newTicketEnv(t, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.BookTicket(ctx, bookReq(env, fmt.Sprintf("user-%d", i), i+1))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}

	st, _ := env.showtimes.FindByID(ctx, env.showtime.ID)
	if len(st.Bookings) != 2 {
		t.Fatalf("bookings len = %d, want 2", len(st.Bookings))
	}
	seats := map[int]bool{}
	for _, b := range st.Bookings {
		if seats[b.SeatNumber] {
			t.Fatalf("duplicate seat %d in %+v", b.SeatNumber, st.Bookings)
		}
		seats[b.SeatNumber] = true
	}
}
