package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"sport-booking/internal/booking"
	"sport-booking/internal/data/entity"
	"sport-booking/internal/data/repository"
	"sport-booking/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 18, 21, 45, 0, 0, time.UTC)

func testClock() localClock {
	return newLocalClock(func() time.Time { return testNow }, time.UTC)
}

// memStore backs the field and booking fakes. One mutex plays the role of
// the per-slot advisory lock.
type memStore struct {
	mu       sync.Mutex
	fields   map[uuid.UUID]*entity.Field
	bookings map[uuid.UUID]*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{
		fields:   map[uuid.UUID]*entity.Field{},
		bookings: map[uuid.UUID]*entity.Booking{},
	}
}

func (m *memStore) addField(status entity.FieldStatus, price string) *entity.Field {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := &entity.Field{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Name:         "Court " + fmt.Sprint(len(m.fields)+1),
		SportType:    entity.SportBadminton,
		Capacity:     4,
		PricePerHour: decimal.RequireFromString(price),
		Status:       status,
	}
	m.fields[f.ID] = f
	cp := *f
	return &cp
}

func (m *memStore) booking(id uuid.UUID) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (m *memStore) setStatus(id uuid.UUID, status entity.BookingStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[id].Status = status
}

type fakeFieldRepo struct{ *memStore }

func (r fakeFieldRepo) Create(_ context.Context, field *entity.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *field
	r.fields[field.ID] = &cp
	return nil
}

func (r fakeFieldRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fields[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r fakeFieldRepo) matching(filter repository.FieldFilter) []*entity.Field {
	var out []*entity.Field
	for _, f := range r.fields {
		if filter.SportType != nil && f.SportType != *filter.SportType {
			continue
		}
		if filter.Status != nil && f.Status != *filter.Status {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r fakeFieldRepo) List(_ context.Context, filter repository.FieldFilter, limit, offset int) ([]*entity.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginate(r.matching(filter), limit, offset), nil
}

func (r fakeFieldRepo) Count(_ context.Context, filter repository.FieldFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r fakeFieldRepo) Update(_ context.Context, field *entity.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[field.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *field
	r.fields[field.ID] = &cp
	return nil
}

func (r fakeFieldRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fields[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.fields, id)
	for bid, b := range r.bookings {
		if b.FieldID == id {
			delete(r.bookings, bid)
		}
	}
	return nil
}

type fakeBookingRepo struct{ *memStore }

func (r fakeBookingRepo) activeOn(fieldID uuid.UUID, date time.Time) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.FieldID == fieldID && b.BookingDate.Equal(entity.DateOf(date)) && b.Status.Active() {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out
}

func (r fakeBookingRepo) checked(b *entity.Booking, check repository.SlotCheck) error {
	f, ok := r.fields[b.FieldID]
	if !ok {
		return repository.ErrNotFound
	}
	field := *f
	return check(&field, r.activeOn(b.FieldID, b.BookingDate))
}

func (r fakeBookingRepo) CreateChecked(_ context.Context, b *entity.Booking, check repository.SlotCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checked(b, check); err != nil {
		return err
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r fakeBookingRepo) RescheduleChecked(_ context.Context, b *entity.Booking, check repository.SlotCheck) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checked(b, check); err != nil {
		return nil, err
	}
	stored, ok := r.bookings[b.ID]
	if !ok || !stored.Status.Active() {
		return nil, booking.ErrInvalidTransition
	}
	cp := *b
	cp.Status = stored.Status
	r.bookings[b.ID] = &cp
	out := cp
	return &out, nil
}

func (r fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.booking(id), nil
}

func (r fakeBookingRepo) FindActiveByFieldAndDate(_ context.Context, fieldID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeOn(fieldID, date), nil
}

func (r fakeBookingRepo) matching(filter repository.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if !filter.Scope.Allows(b) {
			continue
		}
		if filter.FieldID != nil && b.FieldID != *filter.FieldID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(entity.DateOf(*filter.Date)) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.After(out[j].BookingDate)
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out
}

func (r fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return paginate(r.matching(filter), limit, offset), nil
}

func (r fakeBookingRepo) Count(_ context.Context, filter repository.BookingFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r fakeBookingRepo) TransitionStatus(_ context.Context, id uuid.UUID, t booking.Transition) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || !t.Allows(b.Status) {
		return nil, nil
	}
	b.Status = t.To
	b.UpdatedAt = testNow
	cp := *b
	return &cp, nil
}

func (r fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// racingBookingRepo lets a test run another writer between the service's read
// and its conditional write.
type racingBookingRepo struct {
	fakeBookingRepo
	interleave func(id uuid.UUID)
	alwaysMiss bool
	swaps      int
}

func (r *racingBookingRepo) RescheduleChecked(ctx context.Context, b *entity.Booking, check repository.SlotCheck) (*entity.Booking, error) {
	if r.interleave != nil {
		r.interleave(b.ID)
	}
	return r.fakeBookingRepo.RescheduleChecked(ctx, b, check)
}

func (r *racingBookingRepo) TransitionStatus(ctx context.Context, id uuid.UUID, t booking.Transition) (*entity.Booking, error) {
	r.swaps++
	if r.interleave != nil {
		r.interleave(id)
	}
	if r.alwaysMiss {
		return nil, nil
	}
	return r.fakeBookingRepo.TransitionStatus(ctx, id, t)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return paginate(out, limit, offset), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *session
	r.sessions[session.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	return &entity.SessionUser{Session: *s, Role: entity.RoleUser, IsActive: true}, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return repository.ErrNotFound
	}
	now := testNow
	s.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(_ context.Context) (int64, error) {
	return 0, nil
}

type bookingFixture struct {
	store     *memStore
	publisher *recordingPublisher
	service   BookingService
	fields    FieldService
}

// withBookingRepo swaps the booking service onto repo, keeping the store.
func (fx *bookingFixture) withBookingRepo(repo repository.BookingRepository) {
	fx.service = NewBookingService(repo, fx.publisher, testClock(), zap.NewNop())
}

func newBookingFixture() *bookingFixture {
	store := newMemStore()
	pub := &recordingPublisher{}
	log := zap.NewNop()
	return &bookingFixture{
		store:     store,
		publisher: pub,
		service:   NewBookingService(fakeBookingRepo{store}, pub, testClock(), log),
		fields:    NewFieldService(fakeFieldRepo{store}, fakeBookingRepo{store}, testClock(), log),
	}
}
