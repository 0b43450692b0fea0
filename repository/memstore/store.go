// Package memstore is the concurrency-safe in-memory storage adapter. One
// mutex serializes units of work; mutations inside a unit of work append
// rollback actions that are replayed in reverse if the unit fails, so a
// failed operation leaves no partial state behind.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/repository"
)

type Store struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]domain.Room
	reservations map[uuid.UUID]domain.Reservation
	days         map[string]domain.AvailabilityDay
	rules        map[uuid.UUID]domain.PricingRule
	payments     map[uuid.UUID]domain.Payment
	users        map[uuid.UUID]domain.User
}

func New() *Store {
	return &Store{
		rooms:        make(map[uuid.UUID]domain.Room),
		reservations: make(map[uuid.UUID]domain.Reservation),
		days:         make(map[string]domain.AvailabilityDay),
		rules:        make(map[uuid.UUID]domain.PricingRule),
		payments:     make(map[uuid.UUID]domain.Payment),
		users:        make(map[uuid.UUID]domain.User),
	}
}

func dayKey(roomID uuid.UUID, date time.Time) string {
	return roomID.String() + "_" + domain.Date(date).Format("2006-01-02")
}

// tx is one unit of work. It is only ever used while the store mutex is held.
type tx struct {
	db      *Store
	journal []func()
}

func (t *tx) onRollback(undo func()) {
	if t != nil {
		t.journal = append(t.journal, undo)
	}
}

func (t *tx) rollback() {
	for i := len(t.journal) - 1; i >= 0; i-- {
		t.journal[i]()
	}

	t.journal = nil
}

func (s *Store) Atomic(_ context.Context, fn func(st repository.Stores) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{db: s}

	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}

		if err != nil {
			t.rollback()
		}
	}()

	err = fn(stores{db: s, t: t})

	return err
}

// stores binds the port implementations to the root store and, inside a unit
// of work, to its journal. With a nil tx each call locks for itself.
type stores struct {
	db *Store
	t  *tx
}

func (s stores) Rooms() repository.RoomStore                { return roomStore(s) }
func (s stores) Reservations() repository.ReservationStore  { return reservationStore(s) }
func (s stores) Availability() repository.AvailabilityStore { return availabilityStore(s) }
func (s stores) PricingRules() repository.PricingRuleStore  { return ruleStore(s) }
func (s stores) Payments() repository.PaymentStore          { return paymentStore(s) }
func (s stores) Users() repository.UserStore                { return userStore(s) }

func (s *Store) Rooms() repository.RoomStore                { return roomStore{db: s} }
func (s *Store) Reservations() repository.ReservationStore  { return reservationStore{db: s} }
func (s *Store) Availability() repository.AvailabilityStore { return availabilityStore{db: s} }
func (s *Store) PricingRules() repository.PricingRuleStore  { return ruleStore{db: s} }
func (s *Store) Payments() repository.PaymentStore          { return paymentStore{db: s} }
func (s *Store) Users() repository.UserStore                { return userStore{db: s} }

// enter locks the store for a standalone call; inside a unit of work the
// mutex is already held by Atomic.
func (s stores) enter() func() {
	if s.t != nil {
		return func() {}
	}

	s.db.mu.Lock()

	return s.db.mu.Unlock
}

var _ repository.UnitOfWork = (*Store)(nil)

type roomStore stores

func (r roomStore) Save(_ context.Context, room domain.Room) error {
	defer stores(r).enter()()

	prev, existed := r.db.rooms[room.ID]
	r.t.onRollback(func() {
		if existed {
			r.db.rooms[room.ID] = prev
		} else {
			delete(r.db.rooms, room.ID)
		}
	})

	r.db.rooms[room.ID] = room

	return nil
}

func (r roomStore) FindByID(_ context.Context, id uuid.UUID) (domain.Room, error) {
	defer stores(r).enter()()

	room, ok := r.db.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}

	return room, nil
}

func (r roomStore) FindAll(_ context.Context) ([]domain.Room, error) {
	defer stores(r).enter()()

	rooms := make([]domain.Room, 0, len(r.db.rooms))
	for _, room := range r.db.rooms {
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })

	return rooms, nil
}

type reservationStore stores

func (r reservationStore) Save(_ context.Context, reservation *domain.Reservation) error {
	defer stores(r).enter()()

	prev, existed := r.db.reservations[reservation.ID]
	r.t.onRollback(func() {
		if existed {
			r.db.reservations[reservation.ID] = prev
		} else {
			delete(r.db.reservations, reservation.ID)
		}
	})

	r.db.reservations[reservation.ID] = *reservation

	return nil
}

func (r reservationStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	defer stores(r).enter()()

	reservation, ok := r.db.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	return &reservation, nil
}

func (r reservationStore) FindByUser(_ context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	defer stores(r).enter()()

	return r.collect(func(res domain.Reservation) bool { return res.UserID == userID }), nil
}

func (r reservationStore) FindByStatus(_ context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	defer stores(r).enter()()

	return r.collect(func(res domain.Reservation) bool { return res.Status == status }), nil
}

func (r reservationStore) collect(match func(domain.Reservation) bool) []*domain.Reservation {
	var result []*domain.Reservation

	for _, res := range r.db.reservations {
		if match(res) {
			copied := res
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}

		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result
}

type availabilityStore stores

func (a availabilityStore) DaysInRange(_ context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	defer stores(a).enter()()

	var days []domain.AvailabilityDay

	for _, d := range r.Dates() {
		if day, ok := a.db.days[dayKey(roomID, d)]; ok {
			days = append(days, day)
		}
	}

	return days, nil
}

// DaysForUpdate matches DaysInRange: the Atomic mutex already serializes
// writers.
func (a availabilityStore) DaysForUpdate(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	return a.DaysInRange(ctx, roomID, r)
}

func (a availabilityStore) SaveDay(_ context.Context, day domain.AvailabilityDay) error {
	defer stores(a).enter()()

	key := dayKey(day.RoomID, day.Date)

	prev, existed := a.db.days[key]
	a.t.onRollback(func() {
		if existed {
			a.db.days[key] = prev
		} else {
			delete(a.db.days, key)
		}
	})

	day.Date = domain.Date(day.Date)
	a.db.days[key] = day

	return nil
}

func (a availabilityStore) SeedSlot(_ context.Context, slot domain.AvailabilitySlot) error {
	defer stores(a).enter()()

	for _, d := range slot.Range.Dates() {
		if _, exists := a.db.days[dayKey(slot.RoomID, d)]; exists {
			return fmt.Errorf("room %s already seeded for %s: %w",
				slot.RoomID, d.Format("2006-01-02"), domain.ErrLedgerCorruption)
		}
	}

	for _, day := range slot.ExpandDays() {
		key := dayKey(day.RoomID, day.Date)

		a.t.onRollback(func() { delete(a.db.days, key) })
		a.db.days[key] = day
	}

	return nil
}

type ruleStore stores

func (r ruleStore) Save(_ context.Context, rule domain.PricingRule) error {
	defer stores(r).enter()()

	prev, existed := r.db.rules[rule.ID]
	r.t.onRollback(func() {
		if existed {
			r.db.rules[rule.ID] = prev
		} else {
			delete(r.db.rules, rule.ID)
		}
	})

	r.db.rules[rule.ID] = rule

	return nil
}

func (r ruleStore) FindByRoom(_ context.Context, roomID uuid.UUID) ([]domain.PricingRule, error) {
	defer stores(r).enter()()

	var rules []domain.PricingRule

	for _, rule := range r.db.rules {
		if rule.RoomID == roomID {
			rules = append(rules, rule)
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID.String() < rules[j].ID.String()
	})

	return rules, nil
}

type paymentStore stores

func (p paymentStore) Save(_ context.Context, payment *domain.Payment) error {
	defer stores(p).enter()()

	prev, existed := p.db.payments[payment.ID]
	p.t.onRollback(func() {
		if existed {
			p.db.payments[payment.ID] = prev
		} else {
			delete(p.db.payments, payment.ID)
		}
	})

	p.db.payments[payment.ID] = *payment

	return nil
}

func (p paymentStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	defer stores(p).enter()()

	payment, ok := p.db.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}

	return &payment, nil
}

func (p paymentStore) FindByReservation(_ context.Context, reservationID uuid.UUID) ([]*domain.Payment, error) {
	defer stores(p).enter()()

	var payments []*domain.Payment

	for _, payment := range p.db.payments {
		if payment.ReservationID == reservationID {
			copied := payment
			payments = append(payments, &copied)
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		if payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].ID.String() < payments[j].ID.String()
		}

		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})

	return payments, nil
}

type userStore stores

func (u userStore) Save(_ context.Context, user domain.User) error {
	defer stores(u).enter()()

	prev, existed := u.db.users[user.ID]
	u.t.onRollback(func() {
		if existed {
			u.db.users[user.ID] = prev
		} else {
			delete(u.db.users, user.ID)
		}
	})

	u.db.users[user.ID] = user

	return nil
}

func (u userStore) FindByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	defer stores(u).enter()()

	user, ok := u.db.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, nil
}

func (u userStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	defer stores(u).enter()()

	email = strings.ToLower(strings.TrimSpace(email))

	for _, user := range u.db.users {
		if strings.ToLower(user.Email) == email {
			return user, nil
		}
	}

	return domain.User{}, domain.ErrUserNotFound
}
