// Package gormstore is the MySQL storage adapter. Units of work map to
// database transactions; ledger rows are read FOR UPDATE inside them so
// concurrent reserves for the same room serialize at the database.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-reservation-backend/domain"
	"hotel-reservation-backend/models"
	"hotel-reservation-backend/repository"
)

const mysqlDuplicateEntry = 1062

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Atomic(ctx context.Context, fn func(st repository.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(stores{db: tx, inTx: true})
	})
}

func (s *Store) Rooms() repository.RoomStore                { return roomStore{db: s.db} }
func (s *Store) Reservations() repository.ReservationStore  { return reservationStore{db: s.db} }
func (s *Store) Availability() repository.AvailabilityStore { return availabilityStore{db: s.db} }
func (s *Store) PricingRules() repository.PricingRuleStore  { return ruleStore{db: s.db} }
func (s *Store) Payments() repository.PaymentStore          { return paymentStore{db: s.db} }
func (s *Store) Users() repository.UserStore                { return userStore{db: s.db} }

var _ repository.UnitOfWork = (*Store)(nil)

type stores struct {
	db   *gorm.DB
	inTx bool
}

func (s stores) Rooms() repository.RoomStore                { return roomStore(s) }
func (s stores) Reservations() repository.ReservationStore  { return reservationStore(s) }
func (s stores) Availability() repository.AvailabilityStore { return availabilityStore(s) }
func (s stores) PricingRules() repository.PricingRuleStore  { return ruleStore(s) }
func (s stores) Payments() repository.PaymentStore          { return paymentStore(s) }
func (s stores) Users() repository.UserStore                { return userStore(s) }

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError

	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

type roomStore stores

func (r roomStore) Save(ctx context.Context, room domain.Room) error {
	row := models.RoomFromDomain(room)

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save room %s: %w", room.ID, err)
	}

	return nil
}

func (r roomStore) FindByID(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	var row models.Room
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Room{}, domain.ErrRoomNotFound
		}

		return domain.Room{}, fmt.Errorf("find room %s: %w", id, err)
	}

	return row.ToDomain()
}

func (r roomStore) FindAll(ctx context.Context) ([]domain.Room, error) {
	var rows []models.Room
	if err := r.db.WithContext(ctx).Order("room_number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms := make([]domain.Room, 0, len(rows))

	for _, row := range rows {
		room, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, room)
	}

	return rooms, nil
}

type reservationStore stores

func (r reservationStore) Save(ctx context.Context, reservation *domain.Reservation) error {
	row := models.ReservationFromDomain(reservation)

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save reservation %s: %w", reservation.ID, err)
	}

	return nil
}

func (r reservationStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row models.Reservation
	if err := q.First(&row, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}

		return nil, fmt.Errorf("find reservation %s: %w", id, err)
	}

	return row.ToDomain()
}

func (r reservationStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Reservation, error) {
	return r.findWhere(ctx, "user_id = ?", userID.String())
}

func (r reservationStore) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.findWhere(ctx, "status = ?", string(status))
}

func (r reservationStore) findWhere(ctx context.Context, query string, arg any) ([]*domain.Reservation, error) {
	var rows []models.Reservation
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	reservations := make([]*domain.Reservation, 0, len(rows))

	for _, row := range rows {
		reservation, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

type availabilityStore stores

func (a availabilityStore) DaysInRange(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	return a.days(a.db.WithContext(ctx), roomID, r)
}

func (a availabilityStore) DaysForUpdate(ctx context.Context, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	q := a.db.WithContext(ctx)
	if a.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	return a.days(q, roomID, r)
}

func (a availabilityStore) days(q *gorm.DB, roomID uuid.UUID, r domain.DateRange) ([]domain.AvailabilityDay, error) {
	var rows []models.AvailabilityDay

	err := q.
		Where("room_id = ? AND date >= ? AND date < ?", roomID.String(), r.Start, r.End).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load availability for room %s: %w", roomID, err)
	}

	days := make([]domain.AvailabilityDay, 0, len(rows))

	for _, row := range rows {
		day, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	return days, nil
}

func (a availabilityStore) SaveDay(ctx context.Context, day domain.AvailabilityDay) error {
	err := a.db.WithContext(ctx).
		Model(&models.AvailabilityDay{}).
		Where("room_id = ? AND date = ?", day.RoomID.String(), domain.Date(day.Date)).
		Updates(map[string]interface{}{"remaining": day.Remaining, "capacity": day.Capacity}).Error
	if err != nil {
		return fmt.Errorf("save availability day %s/%s: %w", day.RoomID, day.Date.Format("2006-01-02"), err)
	}

	return nil
}

func (a availabilityStore) SeedSlot(ctx context.Context, slot domain.AvailabilitySlot) error {
	rows := make([]models.AvailabilityDay, 0, slot.Range.Nights())
	for _, day := range slot.ExpandDays() {
		rows = append(rows, models.AvailabilityDayFromDomain(day))
	}

	if err := a.db.WithContext(ctx).Create(&rows).Error; err != nil {
		// The unique (room, date) index is the overlap guard: a second seed
		// touching an already-covered date trips it.
		if isDuplicateEntry(err) {
			return fmt.Errorf("slot overlaps seeded availability for room %s: %w", slot.RoomID, domain.ErrLedgerCorruption)
		}

		return fmt.Errorf("seed availability for room %s: %w", slot.RoomID, err)
	}

	return nil
}

type ruleStore stores

func (r ruleStore) Save(ctx context.Context, rule domain.PricingRule) error {
	row := models.PricingRuleFromDomain(rule)

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save pricing rule %s: %w", rule.ID, err)
	}

	return nil
}

func (r ruleStore) FindByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.PricingRule, error) {
	var rows []models.PricingRule
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID.String()).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list pricing rules for room %s: %w", roomID, err)
	}

	rules := make([]domain.PricingRule, 0, len(rows))

	for _, row := range rows {
		rule, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

type paymentStore stores

func (p paymentStore) Save(ctx context.Context, payment *domain.Payment) error {
	row := models.PaymentFromDomain(payment)

	if err := p.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save payment %s: %w", payment.ID, err)
	}

	return nil
}

func (p paymentStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var row models.Payment
	if err := p.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("find payment %s: %w", id, err)
	}

	return row.ToDomain()
}

func (p paymentStore) FindByReservation(ctx context.Context, reservationID uuid.UUID) ([]*domain.Payment, error) {
	var rows []models.Payment

	err := p.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID.String()).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list payments for reservation %s: %w", reservationID, err)
	}

	payments := make([]*domain.Payment, 0, len(rows))

	for _, row := range rows {
		payment, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	return payments, nil
}

type userStore stores

func (u userStore) Save(ctx context.Context, user domain.User) error {
	row := models.UserFromDomain(user)

	if err := u.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}

	return nil
}

func (u userStore) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var row models.User
	if err := u.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("find user %s: %w", id, err)
	}

	return row.ToDomain()
}

func (u userStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var row models.User
	if err := u.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}

	return row.ToDomain()
}
