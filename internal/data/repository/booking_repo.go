package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YonTemasek/asrulbasri.com-sub000/internal/data/entity"
	"github.com/YonTemasek/asrulbasri.com-sub000/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const bookingColumns = `id, service_id, booking_date, booking_time, customer_name, customer_email,
		customer_phone, price_paid, status, stripe_payment_id, meeting_link,
		customer_notes, admin_notes, reminder_24h_sent, reminder_1h_sent, created_at, updated_at`

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)

	// Availability queries
	HasActiveOnDate(ctx context.Context, date time.Time) (bool, error)
	FindActiveDates(ctx context.Context, from, to time.Time, exclude *uuid.UUID) ([]time.Time, error)

	// Lifecycle transitions
	MarkPaid(ctx context.Context, id uuid.UUID, paymentRef string) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateDate(ctx context.Context, id uuid.UUID, newDate time.Time, newTime string) error
	UpdateAdminFields(ctx context.Context, booking *entity.Booking) error
	AppendAdminNote(ctx context.Context, id uuid.UUID, note string) error

	// Reminder sweeps
	FindReminder24hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error)
	FindReminder1hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error)
	MarkReminder24hSent(ctx context.Context, id uuid.UUID) (bool, error)
	MarkReminder1hSent(ctx context.Context, id uuid.UUID) (bool, error)
	ResetReminder24hSent(ctx context.Context, id uuid.UUID) error
	ResetReminder1hSent(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

// isActiveDateConflict reports whether the error is the partial unique index
// on active bookings per date firing. That index is the authoritative defense
// against double-booking; both Create and UpdateDate rely on it.
func isActiveDateConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "bookings_active_date_key"
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, service_id, booking_date, booking_time, customer_name,
			customer_email, customer_phone, price_paid, status, stripe_payment_id,
			meeting_link, customer_notes, admin_notes, reminder_24h_sent, reminder_1h_sent,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ServiceID,
		booking.BookingDate,
		booking.BookingTime,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.PricePaid,
		booking.Status,
		booking.StripePaymentID,
		booking.MeetingLink,
		booking.CustomerNotes,
		booking.AdminNotes,
		booking.Reminder24hSent,
		booking.Reminder1hSent,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if isActiveDateConflict(err) {
		r.log.Warn("Create lost the date race",
			zap.String("booking_id", booking.ID.String()),
			zap.Time("date", booking.BookingDate))
		return fmt.Errorf("create booking on %s: %w",
			booking.BookingDate.Format("2006-01-02"), entity.ErrDateUnavailable)
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBookingRow(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY booking_date DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}

func (r *bookingRepository) HasActiveOnDate(ctx context.Context, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE booking_date = $1 AND status IN ('pending', 'paid')
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		r.log.Error("Failed to check active booking on date",
			zap.Error(err),
			zap.Time("date", date))
		return false, fmt.Errorf("check active booking on %s: %w", date.Format("2006-01-02"), err)
	}

	return exists, nil
}

func (r *bookingRepository) FindActiveDates(ctx context.Context, from, to time.Time, exclude *uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT booking_date FROM bookings
		WHERE status IN ('pending', 'paid')
		  AND booking_date BETWEEN $1 AND $2
		  AND ($3::uuid IS NULL OR id <> $3)
	`

	rows, err := r.db.Query(ctx, query, from, to, exclude)
	if err != nil {
		r.log.Error("Failed to find active dates", zap.Error(err))
		return nil, fmt.Errorf("find active dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan active date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

// MarkPaid flips one pending booking to paid and records the payment
// reference. Returns false when the booking was not pending; the caller
// decides whether that is webhook redelivery or a conflict.
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentRef string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'paid', stripe_payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, paymentRef)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return false, fmt.Errorf("mark booking %s paid: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

// MarkCancelled moves a booking to the terminal cancelled state. Returns
// false when the booking was already cancelled.
func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return false, fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) UpdateDate(ctx context.Context, id uuid.UUID, newDate time.Time, newTime string) error {
	query := `
		UPDATE bookings
		SET booking_date = $2, booking_time = $3, updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, id, newDate, newTime)
	if isActiveDateConflict(err) {
		r.log.Warn("Reschedule lost the date race",
			zap.String("booking_id", id.String()),
			zap.Time("new_date", newDate))
		return fmt.Errorf("reschedule booking %s to %s: %w",
			id.String(), newDate.Format("2006-01-02"), entity.ErrDateUnavailable)
	}
	if err != nil {
		r.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return fmt.Errorf("reschedule booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reschedule booking %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) UpdateAdminFields(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET booking_time = $2, status = $3, meeting_link = $4, admin_notes = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingTime,
		booking.Status,
		booking.MeetingLink,
		booking.AdminNotes,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()))
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), entity.ErrNotFound)
	}

	return nil
}

// AppendAdminNote adds one audit line without overwriting the trail.
func (r *bookingRepository) AppendAdminNote(ctx context.Context, id uuid.UUID, note string) error {
	query := `
		UPDATE bookings
		SET admin_notes = CASE WHEN admin_notes = '' THEN $2
			ELSE admin_notes || E'\n' || $2 END,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, note)
	if err != nil {
		r.log.Error("Failed to append admin note",
			zap.Error(err),
			zap.String("booking_id", id.String()))
		return fmt.Errorf("append note to booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("append note to booking %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) FindReminder24hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'paid' AND booking_date = $1 AND reminder_24h_sent = FALSE
		ORDER BY booking_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find 24h reminder candidates", zap.Error(err))
		return nil, fmt.Errorf("find 24h reminder candidates: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) FindReminder1hDue(ctx context.Context, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'paid' AND booking_date = $1
		  AND meeting_link <> '' AND reminder_1h_sent = FALSE
		ORDER BY booking_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find 1h reminder candidates", zap.Error(err))
		return nil, fmt.Errorf("find 1h reminder candidates: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) MarkReminder24hSent(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.markReminderSent(ctx, id, "reminder_24h_sent")
}

func (r *bookingRepository) MarkReminder1hSent(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.markReminderSent(ctx, id, "reminder_1h_sent")
}

// markReminderSent flips one reminder flag at most once. The flag condition
// is what makes overlapping sweep runs safe.
func (r *bookingRepository) markReminderSent(ctx context.Context, id uuid.UUID, column string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET %s = TRUE, updated_at = NOW()
		WHERE id = $1 AND %s = FALSE
	`, column, column)

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark reminder sent",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("flag", column))
		return false, fmt.Errorf("mark %s for booking %s: %w", column, id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) ResetReminder24hSent(ctx context.Context, id uuid.UUID) error {
	return r.resetReminderSent(ctx, id, "reminder_24h_sent")
}

func (r *bookingRepository) ResetReminder1hSent(ctx context.Context, id uuid.UUID) error {
	return r.resetReminderSent(ctx, id, "reminder_1h_sent")
}

// resetReminderSent releases a claimed flag after a failed send, keeping
// the booking eligible for the next sweep.
func (r *bookingRepository) resetReminderSent(ctx context.Context, id uuid.UUID, column string) error {
	query := fmt.Sprintf(`
		UPDATE bookings
		SET %s = FALSE, updated_at = NOW()
		WHERE id = $1
	`, column)

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to release reminder flag",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("flag", column))
		return fmt.Errorf("release %s for booking %s: %w", column, id.String(), err)
	}

	return nil
}

func scanBookingRow(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.BookingDate,
		&b.BookingTime,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.PricePaid,
		&b.Status,
		&b.StripePaymentID,
		&b.MeetingLink,
		&b.CustomerNotes,
		&b.AdminNotes,
		&b.Reminder24hSent,
		&b.Reminder1hSent,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
