package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SHM-SeatService/internal/domain"
	"github.com/m04kA/SHM-SeatService/pkg/dbmetrics"
	"github.com/m04kA/SHM-SeatService/pkg/psqlbuilder"
)

const table = "student_subscriptions"

var columns = []string{
	"id",
	"student_id",
	"seat_id",
	"timeslot_id",
	"start_date",
	"end_date",
	"amount_paid",
	"receipt_number",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с абонементами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория абонементов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый абонемент
// Проверка конфликтов НЕ выполняется здесь - это обязанность вызывающего
// usecase, который оборачивает проверку и вставку в одну сериализуемую
// транзакцию (транзакция передается через контекст)
func (r *Repository) Create(ctx context.Context, sub *domain.Subscription) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"student_id",
			"seat_id",
			"timeslot_id",
			"start_date",
			"end_date",
			"amount_paid",
			"receipt_number",
			"status",
		).
		Values(
			sub.StudentID,
			sub.SeatID,
			sub.TimeslotID,
			sub.StartDate,
			sub.EndDate,
			sub.AmountPaid,
			sub.ReceiptNumber,
			sub.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		// 23505 = unique_violation: страховка от гонки выдачи номеров квитанций
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrReceiptNumberTaken, sub.ReceiptNumber)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return sub, nil
}

// GetByID получает абонемент по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	sub, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan subscription: %v", ErrScanRow, err)
	}

	return sub, nil
}

// GetByStudent получает абонементы студента, сначала новые
func (r *Repository) GetByStudent(ctx context.Context, studentID int64, activeOnly bool) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_date DESC, id DESC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// GetBySeat получает абонементы на место, сначала новые
func (r *Repository) GetBySeat(ctx context.Context, seatID int64, activeOnly bool) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"seat_id": seatID}).
		OrderBy("start_date DESC, id DESC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusActive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeat - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeat - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// GetOverlapping получает активные абонементы, чей диапазон дат пересекается
// с [filter.StartDate, filter.EndDate] (обе границы включительно)
//
// Используется проверкой конфликтов: внутри транзакции добавляется FOR UPDATE,
// чтобы два конкурентных создания не прошли проверку одновременно
func (r *Repository) GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.GtOrEq{"end_date": filter.StartDate}).
		Where(squirrel.LtOrEq{"start_date": filter.EndDate}).
		OrderBy("id ASC")

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.SeatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"seat_id": *filter.SeatID})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// GetCurrentOverlapping получает текущие абонементы (активные, студент активен,
// срок не истёк), чей диапазон дат пересекается с запрошенным окном
//
// Используется подбором свободных мест и картой зала
func (r *Repository) GetCurrentOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(prefixed("s", columns)...).
		From(table + " s").
		Join("students st ON st.id = s.student_id AND st.is_active = TRUE").
		Where(squirrel.Eq{"s.status": domain.StatusActive}).
		Where(squirrel.Expr("s.end_date >= CURRENT_DATE")).
		Where(squirrel.GtOrEq{"s.end_date": filter.StartDate}).
		Where(squirrel.LtOrEq{"s.start_date": filter.EndDate}).
		OrderBy("s.seat_id ASC, s.id ASC")

	if filter.StudentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.student_id": *filter.StudentID})
	}
	if filter.SeatID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.seat_id": *filter.SeatID})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"s.id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSubscriptions(rows)
}

// CountCurrentBySeat подсчитывает текущие абонементы на место
// (ноль означает, что место свободно и его атрибуты можно менять)
func (r *Repository) CountCurrentBySeat(ctx context.Context, seatID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table + " s").
		Join("students st ON st.id = s.student_id AND st.is_active = TRUE").
		Where(squirrel.Eq{"s.seat_id": seatID}).
		Where(squirrel.Eq{"s.status": domain.StatusActive}).
		Where(squirrel.Expr("s.end_date >= CURRENT_DATE")).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCurrentBySeat - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCurrentBySeat - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListCurrentSeatIDs возвращает ID мест, занятых текущими абонементами
func (r *Repository) ListCurrentSeatIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT s.seat_id").
		From(table + " s").
		Join("students st ON st.id = s.student_id AND st.is_active = TRUE").
		Where(squirrel.Eq{"s.status": domain.StatusActive}).
		Where(squirrel.Expr("s.end_date >= CURRENT_DATE")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCurrentSeatIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCurrentSeatIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListCurrentSeatIDs - scan seat id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCurrentSeatIDs - iterate rows: %v", ErrScanRow, err)
	}

	return ids, nil
}

// CountCurrentSeatsByTimeslot подсчитывает занятые места на таймслоте
// (место считается один раз, сколько бы абонементов на нём ни было)
func (r *Repository) CountCurrentSeatsByTimeslot(ctx context.Context, timeslotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT s.seat_id)").
		From(table + " s").
		Join("students st ON st.id = s.student_id AND st.is_active = TRUE").
		Where(squirrel.Eq{"s.timeslot_id": timeslotID}).
		Where(squirrel.Eq{"s.status": domain.StatusActive}).
		Where(squirrel.Expr("s.end_date >= CURRENT_DATE")).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCurrentSeatsByTimeslot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCurrentSeatsByTimeslot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Cancel мягко удаляет абонемент (статус cancelled)
// Номер квитанции остается зарезервированным, запись видна в истории
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// Delete физически удаляет абонемент
// Только для исправления ошибок ввода оператором; для отмен, которые студент
// может оспорить, использовать Cancel
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

// GetExpiringWithin получает ленту напоминаний: текущие абонементы,
// истекающие в ближайшие days дней (end_date BETWEEN today AND today+days)
func (r *Repository) GetExpiringWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error) {
	return r.notices(ctx,
		squirrel.Expr("s.end_date >= CURRENT_DATE AND s.end_date <= CURRENT_DATE + ?", days),
		"GetExpiringWithin")
}

// GetExpiredWithin получает недавно истёкшие абонементы
// (end_date < today AND end_date >= today-days) для сообщений об окончании
func (r *Repository) GetExpiredWithin(ctx context.Context, days int) ([]*domain.ExpiryNotice, error) {
	return r.notices(ctx,
		squirrel.Expr("s.end_date < CURRENT_DATE AND s.end_date >= CURRENT_DATE - ?", days),
		"GetExpiredWithin")
}

func (r *Repository) notices(ctx context.Context, window squirrel.Sqlizer, op string) ([]*domain.ExpiryNotice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.student_id",
		"st.full_name",
		"st.mobile",
		"s.seat_id",
		"t.name",
		"s.end_date",
	).
		From(table + " s").
		Join("students st ON st.id = s.student_id AND st.is_active = TRUE").
		Join("timeslots t ON t.id = s.timeslot_id").
		Where(squirrel.Eq{"s.status": domain.StatusActive}).
		Where(window).
		OrderBy("s.end_date ASC, s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	notices := make([]*domain.ExpiryNotice, 0)
	for rows.Next() {
		var n domain.ExpiryNotice
		if err := rows.Scan(
			&n.SubscriptionID,
			&n.StudentID,
			&n.StudentName,
			&n.Mobile,
			&n.SeatID,
			&n.TimeslotName,
			&n.EndDate,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		notices = append(notices, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return notices, nil
}

// NextReceiptSequence возвращает следующий порядковый номер квитанции за день
// Должен вызываться внутри той же сериализуемой транзакции, что и Create;
// уникальный индекс на receipt_number - страховка на случай гонки
func (r *Repository) NextReceiptSequence(ctx context.Context, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COALESCE(MAX(CAST(RIGHT(receipt_number, 4) AS INTEGER)), 0) + 1",
	).
		From(table).
		Where(squirrel.Like{"receipt_number": domain.ReceiptPrefix(day) + "%"}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: NextReceiptSequence - build select query: %v", ErrBuildQuery, err)
	}

	var seq int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: NextReceiptSequence - scan sequence: %v", ErrScanRow, err)
	}

	return seq, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row rowScanner) (*domain.Subscription, error) {
	var sub domain.Subscription
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sub.ID,
		&sub.StudentID,
		&sub.SeatID,
		&sub.TimeslotID,
		&sub.StartDate,
		&sub.EndDate,
		&sub.AmountPaid,
		&sub.ReceiptNumber,
		&sub.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time
	return &sub, nil
}

func (r *Repository) scanSubscriptions(rows *sql.Rows) ([]*domain.Subscription, error) {
	subs := make([]*domain.Subscription, 0)

	for rows.Next() {
		sub, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSubscriptions - scan row: %v", ErrScanRow, err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSubscriptions - rows error: %v", ErrScanRow, err)
	}

	return subs, nil
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
