package users

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
)

// Repository provides user persistence.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int64, u User) (User, error)
	UpdateProfile(ctx context.Context, id int64, p Profile) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	TouchLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectUser = `
	SELECT id, name, email, role, status, COALESCE(phone, ''), COALESCE(department, ''), password_hash,
	       last_login_at, created_at, updated_at
	FROM users`

var sortColumns = map[string]string{
	"name":          "name",
	"email":         "email",
	"role":          "role",
	"status":        "status",
	"last_login_at": "last_login_at",
	"created_at":    "created_at",
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]User, int, error) {
	var where shared.Where
	where.Search(filters.Search, "name", "email")
	if filters.IsActive != nil {
		if *filters.IsActive {
			where.Add("status = ?", StatusActive)
		} else {
			where.Add("status <> ?", StatusActive)
		}
	}
	if filters.Status != "" {
		where.Add("status = ?", filters.Status)
	}
	if filters.Type != "" {
		where.Add("role = ?", filters.Type)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := where.Paginate(selectUser+where.SQL()+shared.OrderBy(filters.SortBy, filters.SortDir, sortColumns, "name"), filters)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

func (r *repository) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, selectUser+` WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *repository) Create(ctx context.Context, u User) (User, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, status, phone, department, password_hash)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id`,
		u.Name, u.Email, u.Role, u.Status, u.Phone, u.Department, u.PasswordHash).Scan(&id)
	if err != nil {
		return User{}, err
	}
	return r.Get(ctx, id)
}

// Update leaves the password untouched when PasswordHash is empty.
func (r *repository) Update(ctx context.Context, id int64, u User) (User, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, status = $4, phone = NULLIF($5, ''), department = NULLIF($6, ''),
		    password_hash = COALESCE(NULLIF($7, ''), password_hash), updated_at = NOW()
		WHERE id = $8`,
		u.Name, u.Email, u.Role, u.Status, u.Phone, u.Department, u.PasswordHash, id)
	if err != nil {
		return User{}, err
	}
	if tag.RowsAffected() == 0 {
		return User{}, pgx.ErrNoRows
	}
	return r.Get(ctx, id)
}

func (r *repository) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	return r.exec(ctx, `UPDATE users SET name = $1, phone = NULLIF($2, ''), department = NULLIF($3, ''), updated_at = NOW() WHERE id = $4`,
		p.Name, p.Phone, p.Department, id)
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, hash, id)
}

func (r *repository) TouchLogin(ctx context.Context, id int64, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *repository) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.Phone, &u.Department, &u.PasswordHash,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
