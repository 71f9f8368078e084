package users

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/freightdesk/freightdesk/internal/masterdata/shared"
	"github.com/freightdesk/freightdesk/internal/rbac"
	rootshared "github.com/freightdesk/freightdesk/internal/shared"
)

type memRepo struct {
	items map[int64]User
	next  int64
}

func newMemRepo() *memRepo { return &memRepo{items: map[int64]User{}} }

func (m *memRepo) List(context.Context, shared.ListFilters) ([]User, int, error) {
	var out []User
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := m.items[id]
	if !ok {
		return User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range m.items {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, pgx.ErrNoRows
}

func (m *memRepo) Create(_ context.Context, u User) (User, error) {
	m.next++
	u.ID = m.next
	m.items[u.ID] = u
	return u, nil
}

func (m *memRepo) Update(_ context.Context, id int64, u User) (User, error) {
	cur, ok := m.items[id]
	if !ok {
		return User{}, pgx.ErrNoRows
	}
	if u.PasswordHash == "" {
		u.PasswordHash = cur.PasswordHash
	}
	u.ID = id
	m.items[id] = u
	return u, nil
}

func (m *memRepo) UpdateProfile(_ context.Context, id int64, p Profile) error {
	u := m.items[id]
	u.Name, u.Phone, u.Department = p.Name, p.Phone, p.Department
	m.items[id] = u
	return nil
}

func (m *memRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u := m.items[id]
	u.PasswordHash = hash
	m.items[id] = u
	return nil
}

func (m *memRepo) TouchLogin(_ context.Context, id int64, at time.Time) error {
	u := m.items[id]
	u.LastLoginAt = &at
	m.items[id] = u
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo).WithHashCost(bcrypt.MinCost), repo
}

func createUser(t *testing.T, svc *Service) User {
	t.Helper()
	u, err := svc.Create(context.Background(), User{Name: "Asha Rao", Email: " Asha@Example.com ", Role: "Operations", Password: "s3cretpass"})
	require.NoError(t, err)
	return u
}

func TestCreateHashesPassword(t *testing.T) {
	svc, repo := newService()
	u := createUser(t, svc)

	stored := repo.items[u.ID]
	assert.Equal(t, "asha@example.com", stored.Email)
	assert.Equal(t, rbac.RoleOperations, stored.Role)
	assert.Equal(t, StatusActive, stored.Status)
	assert.Empty(t, stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")))
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), User{Name: "A", Email: "nope", Role: "pilot"})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	fields := rootshared.FieldErrors(err)
	assert.Equal(t, "Password is required", fields["password"])
	assert.Equal(t, "Invalid email address", fields["email"])
	assert.Equal(t, "Invalid role", fields["role"])
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newService()
	u := createUser(t, svc)

	got, err := svc.Authenticate(context.Background(), "asha@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotNil(t, repo.items[u.ID].LastLoginAt)

	_, err = svc.Authenticate(context.Background(), "asha@example.com", "wrong")
	require.ErrorIs(t, err, rootshared.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ghost@example.com", "s3cretpass")
	require.ErrorIs(t, err, rootshared.ErrInvalidCredentials)
}

func TestSuspendedAccountsAreRejected(t *testing.T) {
	svc, repo := newService()
	u := createUser(t, svc)
	stored := repo.items[u.ID]
	stored.Status = StatusSuspended
	repo.items[u.ID] = stored

	_, err := svc.Authenticate(context.Background(), "asha@example.com", "s3cretpass")
	require.ErrorIs(t, err, rootshared.ErrForbidden)

	_, err = svc.PrincipalByID(context.Background(), u.ID)
	require.ErrorIs(t, err, rootshared.ErrForbidden)
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc, repo := newService()
	u := createUser(t, svc)
	before := repo.items[u.ID].PasswordHash

	u.Name = "Asha R."
	u.Password = ""
	_, err := svc.Update(context.Background(), u.ID, u)
	require.NoError(t, err)
	assert.Equal(t, before, repo.items[u.ID].PasswordHash)
	assert.Equal(t, "Asha R.", repo.items[u.ID].Name)
}

func TestCannotDeleteSelf(t *testing.T) {
	svc, _ := newService()
	u := createUser(t, svc)
	ctx := rbac.ContextWithPrincipal(context.Background(), u.Principal())

	err := svc.Delete(ctx, u.ID)
	require.ErrorIs(t, err, rootshared.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), u.ID))
}

func TestChangePassword(t *testing.T) {
	svc, repo := newService()
	u := createUser(t, svc)

	err := svc.ChangePassword(context.Background(), u.ID, PasswordChange{CurrentPassword: "bad", NewPassword: "n3wpassword", ConfirmPassword: "n3wpassword"})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	assert.Equal(t, "Current password is incorrect", rootshared.FieldErrors(err)["current_password"])

	err = svc.ChangePassword(context.Background(), u.ID, PasswordChange{CurrentPassword: "s3cretpass", NewPassword: "n3wpassword", ConfirmPassword: "mismatch1"})
	require.ErrorIs(t, err, rootshared.ErrValidation)
	assert.Equal(t, "Confirm Password does not match", rootshared.FieldErrors(err)["confirm_password"])

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, PasswordChange{CurrentPassword: "s3cretpass", NewPassword: "n3wpassword", ConfirmPassword: "n3wpassword"}))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.items[u.ID].PasswordHash), []byte("n3wpassword")))
}

func TestPermissionMatrix(t *testing.T) {
	rows := PermissionMatrix()
	require.Len(t, rows, len(rbac.Modules()))
	for _, row := range rows {
		if row.Module == rbac.ModuleUsers {
			assert.Equal(t, "read, create, update, delete", row.Grants[rbac.RoleAdmin])
			assert.Equal(t, "read, create, update", row.Grants[rbac.RoleManagement])
			assert.Empty(t, row.Grants[rbac.RoleCustomer])
		}
	}
}
