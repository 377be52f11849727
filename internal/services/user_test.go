package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketdirectory/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	roles  map[string][]string // userID -> roleIDs
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), roles: make(map[string][]string), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: %s", domain.ErrConflict, u.Email)
		}
	}
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.nextID++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	f.roles[userID] = append(f.roles[userID], roleID)
	return nil
}

// fakeRoleRepo is an in-memory RoleRepository keyed by role code.
type fakeRoleRepo struct {
	byCode map[string]*domain.Role
	users  *fakeUserRepo
}

func (f *fakeRoleRepo) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	if r, ok := f.byCode[code]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	var out []*domain.Role
	for _, roleID := range f.users.roles[userID] {
		for _, r := range f.byCode {
			if r.ID == roleID {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// fakeHasher avoids bcrypt cost in service tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeTokenIssuer records the claims it was asked to sign.
type fakeTokenIssuer struct {
	lastUserID string
	lastRoles  []string
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	f.lastUserID = userID
	f.lastRoles = roles
	return "token-" + userID, nil
}

func newUserServiceForTest() (domain.UserService, *fakeUserRepo, *fakeTokenIssuer) {
	users := newFakeUserRepo()
	roles := &fakeRoleRepo{
		byCode: map[string]*domain.Role{
			domain.RoleMember: {ID: "role-member", Code: domain.RoleMember},
			domain.RoleAdmin:  {ID: "role-admin", Code: domain.RoleAdmin},
		},
		users: users,
	}
	issuer := &fakeTokenIssuer{}
	svc := NewUserService(users, roles, fakeHasher{}, issuer, time.Hour, testTimeout)
	return svc, users, issuer
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "Dana@Example.com", password: "long-enough"},
		{name: "invalid email", email: "nope", password: "long-enough", wantErr: domain.ErrInvalidInput},
		{name: "short password", email: "dana@example.com", password: "short", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _ := newUserServiceForTest()
			user, err := svc.SignUp(ctx, tt.email, tt.password, "Dana")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "dana@example.com", user.Email)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.Equal(t, []string{"role-member"}, users.roles[user.ID])
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newUserServiceForTest()
		_, err := svc.SignUp(ctx, "dana@example.com", "long-enough", "Dana")
		require.NoError(t, err)
		_, err = svc.SignUp(ctx, "dana@example.com", "long-enough", "Dana Again")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues token with roles", func(t *testing.T) {
		svc, _, issuer := newUserServiceForTest()
		user, err := svc.SignUp(ctx, "dana@example.com", "long-enough", "Dana")
		require.NoError(t, err)

		token, got, err := svc.Login(ctx, "dana@example.com", "long-enough")
		require.NoError(t, err)
		assert.Equal(t, "token-"+user.ID, token)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.ID, issuer.lastUserID)
		assert.Equal(t, []string{domain.RoleMember}, issuer.lastRoles)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newUserServiceForTest()
		_, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newUserServiceForTest()
		_, err := svc.SignUp(ctx, "dana@example.com", "long-enough", "Dana")
		require.NoError(t, err)
		_, _, err = svc.Login(ctx, "dana@example.com", "wrong-password")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserServiceForTest()

	user, err := svc.SignUp(ctx, "dana@example.com", "long-enough", "Dana")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(ctx, "u-404")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
