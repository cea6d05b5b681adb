// Package memory keeps users in process. It backs local runs without a
// database and the HTTP tests, with the same semantics as the MongoDB store.
package memory

import (
	"context"
	"sync"
	"time"

	"userapi/internal/domain/entity"
	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/domain/pagination"
	"userapi/internal/domain/repository"
	"userapi/internal/infra/persistence/identifier"
)

type userRepository struct {
	mu     sync.RWMutex
	users  map[string]*entity.User
	order  []string          // ids in creation order
	emails map[string]string // email -> id
	policy pagination.Policy
	now    func() time.Time
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository(policy pagination.Policy) repository.UserRepository {
	return newUserRepository(policy)
}

func newUserRepository(policy pagination.Policy) *userRepository {
	return &userRepository{
		users:  make(map[string]*entity.User),
		emails: make(map[string]string),
		policy: policy,
		now:    time.Now,
	}
}

func (repo *userRepository) timestamp() time.Time {
	return repo.now().UTC().Truncate(time.Millisecond)
}

func (repo *userRepository) Create(ctx context.Context, input *entity.UserCreate) (*entity.User, error) {
	if err := checkContext(ctx, "failed to create user"); err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.emails[input.Email]; taken {
		return nil, domainerrors.NewDuplicateEmailError(input.Email)
	}

	now := repo.timestamp()
	user := &entity.User{
		ID:        identifier.Encode(identifier.New()),
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.ResolvedAge(),
		IsActive:  input.ResolvedIsActive(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo.users[user.ID] = user
	repo.emails[user.Email] = user.ID
	repo.order = append(repo.order, user.ID)

	return user.Clone(), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "failed to find user by id"); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("failed to find user by id")
	}

	return user.Clone(), nil
}

func (repo *userRepository) List(ctx context.Context, filter entity.UserFilter, page, limit int) ([]*entity.User, error) {
	if err := checkContext(ctx, "failed to list users"); err != nil {
		return nil, err
	}

	bounds := repo.policy.Resolve(page, limit)

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]*entity.User, 0, bounds.Take)
	var skipped int64
	for _, id := range repo.order {
		if int64(len(users)) == bounds.Take {
			break
		}

		user := repo.users[id]
		if !filter.Matches(user) {
			continue
		}
		if skipped < bounds.Skip {
			skipped++

			continue
		}

		users = append(users, user.Clone())
	}

	return users, nil
}

func (repo *userRepository) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	if err := checkContext(ctx, "failed to count users"); err != nil {
		return 0, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var total int64
	for _, user := range repo.users {
		if filter.Matches(user) {
			total++
		}
	}

	return total, nil
}

func (repo *userRepository) Update(ctx context.Context, id string, input *entity.UserUpdate) (*entity.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}
	if err := checkContext(ctx, "failed to update user"); err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("failed to update user")
	}
	if input.IsEmpty() {
		return user.Clone(), nil
	}

	if email, ok := input.Email.Get(); ok && email != user.Email {
		if _, taken := repo.emails[email]; taken {
			return nil, domainerrors.NewDuplicateEmailError(email)
		}
	}

	previousEmail := user.Email
	input.ApplyTo(user)
	user.UpdatedAt = repo.timestamp()

	if user.Email != previousEmail {
		delete(repo.emails, previousEmail)
		repo.emails[user.Email] = user.ID
	}

	return user.Clone(), nil
}

func (repo *userRepository) Delete(ctx context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}
	if err := checkContext(ctx, "failed to delete user"); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("failed to delete user")
	}

	delete(repo.users, id)
	delete(repo.emails, user.Email)
	for i, existing := range repo.order {
		if existing == id {
			repo.order = append(repo.order[:i], repo.order[i+1:]...)

			break
		}
	}

	return nil
}

// canonicalID validates id and returns its lowercase hex form used as map key.
func canonicalID(id string) (string, error) {
	oid, err := identifier.Decode(id)
	if err != nil {
		return "", err
	}

	return identifier.Encode(oid), nil
}

// checkContext reports a cancelled or expired caller as a transient failure,
// matching what the network store does.
func checkContext(ctx context.Context, details string) error {
	if err := ctx.Err(); err != nil {
		return domainerrors.NewTransientStoreError(err, details)
	}

	return nil
}

type healthChecker struct{}

// NewHealthChecker reports the in-memory store as always reachable.
func NewHealthChecker() repository.HealthChecker {
	return healthChecker{}
}

func (healthChecker) Ping(ctx context.Context) error {
	return checkContext(ctx, "ping")
}
