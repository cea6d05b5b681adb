package mongodb

import (
	"context"
	"time"

	"userapi/config"
	"userapi/internal/domain/entity"
	domainerrors "userapi/internal/domain/errors"
	"userapi/internal/domain/pagination"
	"userapi/internal/domain/repository"
	"userapi/internal/errors"
	"userapi/internal/infra/persistence/identifier"
	"userapi/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll    *mongo.Collection
	policy  pagination.Policy
	timeout time.Duration
	now     func() time.Time
}

// NewUserRepository creates a new user repository backed by coll.
func NewUserRepository(coll *mongo.Collection, policy pagination.Policy, cfg *config.Config) repository.UserRepository {
	return newUserRepository(coll, policy, cfg.Mongo.OperationTimeout)
}

func newUserRepository(coll *mongo.Collection, policy pagination.Policy, timeout time.Duration) *userRepository {
	return &userRepository{
		coll:    coll,
		policy:  policy,
		timeout: timeout,
		now:     time.Now,
	}
}

// withTimeout bounds a single store round trip.
func (repo *userRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, repo.timeout)
}

// timestamp is truncated to the store's millisecond precision so the returned
// record equals what a later read yields.
func (repo *userRepository) timestamp() time.Time {
	return repo.now().UTC().Truncate(time.Millisecond)
}

func (repo *userRepository) Create(ctx context.Context, input *entity.UserCreate) (*entity.User, error) {
	now := repo.timestamp()
	doc := &model.UserDocument{
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.ResolvedAge(),
		IsActive:  input.ResolvedIsActive(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result, err := repo.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domainerrors.NewDuplicateEmailError(input.Email)
		}

		return nil, normalizeError(err, "failed to create user")
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, domainerrors.NewDatabaseExecuteError(
			errors.Errorf("unexpected inserted id type %T", result.InsertedID),
			"failed to create user",
		)
	}
	doc.ID = id

	return toUserDomain(doc), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := identifier.Decode(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var doc model.UserDocument
	if err := repo.coll.FindOne(ctx, byID(oid)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("failed to find user by id")
		}

		return nil, normalizeError(err, "failed to find user by id")
	}

	return toUserDomain(&doc), nil
}

func (repo *userRepository) List(ctx context.Context, filter entity.UserFilter, page, limit int) ([]*entity.User, error) {
	bounds := repo.policy.Resolve(page, limit)
	opts := options.Find().
		SetSort(creationOrder).
		SetSkip(bounds.Skip).
		SetLimit(bounds.Take)

	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, buildUserFilter(filter), opts)
	if err != nil {
		return nil, normalizeError(err, "failed to list users")
	}

	var docs []model.UserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, normalizeError(err, "failed to decode users")
	}

	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		users = append(users, toUserDomain(&docs[i]))
	}

	return users, nil
}

func (repo *userRepository) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	total, err := repo.coll.CountDocuments(ctx, buildUserFilter(filter))
	if err != nil {
		return 0, normalizeError(err, "failed to count users")
	}

	return total, nil
}

func (repo *userRepository) Update(ctx context.Context, id string, input *entity.UserUpdate) (*entity.User, error) {
	oid, err := identifier.Decode(id)
	if err != nil {
		return nil, err
	}

	if input.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc model.UserDocument
	err = repo.coll.FindOneAndUpdate(ctx, byID(oid), buildUserUpdate(input, repo.timestamp()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("failed to update user")
		}
		if mongo.IsDuplicateKeyError(err) {
			email, _ := input.Email.Get()

			return nil, domainerrors.NewDuplicateEmailError(email)
		}

		return nil, normalizeError(err, "failed to update user")
	}

	return toUserDomain(&doc), nil
}

func (repo *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := identifier.Decode(id)
	if err != nil {
		return err
	}

	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result, err := repo.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return normalizeError(err, "failed to delete user")
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrUserNotFound.WrapMessage("failed to delete user")
	}

	return nil
}

func toUserDomain(doc *model.UserDocument) *entity.User {
	return &entity.User{
		ID:        identifier.Encode(doc.ID),
		Name:      doc.Name,
		Email:     doc.Email,
		Age:       doc.Age,
		IsActive:  doc.IsActive,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
