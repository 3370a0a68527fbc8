package mongo

import (
	"context"
	"errors"

	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersRepo struct {
	coll *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) *UsersRepo {
	return &UsersRepo{coll: db.Collection("users")}
}

// EnsureIndexes creates the unique email index the duplicate-signup check
// relies on. Safe to call on every startup.
func (r *UsersRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, role string) (user.User, error) {
	u := user.New(email, passwordHash, role)

	_, err := r.coll.InsertOne(ctx, u)

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, repo.ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"dashboard_data": data}})
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"role": role}})
}

func (r *UsersRepo) findOneAndUpdate(ctx context.Context, id string, update bson.M) (user.User, error) {
	var u user.User

	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	// No existence check: deleting an absent id succeeds.
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]user.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})

	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []user.User{}

	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UsersRepo) ListSummaries(ctx context.Context) ([]user.Summary, error) {
	projection := bson.M{"email": 1, "role": 1, "created_at": 1}

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(projection))

	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	summaries := []user.Summary{}

	if err := cur.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
