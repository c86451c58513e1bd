package mongodb

import (
	"context"
	"time"

	"taskBoard/internal/models/user"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer warnIfSlow("создание пользователя", start)

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, toUserDocument(u)); err != nil {
		return translate("добавление пользователя", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer warnIfSlow("обновление пользователя", start)

	now := time.Now()
	u.UpdatedAt = &now

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID.String()}, toUserDocument(u))
	if err != nil {
		return translate("обновление пользователя", err)
	}
	if res.MatchedCount == 0 {
		return translate("обновление пользователя", mongo.ErrNoDocuments)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, operation string, filter bson.M) (*user.User, error) {
	start := time.Now()
	defer warnIfSlow(operation, start)

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(operation, err)
	}
	return doc.model(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, "получение пользователя", bson.M{"_id": id.String()})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "поиск пользователя по email", bson.M{"email": email})
}

var _ service.UserRepository = (*UserRepository)(nil)
