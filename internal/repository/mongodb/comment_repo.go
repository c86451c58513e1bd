package mongodb

import (
	"context"
	"time"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository struct {
	coll *mongo.Collection
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	start := time.Now()
	defer warnIfSlow("создание комментария", start)

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, toCommentDocument(c)); err != nil {
		return translate("добавление комментария", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	start := time.Now()
	defer warnIfSlow("обновление комментария", start)

	now := time.Now()
	set := bson.M{
		"content":    c.Content,
		"is_edited":  c.IsEdited,
		"updated_at": now,
	}
	if c.EditedAt != nil {
		set["edited_at"] = *c.EditedAt
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": c.ID.String()}, bson.M{"$set": set})
	if err != nil {
		return translate("обновление комментария", err)
	}
	if err := expectMatch(res); err != nil {
		return err
	}
	c.UpdatedAt = &now
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	start := time.Now()
	defer warnIfSlow("получение комментария", start)

	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translate("получение комментария", err)
	}
	return doc.model(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление комментария", start)

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translate("удаление комментария", err)
	}
	if res.DeletedCount == 0 {
		return translate("удаление комментария", mongo.ErrNoDocuments)
	}
	return nil
}

// комментарии задачи от старых к новым
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*comment.Comment, error) {
	start := time.Now()
	defer warnIfSlow("получение комментариев", start)

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, bson.M{"task_id": taskID.String()}, opts)
	if err != nil {
		return nil, translate("получение комментариев", err)
	}
	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("чтение комментариев", err)
	}

	comments := make([]*comment.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, doc.model())
	}
	return comments, nil
}

var _ service.CommentRepository = (*CommentRepository)(nil)
