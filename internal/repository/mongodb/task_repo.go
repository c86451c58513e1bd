package mongodb

import (
	"context"
	"errors"
	"time"

	"taskBoard/internal/models/task"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer warnIfSlow("создание задачи", start)

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, toTaskDocument(t)); err != nil {
		return translate("добавление задачи", err)
	}
	return nil
}

// Update перезаписывает поля задачи, comment_ids меняются только через
// AttachComment/DetachComment
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer warnIfSlow("обновление задачи", start)

	now := time.Now()
	doc := toTaskDocument(t)
	set := bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"status":      doc.Status,
		"priority":    doc.Priority,
		"position":    doc.Position,
		"tags":        doc.Tags,
		"updated_at":  now,
	}
	unset := bson.M{}
	if doc.AssignedTo != nil {
		set["assigned_to"] = *doc.AssignedTo
	} else {
		unset["assigned_to"] = ""
	}
	if doc.DueDate != nil {
		set["due_date"] = *doc.DueDate
	} else {
		unset["due_date"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated taskDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, update, opts).Decode(&updated)
	if err != nil {
		return translate("обновление задачи", err)
	}
	t.UpdatedAt = &now
	t.Comments = parseIDs(updated.CommentIDs)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("получение задачи", start)

	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translate("получение задачи", err)
	}
	return doc.model(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление задачи", start)

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translate("удаление задачи", err)
	}
	if res.DeletedCount == 0 {
		return translate("удаление задачи", mongo.ErrNoDocuments)
	}
	return nil
}

func taskFilter(filter service.TaskFilter) bson.M {
	query := bson.M{"project_id": filter.ProjectID.String()}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Priority != nil {
		query["priority"] = string(*filter.Priority)
	}
	if filter.AssignedTo != nil {
		query["assigned_to"] = filter.AssignedTo.String()
	}
	return query
}

// задачи проекта по позиции, при равной позиции новые первыми
func (r *TaskRepository) List(ctx context.Context, filter service.TaskFilter) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("получение задач проекта", start)

	opts := options.Find().SetSort(bson.D{
		{Key: "position", Value: 1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.coll.Find(ctx, taskFilter(filter), opts)
	if err != nil {
		return nil, translate("получение задач", err)
	}
	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("чтение задач", err)
	}

	tasks := make([]*task.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.model())
	}
	return tasks, nil
}

func (r *TaskRepository) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	start := time.Now()
	defer warnIfSlow("максимальная позиция", start)

	opts := options.FindOne().
		SetSort(bson.D{{Key: "position", Value: -1}}).
		SetProjection(bson.M{"position": 1})

	var doc struct {
		Position int `bson:"position"`
	}
	err := r.coll.FindOne(ctx, bson.M{"project_id": projectID.String()}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return -1, nil
	}
	if err != nil {
		return 0, translate("максимальная позиция", err)
	}
	return doc.Position, nil
}

func (r *TaskRepository) AttachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("привязка комментария", start)

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": taskID.String()},
		bson.M{"$addToSet": bson.M{"comment_ids": commentID.String()}})
	if err != nil {
		return translate("привязка комментария", err)
	}
	return expectMatch(res)
}

func (r *TaskRepository) DetachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("отвязка комментария", start)

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": taskID.String()},
		bson.M{"$pull": bson.M{"comment_ids": commentID.String()}})
	if err != nil {
		return translate("отвязка комментария", err)
	}
	return expectMatch(res)
}

var _ service.TaskRepository = (*TaskRepository)(nil)
