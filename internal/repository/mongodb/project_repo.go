package mongodb

import (
	"context"
	"time"

	"taskBoard/internal/models/project"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// участники вложены в документ проекта
type ProjectRepository struct {
	coll *mongo.Collection
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	start := time.Now()
	defer warnIfSlow("создание проекта", start)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, toProjectDocument(p)); err != nil {
		return translate("добавление проекта", err)
	}
	return nil
}

// Update не трогает task_seq, его двигает только BumpTaskSeq
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	start := time.Now()
	defer warnIfSlow("обновление проекта", start)

	now := time.Now()
	doc := toProjectDocument(p)
	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"status":      doc.Status,
		"members":     doc.Members,
		"color":       doc.Color,
		"start_date":  doc.StartDate,
		"end_date":    doc.EndDate,
		"updated_at":  now,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return translate("обновление проекта", err)
	}
	if err := expectMatch(res); err != nil {
		return err
	}
	p.UpdatedAt = &now
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	start := time.Now()
	defer warnIfSlow("получение проекта", start)

	var doc projectDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translate("получение проекта", err)
	}
	return doc.model(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление проекта", start)

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translate("удаление проекта", err)
	}
	if res.DeletedCount == 0 {
		return translate("удаление проекта", mongo.ErrNoDocuments)
	}
	return nil
}

// проекты, где пользователь владелец или участник, новые первыми
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	start := time.Now()
	defer warnIfSlow("получение проектов пользователя", start)

	filter := bson.M{"$or": bson.A{
		bson.M{"owner_id": userID.String()},
		bson.M{"members.user_id": userID.String()},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate("получение проектов", err)
	}
	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate("чтение проектов", err)
	}

	projects := make([]*project.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.model())
	}
	return projects, nil
}

// BumpTaskSeq поднимает счётчик позиций, но никогда не опускает его
func (r *ProjectRepository) BumpTaskSeq(ctx context.Context, id uuid.UUID, next int) error {
	start := time.Now()
	defer warnIfSlow("резервирование позиции", start)

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$max": bson.M{"task_seq": next}})
	if err != nil {
		return translate("резервирование позиции", err)
	}
	return expectMatch(res)
}

var _ service.ProjectRepository = (*ProjectRepository)(nil)
