package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
)

const taskCollection = "tasks"

type taskMongoRepository struct {
	db *mongo.Database
}

func NewTaskRepository(db *mongo.Database) ports.TaskRepository {
	return &taskMongoRepository{db: db}
}

func (r *taskMongoRepository) Create(ctx context.Context, task *domain.Task) error {
	result, err := r.db.Collection(taskCollection).InsertOne(ctx, task)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		task.ID = oid
	} else {
		return errors.New("inserted ID is not an ObjectID")
	}
	return nil
}

func (r *taskMongoRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.Task, error) {
	result := r.db.Collection(taskCollection).FindOne(ctx, bson.M{"_id": id})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	var task domain.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskMongoRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.db.Collection(taskCollection).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.Task
	for cursor.Next(ctx) {
		var task domain.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskMongoRepository) Save(ctx context.Context, task *domain.Task) error {
	set := bson.M{
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"priority":    task.Priority,
		"updated_at":  task.UpdatedAt,
	}
	if task.DueDate != nil {
		set["due_date"] = *task.DueDate
	}
	_, err := r.db.Collection(taskCollection).UpdateOne(ctx, bson.M{"_id": task.ID}, bson.M{"$set": set})
	return err
}

func (r *taskMongoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := r.db.Collection(taskCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
