package task

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

type DeleteTaskInput struct {
	UserID bson.ObjectID
	TaskID bson.ObjectID
}

type DeleteTaskResult struct{}

type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

func (uc *DeleteTask) Execute(ctx context.Context, input DeleteTaskInput) (*DeleteTaskResult, error) {
	if _, err := ownedTask(ctx, uc.tasks, input.TaskID, input.UserID); err != nil {
		return nil, err
	}
	if err := uc.tasks.Delete(ctx, input.TaskID); err != nil {
		return nil, err
	}
	return &DeleteTaskResult{}, nil
}
