package task

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type GetTaskInput struct {
	UserID bson.ObjectID
	TaskID bson.ObjectID
}

type GetTaskResult struct {
	Task *domain.Task
}

type GetTask struct {
	tasks ports.TaskRepository
}

func NewGetTask(tasks ports.TaskRepository) *GetTask {
	return &GetTask{tasks: tasks}
}

func (uc *GetTask) Execute(ctx context.Context, input GetTaskInput) (*GetTaskResult, error) {
	t, err := ownedTask(ctx, uc.tasks, input.TaskID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetTaskResult{Task: t}, nil
}

// ownedTask loads a task and enforces ownership: unknown id is not-found,
// someone else's task is forbidden.
func ownedTask(ctx context.Context, tasks ports.TaskRepository, taskID, userID bson.ObjectID) (*domain.Task, error) {
	t, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domerrors.ErrTaskNotFound
	}
	if t.UserID != userID {
		return nil, domerrors.ErrTaskForbidden
	}
	return t, nil
}
