package task

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
)

type ListTasksInput struct {
	UserID bson.ObjectID
}

type ListTasksResult struct {
	Tasks []*domain.Task
}

// ListTasks returns the user's tasks, newest first.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, input ListTasksInput) (*ListTasksResult, error) {
	tasks, err := uc.tasks.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ListTasksResult{Tasks: tasks}, nil
}
