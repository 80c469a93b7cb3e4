package task

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
)

// UpdateTaskInput carries the mutable fields; only non-nil ones are applied.
type UpdateTaskInput struct {
	UserID      bson.ObjectID
	TaskID      bson.ObjectID
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

type UpdateTaskResult struct {
	Task *domain.Task
}

type UpdateTask struct {
	tasks ports.TaskRepository
}

func NewUpdateTask(tasks ports.TaskRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks}
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*UpdateTaskResult, error) {
	t, err := ownedTask(ctx, uc.tasks, input.TaskID, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	t.UpdatedAt = time.Now()
	if err := uc.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	return &UpdateTaskResult{Task: t}, nil
}
