package task

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
)

type CreateTaskInput struct {
	UserID      bson.ObjectID
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

type CreateTaskResult struct {
	Task *domain.Task
}

type CreateTask struct {
	tasks ports.TaskRepository
}

func NewCreateTask(tasks ports.TaskRepository) *CreateTask {
	return &CreateTask{tasks: tasks}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*CreateTaskResult, error) {
	now := time.Now()
	t := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		UserID:      input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	if t.Priority == "" {
		t.Priority = domain.TaskPriorityMedium
	}
	if err := uc.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return &CreateTaskResult{Task: t}, nil
}
