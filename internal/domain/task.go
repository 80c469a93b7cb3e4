package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Task statuses.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task priorities.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is a personal task owned by a single user.
type Task struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Status      string        `bson:"status"`
	Priority    string        `bson:"priority"`
	DueDate     *time.Time    `bson:"due_date,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
