package domain

// TaskStatusID mirrors the task_statuses lookup table seeded by the migrations.
type TaskStatusID int

const (
	TaskStatusTodo       TaskStatusID = 1
	TaskStatusInProgress TaskStatusID = 2
	TaskStatusReview     TaskStatusID = 3
	TaskStatusDone       TaskStatusID = 4
	TaskStatusArchived   TaskStatusID = 5
)

var taskStatusNames = map[TaskStatusID]string{
	TaskStatusTodo:       "todo",
	TaskStatusInProgress: "in_progress",
	TaskStatusReview:     "review",
	TaskStatusDone:       "done",
	TaskStatusArchived:   "archived",
}

func (s TaskStatusID) Valid() bool {
	_, ok := taskStatusNames[s]
	return ok
}

func (s TaskStatusID) String() string {
	if n, ok := taskStatusNames[s]; ok {
		return n
	}
	return "unknown"
}
