// Package ticktick is a client for the TickTick Open API (v1).
package ticktick

// Task priorities as TickTick encodes them.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Task statuses.
const (
	StatusActive    = 0
	StatusCompleted = 2
)

type ChecklistItem struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Status        int    `json:"status"` // 0=Normal, 1=Completed
	CompletedTime string `json:"completedTime,omitempty"`
	IsAllDay      bool   `json:"isAllDay,omitempty"`
	SortOrder     int64  `json:"sortOrder,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	TimeZone      string `json:"timeZone,omitempty"`
}

type Task struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"projectId"`
	Title         string          `json:"title"`
	Content       string          `json:"content,omitempty"`
	Desc          string          `json:"desc,omitempty"`
	IsAllDay      bool            `json:"isAllDay,omitempty"`
	StartDate     string          `json:"startDate,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	TimeZone      string          `json:"timeZone,omitempty"`
	RepeatFlag    string          `json:"repeatFlag,omitempty"`
	Reminders     []string        `json:"reminders,omitempty"`
	Priority      int             `json:"priority"`
	Status        int             `json:"status"`
	CompletedTime string          `json:"completedTime,omitempty"`
	SortOrder     int64           `json:"sortOrder,omitempty"`
	Items         []ChecklistItem `json:"items,omitempty"`
	ParentID      string          `json:"parentId,omitempty"`
}

type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	SortOrder  int64  `json:"sortOrder,omitempty"`
	Closed     bool   `json:"closed,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	ViewMode   string `json:"viewMode,omitempty"` // "list" | "kanban" | "timeline"
	Permission string `json:"permission,omitempty"`
	Kind       string `json:"kind,omitempty"` // "TASK" | "NOTE"
}

type ProjectData struct {
	Project Project `json:"project"`
	Tasks   []Task  `json:"tasks"`
}

// CreateTaskInput carries the fields of a task creation request.
// Pointer fields distinguish "not set" from a zero value.
type CreateTaskInput struct {
	Title     string  `json:"title"`
	ProjectID string  `json:"projectId"`
	Content   *string `json:"content,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
	ParentID  *string `json:"parentId,omitempty"`
}

type UpdateTaskInput struct {
	TaskID    string  `json:"-"`
	ProjectID string  `json:"projectId"`
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
}

type CreateProjectInput struct {
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Kind     string `json:"kind,omitempty"`
}
