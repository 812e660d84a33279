package models

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

var ProjectStatuses = []ProjectStatus{
	ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "To Do"
	TaskInProgress TaskStatus = "In Progress"
	TaskInReview   TaskStatus = "In Review"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

var TaskStatuses = []TaskStatus{
	TaskToDo, TaskInProgress, TaskInReview, TaskCompleted, TaskCancelled,
}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

var TaskPriorities = []TaskPriority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
}

func (p TaskPriority) Valid() bool {
	for _, v := range TaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}

type MemberRole string

const (
	RoleAdmin  MemberRole = "Admin"
	RoleOwner  MemberRole = "Owner"
	RoleMember MemberRole = "Member"
	RoleViewer MemberRole = "Viewer"
)

var MemberRoles = []MemberRole{RoleAdmin, RoleOwner, RoleMember, RoleViewer}

func (r MemberRole) Valid() bool {
	for _, v := range MemberRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Activity types written by the handlers. The column itself is free-form.
const (
	ActivityProjectCreated = "project_created"
	ActivityProjectUpdated = "project_updated"
	ActivityTaskCreated    = "task_created"
	ActivityTaskUpdated    = "task_updated"
	ActivityTaskCompleted  = "task_completed"
	ActivityTaskDeleted    = "task_deleted"
	ActivityMemberAdded    = "member_added"
	ActivityMemberUpdated  = "member_updated"
	ActivityMemberRemoved  = "member_removed"
	ActivityTaskAssigned   = "task_assigned"
	ActivityTaskUnassigned = "task_unassigned"
)
