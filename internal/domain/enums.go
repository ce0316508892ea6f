package domain

// TaskStatus is the closed set of lifecycle buckets a task can be in.
type TaskStatus string

const (
	StatusTasks     TaskStatus = "Tasks"
	StatusProjects  TaskStatus = "Projects"
	StatusIdeas     TaskStatus = "Ideas"
	StatusNotNow    TaskStatus = "Not Now"
	StatusBlocked   TaskStatus = "Blocked"
	StatusWaitingOn TaskStatus = "Waiting On"
	StatusDone      TaskStatus = "Done"
	StatusWontDo    TaskStatus = "Won't Do"
)

// AllStatuses lists every canonical status value.
var AllStatuses = []TaskStatus{
	StatusTasks, StatusProjects, StatusIdeas, StatusNotNow,
	StatusBlocked, StatusWaitingOn, StatusDone, StatusWontDo,
}

// IsTerminal reports whether the status ends a task's lifecycle.
// Terminal tasks are excluded from prioritization and dedup scans.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusWontDo
}

// Valid reports whether s is one of the canonical status values.
func (s TaskStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TaskType classifies a task under the behavioral heuristics.
// At most one per task; drives scoring tags.
type TaskType string

const (
	TypeIdentity           TaskType = "Identity"
	TypeCompound           TaskType = "Compound"
	TypeDoItNow            TaskType = "Do It Now"
	TypeNeverMiss2x        TaskType = "Never Miss 2x"
	TypeImportantNotUrgent TaskType = "Important Not Urgent"
	TypeUnblocks           TaskType = "Unblocks"
)

// AllTypes lists every canonical task type value.
var AllTypes = []TaskType{
	TypeIdentity, TypeCompound, TypeDoItNow,
	TypeNeverMiss2x, TypeImportantNotUrgent, TypeUnblocks,
}

// Valid reports whether t is one of the canonical type values.
func (t TaskType) Valid() bool {
	for _, v := range AllTypes {
		if t == v {
			return true
		}
	}
	return false
}

// EnergyLevel is a subjective cost rating for a task.
type EnergyLevel string

const (
	EnergyRed    EnergyLevel = "Red"
	EnergyYellow EnergyLevel = "Yellow"
	EnergyGreen  EnergyLevel = "Green"
)

// Valid reports whether e is one of the canonical energy values.
func (e EnergyLevel) Valid() bool {
	return e == EnergyRed || e == EnergyYellow || e == EnergyGreen
}
