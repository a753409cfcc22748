package domain

// Status is the workflow state of an issue.
// Status is not configurable; see StatusFromLabel.
type Status string

// Known issue states.
const (
	StatusOpen       Status = "OPEN"
	StatusReopened   Status = "REOPENED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusUnknown    Status = "UNKNOWN"
)

var statusLabels = []labelled[Status]{
	{StatusOpen, "Open"},
	{StatusReopened, "Reopened"},
	{StatusInProgress, "In Progress"},
	{StatusResolved, "Resolved"},
	{StatusClosed, "Closed"},
	{StatusUnknown, unknownLabel},
}

// StatusFromLabel maps an exported status label onto a Status.
// Only exact matches count; anything else is StatusUnknown.
func StatusFromLabel(label string) Status {
	for _, l := range statusLabels {
		if l.value != StatusUnknown && l.label == label {
			return l.value
		}
	}
	return StatusUnknown
}

// ParseStatus resolves a status key such as "IN_PROGRESS" or its label.
func ParseStatus(key string) (Status, bool) { return fromKey(statusLabels, key) }

// Label returns the canonical display label.
func (s Status) Label() string { return labelOf(statusLabels, s) }

// String returns the key.
func (s Status) String() string { return string(s) }

// Priority is the normalised importance of an issue.
type Priority string

// Known priorities, lowest first.
const (
	PriorityTrivial  Priority = "TRIVIAL"
	PriorityMinor    Priority = "MINOR"
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityMajor    Priority = "MAJOR"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
	PriorityBlocker  Priority = "BLOCKER"
	PriorityUnknown  Priority = "UNKNOWN"
)

var priorityLabels = []labelled[Priority]{
	{PriorityTrivial, "Trivial"},
	{PriorityMinor, "Minor"},
	{PriorityLow, "Low"},
	{PriorityMedium, "Medium"},
	{PriorityMajor, "Major"},
	{PriorityHigh, "High"},
	{PriorityCritical, "Critical"},
	{PriorityBlocker, "Blocker"},
	{PriorityUnknown, unknownLabel},
}

// PriorityLabels returns the canonical labels in their defined order.
func PriorityLabels() []string { return labelsOf(priorityLabels) }

// PriorityFromLabel returns the priority whose canonical label equals label.
func PriorityFromLabel(label string) (Priority, bool) { return fromLabel(priorityLabels, label) }

// ParsePriority resolves a category key ("HIGH") or canonical label ("High").
func ParsePriority(key string) (Priority, bool) { return fromKey(priorityLabels, key) }

// Label returns the canonical display label.
func (p Priority) Label() string { return labelOf(priorityLabels, p) }

// String returns the key.
func (p Priority) String() string { return string(p) }

// IssueType is the normalised kind of an issue.
type IssueType string

// Known issue types.
const (
	TypeBug           IssueType = "BUG"
	TypeEnhancement   IssueType = "ENHANCEMENT"
	TypeFeature       IssueType = "FEATURE"
	TypeTask          IssueType = "TASK"
	TypeSubtask       IssueType = "SUBTASK"
	TypeImprovement   IssueType = "IMPROVEMENT"
	TypeTest          IssueType = "TEST"
	TypeDocumentation IssueType = "DOCUMENTATION"
	TypeUnknown       IssueType = "UNKNOWN"
)

var typeLabels = []labelled[IssueType]{
	{TypeBug, "Bug"},
	{TypeEnhancement, "Enhancement"},
	{TypeFeature, "New Feature"},
	{TypeTask, "Task"},
	{TypeSubtask, "Sub-task"},
	{TypeImprovement, "Improvement"},
	{TypeTest, "Test"},
	{TypeDocumentation, "Documentation"},
	{TypeUnknown, unknownLabel},
}

// TypeLabels returns the canonical labels in their defined order.
func TypeLabels() []string { return labelsOf(typeLabels) }

// TypeFromLabel returns the type whose canonical label equals label.
func TypeFromLabel(label string) (IssueType, bool) { return fromLabel(typeLabels, label) }

// ParseType resolves a category key ("BUG") or canonical label ("Bug").
func ParseType(key string) (IssueType, bool) { return fromKey(typeLabels, key) }

// Label returns the canonical display label.
func (t IssueType) Label() string { return labelOf(typeLabels, t) }

// String returns the key.
func (t IssueType) String() string { return string(t) }

// Resolution records how an issue was closed.
type Resolution string

// Known resolutions.
const (
	ResolutionUnresolved      Resolution = "UNRESOLVED"
	ResolutionFixed           Resolution = "FIXED"
	ResolutionWontFix         Resolution = "WONT_FIX"
	ResolutionDuplicate       Resolution = "DUPLICATE"
	ResolutionInvalid         Resolution = "INVALID"
	ResolutionIncomplete      Resolution = "INCOMPLETE"
	ResolutionCannotReproduce Resolution = "CANNOT_REPRODUCE"
	ResolutionDone            Resolution = "DONE"
	ResolutionUnknown         Resolution = "UNKNOWN"
)

var resolutionLabels = []labelled[Resolution]{
	{ResolutionUnresolved, "Unresolved"},
	{ResolutionFixed, "Fixed"},
	{ResolutionWontFix, "Won't Fix"},
	{ResolutionDuplicate, "Duplicate"},
	{ResolutionInvalid, "Invalid"},
	{ResolutionIncomplete, "Incomplete"},
	{ResolutionCannotReproduce, "Cannot Reproduce"},
	{ResolutionDone, "Done"},
	{ResolutionUnknown, unknownLabel},
}

// ResolutionLabels returns the canonical labels in their defined order.
func ResolutionLabels() []string { return labelsOf(resolutionLabels) }

// ResolutionFromLabel returns the resolution whose canonical label equals label.
func ResolutionFromLabel(label string) (Resolution, bool) { return fromLabel(resolutionLabels, label) }

// ParseResolution resolves a category key ("WONT_FIX") or canonical label ("Won't Fix").
func ParseResolution(key string) (Resolution, bool) { return fromKey(resolutionLabels, key) }

// Label returns the canonical display label.
func (r Resolution) Label() string { return labelOf(resolutionLabels, r) }

// String returns the key.
func (r Resolution) String() string { return string(r) }

const unknownLabel = "Unknown"

type labelled[T ~string] struct {
	value T
	label string
}

func labelsOf[T ~string](table []labelled[T]) []string {
	out := make([]string, len(table))
	for i, l := range table {
		out[i] = l.label
	}
	return out
}

func labelOf[T ~string](table []labelled[T], v T) string {
	for _, l := range table {
		if l.value == v {
			return l.label
		}
	}
	return unknownLabel
}

func fromLabel[T ~string](table []labelled[T], label string) (T, bool) {
	for _, l := range table {
		if l.label == label {
			return l.value, true
		}
	}
	var zero T
	return zero, false
}

func fromKey[T ~string](table []labelled[T], key string) (T, bool) {
	for _, l := range table {
		if string(l.value) == key || l.label == key {
			return l.value, true
		}
	}
	var zero T
	return zero, false
}
