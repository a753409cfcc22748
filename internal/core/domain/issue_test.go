package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStringSet(t *testing.T) {
	set := NewStringSet("bob", "alice", "alice")

	assert.Equal(t, StringSet{"alice", "bob"}, set)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("alice"))
	assert.False(t, set.Contains("carol"))
}

func TestNewStringSet_Empty(t *testing.T) {
	set := NewStringSet()

	assert.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
}

func TestNewStringSet_DoesNotAliasInput(t *testing.T) {
	values := []string{"b", "a"}
	NewStringSet(values...)

	assert.Equal(t, []string{"b", "a"}, values)
}

func TestSummarise(t *testing.T) {
	issues := []Issue{
		{IssueID: "A-1", Status: StatusOpen, Priority: PriorityHigh, Type: TypeBug, Resolution: ResolutionUnknown},
		{IssueID: "A-2", Status: StatusOpen, Priority: PriorityLow, Type: TypeBug, Resolution: ResolutionFixed,
			Assignees: NewStringSet("alice")},
		{IssueID: "A-3", Status: StatusClosed, Priority: PriorityHigh, Type: TypeTask, Resolution: ResolutionFixed},
	}

	sum := Summarise(issues)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Statuses[StatusOpen])
	assert.Equal(t, 1, sum.Statuses[StatusClosed])
	assert.Equal(t, 2, sum.Priorities[PriorityHigh])
	assert.Equal(t, 2, sum.Types[TypeBug])
	assert.Equal(t, 2, sum.Resolutions[ResolutionFixed])
	assert.Equal(t, 2, sum.Unassigned)
}

func TestSummarise_Empty(t *testing.T) {
	sum := Summarise(nil)

	assert.Equal(t, 0, sum.Total)
	assert.Empty(t, sum.Statuses)
}
