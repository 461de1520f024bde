package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var holder struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":17,"c":null}`), &holder))
	assert.Equal(t, ID("abc"), holder.A)
	assert.Equal(t, ID("17"), holder.B)
	assert.Equal(t, ID(""), holder.C)
}

func TestID_Matches(t *testing.T) {
	assert.True(t, ID("17").Matches("17"))
	assert.False(t, ID("17").Matches("18"))
	assert.False(t, ID("").Matches(""))
}

func TestDate_RoundTripAndNull(t *testing.T) {
	var holder struct {
		Due  Date `json:"due"`
		None Date `json:"none"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-03-05","none":null}`), &holder))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), holder.Due.Time)
	assert.True(t, holder.None.IsZero())

	out, err := json.Marshal(holder)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-03-05T00:00:00Z","none":null}`, string(out))

	_, err = ParseDate("05/03/2024")
	assert.Error(t, err)
}

func TestTask_NormalizeAssignment(t *testing.T) {
	legacy := Task{AssignedTo: "u1", AssignedToName: "Ann"}
	legacy.NormalizeAssignment()
	assert.Equal(t, []ID{"u1"}, legacy.AssigneeIDs)
	assert.Equal(t, []string{"Ann"}, legacy.AssigneeNames)

	multi := Task{AssigneeIDs: []ID{"u2", "u3"}, AssigneeNames: []string{"Bob", "Cid"}, AssignedTo: "stale"}
	multi.NormalizeAssignment()
	assert.Equal(t, ID("u2"), multi.AssignedTo)
	assert.Equal(t, "Bob", multi.AssignedToName)
	assert.True(t, multi.IsAssignedTo("u3"))
	assert.False(t, multi.IsAssignedTo(""))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	past := NewDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, (&Task{Status: TaskStatusPending, DueDate: past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusCompleted, DueDate: past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPending}).IsOverdue(now))
}

func TestProject_EffectiveStatus(t *testing.T) {
	assert.Equal(t, ProjectStatusCompleted, (&Project{Status: ProjectStatusActive, Progress: 100}).EffectiveStatus())
	assert.Equal(t, ProjectStatusOnHold, (&Project{Status: ProjectStatusOnHold, Progress: 60}).EffectiveStatus())
}

func TestParseUserRole(t *testing.T) {
	for in, want := range map[string]UserRole{
		"Director":     UserRoleDirector,
		"project_head": UserRoleProjectHead,
		"Project-Head": UserRoleProjectHead,
		" employee ":   UserRoleEmployee,
	} {
		got, ok := ParseUserRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseUserRole("admin")
	assert.False(t, ok)
}

func TestValidWorkDone(t *testing.T) {
	assert.True(t, ValidWorkDone(0))
	assert.True(t, ValidWorkDone(100))
	assert.False(t, ValidWorkDone(55))
	assert.False(t, ValidWorkDone(110))
	assert.False(t, ValidWorkDone(-10))
}
