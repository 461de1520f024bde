package entities

// Permissions is the explicit set of actions a viewer may take on one entity.
type Permissions struct {
	View              bool `json:"view"`
	Edit              bool `json:"edit"`
	Delete            bool `json:"delete"`
	Comment           bool `json:"comment"`
	ChangeStatus      bool `json:"changeStatus"`
	RequestExtension  bool `json:"requestExtension"`
	RespondExtension  bool `json:"respondExtension"`
	RequestCompletion bool `json:"requestCompletion"`
	ApproveCompletion bool `json:"approveCompletion"`
}

func allPermissions() Permissions {
	return Permissions{
		View:              true,
		Edit:              true,
		Delete:            true,
		Comment:           true,
		ChangeStatus:      true,
		RespondExtension:  true,
		ApproveCompletion: true,
	}
}

// Viewer is the signed-in user the dashboard acts for.
type Viewer struct {
	ID   ID       `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

func (v Viewer) IsDirector() bool    { return v.Role == UserRoleDirector }
func (v Viewer) IsProjectHead() bool { return v.Role == UserRoleProjectHead }
func (v Viewer) IsEmployee() bool    { return v.Role == UserRoleEmployee }

// CanCreateTask reports whether the viewer may create a task for assignees.
// Employees may only create tasks for themselves.
func (v Viewer) CanCreateTask(assignees []ID) bool {
	if !v.Role.IsValid() {
		return false
	}
	if !v.IsEmployee() {
		return true
	}
	for _, id := range assignees {
		if !id.Matches(v.ID) {
			return false
		}
	}
	return true
}

// CanManageProjects reports whether the viewer may create projects.
func (v Viewer) CanManageProjects() bool {
	return v.IsDirector() || v.IsProjectHead()
}

// TaskPermissions resolves what the viewer may do with a task.
func (v Viewer) TaskPermissions(t *Task) Permissions {
	switch v.Role {
	case UserRoleDirector:
		return allPermissions()
	case UserRoleProjectHead:
		p := allPermissions()
		p.RequestExtension = t.IsAssignedTo(v.ID)
		p.RequestCompletion = false
		return p
	case UserRoleEmployee:
		assigned := t.IsAssignedTo(v.ID)
		created := t.CreatedBy.Matches(v.ID)
		ownTask := created && t.IsEmployeeCreated
		return Permissions{
			View:              assigned || created,
			Edit:              ownTask,
			Delete:            ownTask,
			Comment:           assigned || created,
			ChangeStatus:      assigned,
			RequestExtension:  assigned && !ownTask && !t.HasPendingExtension(),
			RequestCompletion: assigned && !ownTask && !t.IsCompleted() && t.CompletionRequestStatus != CompletionRequestPending,
		}
	default:
		return Permissions{}
	}
}

// ProjectPermissions resolves what the viewer may do with a project.
func (v Viewer) ProjectPermissions(p *Project) Permissions {
	switch v.Role {
	case UserRoleDirector:
		return allPermissions()
	case UserRoleProjectHead:
		owns := p.AssignedEmployeeID.Matches(v.ID)
		return Permissions{
			View:         true,
			Edit:         owns,
			Comment:      true,
			ChangeStatus: owns,
		}
	case UserRoleEmployee:
		assigned := p.AssignedEmployeeID.Matches(v.ID)
		return Permissions{
			View:    assigned,
			Comment: assigned,
		}
	default:
		return Permissions{}
	}
}

// WorkPermissions resolves what the viewer may do with an independent work entry.
func (v Viewer) WorkPermissions(w *IndependentWork) Permissions {
	owner := w.EmployeeID.Matches(v.ID)
	switch v.Role {
	case UserRoleDirector, UserRoleProjectHead:
		return Permissions{
			View:    true,
			Edit:    owner,
			Delete:  owner || v.IsDirector(),
			Comment: true,
		}
	case UserRoleEmployee:
		return Permissions{
			View:    owner,
			Edit:    owner,
			Delete:  owner,
			Comment: owner,
		}
	default:
		return Permissions{}
	}
}
