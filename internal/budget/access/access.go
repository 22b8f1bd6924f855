package access

import (
	"github.com/omercouncil/budget-portal/internal/budget/normalize"
	"github.com/omercouncil/budget-portal/internal/budget/types"
)

// Scope is a closed sum over the three access levels. Unrecognized roles
// cannot be represented: they are rejected at the credential boundary.
type Scope interface {
	isScope()
}

// AdminScope sees every row.
type AdminScope struct{}

// WingScope is restricted to one wing.
type WingScope struct {
	Wing string
}

// DeptScope is restricted to one department.
type DeptScope struct {
	Dept string
}

func (AdminScope) isScope() {}
func (WingScope) isScope()  {}
func (DeptScope) isScope()  {}

// User is the resolved identity the pipeline consumes.
type User struct {
	Username string
	Scope    Scope
}

// Matches reports whether a row classified under the given wing and dept
// is visible to the scope. Comparison goes through canonicalization on
// both sides.
func Matches(scope Scope, wing, dept string) bool {
	switch s := scope.(type) {
	case AdminScope:
		return true
	case WingScope:
		return normalize.Equal(wing, s.Wing)
	case DeptScope:
		return normalize.Equal(dept, s.Dept)
	}
	return false
}

// ResolveVisible computes the subset of baseline rows the user may see.
// Pure function of its inputs; calling it twice yields equal output.
func ResolveVisible(user User, lines []types.BudgetLine) []types.BudgetLine {
	visible := make([]types.BudgetLine, 0, len(lines))
	for _, line := range lines {
		if Matches(user.Scope, line.Wing, line.Dept) {
			visible = append(visible, line)
		}
	}
	return visible
}

// ResolveVisibleTasks applies the same scope predicate to work-plan
// tasks. The filtering rule is symmetric between the two entity kinds.
func ResolveVisibleTasks(user User, tasks []types.WorkPlanTask) []types.WorkPlanTask {
	visible := make([]types.WorkPlanTask, 0, len(tasks))
	for _, task := range tasks {
		if Matches(user.Scope, task.Wing, task.Dept) {
			visible = append(visible, task)
		}
	}
	return visible
}

// ParentWing derives the wing a DEPT-scoped user belongs to: the wing of
// the first baseline or work-plan row whose dept matches the user's
// target. Other scopes derive their own target (or none for admin). The
// presentation layer uses this as the default drill-down.
func ParentWing(user User, lines []types.BudgetLine, tasks []types.WorkPlanTask) string {
	switch s := user.Scope.(type) {
	case AdminScope:
		return ""
	case WingScope:
		return s.Wing
	case DeptScope:
		for _, line := range lines {
			if normalize.Equal(line.Dept, s.Dept) {
				return line.Wing
			}
		}
		for _, task := range tasks {
			if normalize.Equal(task.Dept, s.Dept) {
				return task.Wing
			}
		}
	}
	return ""
}
