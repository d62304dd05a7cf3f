// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

type Entry struct {
	Timestamp     time.Time       `json:"timestamp"`
	ActorEmail    string          `json:"actor_email"`
	Action        string          `json:"action"`
	ResourceID    string          `json:"resource_id"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}

// Actions recorded by the DAOs.
const (
	ActionCreateEmployee   = "CREATE_EMPLOYEE"
	ActionUpdateEmployee   = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee   = "DELETE_EMPLOYEE"
	ActionChangeSalary     = "CHANGE_SALARY"
	ActionCreateDepartment = "CREATE_DEPARTMENT"
	ActionUpdateDepartment = "UPDATE_DEPARTMENT"
	ActionDeleteDepartment = "DELETE_DEPARTMENT"
	ActionCreateGrowth     = "CREATE_GROWTH_RECORD"
	ActionDeleteGrowth     = "DELETE_GROWTH_RECORD"
)
