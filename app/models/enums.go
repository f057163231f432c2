package models

// Role is a named privilege level granted to exactly one user via a
// user_roles row. A user with no row is pending and has no functional access.
type Role string

const (
	RoleMasterAdmin Role = "master_admin"
	RoleStaff       Role = "staff"
)

// Valid reports whether r is one of the closed role set.
func (r Role) Valid() bool {
	return r == RoleMasterAdmin || r == RoleStaff
}

// StudentStatus defines the possible lifecycle states for a student.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
	StudentAlumni   StudentStatus = "alumni"
	StudentLeft     StudentStatus = "left"
)

// FeeStatus defines the possible status values for a fee record.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeeOverdue FeeStatus = "overdue"
	FeePaid    FeeStatus = "paid"
)

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Leave   AttendanceStatus = "leave"
)

// AuditAction defines the recorded mutation kinds.
type AuditAction string

const (
	AuditInsert AuditAction = "INSERT"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)
