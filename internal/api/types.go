package api

import (
	"fmt"
	"strings"
	"time"
)

// Project status values.
const (
	ProjectOpen   = "open"
	ProjectClosed = "closed"
)

// Application status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Departments the server accepts for a project.
var Departments = []string{
	"Engineering",
	"Design",
	"Data",
	"Quality Assurance",
	"DevOps",
	"Product",
}

// Date is a calendar date serialized as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// tolerate full timestamps from older server versions
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("parse date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Employee is a directory entry, also embedded in projects and applications.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
}

// ClientInfo is the client record embedded in a project. Every field is a
// plain string and optional fields default to "" rather than null, so edit
// forms never see missing values.
type ClientInfo struct {
	Name           string `json:"name"`
	ContactEmail   string `json:"contactEmail"`
	Mobile         string `json:"mobile"`
	CEO            string `json:"ceo"`
	Industry       string `json:"industry"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	GSTNumber      string `json:"gstNumber"`
	RegistrationID string `json:"registrationId"`
}

// Project mirrors the server's project record. The client never mutates one
// locally; it refetches after every successful write.
type Project struct {
	ID                string     `json:"id"`
	DisplayCode       string     `json:"displayCode"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Department        string     `json:"department"`
	RequiredSkills    []string   `json:"requiredSkills"`
	Status            string     `json:"status"`
	StartDate         Date       `json:"startDate"`
	EndDate           Date       `json:"endDate"`
	TeamSizeLimit     int        `json:"teamSizeLimit"`
	TeamLead          *Employee  `json:"teamLead"`
	AssignedEmployees []Employee `json:"assignedEmployees"`
	Client            ClientInfo `json:"client"`
}

// Application mirrors the server's application record.
type Application struct {
	ID                string     `json:"id"`
	Project           Project    `json:"project"`
	Employee          Employee   `json:"employee"`
	ResumeOrPortfolio string     `json:"resumeOrPortfolio"`
	Status            string     `json:"status"`
	AppliedAt         time.Time  `json:"appliedAt"`
	ApprovedAt        *time.Time `json:"approvedAt,omitempty"`
	RejectedReason    string     `json:"rejectedReason,omitempty"`
	DroppedByAdmin    bool       `json:"droppedByAdmin"`
}

// ProjectPayload is the normalized body for create and update. All strings
// are trimmed, dates serialized as calendar dates, and optional client
// fields set to "" before submission.
type ProjectPayload struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Department     string     `json:"department"`
	RequiredSkills []string   `json:"requiredSkills"`
	Status         string     `json:"status"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	TeamSizeLimit  int        `json:"teamSizeLimit"`
	TeamLeadID     string     `json:"teamLeadId"`
	Client         ClientInfo `json:"client"`
}
