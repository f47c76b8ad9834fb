package model

// Collection paths in the document tree. Attendance entries live at
// attendance/{workerID}/{projectName}/{key}.
const (
	CollectionWorkers     = "workers"
	CollectionCredentials = "logincredentials"
	CollectionProjects    = "projects"
	CollectionAttendance  = "attendance"
)

// Worker roles.
const (
	RoleWorker = "WORKER"
	RoleAdmin  = "ADMIN"
)

// Worker is a roster entry. The password never lives here; it goes into the
// shadow credential record, linked only by the username string.
type Worker struct {
	Username      string `json:"username"`
	Role          string `json:"role"`
	FullName      string `json:"fullName"`
	ContactNumber string `json:"contactNumber"`
	DOB           string `json:"dob"`
	DOJ           string `json:"doj"`
	Address       string `json:"address"`
}

// Credential is the login record kept per worker in its own collection.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Project groups workers by username.
type Project struct {
	ProjectName     string   `json:"projectName"`
	ProjectOverview string   `json:"projectOverview"`
	Workers         []string `json:"workers"`
}

// AttendanceEntry is one day of work for a worker on a project. Field casing
// follows the stored records (Date is capitalized).
type AttendanceEntry struct {
	Date            string `json:"Date"`
	WorkDescription string `json:"workDescription"`
	ImagePath       string `json:"imagePath"`
}

// ProjectPage is the per-worker project view returned by loadPageInfo.
type ProjectPage struct {
	ProjectName string          `json:"project_name"`
	Description string          `json:"description"`
	Workers     []ProjectWorker `json:"workers"`
}

// ProjectWorker is the worker detail embedded in a ProjectPage.
type ProjectWorker struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	DOB           string `json:"dob"`
	DOJ           string `json:"doj"`
	Role          string `json:"role"`
}
