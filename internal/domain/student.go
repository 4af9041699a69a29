package domain

// Student is a read-only projection of the students table.
// Student CRUD belongs to the admissions system; this service only
// needs gender and the active flag to gate subscriptions.
type Student struct {
	ID       int64
	FullName string
	Gender   Gender
	Mobile   string
	IsActive bool
}
