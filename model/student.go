package model

// Student is the profile record the recommendation core reads. It is created
// at signup and mutated only by profile-edit flows; this core treats it as
// read-only.
type Student struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Schools returns the student's school affiliation as a set-like slice.
// In practice this is a singleton, but the scorer contract takes a set.
func (s Student) Schools() []string {
	if s.School == "" {
		return nil
	}
	return []string{s.School}
}

// StudentFromDocument decodes a student record. Missing fields decode to their
// zero values; only the identifier is required.
func StudentFromDocument(id string, doc Document) Student {
	student := Student{ID: id}
	if docID, ok := doc.GetID(); ok && id == "" {
		student.ID = docID
	}
	student.School, _ = doc.GetString("school")
	student.Email, _ = doc.GetString("email")
	student.Name, _ = doc.GetString("name")
	return student
}
