package shared

// Viewer identifies who is asking for content.
type Viewer struct {
	UserID string
	Role   string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// Owns reports whether v may edit content owned by teacherID.
func (v Viewer) Owns(teacherID string) bool {
	return v.IsAdmin() || v.UserID == teacherID
}
