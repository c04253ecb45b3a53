package domain

// Tag represents a user-defined label attachable to tasks.
type Tag struct {
	ID       int64
	Name     string
	Color    string // hex #rrggbb
	Position int
}

// NewTag creates a new Tag with the given name and color at the given position.
func NewTag(name, color string, position int) Tag {
	return Tag{
		Name:     name,
		Color:    color,
		Position: position,
	}
}

// IsValid checks if the tag has valid data.
func (t Tag) IsValid() bool {
	return t.Name != "" && t.Color != ""
}

// String returns the tag name for display purposes.
func (t Tag) String() string {
	return t.Name
}
