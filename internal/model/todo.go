package model

// Todo is a task owned by a single user. CreatedAt holds the normalized
// textual timestamp produced by the store adapter.
type Todo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	OwnerID     string `json:"userId"`
	OwnerName   string `json:"userName"`
}

// OwnedBy reports whether the todo belongs to the given user.
func (t Todo) OwnedBy(userID string) bool {
	return userID != "" && t.OwnerID == userID
}

// Incomplete returns the todos that are not completed, preserving order.
func Incomplete(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
