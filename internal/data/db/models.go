package db

// User is a row of the users table.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    int64
}

// Feedback is a row of the feedback table joined with its author name and
// comment count.
type Feedback struct {
	ID            string
	UserID        string
	AuthorName    string
	Title         string
	Description   string
	Category      string
	CommentsCount int64
	CreatedAt     int64
	UpdatedAt     int64
}

// Comment is a row of the comments table joined with its author name.
type Comment struct {
	ID         string
	FeedbackID string
	UserID     string
	AuthorName string
	Content    string
	CreatedAt  int64
	UpdatedAt  int64
}

// Notification is a row of the notifications table.
type Notification struct {
	ID        int64
	Level     string
	Message   string
	CreatedAt int64
}
