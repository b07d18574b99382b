package api

// Author is the ownership metadata embedded in blogs and comments. A nil
// Author means the backing user record is gone; it never matches any viewer.
type Author struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
}

// Blog represents a blog post. Timestamps stay in the backend's ISO-8601
// string form; they are displayed, never computed with.
type Blog struct {
	ID        string  `json:"_id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Author    *Author `json:"author"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// Comment represents a comment scoped to one blog post. The wire format
// carries the author under "userId".
type Comment struct {
	ID        string  `json:"_id"`
	BlogID    string  `json:"blogId"`
	Comment   string  `json:"comment"`
	Author    *Author `json:"userId"`
	CreatedAt string  `json:"createdAt"`
}

// UserDetails is the record returned by the identity endpoint
type UserDetails struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	FullName string `json:"fullName"`
	MobileNo string `json:"mobileNo"`
}
