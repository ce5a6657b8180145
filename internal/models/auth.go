package models

// User is the minimal identity kept alongside the persisted token.
type User struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// AuthResponse is the payload returned by the login and register endpoints.
type AuthResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

// Credential is one row of the local credential cache. Exactly two rows
// exist for an authenticated session: the bearer token and the serialized
// user, each under a configurable key.
type Credential struct {
	Key   string `gorm:"primarykey"`
	Value string `gorm:"not null"`
}
