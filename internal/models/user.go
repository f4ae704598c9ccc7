// server/internal/models/user.go
package models

// User is an application account (currently only the seeded admin).
type User struct {
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
	Role     string `bson:"role" json:"role"` // "admin"
}
