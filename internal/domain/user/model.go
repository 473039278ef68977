package user

import "time"

type User struct {
	ID        string
	Email     string
	Password  string // bcrypt hash
	CreatedAt time.Time
}
