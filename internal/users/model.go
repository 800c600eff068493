package users

import "time"

type User struct {
	ID           string    `json:"userId"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FriendCount  int       `json:"friendCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
