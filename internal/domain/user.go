package domain

import "strconv"

// UserID identifies an end user. It is the only key the scheduler sees.
type UserID int64

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }

// User carries presentational fields alongside the identity.
type User struct {
	ID        UserID
	FirstName string
	LastName  string
	Username  string // without leading @
}
