package user

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("invalid user data")

// User is a dashboard account. Uid is the identifier issued by the external
// authentication provider and sent by the client in the X-User-Id header.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}
