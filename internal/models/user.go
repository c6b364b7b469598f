package models

import "errors"

// DefaultPassword is accepted for every known user
const DefaultPassword = "secret_sauce"

// Known users
const (
	UserStandard  = "standard_user"
	UserLockedOut = "locked_out_user"
	UserProblem   = "problem_user"
)

// Login errors. Their text is shown to the shopper after "Epic sadface: ".
var (
	ErrUsernameRequired = errors.New("Username is required")
	ErrPasswordRequired = errors.New("Password is required")
	ErrLockedOut        = errors.New("Sorry, this user has been locked out.")
	ErrBadCredentials   = errors.New("Username and password do not match any user in this service")
)

// User is an account of the shop
type User struct {
	Username string
	// Problem users get a storefront whose sort control does nothing
	Problem bool
}

var users = map[string]User{
	UserStandard:  {Username: UserStandard},
	UserLockedOut: {Username: UserLockedOut},
	UserProblem:   {Username: UserProblem, Problem: true},
}

// Authenticate checks the credentials of a login attempt
func Authenticate(username, password string) (User, error) {
	if username == "" {
		return User{}, ErrUsernameRequired
	}
	if password == "" {
		return User{}, ErrPasswordRequired
	}
	u, ok := users[username]
	if !ok || password != DefaultPassword {
		return User{}, ErrBadCredentials
	}
	if username == UserLockedOut {
		return User{}, ErrLockedOut
	}
	return u, nil
}
