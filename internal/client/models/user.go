package models

// User is the session record of the person using the client.
// A User with an empty Token is the logged-out sentinel; see DefaultUser.
type User struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	UsernameOrEmail string `json:"usernameOrEmail"`
	Token           string `json:"token"`

	// PushNotificationsSetting and DeviceToken are carried for storage
	// compatibility; NewUser always leaves them at their defaults.
	PushNotificationsSetting bool    `json:"pushNotificationsSetting"`
	DeviceToken              *string `json:"deviceToken,omitempty"`
}

// UserOption sets one field on a User built by NewUser.
type UserOption func(*User)

// WithFirstName sets the first name.
func WithFirstName(s string) UserOption {
	return func(u *User) { u.FirstName = s }
}

// WithLastName sets the last name.
func WithLastName(s string) UserOption {
	return func(u *User) { u.LastName = s }
}

// WithUsernameOrEmail sets the login.
func WithUsernameOrEmail(s string) UserOption {
	return func(u *User) { u.UsernameOrEmail = s }
}

// WithToken sets the session token.
func WithToken(s string) UserOption {
	return func(u *User) { u.Token = s }
}

// NewUser builds a User from the given options. Fields that are not set keep
// their zero value, so construction never fails.
func NewUser(opts ...UserOption) User {
	var u User
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// DefaultUser returns the record that represents "no active session".
func DefaultUser() User {
	return User{}
}

// FullName returns first and last name concatenated as is.
// NOTE: there is no separator between the two parts; stored sessions and
// callers rely on this exact form.
func (u User) FullName() string {
	return u.FirstName + u.LastName
}

// IsLoggedIn reports whether u carries a session token.
func (u User) IsLoggedIn() bool {
	return u.Token != ""
}

// Equal reports whether u and other match on every field. DeviceToken is
// compared by presence and then by value.
func (u User) Equal(other User) bool {
	return u.FirstName == other.FirstName &&
		u.LastName == other.LastName &&
		u.UsernameOrEmail == other.UsernameOrEmail &&
		u.Token == other.Token &&
		u.PushNotificationsSetting == other.PushNotificationsSetting &&
		equalOptional(u.DeviceToken, other.DeviceToken)
}

// IsDefault reports whether u is the logged-out sentinel.
func (u User) IsDefault() bool {
	return u.Equal(DefaultUser())
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
