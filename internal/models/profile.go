// ABOUTME: Profile model for the single local user.
// ABOUTME: Only one row is expected; DefaultUserID names it.
package models

// DefaultUserID is the user ID of the local profile row.
const DefaultUserID int64 = 1

// Profile holds the user's display details.
type Profile struct {
	UserID      int64  `json:"user_id" yaml:"user_id"`
	Username    string `json:"username" yaml:"username"`
	PictureURI  string `json:"picture_uri" yaml:"picture_uri"`
	Description string `json:"description" yaml:"description"`
}

// NewProfile creates the default user's profile.
func NewProfile(username, description string) *Profile {
	return &Profile{
		UserID:      DefaultUserID,
		Username:    username,
		Description: description,
	}
}

// WithPicture sets the picture URI.
func (p *Profile) WithPicture(uri string) *Profile {
	p.PictureURI = uri
	return p
}
