package model

// Profile is the signed-in user as the auth API describes them.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}
