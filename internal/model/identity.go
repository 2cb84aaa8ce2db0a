package model

// Identity is the authenticated caller extracted from a verified credential.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// DisplayName is the name captured on todos created by this identity.
func (i Identity) DisplayName() string {
	if i.Email != "" {
		return i.Email
	}
	return i.ID
}
