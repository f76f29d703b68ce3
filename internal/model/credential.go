package model

// Credential is a teacher login record.
// Exactly one of Password (compared verbatim) or PasswordHash (bcrypt) is set.
type Credential struct {
	Username     string `json:"username"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}
