package models

// Admin is the single administrator record. It is seeded once at startup and
// never mutated through the API. PasswordHash is a bcrypt hash; the JSON tags
// describe the persisted document, the record is never serialized to clients.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}
