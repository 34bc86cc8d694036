package domain

// User is an identity record. The ID is assigned by the database on
// creation; PasswordHash is never exposed in API responses.
type User struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// RefreshToken links an opaque refresh-token string to its owning user.
// Expiry lives inside the signed token itself, not in this record, so a
// row can outlive its token's validity window until it is deleted.
type RefreshToken struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Token  string `json:"-"`
}

// TokenPair is the result of a successful login, registration or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
