package auth

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Identity is the authenticated-user view handed to the rest of the
// system; it never carries the password hash.
type Identity struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ID          int    `json:"id"`
	Email       string `json:"email"`
}
