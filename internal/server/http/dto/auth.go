package dto

// TokenResponse carries a bearer token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignInResponse is returned by external identity sign-in. Created reports
// whether the client account was registered by this call.
type SignInResponse struct {
	Token   string `json:"token"`
	Created bool   `json:"created"`
}
