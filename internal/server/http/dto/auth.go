package dto

// AuthRequest carries credentials for both register and login calls.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SessionResponse echoes the opened session. The token itself travels in the
// cookie and the Authorization header, never in the body.
type SessionResponse struct {
	Staff bool `json:"staff"`
}
