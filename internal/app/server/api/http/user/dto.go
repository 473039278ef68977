package user

type credentialsRequest struct {
	Email    string `json:"email" format:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

type registerInput struct {
	Body credentialsRequest
}

type registerOutput struct {
	Body AuthResponse
}

type loginInput struct {
	Body credentialsRequest
}

type loginOutput struct {
	Body AuthResponse
}

// AuthResponse is returned by both register and login: a bearer token
// and the user it belongs to.
type AuthResponse struct {
	Token  string `json:"token" doc:"Bearer token for subsequent requests"`
	UserID string `json:"user_id" doc:"Identifier of the authenticated user"`
}
