package v1

// registerRequest is the body for POST /auth/register.
type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// loginRequest is the body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// favoriteRequest is the body for POST /favorites.
type favoriteRequest struct {
	IMDBID string `json:"imdbID"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Type   string `json:"type"`
	Poster string `json:"poster"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Version string `json:"version"`
	Status  string `json:"status"`
}
