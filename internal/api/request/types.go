package request

// LoginRequest is the request body for POST /login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StudentRequest is the request body for the teacher-gated POST /register and POST /unregister
type StudentRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	ActivityName string `json:"activity_name"`
	Email        string `json:"email"`
}
