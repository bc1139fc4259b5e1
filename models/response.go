package models

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details any    `json:"details,omitempty"`
}

// MessageResponse is returned for soft conflicts that are not errors.
type MessageResponse struct {
	Message string `json:"message" example:"Already marked entered today"`
}

type DeleteSuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type HealthResponse struct {
	Message string `json:"message" example:"Attendance Tracker API"`
	Status  string `json:"status" example:"running"`
	Model   string `json:"model" example:"status"`
	Docs    string `json:"docs" example:"/docs/index.html"`
}
