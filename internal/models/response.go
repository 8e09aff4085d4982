package models

// Response is the envelope every API reply uses, errors included.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}
