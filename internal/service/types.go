package service

import "netlist/internal/task"

// DeleteRequest is an outstanding delete awaiting confirmation.
type DeleteRequest struct {
	Token string    `json:"token"`
	Task  task.Task `json:"task"`
}
