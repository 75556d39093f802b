package models

// TunnelProcess identifies the managed tunnel child process. The command line
// is kept alongside the PID so an unrelated ssh session reusing the same port
// is never mistaken for ours.
type TunnelProcess struct {
	Pid     int    `json:"pid"`     // OS process id
	Cmdline string `json:"cmdline"` // launch arguments, the ownership signature
}

// ErrorResponse defines API error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// TunnelResponse defines tunnel operation success response format
type TunnelResponse struct {
	Status  string `json:"status"`  // operation status
	Message string `json:"message"` // response message
}
