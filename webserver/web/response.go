package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/mordilloSan/appsettings/common/ipc"
)

// WriteJSON encodes data before touching w, so an encoding failure still
// produces a clean 500.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Warnf("[http] encode response: %v", err)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"status":"error","error":"encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// WriteError replies with an error Response, the same shape a failed command
// produces, so clients parse a single body format.
func WriteError(w http.ResponseWriter, status int, requestID, message string) {
	WriteJSON(w, status, ipc.Response{ID: requestID, Status: ipc.StatusError, Error: message})
}

// WriteResponse replies with a dispatched Response and its HTTP status.
func WriteResponse(w http.ResponseWriter, resp ipc.Response) {
	WriteJSON(w, statusFor(resp), resp)
}

// statusFor maps a Response onto HTTP: ok is 200, an unknown command is 404,
// any other command failure is 400.
func statusFor(resp ipc.Response) int {
	if resp.OK() {
		return http.StatusOK
	}
	if strings.HasPrefix(resp.Error, ipc.ErrUnknownCommand.Error()+" ") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
