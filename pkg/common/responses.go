// Package common holds the shared response envelope and pagination helpers
// used by every read endpoint.
package common

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the uniform success wrapper around every response body.
type Envelope struct {
	Status     string      `json:"status"`
	Results    *int        `json:"results,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       interface{} `json:"data"`
}

// RespondSuccess writes a success envelope without result counts.
func RespondSuccess(w http.ResponseWriter, status int, data interface{}) {
	respond(w, status, Envelope{Status: "success", Data: data})
}

// RespondList writes a success envelope with a result count.
func RespondList(w http.ResponseWriter, status int, results int, data interface{}) {
	respond(w, status, Envelope{Status: "success", Results: &results, Data: data})
}

// RespondPage writes a success envelope with a result count and pagination
// metadata.
func RespondPage(w http.ResponseWriter, status int, results int, page *Pagination, data interface{}) {
	respond(w, status, Envelope{Status: "success", Results: &results, Pagination: page, Data: data})
}

// Encoding failures after the status line has been written cannot be reported
// to the client; they are dropped.
func respond(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope)
}
