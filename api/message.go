package api

import "errors"

// Message is one record of the message store.
type Message struct {
	ID   string `json:"_id"`
	Text string `json:"message"`
}

type postRequest struct {
	Message string `json:"message"`
}

// ErrEmptyMessage is returned by Post for blank text. No request is sent.
var ErrEmptyMessage = errors.New("api: empty message")
