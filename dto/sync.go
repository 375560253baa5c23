package dto

import "github.com/goccy/go-json"

type EnqueueActionRequest struct {
	Type    string          `json:"type" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

type ConnectivityRequest struct {
	Online *bool `json:"online" binding:"required"`
}

type ConnectivityResponse struct {
	Online   bool `json:"online"`
	Restored bool `json:"restored"`
	Pending  int  `json:"pending"`
}
