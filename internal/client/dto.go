package client

import "chainchat/internal/types"

type ChatRequest struct {
	Message string          `json:"message"`
	History []types.Message `json:"history"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
