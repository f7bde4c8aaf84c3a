package models

import "time"

// ChatMessage is one turn of the embedded chat widget. History lives in the
// visitor session only; the upstream relay is fire-and-forget.
type ChatMessage struct {
	Sender    string    `json:"sender"` // user | bot
	Text      string    `json:"text"`
	File      string    `json:"file,omitempty"` // data URL
	FileType  string    `json:"fileType,omitempty"`
	Audio     string    `json:"audio,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
