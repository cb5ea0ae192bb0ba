package events

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Batch pipeline event payloads, published on the SSE hub.

type BatchStartedData struct {
	RunID string `json:"run_id"`
	Dir   string `json:"dir"`
	Files int    `json:"files"`
}

type FileProcessedData struct {
	RunID    string `json:"run_id"`
	File     string `json:"file"`
	Rows     int    `json:"rows"`
	Inserted int    `json:"inserted"`
	Dupes    int    `json:"dupes"`
}

type FileFailedData struct {
	RunID string `json:"run_id"`
	File  string `json:"file"`
	Error string `json:"error"`
}

type BatchCompleteData struct {
	RunID    string `json:"run_id"`
	Files    int    `json:"files"`
	Failed   int    `json:"failed"`
	Rows     int    `json:"rows"`
	Inserted int    `json:"inserted"`
	Dupes    int    `json:"dupes"`
}

func BatchStarted(d BatchStartedData) string   { return MakeEvent("", "batch.started", 1, d) }
func FileProcessed(d FileProcessedData) string { return MakeEvent("", "batch.file", 1, d) }
func FileFailed(d FileFailedData) string       { return MakeEvent("", "batch.file_failed", 1, d) }
func BatchComplete(d BatchCompleteData) string { return MakeEvent("", "batch.complete", 1, d) }

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
