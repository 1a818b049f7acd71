package model

import "time"

// Source type names used by the ingestion handlers.
const (
	SourceFreetext = "freetext"
	SourceLogFile  = "logfile"
	SourceWorkItem = "workitem"
)

// SourceMetadata describes where an input came from. The engine treats it as
// opaque apart from requiring SourceType and SourceID to be set.
type SourceMetadata struct {
	SourceType    string    `json:"source_type"`
	SourceID      string    `json:"source_id"`
	IngestedAt    time.Time `json:"ingestion_timestamp"`
	FileName      string    `json:"file_name,omitempty"`
	FileSizeBytes int64     `json:"file_size_bytes,omitempty"`
	WorkItemID    string    `json:"work_item_id,omitempty"`
	RawTextLength int       `json:"raw_text_length"`
}
