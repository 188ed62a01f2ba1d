package db_models

import (
	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
)

const (
	MediaSnapshot = "snapshot"
	MediaAudio    = "audio"
	MediaVideo    = "video"
	MediaDocument = "document"
)

var MediaTypes = []string{MediaSnapshot, MediaAudio, MediaVideo, MediaDocument}

type Media struct {
	BaseModel
	UserID     uuid.UUID      `json:"userId"`
	SessionID  *uuid.UUID     `json:"sessionId,omitempty"`
	Type       string         `json:"type"`
	StorageKey string         `json:"storageKey"`
	StorageURL string         `json:"storageUrl"`
	Filename   string         `json:"filename"`
	MimeType   string         `json:"mimeType"`
	Size       int            `json:"size"`
	Metadata   map[string]any `json:"metadata"`
}

func mediaBase(m *Media) *BaseModel { return &m.BaseModel }

var MediaMapping = fieldmap.MustNew("media", "user_id", "id", nil,
	columns(mediaBase,
		fieldmap.UUID("userId", "user_id", func(m *Media) *uuid.UUID { return &m.UserID }).Immutable(),
		fieldmap.OptUUID("sessionId", "session_id", func(m *Media) **uuid.UUID { return &m.SessionID }),
		fieldmap.String("type", "type", "", func(m *Media) *string { return &m.Type }),
		fieldmap.String("storageKey", "storage_key", "", func(m *Media) *string { return &m.StorageKey }).Immutable(),
		fieldmap.String("storageUrl", "storage_url", "", func(m *Media) *string { return &m.StorageURL }),
		fieldmap.String("filename", "filename", "", func(m *Media) *string { return &m.Filename }),
		fieldmap.String("mimeType", "mime_type", "", func(m *Media) *string { return &m.MimeType }),
		fieldmap.Int("size", "size", 0, func(m *Media) *int { return &m.Size }),
		fieldmap.JSON("metadata", "metadata", func(m *Media) *map[string]any { return &m.Metadata }),
	)...,
)
