package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/lvhmm/classifier"
	"github.com/katalvlaran/lvhmm/quantizer"
)

// VersionedRecord tags a payload with the versions that wrote it.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// ClassLog is the training log of one class model.
type ClassLog struct {
	Label int       `json:"label"`
	Log   []float64 `json:"log"`
}

// ModelRecord is one trained pipeline.
type ModelRecord struct {
	VersionedRecord
	ID           string              `json:"id"`
	Dataset      string              `json:"dataset"`
	CreatedAt    time.Time           `json:"created_at"`
	Quantizer    quantizer.Snapshot  `json:"quantizer"`
	Classifier   classifier.Snapshot `json:"classifier"`
	TrainingLogs []ClassLog          `json:"training_logs,omitempty"`
}

// NewRunID returns a fresh random run ID.
func NewRunID() string { return uuid.New().String() }

// NewRecord builds a record with a fresh ID, the current versions and the
// current UTC time.
func NewRecord(datasetName string, q quantizer.Snapshot, c classifier.Snapshot) ModelRecord {
	return ModelRecord{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              NewRunID(),
		Dataset:         datasetName,
		CreatedAt:       time.Now().UTC(),
		Quantizer:       q,
		Classifier:      c,
	}
}

// Summary is the listing view of a record.
type Summary struct {
	ID        string
	Dataset   string
	CreatedAt time.Time
}
