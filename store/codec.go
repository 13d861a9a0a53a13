package store

import (
	"encoding/json"
	"fmt"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// EncodeModel marshals r.
func EncodeModel(r ModelRecord) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeModel unmarshals data and checks its versions.
func DecodeModel(data []byte) (ModelRecord, error) {
	var r ModelRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return ModelRecord{}, err
	}
	if err := checkVersion(r.VersionedRecord); err != nil {
		return ModelRecord{}, err
	}
	return r, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return fmt.Errorf("%w: schema=%d codec=%d", ErrVersionMismatch, v.SchemaVersion, v.CodecVersion)
	}
	return nil
}
