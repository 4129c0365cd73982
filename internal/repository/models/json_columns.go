package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"mcq-platform/internal/domain"
)

// OptionList stores question options as a JSON array of {index, text}.
type OptionList []domain.Option

// Value implements the driver.Valuer interface
func (l OptionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *OptionList) Scan(value interface{}) error {
	data, err := jsonBytes(value, "OptionList")
	if err != nil {
		return err
	}
	if data == nil {
		*l = OptionList{}
		return nil
	}
	var options OptionList
	if err := json.Unmarshal(data, &options); err != nil {
		return err
	}
	// Rows written before options carried an index hold only {text}.
	for i := range options {
		options[i].Index = i
	}
	*l = options
	return nil
}

// AnswerSnapshotColumn stores the graded answers as a JSON array of
// {question_id, selected}.
type AnswerSnapshotColumn domain.AnswerSnapshot

// Value implements the driver.Valuer interface
func (s AnswerSnapshotColumn) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(domain.AnswerSnapshot(s))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface. A legacy object mapping of
// question id to answer is accepted and converted to the ordered form.
func (s *AnswerSnapshotColumn) Scan(value interface{}) error {
	data, err := jsonBytes(value, "AnswerSnapshotColumn")
	if err != nil {
		return err
	}
	if data == nil {
		*s = AnswerSnapshotColumn{}
		return nil
	}
	if data[0] == '{' {
		*s = AnswerSnapshotColumn(domain.NormalizeAnswers(data).Snapshot())
		return nil
	}
	var snapshot domain.AnswerSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	*s = AnswerSnapshotColumn(snapshot)
	return nil
}

// jsonBytes returns nil for NULL, empty and "null" column values.
func jsonBytes(value interface{}, typeName string) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}
