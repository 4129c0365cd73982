package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// AnswersWrapperKey is the one nesting key clients may wrap the answer mapping in.
const AnswersWrapperKey = "user_answers"

// AnswerValue is a submitted option indicator kept exactly as the client sent it.
type AnswerValue struct {
	raw json.RawMessage
}

func NewAnswerValue(raw json.RawMessage) AnswerValue {
	return AnswerValue{raw: append(json.RawMessage(nil), bytes.TrimSpace(raw)...)}
}

// IntAnswer is a convenience for building numeric answers.
func IntAnswer(i int) AnswerValue {
	b, _ := json.Marshal(i)
	return AnswerValue{raw: b}
}

func (v AnswerValue) Raw() json.RawMessage {
	if len(v.raw) == 0 {
		return json.RawMessage("null")
	}
	return v.raw
}

// Index returns the value as an option index. Only JSON numbers with an
// integral value qualify; strings, booleans, null and containers do not.
func (v AnswerValue) Index() (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(v.raw))
	dec.UseNumber()
	var tok interface{}
	if err := dec.Decode(&tok); err != nil {
		return 0, false
	}
	num, ok := tok.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil || math.Trunc(f) != f || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	*v = NewAnswerValue(data)
	return nil
}

// AnswerSheet maps question identifiers to the submitted indicator.
type AnswerSheet map[string]AnswerValue

// NormalizeAnswers flattens a submission payload into an AnswerSheet.
// Accepted shapes are a direct object of question id to indicator, or that
// object nested under AnswersWrapperKey. Anything else yields an empty sheet.
func NormalizeAnswers(payload []byte) AnswerSheet {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil || top == nil {
		return AnswerSheet{}
	}

	if wrapped, ok := top[AnswersWrapperKey]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &inner); err != nil || inner == nil {
			return AnswerSheet{}
		}
		return sheetFrom(inner)
	}
	return sheetFrom(top)
}

func sheetFrom(m map[string]json.RawMessage) AnswerSheet {
	sheet := make(AnswerSheet, len(m))
	for k, raw := range m {
		sheet[k] = NewAnswerValue(raw)
	}
	return sheet
}

// AnsweredQuestion is one entry of a frozen answer snapshot.
type AnsweredQuestion struct {
	QuestionID string      `json:"question_id"`
	Selected   AnswerValue `json:"selected"`
}

// AnswerSnapshot is the ordered, immutable record of what was graded.
type AnswerSnapshot []AnsweredQuestion

// Snapshot freezes the sheet ordered by question id.
func (s AnswerSheet) Snapshot() AnswerSnapshot {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	snapshot := make(AnswerSnapshot, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, AnsweredQuestion{QuestionID: id, Selected: s[id]})
	}
	return snapshot
}

// Sheet rebuilds the mapping so a stored attempt can be graded again.
func (s AnswerSnapshot) Sheet() AnswerSheet {
	sheet := make(AnswerSheet, len(s))
	for _, a := range s {
		sheet[a.QuestionID] = a.Selected
	}
	return sheet
}
