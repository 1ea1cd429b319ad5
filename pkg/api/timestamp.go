package api

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// marshalTimestamp renders ts as protojson does. A nil ts yields nil, which
// omitempty drops.
func marshalTimestamp(ts *timestamppb.Timestamp) (json.RawMessage, error) {
	if ts == nil {
		return nil, nil
	}
	return protojson.Marshal(ts)
}

func unmarshalTimestamp(data json.RawMessage) (*timestamppb.Timestamp, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal(data, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// The outer field shadows the embedded one with the same JSON name.

func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	ts, err := marshalTimestamp(e.LoggedAt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		LoggedAt json.RawMessage `json:"loggedAt,omitempty"`
	}{plain(e), ts})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	aux := struct {
		*plain
		LoggedAt json.RawMessage `json:"loggedAt,omitempty"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts, err := unmarshalTimestamp(aux.LoggedAt)
	if err != nil {
		return err
	}
	e.LoggedAt = ts
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	ts, err := marshalTimestamp(u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	}{plain(u), ts})
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt,omitempty"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts, err := unmarshalTimestamp(aux.CreatedAt)
	if err != nil {
		return err
	}
	u.CreatedAt = ts
	return nil
}

func (p Preferences) MarshalJSON() ([]byte, error) {
	type plain Preferences
	ts, err := marshalTimestamp(p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		plain
		UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
	}{plain(p), ts})
}

func (p *Preferences) UnmarshalJSON(data []byte) error {
	type plain Preferences
	aux := struct {
		*plain
		UpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts, err := unmarshalTimestamp(aux.UpdatedAt)
	if err != nil {
		return err
	}
	p.UpdatedAt = ts
	return nil
}
