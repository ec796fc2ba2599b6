package models

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// PaymentList holds the itemized payments of a transaction.
// A value that is not a list of payments is kept as Malformed instead of failing the decode,
// so one bad record cannot abort loading a whole snapshot. Inside a list, entries that do not
// decode as a payment are dropped one by one and counted in Dropped.
type PaymentList struct {
	Items     []Payment
	Present   bool
	Malformed bool
	Dropped   int
}

// NewPaymentList builds a well-formed list from the given payments
func NewPaymentList(payments ...Payment) PaymentList {
	return PaymentList{Items: payments, Present: true}
}

// Valid returns true when the list was supplied and parsed as a sequence
func (p PaymentList) Valid() bool {
	return p.Present && !p.Malformed
}

// UnmarshalJSON implements json.Unmarshaler
func (p *PaymentList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = PaymentList{}
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		*p = PaymentList{Present: true, Malformed: true}
		return nil
	}

	list := PaymentList{Items: make([]Payment, 0, len(elements)), Present: true}
	for _, raw := range elements {
		var item Payment
		if err := json.Unmarshal(raw, &item); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			list.Dropped++
			continue
		}
		list.Items = append(list.Items, item)
	}
	*p = list
	return nil
}

// MarshalJSON implements json.Marshaler
func (p PaymentList) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(p.Items)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *PaymentList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		*p = PaymentList{}
		return nil
	}
	if value.Kind != yaml.SequenceNode {
		*p = PaymentList{Present: true, Malformed: true}
		return nil
	}

	list := PaymentList{Items: make([]Payment, 0, len(value.Content)), Present: true}
	for _, element := range value.Content {
		var item Payment
		if element.Kind != yaml.MappingNode || element.Decode(&item) != nil {
			list.Dropped++
			continue
		}
		list.Items = append(list.Items, item)
	}
	*p = list
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (p PaymentList) MarshalYAML() (interface{}, error) {
	if !p.Valid() {
		return nil, nil
	}
	return p.Items, nil
}

// IsZero lets yaml omitempty drop an absent list
func (p PaymentList) IsZero() bool {
	return !p.Present
}
