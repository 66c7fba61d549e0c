package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind is the JSON type held by a Value
type Kind int

// Value kinds
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a decoded JSON value. Object keys keep their document order.
type Value struct {
	Kind   Kind
	Str    string
	Num    json.Number
	Bool   bool
	Items  []Value
	Keys   []string
	Fields map[string]Value
}

// DecodeValue decodes exactly one JSON value from text
func DecodeValue(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, parseError(dec, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, &ParseError{Message: "unexpected data after top-level value", Offset: dec.InputOffset()}
	}
	return v, nil
}

func parseError(dec *json.Decoder, err error) *ParseError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Message: "invalid JSON", Offset: syntaxErr.Offset, Cause: err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Message: "unexpected end of input", Offset: dec.InputOffset(), Cause: err}
	}
	return &ParseError{Message: "invalid JSON", Offset: dec.InputOffset(), Cause: err}
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Num: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindObject, Keys: []string{}, Fields: make(map[string]Value)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %v, not a string", tok)
		}
		field, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		if _, dup := v.Fields[key]; !dup {
			v.Keys = append(v.Keys, key)
		}
		v.Fields[key] = field
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindArray, Items: []Value{}}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return v, nil
}
