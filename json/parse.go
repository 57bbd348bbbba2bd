/*
File    : remespath/json/parse.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package json - parse.go
// This file converts JSON text into the tagged value union. The walk is
// built on buger/jsonparser rather than encoding/json because the engine
// needs two things the standard decoder discards: object key order, and
// the raw number text that decides whether a literal is an int or a float.
package json

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// ParseJSON parses a JSON document into a JNode. The whole input must be
// one JSON value; trailing garbage is an error.
func ParseJSON(text string) (JNode, error) {
	data := []byte(strings.TrimSpace(text))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON document")
	}
	value, dataType, offset, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}
	if offset <= len(data) && strings.TrimSpace(string(data[offset:])) != "" {
		return nil, fmt.Errorf("trailing characters after the JSON document")
	}
	return convertValue(value, dataType)
}

// convertValue converts one jsonparser value into a JNode.
func convertValue(value []byte, dataType jsonparser.ValueType) (JNode, error) {
	switch dataType {
	case jsonparser.Null:
		return NewNull(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, err
		}
		return NewBool(b), nil
	case jsonparser.Number:
		return convertNumber(value)
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		return NewStr(s), nil
	case jsonparser.Array:
		return convertArray(value)
	case jsonparser.Object:
		return convertObject(value)
	}
	return nil, fmt.Errorf("malformed JSON value %q", string(value))
}

// convertNumber keeps ints and floats apart by inspecting the raw text:
// a dot or an exponent marks a float, everything else parses as int64
// (falling back to float on overflow).
func convertNumber(raw []byte) (JNode, error) {
	text := string(raw)
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q", text)
		}
		return NewFloat(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return nil, fmt.Errorf("malformed number %q", text)
		}
		return NewFloat(f), nil
	}
	return NewInt(i), nil
}

// convertArray walks an array in index order.
func convertArray(data []byte) (JNode, error) {
	arr := NewArr()
	var convErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, itemErr error) {
		if convErr != nil {
			return
		}
		if itemErr != nil {
			convErr = itemErr
			return
		}
		child, err := convertValue(value, dataType)
		if err != nil {
			convErr = err
			return
		}
		arr.Children = append(arr.Children, child)
	})
	if err != nil {
		return nil, err
	}
	if convErr != nil {
		return nil, convErr
	}
	return arr, nil
}

// convertObject walks an object in document order. Duplicate keys collapse
// onto the first occurrence's position with the last value, which is how
// the ordered map enforces key uniqueness.
func convertObject(data []byte) (JNode, error) {
	obj := NewObj()
	err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		child, err := convertValue(value, dataType)
		if err != nil {
			return err
		}
		obj.Set(k, child)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
