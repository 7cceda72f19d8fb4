package linkedhashmap

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ json.Marshaler   = &Map[int, any]{}
	_ json.Unmarshaler = &Map[int, any]{}
)

// MarshalJSON implements the json.Marshaler interface: the map is encoded as
// a JSON object whose members appear in insertion order. Supported key types
// are strings, integers, and types implementing encoding.TextMarshaler.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) { //nolint:funlen
	if m == nil || m.list == nil {
		return []byte("null"), nil
	}

	writer := jwriter.Writer{}
	writer.RawByte('{')

	for pair, firstIteration := m.Oldest(), true; pair != nil; pair = pair.Next() {
		if firstIteration {
			firstIteration = false
		} else {
			writer.RawByte(',')
		}

		switch key := any(pair.Key).(type) {
		case string:
			writer.String(key)
		case encoding.TextMarshaler:
			text, err := key.MarshalText()
			if err != nil {
				return nil, err
			}
			writer.String(string(text))
		case int:
			writer.IntStr(key)
		case int8:
			writer.Int8Str(key)
		case int16:
			writer.Int16Str(key)
		case int32:
			writer.Int32Str(key)
		case int64:
			writer.Int64Str(key)
		case uint:
			writer.UintStr(key)
		case uint8:
			writer.Uint8Str(key)
		case uint16:
			writer.Uint16Str(key)
		case uint32:
			writer.Uint32Str(key)
		case uint64:
			writer.Uint64Str(key)
		default:
			return nil, fmt.Errorf("unsupported key type: %T", pair.Key)
		}

		writer.RawByte(':')

		// values are delegated to encoding/json, same as the YAML side
		// delegates to yaml.Node.Encode
		encodedValue, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		writer.Raw(encodedValue, nil)
	}

	writer.RawByte('}')

	return dumpWriter(&writer)
}

func dumpWriter(writer *jwriter.Writer) ([]byte, error) {
	if writer.Error != nil {
		return nil, writer.Error
	}

	var buf bytes.Buffer
	buf.Grow(writer.Size())
	if _, err := writer.DumpTo(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface: object members
// are inserted in the order they appear in the document. Duplicate keys keep
// their first position and their last value, per Set's semantics.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	if m.list == nil {
		m.initialize(0)
	}

	return jsonparser.ObjectEach(
		data,
		func(keyData []byte, valueData []byte, dataType jsonparser.ValueType, offset int) error {
			if dataType == jsonparser.String {
				// jsonparser stripped the enclosing quotes and unescaped the
				// value; re-marshaling yields it back as a valid JSON string
				// for the value decoder below
				reEncoded, err := json.Marshal(string(valueData))
				if err != nil {
					return err
				}
				valueData = reEncoded
			}

			key, err := decodeJSONKey[K](keyData)
			if err != nil {
				return err
			}

			var value V
			if err := json.Unmarshal(valueData, &value); err != nil {
				return err
			}

			m.Set(key, value)
			return nil
		},
	)
}

// decodeJSONKey turns an object member name (already unescaped by
// jsonparser) back into a key. It mirrors the key types MarshalJSON accepts.
func decodeJSONKey[K comparable](keyData []byte) (K, error) { //nolint:funlen
	var key K

	switch typedKey := any(&key).(type) {
	case *string:
		*typedKey = string(keyData)
	case encoding.TextUnmarshaler:
		if err := typedKey.UnmarshalText(keyData); err != nil {
			return key, err
		}
	case *int:
		parsed, err := strconv.ParseInt(string(keyData), 10, 0)
		if err != nil {
			return key, err
		}
		*typedKey = int(parsed)
	case *int8:
		parsed, err := strconv.ParseInt(string(keyData), 10, 8)
		if err != nil {
			return key, err
		}
		*typedKey = int8(parsed)
	case *int16:
		parsed, err := strconv.ParseInt(string(keyData), 10, 16)
		if err != nil {
			return key, err
		}
		*typedKey = int16(parsed)
	case *int32:
		parsed, err := strconv.ParseInt(string(keyData), 10, 32)
		if err != nil {
			return key, err
		}
		*typedKey = int32(parsed)
	case *int64:
		parsed, err := strconv.ParseInt(string(keyData), 10, 64)
		if err != nil {
			return key, err
		}
		*typedKey = parsed
	case *uint:
		parsed, err := strconv.ParseUint(string(keyData), 10, 0)
		if err != nil {
			return key, err
		}
		*typedKey = uint(parsed)
	case *uint8:
		parsed, err := strconv.ParseUint(string(keyData), 10, 8)
		if err != nil {
			return key, err
		}
		*typedKey = uint8(parsed)
	case *uint16:
		parsed, err := strconv.ParseUint(string(keyData), 10, 16)
		if err != nil {
			return key, err
		}
		*typedKey = uint16(parsed)
	case *uint32:
		parsed, err := strconv.ParseUint(string(keyData), 10, 32)
		if err != nil {
			return key, err
		}
		*typedKey = uint32(parsed)
	case *uint64:
		parsed, err := strconv.ParseUint(string(keyData), 10, 64)
		if err != nil {
			return key, err
		}
		*typedKey = parsed
	default:
		return key, fmt.Errorf("unsupported key type: %T", key)
	}

	return key, nil
}
