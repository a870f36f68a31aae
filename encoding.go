package fuzzypath

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"
)

// ErrNotText is returned when a serialized value cannot be read as a Path
// because it is not a text value.
var ErrNotText = errors.New("fuzzypath: value is not text")

// Paths are written as their normalized text. Reading always goes through
// New, so incoming text is normalized again and never trusted.

// MarshalText implements encoding.TextMarshaler. It covers encoding/json and
// TOML as well.
//
// go-toml hands every scalar to UnmarshalText, numbers and dates included.
// Decoders that must reject those should call EnableUnmarshalerInterface so
// that UnmarshalTOML is used instead.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.normalized), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	*p = FromBytes(text)
	return nil
}

// UnmarshalTOML implements unstable.Unmarshaler for go-toml decoders with
// EnableUnmarshalerInterface set. Only string values are accepted.
func (p *Path) UnmarshalTOML(value *unstable.Node) error {
	if value.Kind != unstable.String {
		return fmt.Errorf("toml %s value: %w", value.Kind, ErrNotText)
	}
	*p = FromBytes(value.Data)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Path) MarshalYAML() (interface{}, error) {
	return p.normalized, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Only string scalars are accepted.
func (p *Path) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
		return fmt.Errorf("line %d: %s node: %w", value.Line, value.ShortTag(), ErrNotText)
	}
	*p = New(value.Value)
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (p Path) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(p.normalized)
}

// DecodeMsgpack implements msgpack.CustomDecoder. String and binary values
// are accepted, nil decodes to the empty path.
func (p *Path) DecodeMsgpack(dec *msgpack.Decoder) error {
	c, err := dec.PeekCode()
	if err != nil {
		return err
	}

	switch {
	case c == msgpcode.Nil:
		*p = Path{}
		return dec.DecodeNil()
	case msgpcode.IsFixedString(c),
		c == msgpcode.Str8, c == msgpcode.Str16, c == msgpcode.Str32,
		c == msgpcode.Bin8, c == msgpcode.Bin16, c == msgpcode.Bin32:
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*p = New(s)
		return nil
	default:
		return fmt.Errorf("msgpack code %#x: %w", c, ErrNotText)
	}
}

// Value implements driver.Valuer.
func (p Path) Value() (driver.Value, error) {
	return p.normalized, nil
}

// Scan implements sql.Scanner. Text and blob columns are normalized, NULL
// scans to the empty path.
func (p *Path) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Path{}
	case string:
		*p = New(v)
	case []byte:
		*p = FromBytes(v)
	default:
		return fmt.Errorf("scan %T: %w", src, ErrNotText)
	}
	return nil
}
