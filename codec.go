package jsonedit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	gyaml "github.com/goccy/go-yaml"
)

// Format selects how the document text held by a DocumentStore is encoded.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseError reports document text that could not be decoded.
type ParseError struct {
	Format Format
	Offset int64 // byte offset of the failure when the decoder reports one, else -1
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("jsonedit: invalid %s document at offset %d: %v", e.Format, e.Offset, e.Err)
	}
	return fmt.Sprintf("jsonedit: invalid %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeJSON parses JSON text into ordered values (Object, []any, json.Number,
// string, bool, nil). Blank input decodes to an empty Object. Repeated keys
// keep the position of their first occurrence and the value of their last.
func DecodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return gyaml.MapSlice{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, jsonParseError(dec, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, jsonParseError(dec, err)
	}
	return v, nil
}

func jsonParseError(dec *json.Decoder, err error) *ParseError {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Format: FormatJSON, Offset: syn.Offset, Err: err}
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &ParseError{Format: FormatJSON, Offset: dec.InputOffset(), Err: err}
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := gyaml.MapSlice{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not a string", kt)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = objectSet(obj, key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// EncodeJSON renders v as JSON. With an empty indent the output is compact;
// otherwise every nesting level is indented by indent and empty containers
// stay as {} and []. HTML characters are not escaped.
func EncodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}
	if indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("jsonedit: indent: %w", err)
	}
	return out.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case gyaml.MapSlice:
		buf.WriteByte('{')
		for i, it := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendScalar(buf, keyString(it.Key)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := appendJSON(buf, it.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case map[string]any:
		return appendJSON(buf, cloneValue(t))
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return appendScalar(buf, t)
	}
}

func appendScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("jsonedit: cannot encode %T: %w", v, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// quoteJSON renders s as a JSON string literal.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	if err := appendScalar(&buf, s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return buf.String()
}

// codec ties a document format to the indent used when writing it back.
type codec struct {
	format Format
	indent string
}

func (c codec) decode(text string) (any, error) {
	switch c.format {
	case FormatYAML:
		return DecodeYAML([]byte(text))
	default:
		return DecodeJSON([]byte(text))
	}
}

func (c codec) encode(v any) (string, error) {
	switch c.format {
	case FormatYAML:
		b, err := EncodeYAML(v, len(c.indent))
		return string(b), err
	default:
		b, err := EncodeJSON(v, c.indent)
		return string(b), err
	}
}

// sortedKeys is used where a plain map must be walked deterministically.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
