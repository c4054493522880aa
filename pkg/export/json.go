package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/goliatone/go-fastform/pkg/schema"
)

// JSON writes a descriptor as a JSON object keyed by entry key, preserving
// entry order: `{"text": ["username", "Username", ...], ...}`. When indent is
// non-empty the output is indented with it.
func JSON(w io.Writer, desc schema.Descriptor, indent string) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, entry := range desc.Entries() {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(entry.Key)
		if err != nil {
			return err
		}
		values, err := marshal(entry.Values)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')

	out := buf.Bytes()
	if indent != "" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, out, "", indent); err != nil {
			return err
		}
		out = pretty.Bytes()
	}
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}

func marshal(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
