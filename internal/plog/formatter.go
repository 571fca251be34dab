package plog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// GetFormatter picks a logrus.Formatter by --log-format flag value, the same
// three-way switch as open-policy-agent-opa/internal/logging.GetFormatter.
func GetFormatter(format, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &prettyFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// prettyFormatter renders a log entry as a one-line message followed by its
// fields indented underneath, adapted from
// open-policy-agent-opa/internal/logging.prettyFormatter for pegomancy's
// --log-format=text option.
type prettyFormatter struct{}

func spaces(num int) string {
	var b strings.Builder
	for i := 0; i < num; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func isJSON(buf []byte) bool {
	var tmp interface{}
	return json.Unmarshal(buf, &tmp) == nil
}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(b, "[%s] %s\n", level, e.Message)

	const fieldIndent = 2
	const multiLineIndent = 6
	for k, v := range e.Data {
		stringVal, ok := v.(string)
		switch {
		case ok && strings.Contains(stringVal, "\n"):
			var sb strings.Builder
			for i, line := range strings.Split(stringVal, "\n") {
				if i != 0 {
					sb.WriteString(spaces(multiLineIndent))
				}
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
			stringVal = sb.String()
		case ok && isJSON([]byte(stringVal)):
			var tmp bytes.Buffer
			if err := json.Indent(&tmp, []byte(stringVal), spaces(multiLineIndent), spaces(2)); err != nil {
				return nil, err
			}
			stringVal = tmp.String()
		default:
			jsonVal, err := json.MarshalIndent(v, spaces(multiLineIndent), spaces(2))
			if err != nil {
				return nil, err
			}
			stringVal = string(jsonVal)
		}

		b.WriteString(spaces(fieldIndent))
		b.WriteString(k)
		if strings.Contains(stringVal, "\n") {
			b.WriteString(" = |\n")
			b.WriteString(spaces(multiLineIndent))
		} else {
			b.WriteString(" = ")
		}
		b.WriteString(stringVal)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
