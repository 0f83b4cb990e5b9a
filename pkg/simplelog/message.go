package simplelog

import (
	"strings"
	"time"
)

// TimeFormat is the layout used to render message timestamps, always in UTC.
const TimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// Message is one log event. It is passed by value and never modified after
// construction.
type Message struct {
	Source string
	Time   time.Time
	Level  Level
	Text   string
}

// NewMessage stamps a message with the current time.
func NewMessage(source string, level Level, text string) Message {
	return Message{
		Source: source,
		Time:   time.Now().UTC(),
		Level:  level,
		Text:   text,
	}
}

// FormatLine renders m as "<source> - <LEVEL> - <timestamp> - <text>\n".
// The output depends only on the fields of m.
func FormatLine(m Message) string {
	var b strings.Builder
	b.Grow(len(m.Source) + len(m.Text) + len(TimeFormat) + 16)
	b.WriteString(m.Source)
	b.WriteString(" - ")
	b.WriteString(m.Level.String())
	b.WriteString(" - ")
	b.WriteString(m.Time.UTC().Format(TimeFormat))
	b.WriteString(" - ")
	b.WriteString(m.Text)
	b.WriteByte('\n')
	return b.String()
}
