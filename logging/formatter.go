package logging

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

// lineFormatter renders an entry as {"info":msg} or {"err":msg}.
type lineFormatter struct{}

func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	tag := "info"
	if entry.Level <= logrus.ErrorLevel {
		tag = "err"
	}

	b.WriteString(`{"`)
	b.WriteString(tag)
	b.WriteString(`":`)
	b.WriteString(entry.Message)
	b.WriteString("}\n")
	return b.Bytes(), nil
}
