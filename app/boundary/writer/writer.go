package writer

import (
	"io"
	"os"
)

type OutputWriter interface {
	Write(s string) error
}

// StandardOutputWriter は結果を標準出力などに書き出す
type StandardOutputWriter struct {
	out io.Writer
}

func NewStandardOutputWriter() *StandardOutputWriter {
	return &StandardOutputWriter{out: os.Stdout}
}

func NewOutputWriter(w io.Writer) *StandardOutputWriter {
	return &StandardOutputWriter{out: w}
}

func (w *StandardOutputWriter) Write(s string) error {
	_, err := io.WriteString(w.out, s)
	return err
}
