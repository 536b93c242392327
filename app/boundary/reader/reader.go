package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wasya-io/go-guidestore/app/entity/core/term"
)

// ErrTerminalInput は内容をパイプではなく端末から読もうとした場合のエラー
var ErrTerminalInput = errors.New("refusing to read document content from a terminal")

// ContentReader は保存するドキュメントの内容を読み込む
type ContentReader interface {
	ReadAll() (string, error)
}

// StandardContentReader は標準入力から内容を読み込む
type StandardContentReader struct {
	in *os.File
}

func NewStandardContentReader() *StandardContentReader {
	return &StandardContentReader{in: os.Stdin}
}

func (r *StandardContentReader) ReadAll() (string, error) {
	if term.IsTerminal(r.in.Fd()) {
		return "", ErrTerminalInput
	}
	data, err := io.ReadAll(r.in)
	if err != nil {
		return "", fmt.Errorf("input error: %v", err)
	}
	return string(data), nil
}

// StringReader は固定の文字列を返すContentReader
type StringReader string

func (s StringReader) ReadAll() (string, error) {
	return string(s), nil
}
