package document

import (
	"errors"
	"path/filepath"
)

var (
	ErrEmptyFilename = errors.New("empty filename")
	ErrEscapesRoot   = errors.New("filename escapes candidate root")
)

// Filename は呼び出し側から渡されるルート相対のファイル名
type Filename struct {
	name string
}

// ParseFilename はファイル名を検証する
// confineがfalseの場合は".."や絶対パスもそのまま受け付ける
func ParseFilename(name string, confine bool) (Filename, error) {
	if name == "" {
		return Filename{}, ErrEmptyFilename
	}
	if confine && !filepath.IsLocal(filepath.FromSlash(name)) {
		return Filename{}, ErrEscapesRoot
	}
	return Filename{name: name}, nil
}

func (f Filename) String() string {
	return f.name
}

// Join は候補ルートとファイル名から候補パスを作る
func Join(root string, f Filename) string {
	return filepath.Join(root, filepath.FromSlash(f.name))
}
