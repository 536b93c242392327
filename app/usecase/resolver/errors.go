package resolver

import (
	"errors"
	"fmt"
)

// ErrNotFound はどの候補ルートにも読めるドキュメントがなかったことを表す
// errors.Isで判定する
var ErrNotFound = errors.New("document not found")

// Kind はエラーの種類
type Kind int

const (
	KindNotFound Kind = iota
	KindUnreadable
	KindDirectoryCreateFailed
	KindWriteFailed
	KindInvalidFilename
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnreadable:
		return "unreadable"
	case KindDirectoryCreateFailed:
		return "directory create failed"
	case KindWriteFailed:
		return "write failed"
	case KindInvalidFilename:
		return "invalid filename"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DocumentError は呼び出し側へ返す終端のエラー
type DocumentError struct {
	Kind     Kind
	Filename string
	Path     string
	Err      error
}

func (e *DocumentError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("document not found: %s", e.Filename)
	case KindDirectoryCreateFailed, KindWriteFailed:
		return fmt.Sprintf("could not write: %s: %s: %v", e.Filename, e.Path, e.Err)
	case KindInvalidFilename:
		return fmt.Sprintf("invalid filename %q: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("could not read: %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Is はNotFoundのエラーをErrNotFoundと一致させる
func (e *DocumentError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// KindOf はエラーの種類を取り出す。DocumentErrorでなければfalse
func KindOf(err error) (Kind, bool) {
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
