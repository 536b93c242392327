package document

import (
	"errors"
	"path/filepath"
)

var (
	ErrNoRoots   = errors.New("no candidate roots configured")
	ErrEmptyRoot = errors.New("empty candidate root")
)

// Roots は優先順位付きの候補ルートディレクトリの一覧を保持する
// 生成後は変更できない
type Roots struct {
	paths []string
}

// NewRoots は候補ルートの一覧を作成する。入力はコピーされる
func NewRoots(paths ...string) (Roots, error) {
	if len(paths) == 0 {
		return Roots{}, ErrNoRoots
	}
	copied := make([]string, len(paths))
	for i, p := range paths {
		if p == "" {
			return Roots{}, ErrEmptyRoot
		}
		copied[i] = p
	}
	return Roots{paths: copied}, nil
}

// Paths は候補ルートを優先順に返す
func (r Roots) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Len は候補ルートの数を返す
func (r Roots) Len() int {
	return len(r.paths)
}

// IndexOf はルートの優先順位を返す。見つからなければ-1
func (r Roots) IndexOf(root string) int {
	want := filepath.Clean(root)
	for i, p := range r.paths {
		if filepath.Clean(p) == want {
			return i
		}
	}
	return -1
}

// Contains はルートが候補に含まれているかを返す
func (r Roots) Contains(root string) bool {
	return r.IndexOf(root) >= 0
}
