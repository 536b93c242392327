// Package resolver は候補ルートの一覧からドキュメントを探して読み込み、
// 書き込み方針に従って保存する。
//
// Resolverは構築後に変更されない設定だけを持ち、呼び出し間で状態を共有しない。
// 同じファイル名への同時書き込みは調停しない（最後の書き込みが残る）。
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wasya-io/go-guidestore/app/boundary/storage"
	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/entity/document"
)

// Policy は保存先の選び方
type Policy string

const (
	// PolicyCanonical は正規ルートにだけ書き込み、失敗したらすぐにエラーを返す
	PolicyCanonical Policy = "canonical"
	// PolicyFirstWritable は候補ルートを順に試し、最初に書き込めた時点で成功とする
	PolicyFirstWritable Policy = "first-writable"
)

var ErrUnknownPolicy = errors.New("unknown write policy")

// ParsePolicy は文字列から書き込み方針を得る
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCanonical, PolicyFirstWritable:
		return Policy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Options はResolverの設定
type Options struct {
	Roots          document.Roots
	Policy         Policy
	CanonicalRoot  string // 空ならRootsの先頭
	AllowTraversal bool
}

// Resolver はドキュメントの検索と保存を行う
type Resolver struct {
	roots     document.Roots
	policy    Policy
	canonical string
	confine   bool
	storage   storage.Storage
	logger    core.Logger
}

// New は新しいResolverを作成する
func New(opts Options, st storage.Storage, logger core.Logger) (*Resolver, error) {
	if opts.Roots.Len() == 0 {
		return nil, document.ErrNoRoots
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyCanonical
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	canonical := opts.CanonicalRoot
	if canonical == "" {
		canonical = opts.Roots.Paths()[0]
	}
	// 正規ルートが候補にないと保存したドキュメントを読み込めない
	// 候補にあっても先頭でなければ、保存直後の読み込みで古い内容が返りうる
	if policy == PolicyCanonical {
		switch priority := opts.Roots.IndexOf(canonical); {
		case priority < 0:
			logger.Log(core.LevelWarn, "canonical root is not a read candidate", "canonical", canonical)
		case priority > 0:
			logger.Log(core.LevelWarn, "canonical root is not searched first",
				"canonical", canonical, "priority", priority)
		}
	}

	return &Resolver{
		roots:     opts.Roots,
		policy:    policy,
		canonical: canonical,
		confine:   !opts.AllowTraversal,
		storage:   st,
		logger:    logger,
	}, nil
}

// Roots は候補ルートを返す
func (r *Resolver) Roots() document.Roots {
	return r.roots
}

// Policy は書き込み方針を返す
func (r *Resolver) Policy() Policy {
	return r.policy
}

// CanonicalRoot は正規の書き込み先ルートを返す
func (r *Resolver) CanonicalRoot() string {
	return r.canonical
}

func (r *Resolver) parse(filename string) (document.Filename, error) {
	f, err := document.ParseFilename(filename, r.confine)
	if err != nil {
		return document.Filename{}, &DocumentError{Kind: KindInvalidFilename, Filename: filename, Err: err}
	}
	return f, nil
}

// RootStatus は候補ルートの診断情報
type RootStatus struct {
	Root      string
	Priority  int
	Exists    bool
	IsDir     bool
	Writable  bool
	Canonical bool
}

// Probe は各候補ルートの存在と書き込み可否を調べる
func (r *Resolver) Probe() []RootStatus {
	paths := r.roots.Paths()
	statuses := make([]RootStatus, 0, len(paths))
	for i, root := range paths {
		s := RootStatus{Root: root, Priority: i, Canonical: sameRoot(root, r.canonical)}
		if info, err := r.storage.Stat(root); err == nil {
			s.Exists = true
			s.IsDir = info.IsDir()
			s.Writable = s.IsDir && r.storage.Writable(root)
		}
		statuses = append(statuses, s)
	}
	return statuses
}

func sameRoot(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func isMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
