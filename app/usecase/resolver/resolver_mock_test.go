package resolver_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mock_storage "github.com/wasya-io/go-guidestore/app/boundary/storage/mock"
	"github.com/wasya-io/go-guidestore/app/entity/core"
	"github.com/wasya-io/go-guidestore/app/entity/document"
	"github.com/wasya-io/go-guidestore/app/usecase/resolver"
)

// テスト用のFileInfo
type fakeInfo struct {
	dir bool
}

func (f fakeInfo) Name() string       { return "fake" }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() interface{}   { return nil }

func newMockResolver(t *testing.T, st *mock_storage.MockStorage, policy resolver.Policy, roots ...string) *resolver.Resolver {
	t.Helper()
	rs, err := document.NewRoots(roots...)
	if err != nil {
		t.Fatalf("NewRoots() error = %v", err)
	}
	r, err := resolver.New(resolver.Options{Roots: rs, Policy: policy}, st, core.NopLogger{})
	if err != nil {
		t.Fatalf("resolver.New() error = %v", err)
	}
	return r
}

func TestLocate_ReadRaceFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	first := filepath.Join("public/data", "x.md")
	second := filepath.Join("data", "x.md")

	// 存在確認の後にファイルが消えた場合
	gomock.InOrder(
		st.EXPECT().Stat(first).Return(fakeInfo{}, nil),
		st.EXPECT().ReadText(first).Return("", os.ErrNotExist),
		st.EXPECT().Stat(second).Return(fakeInfo{}, nil),
		st.EXPECT().ReadText(second).Return("fallback", nil),
	)

	r := newMockResolver(t, st, resolver.PolicyCanonical, "public/data/", "data/")
	got, err := r.Locate("x.md")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if got != "fallback" {
		t.Errorf("Locate() = %q, want %q", got, "fallback")
	}
}

func TestLocate_ShortCircuitsOnFirstRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	first := filepath.Join("../public/data", "x.md")

	st.EXPECT().Stat(first).Return(fakeInfo{}, nil)
	st.EXPECT().ReadText(first).Return("first", nil)
	// 残りの候補には触れない
	st.EXPECT().Stat(gomock.Any()).Times(0)

	r := newMockResolver(t, st, resolver.PolicyCanonical, "../public/data/", "public/data/", "./public/data/", "data/")
	got, err := r.Locate("x.md")
	if err != nil || got != "first" {
		t.Errorf("Locate() = %q, %v", got, err)
	}
}

func TestLocate_StatPermissionErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	st.EXPECT().Stat(filepath.Join("a", "x.md")).Return(nil, os.ErrPermission)
	st.EXPECT().Stat(filepath.Join("b", "x.md")).Return(nil, os.ErrNotExist)

	r := newMockResolver(t, st, resolver.PolicyCanonical, "a", "b")
	_, err := r.Locate("x.md")
	if !errors.Is(err, resolver.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, os.ErrPermission) {
		t.Error("NotFound must not carry the I/O error of a candidate")
	}
}

func TestPersist_CanonicalWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	path := filepath.Join("../public/data", "chapters", "01.json")
	diskFull := errors.New("no space left on device")

	gomock.InOrder(
		st.EXPECT().MkdirAll(filepath.Dir(path)).Return(nil),
		st.EXPECT().WriteText(path, "{}").Return(diskFull),
	)

	r := newMockResolver(t, st, resolver.PolicyCanonical, "../public/data/", "data/")
	res, err := r.Persist("chapters/01.json", "{}")
	if !errors.Is(err, diskFull) {
		t.Fatalf("Expected the underlying error, got %v", err)
	}
	if kind, _ := resolver.KindOf(err); kind != resolver.KindWriteFailed {
		t.Errorf("kind = %v, want write failed", kind)
	}
	want := "could not write: chapters/01.json: " + path + ": no space left on device"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if len(res.Attempts) != 1 {
		t.Errorf("canonical policy should try one target, got %d", len(res.Attempts))
	}
}

func TestPersist_FirstWritableReportsPartialFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	denied := errors.New("permission denied")

	gomock.InOrder(
		st.EXPECT().MkdirAll("public/data").Return(denied),
		st.EXPECT().MkdirAll("../public/data").Return(nil),
		st.EXPECT().WriteText(filepath.Join("../public/data", "y.md"), "content").Return(denied),
		st.EXPECT().MkdirAll("data").Return(nil),
		st.EXPECT().WriteText(filepath.Join("data", "y.md"), "content").Return(nil),
	)

	r := newMockResolver(t, st, resolver.PolicyFirstWritable, "public/data/", "../public/data/", "data/")
	res, err := r.Persist("y.md", "content")
	if err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if res.Written != filepath.Join("data", "y.md") {
		t.Errorf("Written = %q", res.Written)
	}

	failed := res.Failed()
	if len(failed) != 2 {
		t.Fatalf("Failed() = %+v", failed)
	}
	if kind, _ := resolver.KindOf(failed[0].Err); kind != resolver.KindDirectoryCreateFailed {
		t.Errorf("first failure kind = %v", kind)
	}
	if kind, _ := resolver.KindOf(failed[1].Err); kind != resolver.KindWriteFailed {
		t.Errorf("second failure kind = %v", kind)
	}
}

func TestNew_WarnsWhenCanonicalIsNotFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	rec := &recordingLogger{}
	rs, _ := document.NewRoots("public/data/", "../public/data/")

	r, err := resolver.New(resolver.Options{
		Roots:         rs,
		Policy:        resolver.PolicyCanonical,
		CanonicalRoot: "../public/data/",
	}, st, rec)
	if err != nil {
		t.Fatalf("resolver.New() error = %v", err)
	}
	if r.CanonicalRoot() != "../public/data/" {
		t.Errorf("CanonicalRoot() = %q", r.CanonicalRoot())
	}
	if len(rec.warnings) != 1 || rec.warnings[0] != "canonical root is not searched first" {
		t.Errorf("Expected one warning, got %v", rec.warnings)
	}
}

func TestNew_WarnsWhenCanonicalIsNotACandidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mock_storage.NewMockStorage(ctrl)
	rec := &recordingLogger{}
	rs, _ := document.NewRoots("/srv/guide/data/", "data/")

	_, err := resolver.New(resolver.Options{
		Roots:         rs,
		Policy:        resolver.PolicyCanonical,
		CanonicalRoot: "../public/data/",
	}, st, rec)
	if err != nil {
		t.Fatalf("resolver.New() error = %v", err)
	}
	if len(rec.warnings) != 1 || rec.warnings[0] != "canonical root is not a read candidate" {
		t.Errorf("unexpected warnings: %v", rec.warnings)
	}
}

func TestNew_NoWarningWhenCanonicalIsFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := &recordingLogger{}
	rs, _ := document.NewRoots("../public/data/", "data/")
	if _, err := resolver.New(resolver.Options{Roots: rs, CanonicalRoot: "../public/data"}, mock_storage.NewMockStorage(ctrl), rec); err != nil {
		t.Fatalf("resolver.New() error = %v", err)
	}
	if len(rec.warnings) != 0 {
		t.Errorf("unexpected warnings: %v", rec.warnings)
	}
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Log(level core.Level, message string, kv ...interface{}) {
	if level == core.LevelWarn {
		l.warnings = append(l.warnings, message)
	}
}

func (l *recordingLogger) Flush() error { return nil }
