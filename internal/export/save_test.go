package export_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/youruser/photoframe/internal/export"
)

type fakeTarget struct {
	name      string
	available bool
	err       error
	called    bool
}

func (f *fakeTarget) Name() string { return f.name }
func (f *fakeTarget) Available(context.Context, *export.Artifact) bool { return f.available }
func (f *fakeTarget) Deliver(context.Context, *export.Artifact) error { f.called = true; return f.err }

func artifact() *export.Artifact {
	return &export.Artifact{Data: []byte("\x89PNG"), ContentType: "image/png", Filename: "certificate-jane.png"}
}

func saver(targets ...export.Target) *export.Saver {
	log, _ := test.NewNullLogger()
	return export.NewSaver(log, targets...)
}

func TestSave_FirstAvailableWins(t *testing.T) {
	share := &fakeTarget{name: "share", available: true}
	dl := &fakeTarget{name: "download", available: true}
	got, err := saver(share, dl).Save(context.Background(), artifact())
	if err != nil || got != "share" {
		t.Fatalf("got %q, %v", got, err)
	}
	if dl.called {
		t.Fatal("later tier attempted after success")
	}
}

func TestSave_FallsBackOnUnavailableAndError(t *testing.T) {
	share := &fakeTarget{name: "share", available: false}
	dl := &fakeTarget{name: "download", available: true, err: errors.New("blocked")}
	view := &fakeTarget{name: "view", available: true}

	got, err := saver(share, dl, view).Save(context.Background(), artifact())
	if err != nil || got != "view" {
		t.Fatalf("got %q, %v", got, err)
	}
	if share.called {
		t.Fatal("unavailable tier was delivered to")
	}
	if !dl.called {
		t.Fatal("download tier skipped")
	}
}

func TestSave_AllFail(t *testing.T) {
	blocked := errors.New("blocked")
	_, err := saver(&fakeTarget{name: "download", available: true, err: blocked}).Save(context.Background(), artifact())
	var ee *export.ExportError
	if !errors.As(err, &ee) || !errors.Is(err, blocked) {
		t.Fatalf("err = %v", err)
	}

	_, err = saver(&fakeTarget{name: "share"}).Save(context.Background(), artifact())
	if !errors.Is(err, export.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSave_NoArtifact(t *testing.T) {
	dl := &fakeTarget{name: "download", available: true}
	if _, err := saver(dl).Save(context.Background(), nil); !errors.Is(err, export.ErrNoArtifact) {
		t.Fatalf("err = %v", err)
	}
	if _, err := saver(dl).Save(context.Background(), export.CompositeArtifact(nil, "x")); !errors.Is(err, export.ErrNoArtifact) {
		t.Fatalf("err = %v", err)
	}
	if dl.called {
		t.Fatal("exported an undefined artifact")
	}
}

func TestSave_WithoutShareFallsBackToDownload(t *testing.T) {
	dir := t.TempDir()
	share := export.NewShareTarget("termux-share").WithExec(
		func(string) (string, error) { return "", errors.New("not found") },
		func(context.Context, string, ...string) error { t.Fatal("share command run"); return nil },
	)
	file := &export.FileTarget{Dir: dir}

	got, err := saver(share, file).Save(context.Background(), artifact())
	if err != nil || got != "download" {
		t.Fatalf("got %q, %v", got, err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "certificate-jane.png"))
	if err != nil || string(b) != "\x89PNG" {
		t.Fatalf("saved file = %q, %v", b, err)
	}
	if file.Saved != filepath.Join(dir, "certificate-jane.png") {
		t.Fatalf("saved path = %q", file.Saved)
	}
}

func TestShareTarget(t *testing.T) {
	var ran []string
	share := export.NewShareTarget("termux-share", "-a", "send").WithExec(
		func(string) (string, error) { return "/usr/bin/termux-share", nil },
		func(_ context.Context, name string, args ...string) error {
			ran = append([]string{name}, args...)
			if _, err := os.Stat(args[len(args)-1]); err != nil {
				t.Errorf("shared file missing: %v", err)
			}
			return nil
		},
	)
	a := artifact()
	if !share.Available(context.Background(), a) {
		t.Fatal("share unavailable")
	}
	if share.Available(context.Background(), &export.Artifact{Data: []byte("x"), ContentType: "text/plain"}) {
		t.Fatal("share accepted a non-image")
	}
	if err := share.Deliver(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if len(ran) != 4 || ran[0] != "termux-share" || ran[1] != "-a" || !strings.HasSuffix(ran[3], "certificate-jane.png") {
		t.Fatalf("ran %v", ran)
	}
}

func TestResponseTarget_DownloadThenInlineFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	dl := &export.ResponseTarget{W: rec}
	view := &export.ResponseTarget{W: rec, Inline: true}

	got, err := saver(dl, view).Save(context.Background(), artifact())
	if err != nil || got != "download" {
		t.Fatalf("got %q, %v", got, err)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename=certificate-jane.png` {
		t.Fatalf("disposition = %q", cd)
	}
	if rec.Header().Get("Content-Type") != "image/png" || rec.Body.String() != "\x89PNG" {
		t.Fatalf("response = %v %q", rec.Header(), rec.Body.String())
	}
}

type committed struct{ *httptest.ResponseRecorder }

func (committed) Written() bool { return true }

func TestResponseTarget_CommittedResponseUnavailable(t *testing.T) {
	w := committed{httptest.NewRecorder()}
	_, err := saver(&export.ResponseTarget{W: w}, &export.ResponseTarget{W: w, Inline: true}).Save(context.Background(), artifact())
	if !errors.Is(err, export.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestCompositeFilename(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":     "certificate-jane-doe.png",
		"  Dr. Who?! ": "certificate-dr-who.png",
		"":             "certificate-guest.png",
		"   ":          "certificate-guest.png",
		"李":            "certificate-guest.png",
	}
	for in, want := range cases {
		if got := export.CompositeFilename(in); got != want {
			t.Errorf("CompositeFilename(%q) = %q, want %q", in, got, want)
		}
	}
	if export.QRArtifact([]byte("x")).Filename != "qr-code.png" {
		t.Fatal("qr filename")
	}
	if export.QRArtifact(nil) != nil {
		t.Fatal("empty qr produced an artifact")
	}
}
