package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
)

type fakeScanner struct {
	entries []domain.Entry
	err     error
}

func (f *fakeScanner) Scan(_ context.Context, _ string) ([]domain.Entry, error) {
	return f.entries, f.err
}

type fakeWriter struct {
	files   map[string]string
	failOn  string
	ensured []string
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{files: make(map[string]string)}
}

func (f *fakeWriter) EnsureDir(dir string) error {
	f.ensured = append(f.ensured, dir)
	return nil
}

func (f *fakeWriter) Write(dir, identifier, content string) (string, error) {
	if identifier == f.failOn {
		return "", fmt.Errorf("disk full")
	}
	path := dir + "/" + domain.StubFileName(identifier)
	f.files[path] = content
	return path, nil
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestCollectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid root", root: "/models", wantErr: false},
		{name: "empty root", root: "", wantErr: true, errMsg: "root directory is required"},
		{name: "blank root", root: "  ", wantErr: true, errMsg: "root directory is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CollectCommand{Root: tt.root}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCollectCommand_Empty(t *testing.T) {
	cmd := NewCollectCommand(&fakeScanner{}, "/models")
	_, err := cmd.Execute(context.Background())
	if !errors.Is(err, application.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestCollectCommand_ScanError(t *testing.T) {
	scanErr := errors.New("permission denied")
	cmd := NewCollectCommand(&fakeScanner{err: scanErr}, "/models")
	if _, err := cmd.Execute(context.Background()); !errors.Is(err, scanErr) {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestCollectCommand_Execute(t *testing.T) {
	entries := []domain.Entry{{Identifier: "lmstudio-foo", Path: "/models/Foo-GGUF/foo.gguf"}}
	result, err := NewCollectCommand(&fakeScanner{entries: entries}, "/models").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Catalog.Len() != 1 || result.Catalog.Root != "/models" {
		t.Errorf("unexpected catalog: %+v", result.Catalog)
	}
	if result.Message != "Found 1 .gguf files in /models" {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestSaveCatalogCommand_Validate(t *testing.T) {
	full := &domain.Catalog{Entries: []domain.Entry{{Identifier: "a", Path: "/a"}}}

	tests := []struct {
		name      string
		catalog   *domain.Catalog
		outputDir string
		wantErr   error
	}{
		{name: "valid", catalog: full, outputDir: "/out"},
		{name: "missing output dir", catalog: full, outputDir: ""},
		{name: "nil catalog", catalog: nil, outputDir: "/out", wantErr: application.ErrEmptyCatalog},
		{name: "empty catalog", catalog: &domain.Catalog{}, outputDir: "/out", wantErr: application.ErrEmptyCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &SaveCatalogCommand{Catalog: tt.catalog, OutputDir: tt.outputDir}
			err := cmd.Validate()
			switch {
			case tt.name == "valid" && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.name == "missing output dir":
				var valErr *application.ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			case tt.wantErr != nil && !errors.Is(err, tt.wantErr):
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateStubsCommand_Execute(t *testing.T) {
	index := domain.NewModelIndex("catalog.csv")
	index.Add("lmstudio-foo", "/a/b/model.gguf")
	index.Add("lmstudio-bar", "/c/bar.gguf")

	tests := []struct {
		name     string
		defaults string
		want     map[string]string
	}{
		{
			name: "no defaults",
			want: map[string]string{
				"/out/lmstudio-foo.Modelfile": "FROM /a/b/model.gguf\n",
				"/out/lmstudio-bar.Modelfile": "FROM /c/bar.gguf\n",
			},
		},
		{
			name:     "with defaults",
			defaults: "PARAMETER temperature 0.7",
			want: map[string]string{
				"/out/lmstudio-foo.Modelfile": "FROM /a/b/model.gguf\nPARAMETER temperature 0.7\n",
				"/out/lmstudio-bar.Modelfile": "FROM /c/bar.gguf\nPARAMETER temperature 0.7\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := newFakeWriter()
			var progress []string

			cmd := NewGenerateStubsCommand(writer, index, "/out", tt.defaults)
			cmd.OnWrite = func(path string) { progress = append(progress, path) }

			result, err := cmd.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(writer.files) != len(tt.want) {
				t.Fatalf("expected %d files, got %d", len(tt.want), len(writer.files))
			}
			for path, content := range tt.want {
				if writer.files[path] != content {
					t.Errorf("%s = %q, want %q", path, writer.files[path], content)
				}
			}

			wantOrder := []string{"/out/lmstudio-foo.Modelfile", "/out/lmstudio-bar.Modelfile"}
			if strings.Join(progress, ",") != strings.Join(wantOrder, ",") {
				t.Errorf("progress = %v, want %v", progress, wantOrder)
			}
			if len(result.Written) != 2 {
				t.Errorf("expected 2 written, got %d", len(result.Written))
			}
			if len(writer.ensured) != 1 || writer.ensured[0] != "/out" {
				t.Errorf("expected output dir to be ensured once, got %v", writer.ensured)
			}
		})
	}
}

func TestGenerateStubsCommand_DuplicatePolicies(t *testing.T) {
	index := domain.NewModelIndex("catalog.csv")
	index.Add("lmstudio-foo", "/1/foo.gguf")
	index.Add("lmstudio-foo", "/2/foo.gguf")

	writer := newFakeWriter()
	if _, err := NewGenerateStubsCommand(writer, index, "/out", "").Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.files) != 1 || writer.files["/out/lmstudio-foo.Modelfile"] != "FROM /2/foo.gguf\n" {
		t.Errorf("last-wins policy wrote %v", writer.files)
	}

	writer = newFakeWriter()
	cmd := NewGenerateStubsCommand(writer, index, "/out", "")
	cmd.Policy = domain.DuplicateSuffix
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"/out/lmstudio-foo.Modelfile":   "FROM /1/foo.gguf\n",
		"/out/lmstudio-foo-2.Modelfile": "FROM /2/foo.gguf\n",
	}
	for path, content := range want {
		if writer.files[path] != content {
			t.Errorf("suffix policy: %s = %q, want %q", path, writer.files[path], content)
		}
	}
}

func TestGenerateStubsCommand_WriteError(t *testing.T) {
	index := domain.NewModelIndex("")
	index.Add("lmstudio-a", "/a.gguf")
	index.Add("lmstudio-b", "/b.gguf")
	writer := newFakeWriter()
	writer.failOn = "lmstudio-b"

	result, err := NewGenerateStubsCommand(writer, index, "/out", "").Execute(context.Background())
	if err == nil {
		t.Fatal("expected write error")
	}
	if result == nil || len(result.Written) != 1 {
		t.Errorf("expected the first stub to be reported, got %+v", result)
	}
}

func TestGenerateStubsCommand_Validate(t *testing.T) {
	cmd := &GenerateStubsCommand{OutputDir: "/out", Index: domain.NewModelIndex(""), Policy: "bogus"}
	if err := cmd.Validate(); err == nil || !contains(err.Error(), "unknown duplicate policy") {
		t.Errorf("expected policy error, got %v", err)
	}

	cmd = &GenerateStubsCommand{OutputDir: "/out"}
	if err := cmd.Validate(); err == nil {
		t.Error("expected error for missing index")
	}
}

func TestAcceptsDefault(t *testing.T) {
	tests := map[string]bool{
		"":      true,
		"  ":    true,
		"y":     true,
		"Y":     true,
		"yes":   true,
		" YES ": true,
		"n":     false,
		"no":    false,
		"sure":  false,
	}
	for in, want := range tests {
		if got := AcceptsDefault(in); got != want {
			t.Errorf("AcceptsDefault(%q) = %v, want %v", in, got, want)
		}
	}
}
