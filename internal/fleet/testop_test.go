package fleet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ravenrobotics/raven/internal/workspace"
)

// layoutDir builds a checkout with the given files (name -> contents).
// A trailing slash in the name creates a directory.
func layoutDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		if name[len(name)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("creating %s: %v", name, err)
			}
			continue
		}
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestTestCommandDetection(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		want   string
		wantOK bool
	}{
		{
			name:   "makefile with test target",
			files:  map[string]string{"Makefile": "build:\n\tgcc main.c\n\ntest:\n\t./run-tests.sh\n"},
			want:   "make test",
			wantOK: true,
		},
		{
			name:   "makefile without test target",
			files:  map[string]string{"Makefile": "build:\n\tgcc main.c\n"},
			wantOK: false,
		},
		{
			name:   "makefile with indented test word only",
			files:  map[string]string{"Makefile": "check:\n\techo test: nope\n"},
			wantOK: false,
		},
		{
			name:   "package json with test script",
			files:  map[string]string{"package.json": `{"name":"raven-dashboard","scripts":{"start":"vite","test":"vitest run"}}`},
			want:   "npm test --silent",
			wantOK: true,
		},
		{
			name:   "package json without test script",
			files:  map[string]string{"package.json": `{"name":"raven-dashboard","scripts":{"start":"vite"}}`},
			wantOK: false,
		},
		{
			name:   "malformed package json",
			files:  map[string]string{"package.json": "{not json"},
			wantOK: false,
		},
		{
			name:   "pytest ini with tests dir",
			files:  map[string]string{"pytest.ini": "[pytest]\n", "tests/": ""},
			want:   "python3 -m pytest",
			wantOK: true,
		},
		{
			name:   "pyproject with tests dir",
			files:  map[string]string{"pyproject.toml": "[tool.pytest.ini_options]\n", "tests/": ""},
			want:   "python3 -m pytest",
			wantOK: true,
		},
		{
			name:   "pytest config without tests dir",
			files:  map[string]string{"pytest.ini": "[pytest]\n"},
			wantOK: false,
		},
		{
			name:   "tests dir without pytest config",
			files:  map[string]string{"tests/": ""},
			wantOK: false,
		},
		{
			name:   "empty checkout",
			files:  map[string]string{},
			wantOK: false,
		},
		{
			name: "makefile wins over package json",
			files: map[string]string{
				"Makefile":     "test:\n\tmake -C tests\n",
				"package.json": `{"scripts":{"test":"vitest run"}}`,
			},
			want:   "make test",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := layoutDir(t, tt.files)
			got, ok := testCommand(dir)
			if ok != tt.wantOK {
				t.Fatalf("testCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("testCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTestOpPrecondition(t *testing.T) {
	withLayout := workspace.Target{
		Name: "raven-brain",
		Path: layoutDir(t, map[string]string{"pytest.ini": "[pytest]\n", "tests/": ""}),
	}
	if ok, _ := (TestOp{}).Precondition(withLayout); !ok {
		t.Errorf("Precondition() = false for pytest layout")
	}

	bare := workspace.Target{Name: "raven-docs", Path: t.TempDir()}
	ok, reason := (TestOp{}).Precondition(bare)
	if ok {
		t.Errorf("Precondition() = true for bare checkout")
	}
	if reason != "no recognized test layout" {
		t.Errorf("reason = %q", reason)
	}
}

func TestHardwareTestOpPrecondition(t *testing.T) {
	withSuite := workspace.Target{
		Name: "raven-embedded",
		Path: layoutDir(t, map[string]string{"tests/hardware/": ""}),
	}
	if ok, _ := (HardwareTestOp{Port: "/dev/ttyACM0"}).Precondition(withSuite); !ok {
		t.Errorf("Precondition() = false with tests/hardware present")
	}

	without := workspace.Target{Name: "raven-embedded", Path: t.TempDir()}
	ok, reason := (HardwareTestOp{Port: "/dev/ttyACM0"}).Precondition(without)
	if ok {
		t.Errorf("Precondition() = true without tests/hardware")
	}
	if reason != "no hardware test suite" {
		t.Errorf("reason = %q", reason)
	}

	noBoard := HardwareTestOp{}
	ok, reason = noBoard.Precondition(withSuite)
	if ok {
		t.Errorf("Precondition() = true without a detected board")
	}
	if reason != "no embedded board detected" {
		t.Errorf("reason = %q", reason)
	}
}
