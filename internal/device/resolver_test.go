package device

import (
	"context"
	"errors"
	"testing"

	"go.bug.st/serial/enumerator"

	"github.com/ravenrobotics/raven/internal/execx"
)

func TestMatchPort(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		description string
		want        bool
	}{
		{"stlink by description", "/dev/ttyUSB3", "STLink Virtual COM Port", true},
		{"arduino by description", "/dev/cu.usbmodem14101", "Arduino Mega 2560", true},
		{"acm path without description", "/dev/ttyACM0", "", true},
		{"acm path multi digit", "/dev/ttyACM12", "", true},
		{"case sensitive stlink", "/dev/ttyUSB0", "stlink debug probe", false},
		{"case sensitive arduino", "/dev/ttyUSB1", "ARDUINO clone", false},
		{"unrelated usb serial", "/dev/ttyUSB0", "FTDI FT232R", false},
		{"acm prefix with suffix", "/dev/ttyACM0-backup", "", false},
		{"empty everything", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchPort(tt.path, tt.description); got != tt.want {
				t.Errorf("matchPort(%q, %q) = %v, want %v", tt.path, tt.description, got, tt.want)
			}
		})
	}
}

func TestParseBoardList(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantPath string
		wantOK   bool
	}{
		{
			name: "arduino row",
			output: "Port         Protocol Type              Board Name  FQBN            Core\n" +
				"/dev/ttyACM0 serial   Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n",
			wantPath: "/dev/ttyACM0",
			wantOK:   true,
		},
		{
			name: "acm row without board name",
			output: "Port         Protocol Type              Board Name FQBN Core\n" +
				"/dev/ttyACM3 serial   Serial Port (USB) Unknown\n",
			wantPath: "/dev/ttyACM3",
			wantOK:   true,
		},
		{
			name: "first qualifying line wins",
			output: "Port         Protocol Type              Board Name  FQBN            Core\n" +
				"/dev/ttyUSB0 serial   Serial Port (USB) Unknown\n" +
				"/dev/ttyACM1 serial   Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n" +
				"/dev/ttyACM2 serial   Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n",
			wantPath: "/dev/ttyACM1",
			wantOK:   true,
		},
		{
			name:   "header only",
			output: "Port Protocol Type Board Name FQBN Core\n",
			wantOK: false,
		},
		{
			name:   "empty output",
			output: "",
			wantOK: false,
		},
		{
			name:   "blank lines and noise",
			output: "\n\nNo boards found.\n",
			wantOK: false,
		},
		{
			name:   "non-matching serial device",
			output: "/dev/ttyUSB0 serial Serial Port (USB) Unknown\n",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := parseBoardList(tt.output)
			if ok != tt.wantOK {
				t.Fatalf("parseBoardList() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && c.Path != tt.wantPath {
				t.Errorf("parseBoardList() path = %q, want %q", c.Path, tt.wantPath)
			}
			if ok && c.Source != SourceBoardTool {
				t.Errorf("parseBoardList() source = %q, want %q", c.Source, SourceBoardTool)
			}
		})
	}
}

// fakeResolver builds a resolver with scripted sources.
func fakeResolver(ports []*enumerator.PortDetails, portErr error, toolOutput string, toolInstalled bool) *Resolver {
	return &Resolver{
		listPorts: func() ([]*enumerator.PortDetails, error) {
			return ports, portErr
		},
		lookPath: func(file string) (string, error) {
			if toolInstalled {
				return "/usr/bin/" + file, nil
			}
			return "", errors.New("not found")
		},
		runBoardList: func(ctx context.Context, tool string) execx.Result {
			return execx.Result{Stdout: toolOutput}
		},
	}
}

func TestResolvePrefersSerialOverBoardTool(t *testing.T) {
	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyACM0", Product: "Arduino Mega 2560"},
	}
	toolOutput := "/dev/ttyACM9 serial Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n"

	r := fakeResolver(ports, nil, toolOutput, true)
	c, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if c.Source != SourceSerial {
		t.Errorf("Resolve() source = %q, want %q", c.Source, SourceSerial)
	}
	if c.Path != "/dev/ttyACM0" {
		t.Errorf("Resolve() path = %q, want the enumerated port", c.Path)
	}
}

func TestResolveFallsBackToBoardTool(t *testing.T) {
	toolOutput := "Port Protocol Type Board Name FQBN Core\n" +
		"/dev/ttyACM2 serial Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n"

	r := fakeResolver(nil, nil, toolOutput, true)
	c, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want nil", err)
	}
	if c.Source != SourceBoardTool {
		t.Errorf("Resolve() source = %q, want %q", c.Source, SourceBoardTool)
	}
	if c.Path != "/dev/ttyACM2" {
		t.Errorf("Resolve() path = %q, want /dev/ttyACM2", c.Path)
	}
}

func TestResolveSerialErrorStillTriesBoardTool(t *testing.T) {
	toolOutput := "/dev/ttyACM1 serial Serial Port (USB) Arduino Uno arduino:avr:uno arduino:avr\n"

	r := fakeResolver(nil, errors.New("udev unavailable"), toolOutput, true)
	c, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want board tool fallback", err)
	}
	if c.Source != SourceBoardTool {
		t.Errorf("Resolve() source = %q, want %q", c.Source, SourceBoardTool)
	}
}

func TestResolveNoDevice(t *testing.T) {
	r := fakeResolver(nil, nil, "", false)

	_, err := r.Resolve(context.Background())
	if !errors.Is(err, ErrNoDevice) {
		t.Errorf("Resolve() error = %v, want ErrNoDevice", err)
	}
}

func TestResolveIgnoresUnrelatedPorts(t *testing.T) {
	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", Product: "FTDI FT232R"},
		{Name: "/dev/ttyACM5", Product: ""},
	}

	r := fakeResolver(ports, nil, "", false)
	c, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want the ACM port", err)
	}
	if c.Path != "/dev/ttyACM5" {
		t.Errorf("Resolve() path = %q, want /dev/ttyACM5", c.Path)
	}
}
