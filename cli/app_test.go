package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/attdet/serial"
)

const (
	knownS0 = "0.925417 -0.163176 -0.342020 1 0 0 0.5"
	knownS1 = "-0.378520 -0.440970 -0.813798 0 0 -1 0.5"

	levelLine = "0.16,-0.40,-9.40,0.01,-0.02,0.03,-4.00,-18.00,-20.00\r\n"
)

func runApp(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	if stdin != nil {
		app.Reader = stdin
	}
	err := app.Run(append([]string{"attdet"}, args...))
	return out.String(), errOut.String(), err
}

// labeled returns the numbers printed after "label: ".
func labeled(t *testing.T, out, label string) []float64 {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		rest, ok := strings.CutPrefix(line, label+": ")
		if !ok {
			continue
		}
		var values []float64
		for _, f := range strings.Fields(rest) {
			v, err := strconv.ParseFloat(f, 64)
			test.That(t, err, test.ShouldBeNil)
			values = append(values, v)
		}
		return values
	}
	t.Fatalf("no %q line in %q", label, out)
	return nil
}

func TestSolve(t *testing.T) {
	out, errOut, err := runApp(t, nil, "solve", "--sensor", knownS0, "--sensor", knownS1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)
	test.That(t, out, test.ShouldContainSubstring, "rotation: ")

	q := labeled(t, out, "quaternion")
	test.That(t, q, test.ShouldHaveLength, 4)
	euler := labeled(t, out, "euler")
	test.That(t, euler, test.ShouldHaveLength, 3)
	test.That(t, euler[0], test.ShouldAlmostEqual, 30, 1e-3)
	test.That(t, euler[1], test.ShouldAlmostEqual, -20, 1e-3)
	test.That(t, euler[2], test.ShouldAlmostEqual, 10, 1e-3)

	_, errOut, err = runApp(t, nil, "--log-level", "debug", "solve", "-s", knownS0, "-s", knownS1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Count(errOut, "candidate"), test.ShouldEqual, 4)
}

func TestSolveErrors(t *testing.T) {
	_, _, err := runApp(t, nil, "solve", "-s", knownS0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least 2")

	// urfave/cli refuses a flag given under both of its names
	_, _, err = runApp(t, nil, "solve", "--sensor", knownS0, "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "two forms of the same flag")

	_, _, err = runApp(t, nil, "solve", "-s", "1 0 0", "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 7 numbers")

	_, _, err = runApp(t, nil, "solve", "-s", "0 0 0 1 0 0 1", "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "zero")

	_, _, err = runApp(t, nil, "solve", "-s", "1 0 0 1 0 0 -1", "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "weight")

	_, _, err = runApp(t, nil, "solve", "-s", "1 0 x 1 0 0 1", "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)

	_, _, err = runApp(t, nil, "--log-level", "loud", "solve", "-s", knownS0, "-s", knownS1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
}

func TestTriad(t *testing.T) {
	out, errOut, err := runApp(t, nil, "triad", "-s", knownS0, "-s", knownS1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldBeEmpty)
	test.That(t, out, test.ShouldStartWith, "dcm:\n")
	test.That(t, strings.Count(out, "\n"), test.ShouldEqual, 5)

	euler := labeled(t, out, "euler")
	test.That(t, euler[0], test.ShouldAlmostEqual, 30, 1e-3)
	test.That(t, euler[1], test.ShouldAlmostEqual, -20, 1e-3)
	test.That(t, euler[2], test.ShouldAlmostEqual, 10, 1e-3)

	_, _, err = runApp(t, nil, "triad", "-s", knownS0, "-s", knownS1, "-s", knownS0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exactly 2")

	_, errOut, err = runApp(t, nil, "triad", "-s", knownS0, "-s", knownS0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "nearly parallel")
}

func TestStreamFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	input := "garbage\n" + levelLine + levelLine + "0.0,0.0,0.0,0.0,0.0,0.0,1.0,0.0,0.0\n"
	test.That(t, os.WriteFile(path, []byte(input), 0o600), test.ShouldBeNil)

	out, errOut, err := runApp(t, nil, "stream", "--input", path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, lines, test.ShouldHaveLength, 2)
	test.That(t, lines[0], test.ShouldStartWith, "1\t")
	test.That(t, lines[1], test.ShouldStartWith, "2\t")
	test.That(t, lines[1], test.ShouldContainSubstring, "heading=")
	test.That(t, errOut, test.ShouldContainSubstring, "stream finished")
	test.That(t, errOut, test.ShouldContainSubstring, `"bad_readings":2`)

	_, _, err = runApp(t, nil, "stream", "--input", filepath.Join(t.TempDir(), "missing.txt"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStreamStdinLimit(t *testing.T) {
	out, _, err := runApp(t, strings.NewReader(levelLine+levelLine+levelLine), "stream", "-i", "-", "--limit", "1")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, lines, test.ShouldHaveLength, 1)
	test.That(t, lines[0], test.ShouldStartWith, "1\t")
}

func TestStreamConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attdet.json5")
	cfg := `{
		// the board sits level, x pointing north
		solver: "triad",
		log_level: "debug",
	}`
	test.That(t, os.WriteFile(path, []byte(cfg), 0o600), test.ShouldBeNil)
	samples := filepath.Join(dir, "samples.txt")
	test.That(t, os.WriteFile(samples, []byte(levelLine), 0o600), test.ShouldBeNil)

	out, errOut, err := runApp(t, nil, "stream", "-c", path, "-i", samples)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.Split(strings.TrimSpace(out), "\n"), test.ShouldHaveLength, 1)
	// log_level applies when the flag is not given
	test.That(t, errOut, test.ShouldContainSubstring, "DEBUG")

	_, errOut, err = runApp(t, nil, "--log-level", "warn", "stream", "-c", path, "-i", samples)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldNotContainSubstring, "DEBUG")

	_, _, err = runApp(t, nil, "stream", "-c", path, "-i", samples, "--solver", "ekf")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "ekf")

	_, _, err = runApp(t, nil, "stream", "-c", filepath.Join(dir, "missing.json5"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStreamSerial(t *testing.T) {
	prevOpen := serial.Open
	defer func() {
		serial.Open = prevOpen
	}()

	var opened string
	var baudRate int
	serial.Open = func(devicePath string, options serial.Options) (io.ReadWriteCloser, error) {
		opened = devicePath
		baudRate = options.BaudRate
		return nil, errors.New("no such port")
	}

	_, errOut, err := runApp(t, nil, "stream")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no such port")
	test.That(t, opened, test.ShouldEqual, "/dev/ttyUSB0")
	test.That(t, baudRate, test.ShouldEqual, 115200)
	test.That(t, errOut, test.ShouldContainSubstring, "opening serial port")

	path := filepath.Join(t.TempDir(), "attdet.json5")
	test.That(t, os.WriteFile(path, []byte(`{serial: {path: ""}}`), 0o600), test.ShouldBeNil)
	opened = ""
	_, _, err = runApp(t, nil, "stream", "-c", path)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no serial port")
	test.That(t, opened, test.ShouldBeEmpty)
}

func TestVersion(t *testing.T) {
	out, _, err := runApp(t, nil, "version")
	if err != nil {
		// test binaries may be built without module info
		test.That(t, err.Error(), test.ShouldContainSubstring, "build info")
		return
	}
	test.That(t, out, test.ShouldStartWith, "Version ")
}
