package framework

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
)

const modulePath = "github.com/AliceAlbano/vgrep"

// findProjectRoot searches for the project root directory containing go.mod
func findProjectRoot(startDir string) string {
	dir := startDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			// Check if this go.mod declares the main module (not just requires it)
			content, err := os.ReadFile(goModPath)
			if err == nil && strings.HasPrefix(strings.TrimSpace(string(content)), "module "+modulePath+"\n") {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}
	return ""
}

// Framework runs the vgrep binary inside a scratch directory tree with
// its own config and state directories, so sessions persist between runs
// of one Framework but never leak into the user's home.
type Framework struct {
	BinaryPath string
	Timeout    time.Duration

	root    string
	workdir string
}

// TestCase represents a single e2e test case
type TestCase struct {
	Name string
	Args []string
	// Lines are typed at the prompt, one per line.
	Lines          []string
	ExpectedOutput string
	// Dir runs the binary in a subdirectory of the work tree.
	Dir     string
	Timeout time.Duration
}

// TestResult represents the result of a test case
type TestResult struct {
	Name    string
	Passed  bool
	Error   string
	Output  string
	Elapsed time.Duration
}

// NewFramework creates a new e2e test framework
func NewFramework() *Framework {
	return &Framework{
		BinaryPath: "",
		Timeout:    5 * time.Second,
	}
}

// SetBinaryPath sets the path to the vgrep binary
func (f *Framework) SetBinaryPath(path string) {
	f.BinaryPath = path
}

// BuildBinary builds the vgrep binary for testing
func (f *Framework) BuildBinary() error {
	if f.BinaryPath != "" {
		return nil // Already set
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	projectRoot := findProjectRoot(wd)
	if projectRoot == "" {
		return fmt.Errorf("could not find project root directory from %s", wd)
	}

	buildDir := filepath.Join(projectRoot, "build")
	binaryPath := filepath.Join(buildDir, "vgrep")

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/vgrep")
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to build binary: %w, output: %s", err, string(output))
	}

	f.BinaryPath = binaryPath
	return nil
}

// Setup creates the scratch tree and writes files (path -> content) into
// its work directory.
func (f *Framework) Setup(files map[string]string) error {
	root, err := os.MkdirTemp("", "vgrep-e2e-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	f.root = root
	f.workdir = filepath.Join(root, "work")

	for _, dir := range []string{"config", "state", "work"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return err
		}
	}
	for name, content := range files {
		path := filepath.Join(f.workdir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// Cleanup removes the scratch tree.
func (f *Framework) Cleanup() {
	if f.root != "" {
		os.RemoveAll(f.root) // nolint: errcheck
	}
}

// RunTest executes a single test case
func (f *Framework) RunTest(testCase TestCase) TestResult {
	start := time.Now()
	result := TestResult{
		Name:   testCase.Name,
		Passed: false,
	}
	fail := func(format string, args ...any) TestResult {
		result.Error = fmt.Sprintf(format, args...)
		result.Elapsed = time.Since(start)
		return result
	}

	if err := f.BuildBinary(); err != nil {
		return fail("failed to build binary: %v", err)
	}
	if f.root == "" {
		if err := f.Setup(nil); err != nil {
			return fail("failed to set up: %v", err)
		}
	}

	args := append([]string{
		"--config", filepath.Join(f.root, "config", "none.toml"),
		"--no-git", "--no-less", "--no-highlight",
	}, testCase.Args...)

	cmd := exec.Command(f.BinaryPath, args...)
	cmd.Dir = filepath.Join(f.workdir, testCase.Dir)
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(f.root, "config"),
		"XDG_STATE_HOME="+filepath.Join(f.root, "state"),
		"EDITOR=true",
		"NO_COLOR=1",
	)

	// Use pty to start command
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fail("failed to start command: %v", err)
	}
	defer ptmx.Close()

	exited := make(chan struct{})
	go func() {
		cmd.Wait() // nolint: errcheck
		close(exited)
	}()
	// give the process time to finish its session write before killing it
	defer func() {
		select {
		case <-exited:
		case <-time.After(2 * time.Second):
			cmd.Process.Kill() // nolint: errcheck
		}
	}()

	// Wait for program initialization
	time.Sleep(200 * time.Millisecond)

	for _, line := range testCase.Lines {
		if _, err := ptmx.Write([]byte(line + "\r")); err != nil {
			return fail("failed to send input: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	timeout := testCase.Timeout
	if timeout == 0 {
		timeout = f.Timeout
	}
	deadline := time.Now().Add(timeout)

	matchCh := make(chan bool, 1)
	outputCh := make(chan string, 1)

	// Read output in a separate goroutine
	go func() {
		reader := bufio.NewReader(ptmx)
		var output strings.Builder

		for time.Now().Before(deadline) {
			b, err := reader.ReadByte()
			if err != nil {
				if err != io.EOF {
					output.WriteString(fmt.Sprintf("\n[read error: %v]", err))
				}
				break
			}

			output.WriteByte(b)

			if strings.Contains(output.String(), testCase.ExpectedOutput) {
				matchCh <- true
				break
			}
		}
		outputCh <- output.String()
	}()

	select {
	case <-matchCh:
		result.Passed = true
		result.Output = <-outputCh
	case result.Output = <-outputCh:
		result.Error = "output ended without expected text"
	case <-time.After(timeout):
		result.Error = "test timed out"
	}

	result.Elapsed = time.Since(start)
	return result
}

// RunTests executes multiple test cases
func (f *Framework) RunTests(testCases []TestCase) []TestResult {
	results := make([]TestResult, len(testCases))
	for i, testCase := range testCases {
		fmt.Printf("Running test: %s\n", testCase.Name)
		results[i] = f.RunTest(testCase)
		if results[i].Passed {
			fmt.Printf("PASS %s (%.2fs)\n", testCase.Name, results[i].Elapsed.Seconds())
		} else {
			fmt.Printf("FAIL %s (%.2fs): %s\n", testCase.Name, results[i].Elapsed.Seconds(), results[i].Error)
		}
	}
	return results
}

// PrintSummary prints a summary of test results
func (f *Framework) PrintSummary(results []TestResult) {
	passed := 0
	total := len(results)

	fmt.Println("\n=== Test Summary ===")
	for _, result := range results {
		if result.Passed {
			passed++
			fmt.Printf("PASS %s\n", result.Name)
		} else {
			fmt.Printf("FAIL %s: %s\n", result.Name, result.Error)
		}
	}

	fmt.Printf("\nTotal: %d, Passed: %d, Failed: %d\n", total, passed, total-passed)
}
