package run_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/toejough/keycalc"
	"github.com/toejough/keycalc/keycalc/run"
)

func TestEval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{name: "chained", args: []string{"eval", "3", "+", "4", "+", "5", "="}, want: "12\n"},
		{name: "one quoted argument", args: []string{"eval", "12 + 3 ="}, want: "15\n"},
		{name: "divide by zero", args: []string{"eval", "1 / 0 ="}, want: "Infinity\n"},
		{name: "scientific flag", args: []string{"--scientific", "eval", "9", "sqrt"}, want: "3\n"},
		{name: "degrees flag", args: []string{"--scientific", "--degrees", "eval", "90 sin"}, want: "1\n"},
		{name: "scientific toggled in keys", args: []string{"eval", "sci 2 sq"}, want: "4\n"},
		{
			name: "scientific from env",
			args: []string{"eval", "pi"},
			env:  map[string]string{"KEYCALC_SCIENTIFIC": "true"},
			want: "3.141592653589793\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			stdout, _, err := execute(testCase.env, afero.NewMemMapFs(), "", testCase.args...)

			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(stdout).To(Equal(testCase.want))
		})
	}
}

func TestEval_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, _, err := execute(nil, afero.NewMemMapFs(), "", "eval", "2", "sqrt")
	g.Expect(err).To(MatchError(keycalc.ErrScientificDisabled))

	_, _, err = execute(nil, afero.NewMemMapFs(), "", "eval", "2", "plus", "2")
	g.Expect(err).To(MatchError(keycalc.ErrUnknownKey))

	_, _, err = execute(nil, afero.NewMemMapFs(), "", "eval")
	g.Expect(err).To(MatchError(ContainSubstring("failed to parse arguments")))
}

func TestDebugEnv_LogsTransitions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, stderr, err := execute(map[string]string{"KEYCALC_DEBUG": "1"}, afero.NewMemMapFs(), "", "eval", "7")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stderr).To(ContainSubstring("level=DEBUG"))
	g.Expect(stderr).To(ContainSubstring("event=digit:7"))
}

func TestNoCommand(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, stderr, err := execute(nil, afero.NewMemMapFs(), "")

	g.Expect(err).To(MatchError(run.ErrNoCommand))
	g.Expect(stderr).To(ContainSubstring("Usage"))
}

func TestHelpAndVersion(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stdout, _, err := execute(nil, afero.NewMemMapFs(), "", "--help")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(ContainSubstring("key-driven calculator"))

	stdout, _, err = execute(nil, afero.NewMemMapFs(), "", "--version")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("keycalc " + run.Version + "\n"))
}

func TestRunScript(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := afero.NewMemMapFs()
	g.Expect(afero.WriteFile(fs, "total.keys", []byte("# running total\n12 + 3 =\n* 2 = # doubled\n"), 0o600)).
		To(Succeed())

	stdout, _, err := execute(nil, fs, "", "run", "total.keys")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("30\n"))
}

func TestRunScript_Trace(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := afero.NewMemMapFs()
	g.Expect(afero.WriteFile(fs, "s.keys", []byte("1 + 2 =\n"), 0o600)).To(Succeed())

	stdout, _, err := execute(nil, fs, "", "run", "--trace", "s.keys")

	g.Expect(err).NotTo(HaveOccurred())

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	g.Expect(lines).To(HaveLen(5))
	g.Expect(lines[0]).To(MatchRegexp(`^digit:1\s+1$`))
	g.Expect(lines[1]).To(MatchRegexp(`^operator:add\s+1 \+  1$`))
	g.Expect(lines[2]).To(MatchRegexp(`^digit:2\s+1 \+  2$`))
	g.Expect(lines[3]).To(MatchRegexp(`^equals\s+3$`))
	g.Expect(lines[4]).To(Equal("3"))
}

func TestRunScript_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := afero.NewMemMapFs()
	g.Expect(afero.WriteFile(fs, "bad.keys", []byte("1 +\n2 banana\n"), 0o600)).To(Succeed())
	g.Expect(afero.WriteFile(fs, "sci.keys", []byte("4 sqrt\n"), 0o600)).To(Succeed())

	_, _, err := execute(nil, fs, "", "run", "bad.keys")
	g.Expect(err).To(MatchError(keycalc.ErrUnknownKey))
	g.Expect(err).To(MatchError(ContainSubstring("bad.keys: line 2")))

	_, _, err = execute(nil, fs, "", "run", "sci.keys")
	g.Expect(err).To(MatchError(keycalc.ErrScientificDisabled))

	_, _, err = execute(nil, fs, "", "run", "missing.keys")
	g.Expect(err).To(MatchError(ContainSubstring("failed to open missing.keys")))
}

func TestRunScript_Watch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "w.keys")
	g.Expect(os.WriteFile(path, []byte("12 + 3 =\n"), 0o600)).To(Succeed())

	var stdout, stderr syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- run.Run(ctx, []string{"keycalc", "run", "--watch", "--debounce", "10ms", path},
			noEnv, afero.NewOsFs(), strings.NewReader(""), &stdout, &stderr)
	}()

	g.Eventually(stdout.String).Should(Equal("15\n"))

	g.Eventually(func() string {
		_ = os.WriteFile(path, []byte("2 * 4 =\n"), 0o600)
		return stdout.String()
	}, 2*time.Second, 50*time.Millisecond).Should(HaveSuffix("8\n"))

	cancel()
	g.Eventually(done).Should(Receive(BeNil()))
}

func TestRepl(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stdout, stderr, err := execute(nil, afero.NewMemMapFs(), "1 +\n2 banana =\nquit\n9\n", "repl")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("0\n1 +  1\n3\n"))
	g.Expect(stderr).To(ContainSubstring("ignored: unknown key"))
}

func TestRepl_Help(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stdout, stderr, err := execute(nil, afero.NewMemMapFs(), "help\n", "repl")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("0\n"))
	g.Expect(stderr).To(ContainSubstring("keys: "))
	g.Expect(stderr).To(ContainSubstring("sqrt"))
}

func TestRepl_ModeIndicators(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	stdout, stderr, err := execute(nil, afero.NewMemMapFs(), "5 m+\nsqrt\n", "--degrees", "repl")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("DEG  0\nDEG  5\nDEG  5\n"))
	g.Expect(stderr).To(ContainSubstring("ignored: scientific functions are disabled: memory:M+"))
	g.Expect(stderr).To(ContainSubstring("disabled: function:sqrt"))

	stdout, _, err = execute(nil, afero.NewMemMapFs(), "5 m+\nc\n", "--scientific", "--degrees", "repl")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(stdout).To(Equal("SCI  DEG  0\nSCI  DEG  M  5\nSCI  DEG  M  0\n"))
}

func TestMCP_Stdio(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	in, feed := io.Pipe()

	var stdout, stderr syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- run.Run(ctx, []string{"keycalc", "mcp"}, noEnv, afero.NewMemMapFs(), in, &stdout, &stderr)
	}()

	go func() {
		_, _ = io.WriteString(feed, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":`+
			`{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`+"\n")
	}()

	g.Eventually(stdout.String, 2*time.Second).Should(ContainSubstring(`"name":"keycalc"`))

	cancel()
	_ = feed.Close()
	g.Eventually(done, 2*time.Second).Should(Receive())
}

func TestMCP_HTTP_StopsOnCancel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var stdout, stderr syncBuffer

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- run.Run(ctx, []string{"keycalc", "mcp", "--http", "127.0.0.1:0"}, noEnv, afero.NewMemMapFs(),
			strings.NewReader(""), &stdout, &stderr)
	}()

	g.Eventually(stderr.String, 2*time.Second).Should(ContainSubstring("serving MCP over HTTP"))

	cancel()
	g.Eventually(done, 2*time.Second).Should(Receive(BeNil()))
}

// syncBuffer is a bytes.Buffer safe for a writer and a polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func execute(env map[string]string, fs afero.Fs, stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	getEnv := func(name string) string { return env[name] }

	err := run.Run(context.Background(), append([]string{"keycalc"}, args...), getEnv, fs,
		strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func noEnv(string) string { return "" }
