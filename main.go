package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hfeeki/numba/cache"
	"github.com/hfeeki/numba/compiler"
	"github.com/hfeeki/numba/config"
	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"tinygo.org/x/go-llvm"
)

const (
	appName     = "numinfer"
	historyFile = ".numinfer_history"
	promptMain  = "numinfer> "
	banner      = "numinfer REPL, Ctrl+D to exit. Type :help for commands."
	helpText    = `
Enter a call such as dot(float64[:, ::1], float64[::1]) to see its result type.

REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :type <type>     Print a type in canonical form
  :mangle <call>   Print the specialization name of a call
  :demangle <name> Decode a specialization name
`

	// cache pruning: keep this many entries, never touch ones younger than a week
	CLEAN_KEEP    = 4096
	CLEAN_MIN_AGE = 7 * 24 * time.Hour
)

// BatchEntry is one call in a batch file. Expect, when set, is the result
// type the call must produce; ExpectError a substring of the error it must
// fail with.
type BatchEntry struct {
	Name        string `yaml:"name"`
	Call        string `yaml:"call"`
	Expect      string `yaml:"expect,omitempty"`
	ExpectError string `yaml:"expectError,omitempty"`
}

// session runs calls against one engine, optionally through the on-disk
// cache, and declares specializations when IR output is on.
type session struct {
	engine      *infer.Engine
	cached      *cache.Inferrer // nil when the cache is off
	specializer *compiler.Specializer
	out         io.Writer

	emitIR bool
	ctx    llvm.Context
	mod    llvm.Module
}

func newSession(settings config.Settings, out io.Writer) (*session, error) {
	engine := infer.NewEngine(settings.Engine())
	s := &session{
		engine:      engine,
		specializer: compiler.NewSpecializer(engine),
		out:         out,
		emitIR:      settings.EmitIR,
	}
	if settings.Cache {
		store, err := cache.Open(settings.CacheDir)
		if err != nil {
			return nil, err
		}
		s.cached = &cache.Inferrer{Store: store, Engine: engine}
	}
	if s.emitIR {
		s.ctx = llvm.NewContext()
		s.mod = s.ctx.NewModule(appName)
	}
	return s, nil
}

func (s *session) Close() {
	if s.emitIR {
		s.mod.Dispose()
		s.ctx.Dispose()
	}
}

// infer parses and infers one call.
func (s *session) infer(src string) (types.Type, error) {
	sig, err := s.engine.ParseSignature(src)
	if err != nil {
		return nil, err
	}
	var res types.Type
	if s.cached != nil {
		res, _, err = s.cached.Infer(sig)
	} else {
		var fn *compiler.Func
		fn, err = s.specializer.Specialize(sig)
		if fn != nil {
			res = fn.OutType
		}
	}
	if err != nil {
		return nil, err
	}
	if s.emitIR {
		fn, err := s.specializer.Specialize(sig)
		if err != nil {
			return nil, err
		}
		decl, err := s.specializer.Declare(s.mod, fn)
		if err != nil {
			return nil, err
		}
		fmt.Fprint(s.out, decl.String())
	}
	return res, nil
}

// run infers src and prints `<call> -> <result>`.
func (s *session) run(src string) error {
	res, err := s.infer(src)
	if err != nil {
		fmt.Fprintf(s.out, "%s: %v\n", src, err)
		return err
	}
	fmt.Fprintf(s.out, "%s -> %s\n", src, res)
	return nil
}

// runCalls runs each call and returns how many failed.
func (s *session) runCalls(calls []string) int {
	failed := 0
	for _, call := range calls {
		if s.run(call) != nil {
			failed++
		}
	}
	return failed
}

// runLines runs one call per non-blank line of r.
func (s *session) runLines(r io.Reader) (int, error) {
	failed := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if s.run(line) != nil {
			failed++
		}
	}
	return failed, errors.Wrap(sc.Err(), "read calls")
}

func loadBatch(path string) ([]BatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read batch")
	}
	var entries []BatchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "decode batch %s", path)
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Call) == "" {
			return nil, errors.Errorf("batch %s: entry %d has no call", path, i+1)
		}
	}
	return entries, nil
}

// runBatch runs every entry and checks expectations. It returns how many
// entries failed.
func (s *session) runBatch(entries []BatchEntry) int {
	failed := 0
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = e.Call
		}
		res, err := s.infer(e.Call)
		switch {
		case e.ExpectError != "":
			if err == nil {
				fmt.Fprintf(s.out, "❌ %s: expected error containing %q, got %s\n", name, e.ExpectError, res)
				failed++
			} else if !strings.Contains(err.Error(), e.ExpectError) {
				fmt.Fprintf(s.out, "❌ %s: expected error containing %q, got %v\n", name, e.ExpectError, err)
				failed++
			} else {
				fmt.Fprintf(s.out, "✅ %s: %v\n", name, err)
			}
		case err != nil:
			fmt.Fprintf(s.out, "❌ %s: %v\n", name, err)
			failed++
		case e.Expect != "":
			want, perr := s.engine.ParseType(e.Expect)
			if perr != nil {
				fmt.Fprintf(s.out, "❌ %s: bad expectation: %v\n", name, perr)
				failed++
			} else if !types.Equal(want, res) {
				fmt.Fprintf(s.out, "❌ %s: expected %s, got %s\n", name, want, res)
				failed++
			} else {
				fmt.Fprintf(s.out, "✅ %s -> %s\n", name, res)
			}
		default:
			fmt.Fprintf(s.out, "%s -> %s\n", name, res)
		}
	}
	return failed
}

// ---- REPL ------------------------------------------------------------------

func (s *session) repl() int {
	fmt.Fprintln(s.out, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			// Ctrl+C drops the current line
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if s.command(line) {
				break
			}
			continue
		}
		_ = s.run(line)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// command handles a REPL command line and reports whether to exit.
func (s *session) command(line string) (exit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case ":help":
		fmt.Fprint(s.out, helpText)
	case ":quit", ":exit":
		return true
	case ":type":
		t, err := s.engine.ParseType(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		fmt.Fprintln(s.out, t)
	case ":mangle":
		sig, err := s.engine.ParseSignature(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		fmt.Fprintln(s.out, compiler.Mangle(sig))
	case ":demangle":
		sig, err := compiler.Unmangle(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		fmt.Fprintln(s.out, sig)
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for help.\n", cmd)
	}
	return false
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func main() {
	var (
		batchFile = flag.String("f", "", "run the calls of a YAML batch file")
		emitIR    = flag.Bool("ir", false, "print the LLVM declaration of each specialization")
		cacheDir  = flag.String("cache", "", "cache directory (default $"+config.CacheEnv+" or the user cache dir)")
		noCache   = flag.Bool("no-cache", false, "disable the on-disk result cache")
		clean     = flag.Bool("clean", false, "prune old cache entries and exit")
		demangle  = flag.String("demangle", "", "decode a specialization name and exit")
		useREPL   = flag.Bool("repl", false, "start the interactive prompt")
		version   = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *version {
		printVersion()
		return
	}
	if *demangle != "" {
		sig, err := compiler.Unmangle(*demangle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			os.Exit(1)
		}
		fmt.Println(sig)
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: error getting current working directory: %v\n", appName, err)
		os.Exit(1)
	}
	cfg, _, err := config.Load(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	var cli config.MergeOptions
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ir":
			cli.EmitIR = emitIR
		case "cache":
			cli.CacheDir = cacheDir
			on := true
			cli.Cache = &on
		}
	})
	if *noCache {
		off := false
		cli.Cache = &off
	}
	settings := cfg.Merge(cli)

	if *clean {
		store, err := cache.Open(settings.CacheDir)
		if err == nil {
			var removed int
			removed, err = store.Clean(CLEAN_KEEP, CLEAN_MIN_AGE)
			fmt.Printf("Removed %d cache entries from %s\n", removed, store.Dir())
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			os.Exit(1)
		}
		return
	}

	s, err := newSession(settings, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	defer s.Close()

	failed := 0
	switch {
	case *batchFile != "":
		entries, err := loadBatch(*batchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			os.Exit(1)
		}
		failed = s.runBatch(entries)
	case flag.NArg() > 0:
		failed = s.runCalls(flag.Args())
	case *useREPL || isTerminal(os.Stdin):
		s.repl()
	default:
		failed, err = s.runLines(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			os.Exit(1)
		}
	}
	if failed > 0 {
		s.Close()
		os.Exit(1)
	}
}
