// Package fakerubocop turns a test binary into a stand-in for the rubocop
// executable, so engine tests never need Ruby installed.
//
// Call Main first thing in TestMain, then point the engine at Command with
// Env(scenario) in its environment. The fake drives a small set of Cop
// implementations chosen by the scenario and reports like rubocop does.
package fakerubocop

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/standardrb/standardgo/internal/domain"
)

// EnvScenario selects the scenario; when set, Main takes over the process.
const EnvScenario = "STANDARDRB_FAKE_RUBOCOP"

// Version is what the fake reports for --version.
const Version = "1.99.0"

const (
	// ScenarioFixture runs the fixture cops, which flag AgreeableSource.
	ScenarioFixture = "fixture"
	// ScenarioBadCop adds Standard/BadCop, which raises on every file.
	ScenarioBadCop = "badcop"
	// ScenarioEcho prints its argv, the --config file and stdin, then exits 0.
	ScenarioEcho = "echo"
)

// AgreeableSource is the source the fixture cops flag.
const AgreeableSource = "def Foo;'hi'end\n"

// AgreeableFixed is AgreeableSource after safe corrections.
const AgreeableFixed = "def Foo\n  'hi'\nend\n"

// agreeableFixedAll is AgreeableSource after all corrections, unsafe included.
const agreeableFixedAll = "# frozen_string_literal: true\n\n" + AgreeableFixed

// Separator is printed between the report and corrected stdin source.
const Separator = domain.CorrectedSourceSeparator

// Main runs the fake and exits when EnvScenario is set; otherwise it returns.
func Main() {
	scenario := os.Getenv(EnvScenario)
	if scenario == "" {
		return
	}
	os.Exit(Run(scenario, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Command returns the argv that re-executes the running test binary.
func Command() []string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	return []string{exe}
}

// Env returns the environment entry selecting scenario.
func Env(scenario string) string {
	return EnvScenario + "=" + scenario
}

// Correctability says whether and how an offense can be autocorrected.
type Correctability int

const (
	NotCorrectable Correctability = iota
	SafeCorrectable
	UnsafeCorrectable
)

// Offense is what a Cop reports.
type Offense struct {
	Line        int
	Column      int
	Message     string
	Correctable Correctability
}

// Cop is the rule capability the fake engine drives. Investigate may fail;
// the engine reports the failure and carries on with the other cops.
type Cop interface {
	Name() string
	Investigate(path, source string) ([]Offense, error)
}

// Corrector is implemented by cops that rewrite the source they flag.
type Corrector interface {
	Correct(source string, unsafe bool) string
}

// CopsFor returns the cops a scenario runs.
func CopsFor(scenario string) []Cop {
	cops := fixtureCops()
	if scenario == ScenarioBadCop {
		cops = append(cops, BadCop{})
	}
	return cops
}

// BadCop raises on every file it inspects.
type BadCop struct{}

func (BadCop) Name() string { return "Standard/BadCop" }

func (BadCop) Investigate(string, string) ([]Offense, error) {
	return nil, errors.New("hell")
}

// cannedCop flags AgreeableSource with one fixed offense.
type cannedCop struct {
	name    string
	offense Offense
}

func (c cannedCop) Name() string { return c.name }

func (c cannedCop) Investigate(_, source string) ([]Offense, error) {
	if source != AgreeableSource {
		return nil, nil
	}
	return []Offense{c.offense}, nil
}

func (c cannedCop) Correct(source string, unsafe bool) string {
	if source != AgreeableSource && source != AgreeableFixed {
		return source
	}
	if unsafe {
		return agreeableFixedAll
	}
	return AgreeableFixed
}

func fixtureCops() []Cop {
	return []Cop{
		cannedCop{"Style/FrozenStringLiteralComment", Offense{1, 1, "Missing frozen string literal comment.", UnsafeCorrectable}},
		cannedCop{"Style/SingleLineMethods", Offense{1, 1, "Avoid single-line method definitions.", SafeCorrectable}},
		cannedCop{"Naming/MethodName", Offense{1, 5, "Use snake_case for method names.", NotCorrectable}},
		cannedCop{"Layout/SpaceAfterSemicolon", Offense{1, 8, "Space missing after semicolon.", SafeCorrectable}},
		cannedCop{"Style/Semicolon", Offense{1, 8, "Do not use semicolons to terminate expressions.", SafeCorrectable}},
		cannedCop{"Layout/TrailingWhitespace", Offense{1, 9, "Trailing whitespace detected.", SafeCorrectable}},
	}
}

type formatter struct {
	name string
	out  string
}

// formatterList collects -f/--format values in order.
type formatterList struct{ list *[]formatter }

func (f formatterList) String() string {
	names := make([]string, 0, len(*f.list))
	for _, fm := range *f.list {
		names = append(names, fm.name)
	}
	return strings.Join(names, ",")
}

func (f formatterList) Set(v string) error {
	*f.list = append(*f.list, formatter{name: v})
	return nil
}

func (f formatterList) Type() string { return "formatter" }

// outputFile sends the most recent formatter to -o/--out. An -o before any
// -f applies to the default progress formatter.
type outputFile struct{ list *[]formatter }

func (o outputFile) String() string { return "" }

func (o outputFile) Set(v string) error {
	if len(*o.list) == 0 {
		*o.list = append(*o.list, formatter{name: domain.FormatterProgress})
	}
	(*o.list)[len(*o.list)-1].out = v
	return nil
}

func (o outputFile) Type() string { return "file" }

type options struct {
	autocorrect    bool
	autocorrectAll bool
	parallel       bool
	stderr         bool
	debug          bool
	forceExclusion bool
	version        bool
	stdinPath      string
	only           []string
	except         []string
	cache          string
	config         string
	failLevel      string
	formatters     []formatter
	paths          []string
}

func (o options) correcting() bool { return o.autocorrect || o.autocorrectAll }

func parseArgs(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("rubocop", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVarP(&o.autocorrect, "autocorrect", "a", false, "")
	fs.BoolVarP(&o.autocorrectAll, "autocorrect-all", "A", false, "")
	fs.BoolVarP(&o.parallel, "parallel", "P", false, "")
	fs.BoolVar(&o.stderr, "stderr", false, "")
	fs.BoolVarP(&o.debug, "debug", "d", false, "")
	fs.BoolVar(&o.forceExclusion, "force-exclusion", false, "")
	fs.BoolVarP(&o.version, "version", "v", false, "")
	fs.StringVarP(&o.stdinPath, "stdin", "s", "", "")
	fs.StringSliceVar(&o.only, "only", nil, "")
	fs.StringSliceVar(&o.except, "except", nil, "")
	fs.StringVarP(&o.cache, "cache", "C", "", "")
	fs.StringVarP(&o.config, "config", "c", "", "")
	fs.StringVar(&o.failLevel, "fail-level", "", "")
	fs.VarP(formatterList{&o.formatters}, "format", "f", "")
	fs.VarP(outputFile{&o.formatters}, "out", "o", "")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.paths = fs.Args()
	return o, nil
}

// failing reports whether any offense left in place is at or above the
// --fail-level severity.
func (o options) failing(report *domain.Report) bool {
	threshold := severityRank(domain.Severity(o.failLevel))
	for _, f := range report.Files {
		for _, off := range f.Uncorrected() {
			if severityRank(off.Severity) >= threshold {
				return true
			}
		}
	}
	return false
}

var severities = []domain.Severity{
	domain.SeverityInfo,
	domain.SeverityRefactor,
	domain.SeverityConvention,
	domain.SeverityWarning,
	domain.SeverityError,
	domain.SeverityFatal,
}

func severityRank(s domain.Severity) int {
	return slices.Index(severities, s)
}

type source struct {
	path    string
	content string
}

// Run executes the fake engine and returns its exit status.
func Run(scenario string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(domain.ExitError)
	}
	if opts.version {
		fmt.Fprintln(stdout, Version)
		return int(domain.ExitSuccess)
	}
	if scenario == ScenarioEcho {
		return echo(opts, args, stdin, stdout, stderr)
	}
	if opts.parallel && opts.stdinPath != "" {
		fmt.Fprintln(stderr, "-P/--parallel can't be combined with --stdin.")
		return int(domain.ExitError)
	}

	sources, err := loadSources(opts, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(domain.ExitError)
	}

	cops := selectCops(CopsFor(scenario), opts)
	report := &domain.Report{
		Metadata: domain.ReportMetadata{
			RubocopVersion: Version,
			RubyEngine:     "ruby",
			RubyVersion:    "3.3.0",
			RubyPlatform:   "x86_64-linux",
		},
	}
	var faults []string
	corrected := make(map[string]string, len(sources))

	for _, src := range sources {
		fr, fixed, errs := investigate(cops, src, opts)
		report.Files = append(report.Files, fr)
		corrected[src.path] = fixed
		faults = append(faults, errs...)
	}
	report.Summary = domain.ReportSummary{
		OffenseCount:       report.OffenseCount(),
		TargetFileCount:    len(sources),
		InspectedFileCount: len(sources),
	}

	reportW := stdout
	if opts.stderr {
		reportW = stderr
	}

	formatters := opts.formatters
	if len(formatters) == 0 {
		formatters = []formatter{{name: domain.FormatterProgress}}
	}
	for _, f := range formatters {
		w := reportW
		if f.out != "" {
			file, err := os.Create(f.out)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return int(domain.ExitError)
			}
			defer file.Close()
			w = file
		}
		if err := render(w, f.name, report, opts); err != nil {
			fmt.Fprintln(stderr, err)
			return int(domain.ExitError)
		}
	}

	if opts.stdinPath != "" && opts.correcting() {
		fmt.Fprintln(reportW, Separator)
		fmt.Fprint(stdout, corrected[opts.stdinPath])
	}

	if len(faults) > 0 {
		fmt.Fprintf(stderr, "\n%d %s occurred:\n", len(faults), plural(len(faults), "error"))
		for _, f := range faults {
			fmt.Fprintln(stderr, f)
		}
		return int(domain.ExitOffenses)
	}
	if opts.failing(report) {
		return int(domain.ExitOffenses)
	}
	return int(domain.ExitSuccess)
}

func selectCops(cops []Cop, opts options) []Cop {
	var out []Cop
	for _, c := range cops {
		if len(opts.only) > 0 && !slices.Contains(opts.only, c.Name()) {
			continue
		}
		if slices.Contains(opts.except, c.Name()) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func loadSources(opts options, stdin io.Reader) ([]source, error) {
	if opts.stdinPath != "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []source{{path: opts.stdinPath, content: string(data)}}, nil
	}

	paths := opts.paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var out []source
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, err
			}
			out = append(out, source{path: p, content: string(data)})
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".rb" {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out = append(out, source{path: path, content: string(data)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func investigate(cops []Cop, src source, opts options) (domain.FileReport, string, []string) {
	fr := domain.FileReport{Path: src.path, Offenses: []domain.Offense{}}
	fixed := src.content
	var faults []string

	for _, cop := range cops {
		offenses, err := cop.Investigate(src.path, src.content)
		if err != nil {
			abs, _ := filepath.Abs(src.path)
			fault := fmt.Sprintf("An error occurred while %s cop was inspecting %s:1:0.", cop.Name(), abs)
			faults = append(faults, fault)
			continue
		}
		for _, o := range offenses {
			isCorrected := opts.correcting() &&
				(o.Correctable == SafeCorrectable || (o.Correctable == UnsafeCorrectable && opts.autocorrectAll))
			if isCorrected {
				if c, ok := cop.(Corrector); ok {
					fixed = c.Correct(fixed, opts.autocorrectAll)
				}
			}
			fr.Offenses = append(fr.Offenses, domain.Offense{
				Severity:    domain.SeverityConvention,
				Message:     cop.Name() + ": " + o.Message,
				CopName:     cop.Name(),
				Corrected:   isCorrected,
				Correctable: o.Correctable != NotCorrectable,
				Location: domain.Location{
					StartLine:   o.Line,
					StartColumn: o.Column,
					LastLine:    o.Line,
					LastColumn:  o.Column,
					Length:      1,
					Line:        o.Line,
					Column:      o.Column,
				},
			})
		}
	}

	sort.SliceStable(fr.Offenses, func(i, j int) bool {
		a, b := fr.Offenses[i], fr.Offenses[j]
		if a.Line() != b.Line() {
			return a.Line() < b.Line()
		}
		if a.Column() != b.Column() {
			return a.Column() < b.Column()
		}
		return a.CopName < b.CopName
	})
	return fr, fixed, faults
}

func render(w io.Writer, name string, report *domain.Report, opts options) error {
	switch name {
	case domain.FormatterJSON:
		return json.NewEncoder(w).Encode(report)
	case domain.FormatterQuiet:
		if report.OffenseCount() == 0 {
			return nil
		}
		return renderSimple(w, report, opts)
	case domain.FormatterSimple, domain.FormatterProgress:
		return renderSimple(w, report, opts)
	case domain.FormatterFiles:
		for _, f := range report.OffendingFiles() {
			if _, err := fmt.Fprintln(w, f.Path); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("Cannot load formatter %q", name)
	}
}

func renderSimple(w io.Writer, report *domain.Report, opts options) error {
	var b strings.Builder
	for _, f := range report.Files {
		if len(f.Offenses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "== %s ==\n", f.Path)
		for _, o := range f.Offenses {
			status := ""
			switch {
			case o.Corrected:
				status = "[Corrected] "
			case o.Correctable:
				status = "[Correctable] "
			}
			fmt.Fprintf(&b, "%s:%3d:%3d: %s%s\n", o.Severity.Code(), o.Line(), o.Column(), status, o.Message)
		}
	}
	b.WriteString("\n")
	b.WriteString(summaryLine(report, opts))
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(report *domain.Report, opts options) string {
	files := report.Summary.InspectedFileCount
	total := report.OffenseCount()

	line := fmt.Sprintf("%d %s inspected, ", files, plural(files, "file"))
	if total == 0 {
		line += "no offenses detected"
	} else {
		line += fmt.Sprintf("%d %s detected", total, plural(total, "offense"))
	}
	if n := report.CorrectedCount(); n > 0 {
		line += fmt.Sprintf(", %d %s corrected", n, plural(n, "offense"))
	}
	if n := report.CorrectableCount(); n > 0 {
		if opts.correcting() {
			line += fmt.Sprintf(", %d more %s can be corrected with `rubocop -A`", n, plural(n, "offense"))
		} else {
			line += fmt.Sprintf(", %d %s autocorrectable", n, plural(n, "offense"))
		}
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func echo(opts options, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	for _, a := range args {
		fmt.Fprintln(stdout, a)
	}
	if opts.config != "" {
		data, err := os.ReadFile(opts.config)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return int(domain.ExitError)
		}
		fmt.Fprintln(stdout, "--- config ---")
		fmt.Fprint(stdout, string(data))
	}
	if opts.stdinPath != "" {
		data, _ := io.ReadAll(stdin)
		fmt.Fprintln(stdout, "--- stdin ---")
		fmt.Fprint(stdout, string(data))
	}
	return int(domain.ExitSuccess)
}
