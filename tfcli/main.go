package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/typeface"
	"github.com/npillmayer/typeface/internal/fontload"
	"github.com/npillmayer/typeface/registry"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.tyse.fonts":    "Info",
		"trace.font.opentype": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load, file path or system font name")
	afm := flag.String("afm", "", "AFM metrics file for Type 1 fonts")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to Typeface CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("tf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, registry: registry.GlobalRegistry()}
	defer intp.shutdown()
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname, *afm); err != nil { // font name provided by flag
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	tf       *typeface.Typeface // current typeface
	repl     *readline.Instance
	registry *registry.Registry
	files    []fontload.Files
}

func (intp *Intp) String() string {
	if intp == nil || intp.tf == nil {
		return "()"
	}
	return fmt.Sprintf("( %s | %s )", intp.tf.FullName(), intp.tf.Type())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if _, quit := intp.execute(cmd); quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) shutdown() {
	if err := intp.registry.Close(); err != nil {
		tracer().Errorf(err.Error())
	}
	for _, files := range intp.files {
		files.Close()
	}
	intp.repl.Close()
}

// Op is a single step of a command line. Steps are separated by blanks,
// arguments of a step by colons, e.g. "subset:Hello:hello.ttf".
type Op struct {
	name string
	arg  string
	arg2 string
	fn   opFunc
}

// An opFunc executes a step. It returns true if the REPL should quit.
type opFunc func(*Intp, *Op) (error, bool)

var commandFn = map[string]opFunc{
	"quit":    quitOp,
	"help":    helpOp,
	"load":    loadOp,
	"fonts":   fontsOp,
	"info":    infoOp,
	"metrics": metricsOp,
	"tables":  tablesOp,
	"glyph":   glyphOp,
	"kern":    kernOp,
	"subset":  subsetOp,
	"cff":     cffOp,
}

const maxSteps = 32

// parseCommand splits a command line into steps. Unknown commands turn into
// a call for help, and nothing after "quit" is executed.
func (intp *Intp) parseCommand(line string) ([]Op, error) {
	steps := strings.Fields(line)
	if len(steps) > maxSteps {
		return nil, fmt.Errorf("too many commands in one line: %d", len(steps))
	}
	cmd := make([]Op, 0, len(steps))
	for _, step := range steps {
		args := strings.SplitN(step, ":", 3)
		op := Op{name: strings.ToLower(args[0])}
		if op.fn = commandFn[op.name]; op.fn == nil {
			tracer().Debugf("unknown command %q", op.name)
			op.name, op.fn = "help", helpOp
		}
		if op.name == "quit" {
			return append(cmd, op), nil
		}
		if len(args) > 1 {
			op.arg = args[1]
		}
		if len(args) > 2 {
			op.arg2 = args[2]
		}
		tracer().Debugf("%s %q %q", op.name, op.arg, op.arg2)
		cmd = append(cmd, op)
	}
	return cmd, nil
}

// execute runs the steps of a command line until one of them fails or quits.
func (intp *Intp) execute(cmd []Op) (err error, stop bool) {
	for i := range cmd {
		if err, stop = cmd[i].fn(intp, &cmd[i]); err != nil {
			pterm.Error.Println(err)
			return err, false
		}
		if stop {
			return nil, true
		}
	}
	return nil, false
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

// loadFont loads a typeface and makes it the current one. Typefaces are
// kept in the registry until the CLI quits.
func (intp *Intp) loadFont(fontname, afm string) error {
	tf, files, err := fontload.Load(fontname, afm)
	if err != nil {
		return err
	}
	registered := intp.registry.Store(tf)
	if registered != tf {
		pterm.Info.Printf("font %s already loaded\n", registered.FullName())
		files.Close()
	} else {
		intp.files = append(intp.files, files)
	}
	intp.tf = registered
	return nil
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	return op.arg, op.arg != ""
}
