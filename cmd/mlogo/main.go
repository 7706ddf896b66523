// Command mlogo is the headless, line-oriented front end: a REPL over
// stdin/stdout when run with no arguments, or a script runner over a file
// when given one.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mbianchi/mlogo/pkg/builtins"
	"github.com/mbianchi/mlogo/pkg/interpreter"
	"github.com/mbianchi/mlogo/pkg/utils"
)

func main() {
	mode := flag.String("mode", "wrap", "initial turtle boundary mode: window, fence or wrap")
	noPrompt := flag.Bool("noprompt", false, "suppress the interactive prompt")
	flag.Parse()

	stack := builtins.NewStack(os.Stdout, os.Stderr, nil)
	switch *mode {
	case "window":
		stack.Turtle.SetWindowMode()
	case "fence":
		stack.Turtle.SetFenceMode()
	case "wrap":
		stack.Turtle.SetWrapMode()
	default:
		log.Fatalf("mlogo: unknown mode %q (want window, fence or wrap)", *mode)
	}

	if flag.NArg() == 0 {
		ip := interpreter.New(stack, os.Stdin)
		ip.ShowPrompt = !*noPrompt
		if err := ip.Run(); err != nil {
			log.Fatalf("mlogo: %v", err)
		}
		return
	}

	fullPath, err := utils.ResolveScript(flag.Arg(0))
	if err != nil {
		log.Fatalf("mlogo: %v", err)
	}
	f, err := os.Open(fullPath)
	if err != nil {
		log.Fatalf("mlogo: %v", err)
	}
	defer f.Close()

	ip := interpreter.New(stack, f)
	if err := ip.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
