// Command mlogo-desktop is the graphical front end: an Ebiten window
// showing the turtle's canvas, with a one-line command editor and a scrollback
// of recent output drawn as a text layer over the canvas.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mbianchi/mlogo/pkg/builtins"
	"github.com/mbianchi/mlogo/pkg/interpreter"
	"github.com/mbianchi/mlogo/pkg/turtle"
)

const (
	windowScale  = 1
	historyLines = 6
	lineHeight   = 14
)

// Game drives the Ebiten render loop: it owns the interpreter, its turtle's
// raster surface, a blittable copy of that surface, the line being typed at
// the prompt and the recent output shown above it.
type Game struct {
	ip        *interpreter.Interpreter
	raster    *turtle.RasterRenderer
	canvasImg *ebiten.Image
	inputLine []rune
	history   []string
	done      bool
}

func newGame() *Game {
	raster := turtle.NewRasterRenderer(turtle.ScreenWidth, turtle.ScreenHeight)
	out := &lineWriter{}
	stack := builtins.NewStack(out, out, raster)
	g := &Game{
		ip:        interpreter.New(stack, nil),
		raster:    raster,
		canvasImg: ebiten.NewImage(turtle.ScreenWidth, turtle.ScreenHeight),
	}
	out.sink = g.appendHistory
	return g
}

// lineWriter splits interpreter output into lines and hands each one to the
// history. The sink is set after construction because the writer has to
// exist before the Game that consumes it does.
type lineWriter struct {
	sink func(string)
	buf  strings.Builder
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		s := w.buf.String()
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			break
		}
		if w.sink != nil {
			w.sink(s[:i])
		}
		w.buf.Reset()
		w.buf.WriteString(s[i+1:])
	}
	return len(p), nil
}

func (g *Game) appendHistory(line string) {
	g.history = append(g.history, line)
	if len(g.history) > historyLines {
		g.history = g.history[len(g.history)-historyLines:]
	}
}

func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}

	g.inputLine = append(g.inputLine, ebiten.AppendInputChars(nil)...)

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.inputLine) > 0 {
		g.inputLine = g.inputLine[:len(g.inputLine)-1]
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		line := string(g.inputLine)
		g.inputLine = g.inputLine[:0]
		g.appendHistory("? " + line)
		done, err := g.ip.Feed(line)
		if err != nil {
			g.appendHistory(err.Error())
		}
		g.done = done
		if err := g.ip.Stack.Turtle.Render(); err != nil {
			g.appendHistory(err.Error())
		}
		g.canvasImg.WritePixels(g.raster.Image().Pix)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.canvasImg, opts)

	// Text layer: scrollback above, prompt line at the bottom.
	base := turtle.ScreenHeight - (len(g.history)+1)*lineHeight
	for i, line := range g.history {
		ebitenutil.DebugPrintAt(screen, line, 4, base+i*lineHeight)
	}
	ebitenutil.DebugPrintAt(screen, "? "+string(g.inputLine)+"_", 4, turtle.ScreenHeight-lineHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return turtle.ScreenWidth, turtle.ScreenHeight
}

func main() {
	game := newGame()
	if err := game.ip.Stack.Turtle.Render(); err != nil {
		log.Fatalf("mlogo-desktop: %v", err)
	}
	game.canvasImg.WritePixels(game.raster.Image().Pix)

	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatalf("mlogo-desktop: %v", err)
		}
		game.ip.In = f
		if err := game.ip.Run(); err != nil {
			log.Fatalf("mlogo-desktop: %v", err)
		}
		f.Close()
		if err := game.ip.Stack.Turtle.Render(); err != nil {
			log.Fatalf("mlogo-desktop: %v", err)
		}
		game.canvasImg.WritePixels(game.raster.Image().Pix)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(turtle.ScreenWidth*windowScale, turtle.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("mlogo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("mlogo-desktop: %v", err)
	}
}
