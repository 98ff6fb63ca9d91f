package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vturenko/sudoku-server/internal/batch"
	"github.com/vturenko/sudoku-server/internal/sudoku"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func usage(prog string) string {
	return fmt.Sprintf(`Usage: %s [SOURCE]

SOURCE is a path to a puzzle file, or - to read from stdin.
Puzzles are whitespace-separated 81-character lines over {., 1-9}.`, prog)
}

func readSource(src string) ([]byte, error) {
	if src == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(src)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func us(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func run() int {
	prog := "sudoku"
	if len(os.Args) > 0 {
		prog = os.Args[0]
	}
	if len(os.Args) != 2 {
		log.Error("invalid number of arguments, expected 1")
		fmt.Fprintln(os.Stderr, usage(prog))
		return 1
	}

	src := os.Args[1]
	switch src {
	case "-h", "--help", "help":
		fmt.Println(usage(prog))
		return 0
	}

	total := time.Now()

	start := time.Now()
	contents, err := readSource(src)
	if err != nil {
		log.Errorf("failed to read %s: %s", src, err)
		return 1
	}
	log.Infof("reading the input took %.3fms", ms(time.Since(start)))

	lines := strings.Fields(string(contents))
	if len(lines) == 0 {
		log.Warn("no puzzles in input")
		return 0
	}

	// Reference behavior: puzzles are processed sequentially. Each solve
	// owns its grid, so raising the worker count is safe when needed.
	results, err := batch.SolveAll(context.Background(), lines, 1)
	if err != nil {
		log.Error(err)
		return 1
	}

	var (
		parseTime time.Duration
		solveTime time.Duration
		solved    int
		exhausted int
		malformed int
	)
	for _, r := range results {
		parseTime += r.ParseTime
		solveTime += r.SolveTime
		switch {
		case r.Solved():
			solved++
		case r.Err == nil:
		default:
			var ex *sudoku.Exhausted
			if errors.As(r.Err, &ex) {
				exhausted++
				log.Warnf("puzzle %d has no solution", r.Index)
			} else {
				malformed++
				log.Errorf("puzzle %d: %s", r.Index, r.Err)
			}
		}
	}

	count := len(lines)
	log.Infof("parsing the %d puzzles took %.3fms", count, ms(parseTime))
	log.Infof("        that is %.3fus per puzzle", us(parseTime)/float64(count))
	log.Infof("solving took %.3fms", ms(solveTime))
	log.Infof("        that is %.3fus per puzzle", us(solveTime)/float64(count))
	log.Infof("solved %d of %d puzzles (%d exhausted, %d malformed)",
		solved, count, exhausted, malformed)
	log.Infof("total time %.3fs", time.Since(total).Seconds())

	if malformed > 0 {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
