// Command dsxtool inspects and round-trips Desynced blueprint/behavior
// exchange strings.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/tifv/desynced-exchange/exchange"
)

func main() {
	roundTrip := flag.Bool("roundtrip", false, "re-encode the decoded string and compare it to the input")
	flag.Parse()

	o := bufio.NewWriter(os.Stdout)
	defer o.Flush()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}

	status := 0
	for _, arg := range args {
		if err := process(o, arg, *roundTrip); err != nil {
			fmt.Fprintf(os.Stderr, "dsxtool: %s: %s\n", arg, err)
			status = 1
		}
	}
	o.Flush()
	os.Exit(status)
}

func process(o *bufio.Writer, arg string, roundTrip bool) error {
	var in *os.File
	if arg == "-" {
		in = os.Stdin
	} else {
		var err error
		in, err = os.Open(arg)
		if err != nil {
			return fmt.Errorf("can't open: %w", err)
		}
		defer in.Close()
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if err := processLine(o, line, roundTrip); err != nil {
			return err
		}
	}
	return sc.Err()
}

func processLine(o *bufio.Writer, line string, roundTrip bool) error {
	ex, err := exchange.Load(line)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	kind := "blueprint"
	if ex.Kind == exchange.KindBehavior {
		kind = "behavior"
	}
	fmt.Fprintf(o, "%s: %s\n", kind, describe(ex))

	if roundTrip {
		out, err := exchange.Dump(ex)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		if out != line {
			return fmt.Errorf("round-trip mismatch: got %d bytes, want %d", len(out), len(line))
		}
	}
	return nil
}

func describe(ex exchange.Exchange) string {
	if ex.Payload.IsNil() {
		return "(empty)"
	}
	tbl, ok := ex.Payload.Table()
	if !ok {
		return fmt.Sprintf("%v value", ex.Payload.Type())
	}
	loglen, hasAssoc := tbl.AssocLogLen()
	if hasAssoc {
		return fmt.Sprintf("table (array_len=%d, assoc_loglen=%d)", tbl.ArrayLen(), loglen)
	}
	return fmt.Sprintf("table (array_len=%d, no assoc part)", tbl.ArrayLen())
}
