// Command timinginfo prints the derived sample-domain timing table of the
// NTSC codec for each chroma pattern.
//
// Usage:
//
//	timinginfo [flags] [pattern ...]
//
// Without arguments it prints every pattern.
//
// Examples:
//
//	timinginfo
//	timinginfo checkered
//	timinginfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-ntsc/ntsc"
)

var registry = []struct {
	name    string
	pattern ntsc.ChromaPattern
}{
	{"vertical", ntsc.PatternVertical},
	{"checkered", ntsc.PatternCheckered},
	{"sawtooth", ntsc.PatternSawtooth},
}

func main() {
	list := flag.Bool("list", false, "list known chroma patterns and exit")
	flag.Parse()

	if *list {
		for _, e := range registry {
			fmt.Println(e.name)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Pattern\tClocks\tSamples/Line\tRate(Hz)\tSync\tBurst\tActive\tActiveLen\tLines")
	for _, name := range names {
		p, ok := lookup(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "timinginfo: unknown pattern %q\n", name)
			os.Exit(1)
		}
		t := ntsc.TimingFor(p)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			p, p.ChromaClocks(), t.SamplesPerLine, t.SampleHz,
			t.SyncBeg, t.CBBeg, t.AVBeg, t.AVLen, t.Lines)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "timinginfo: %v\n", err)
		os.Exit(1)
	}
}

func lookup(name string) (ntsc.ChromaPattern, bool) {
	for _, e := range registry {
		if e.name == name {
			return e.pattern, true
		}
	}
	return 0, false
}
