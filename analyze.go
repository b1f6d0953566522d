package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"go-mscx/mscx"
	"go-mscx/score"
)

// analyze prints a structural report of one read document.
func analyze(w io.Writer, name string, size int, sc *score.Score, diags []mscx.Diagnostic) {
	fmt.Fprintf(w, "%s: %s, %s measures, %s staves, %s spanners\n",
		name, humanize.Bytes(uint64(size)),
		humanize.Comma(int64(len(sc.Measures))),
		humanize.Comma(int64(len(sc.Staves))),
		humanize.Comma(int64(len(sc.Spanners))))
	analyzeMeta(w, sc)
	analyzeMeas(w, sc)
	analyzeSpanners(w, sc)
	analyzeDiags(w, diags)
}

func analyzeMeta(w io.Writer, sc *score.Score) {
	keys := make([]string, 0, len(sc.MetaTags))
	for k := range sc.MetaTags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := sc.MetaTags[k]; v != "" {
			fmt.Fprintf(w, "  %s: %s\n", k, v)
		}
	}
}

func analyzeMeas(w io.Writer, sc *score.Score) {
	for i, m := range sc.Measures {
		irr := ""
		if m.Irregular {
			irr = " irregular"
		}
		fmt.Fprintf(w, "  meas %d: tick %v len %v sig %s%s elems %d tuplets %d beams %d\n",
			i, m.Tick, m.Len, m.TimeSignature(), irr, len(m.Elems), len(m.Tuplets), len(m.Beams))
		for _, t := range m.Tuplets {
			fmt.Fprintf(w, "    tuplet %d:%d at %v track %d, %d elements\n",
				t.Actual, t.Normal, t.Tick, t.Track, len(t.Elements))
		}
	}
	if n := len(sc.Orphans); n > 0 {
		fmt.Fprintf(w, "  %d tuplets outside any measure\n", n)
	}
}

func analyzeSpanners(w io.Writer, sc *score.Score) {
	for _, sp := range sc.Spanners {
		start, end := "-", "-"
		if sp.StartElem != nil {
			start = sp.StartElem.GetTypeName()
		}
		if sp.EndElem != nil {
			end = sp.EndElem.GetTypeName()
		}
		fmt.Fprintf(w, "  %v %d: %v/%d (%s) .. %v/%d (%s)\n",
			sp.Kind, sp.Id, sp.Tick, sp.Track, start, sp.Tick2, sp.Track2, end)
	}
}

func analyzeDiags(w io.Writer, diags []mscx.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	counts := map[mscx.DiagKind]int{}
	for _, d := range diags {
		counts[d.Kind]++
	}
	kinds := make([]mscx.DiagKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintf(w, "  %s diagnostics\n", humanize.Comma(int64(len(diags))))
	for _, k := range kinds {
		fmt.Fprintf(w, "    %s: %d\n", k, counts[k])
	}
	for _, d := range diags {
		fmt.Fprintf(w, "    %v\n", d)
	}
}
