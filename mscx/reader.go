// Package mscx reads MuseScore-style XML scores in a single forward pass.
package mscx

import (
	"bytes"
	"encoding/xml"
	"io"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"go-mscx/fraction"
	"go-mscx/score"
)

// Reader holds all state of one parse: token cursor, time cursor,
// id registries and the connector graph. It is not safe for concurrent
// use; parallel reads each need their own Reader.
type Reader struct {
	dec   *xml.Decoder
	kind  tokenKind
	name  string
	attrs []xml.Attr
	text  string
	line  int
	col   int
	err   error

	opts  Options
	log   *zap.Logger
	score *score.Score
	diags []Diagnostic

	track       int
	trackOffset int
	tick        fraction.Fraction
	intTick     int
	tickOffset  fraction.Fraction
	measure     *score.Measure
	pasteMode   bool

	// Source tick a fragment import starts at.
	fragmentTick fraction.Fraction

	timeSigNum int
	timeSigDen int

	beams          map[int]*score.Beam
	tuplets        map[int]*score.Tuplet
	tupletOrder    []*score.Tuplet
	spanners       []spannerEntry
	spannerValues  []SpannerValues
	userTextStyles []userTextStyle
	graph          connectorGraph
}

// NewReader reads from in into sc. A nil sc starts a new score.
func NewReader(in io.Reader, sc *score.Score, opts Options) *Reader {
	if sc == nil {
		sc = score.New()
	}
	dec := xml.NewDecoder(in)
	dec.CharsetReader = charset.NewReaderLabel
	return &Reader{
		dec:          dec,
		opts:         opts,
		log:          opts.logger(),
		score:        sc,
		tick:         fraction.Zero,
		tickOffset:   fraction.Zero,
		fragmentTick: fraction.Zero,
		timeSigNum:   4,
		timeSigDen:   4,
		beams:        map[int]*score.Beam{},
		tuplets:      map[int]*score.Tuplet{},
	}
}

// ReadData reads a complete document.
func ReadData(c []byte, opts Options) (*score.Score, []Diagnostic, error) {
	r := NewReader(bytes.NewReader(c), nil, opts)
	err := r.Read()
	return r.Score(), r.Diagnostics(), err
}

func (r *Reader) Score() *score.Score {
	return r.score
}

// Line is the current document line, including the configured offset.
func (r *Reader) Line() int {
	return r.line + r.opts.LineOffset
}

func (r *Reader) Column() int {
	return r.col
}
