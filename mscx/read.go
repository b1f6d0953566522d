package mscx

import (
	"strings"

	"go.uber.org/zap"

	"go-mscx/fraction"
	"go-mscx/score"
)

// Read reads a complete document. Recoverable problems become
// diagnostics; the error is non-nil only for a malformed token stream,
// or in strict mode for a structural inconsistency.
func (r *Reader) Read() error {
	err := r.readDocument()
	r.finish()
	if err != nil {
		return err
	}
	return r.err
}

func (r *Reader) readDocument() error {
	for r.ReadNextStartElement() {
		if r.name != "museScore" {
			r.unknown()
			continue
		}
		if v := r.Attribute("version", ""); v != "" {
			r.score.MetaTags["mscVersion"] = v
		}
		for r.ReadNextStartElement() {
			switch r.name {
			case "Score":
				if err := r.readScore(); err != nil {
					return err
				}
			case "programVersion", "programRevision":
				r.score.MetaTags[r.name] = strings.TrimSpace(r.ReadElementText())
			default:
				r.unknown()
			}
		}
	}
	return nil
}

// finish runs the end of parse passes: deferred connectors, repair of
// broken chains, teardown.
func (r *Reader) finish() {
	r.CheckConnectors()
	r.ReconnectBrokenConnectors()
	r.Close()
	for _, m := range r.score.Measures {
		m.SortElems()
	}
	r.score.ResolveSpanners()
	r.log.Debug("read done",
		zap.Int("measures", len(r.score.Measures)),
		zap.Int("spanners", len(r.score.Spanners)),
		zap.Int("diagnostics", len(r.diags)))
}

func (r *Reader) readScore() error {
	for r.ReadNextStartElement() {
		switch r.name {
		case "Division":
			r.score.Division = r.ReadInt()
		case "Style":
			r.readStyle()
		case "metaTag":
			name := r.Attribute("name", "")
			r.score.MetaTags[name] = r.ReadElementText()
		case "Part":
			r.readPart()
		case "Staff":
			if !r.HasAttribute("id") {
				r.missing("id")
				continue
			}
			idx := r.IntAttribute("id", 0) - 1
			if idx < 0 {
				r.diag(DiagUnresolvedReference, "bad staff id %d", idx+1)
				r.SkipCurrentElement()
				continue
			}
			if err := r.readStaff(idx); err != nil {
				return err
			}
		case "showInvisible", "showUnprintable", "showFrames", "showMargins", "PageList", "name", "LayerTag", "Layer", "Synthesizer", "page-offset", "open":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
	return nil
}

func (r *Reader) readStyle() {
	for r.ReadNextStartElement() {
		if r.name == "TextStyle" {
			r.readTextStyle()
			continue
		}
		r.score.Style[r.name] = r.ReadXML()
	}
}

// readTextStyle registers style names that are not built in.
func (r *Reader) readTextStyle() {
	name := ""
	for r.ReadNextStartElement() {
		if r.name == "name" {
			name = strings.TrimSpace(r.ReadElementText())
			continue
		}
		r.SkipCurrentElement()
	}
	if name != "" && score.BuiltinStyle(name) == score.StyleNone {
		r.AddUserTextStyle(name)
	}
}

// textStyle maps a style name onto a slot, allocating a user slot for
// names seen for the first time.
func (r *Reader) textStyle(name string) score.TextStyleType {
	if ss := score.BuiltinStyle(name); ss != score.StyleNone {
		return ss
	}
	return r.AddUserTextStyle(name)
}

func (r *Reader) readPart() {
	p := &score.Part{Id: r.IntAttribute("id", len(r.score.Parts)+1)}
	for r.ReadNextStartElement() {
		switch r.name {
		case "Staff":
			if !r.HasAttribute("id") {
				r.missing("id")
				continue
			}
			idx := r.IntAttribute("id", 0) - 1
			if idx < 0 {
				r.diag(DiagUnresolvedReference, "bad staff id %d", idx+1)
				r.SkipCurrentElement()
				continue
			}
			st := r.score.Staff(idx)
			st.Part = p
			p.Staves = append(p.Staves, st)
			r.readStaffDef(st)
		case "trackName":
			p.Name = strings.TrimSpace(r.ReadElementText())
		case "Instrument":
			p.Instrument = r.ReadXML()
		case "show", "name", "preferSharpFlat", "color":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
	r.score.Parts = append(r.score.Parts, p)
}

func (r *Reader) readStaffDef(st *score.Staff) {
	for r.ReadNextStartElement() {
		switch r.name {
		case "linkedTo":
			st.LinkedTo = r.ReadInt() - 1
		case "StaffType", "bracket", "barLineSpan", "defaultClef", "defaultConcertClef", "defaultTransposingClef",
			"hideWhenEmpty", "cutaway", "showIfSystemEmpty", "invisible", "color", "mag", "distOff", "small":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
}

// readStaff reads the measures of one staff. The first staff read
// creates the measures; later staves fill them in.
func (r *Reader) readStaff(idx int) error {
	r.score.Staff(idx)
	r.SetTrack(idx * score.VOICES)
	mi := 0
	for r.ReadNextStartElement() {
		switch r.name {
		case "Measure":
			m := r.score.MeasureByIndex(mi)
			if m == nil {
				m = r.newMeasure()
			}
			if err := r.readMeasure(m, idx); err != nil {
				return err
			}
			mi++
		case "HBox", "VBox", "TBox", "FBox":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
	return nil
}

func (r *Reader) newMeasure() *score.Measure {
	length := fraction.New(r.timeSigNum, r.timeSigDen)
	irregular := false
	if v, ok := r.attr("len"); ok {
		if f, err := fraction.Parse(v); err == nil && f.Sign() > 0 {
			length, irregular = f, true
		} else {
			r.diag(DiagMissingAttribute, "<Measure>: bad len %q", v)
		}
	}
	m := r.score.AppendMeasure(length)
	m.Irregular = irregular
	m.TimeSigNum, m.TimeSigDen = r.timeSigNum, r.timeSigDen
	return m
}

func (r *Reader) readMeasure(m *score.Measure, staff int) error {
	r.setMeasure(m)
	r.SetTrack(staff * score.VOICES)
	voice := 0
	for r.ReadNextStartElement() {
		var err error
		switch r.name {
		case "voice":
			r.SetTrack(staff*score.VOICES + voice)
			r.SetTick(m.Tick)
			err = r.readVoice()
			voice++
		case "startRepeat", "endRepeat", "irregular", "breakMultiMeasureRest", "LayoutBreak",
			"stretch", "vspacerDown", "vspacerUp", "noOffset", "measureNumberMode":
			r.SkipCurrentElement()
		default:
			err = r.readVoiceElement()
		}
		if err != nil {
			return err
		}
	}
	r.CheckTuplets()
	r.clearMeasureRegistries()
	return nil
}

func (r *Reader) readVoice() error {
	for r.ReadNextStartElement() {
		if err := r.readVoiceElement(); err != nil {
			return err
		}
	}
	return nil
}

var annotationKinds = map[string]bool{
	"Clef":             true,
	"KeySig":           true,
	"Dynamic":          true,
	"StaffText":        true,
	"SystemText":       true,
	"Tempo":            true,
	"RehearsalMark":    true,
	"Harmony":          true,
	"Breath":           true,
	"BarLine":          true,
	"Fermata":          true,
	"InstrumentChange": true,
	"Image":            true,
}

// readVoiceElement reads one element of a voice stream.
func (r *Reader) readVoiceElement() error {
	switch r.name {
	case "Chord":
		r.readChord()
	case "Rest":
		r.readRest()
	case "location":
		return r.SetLocation(r.ReadLocation())
	case "tick":
		r.SetTick(r.scaleTicks(r.ReadInt()))
	case "move":
		r.SetTick(r.origin().Add(r.ReadFraction()))
	case "Tuplet":
		r.readTuplet()
	case "Beam":
		r.readBeam()
	case "Spanner":
		r.readSpanner(nil, -1)
	case "endSpanner":
		r.readEndSpanner(nil)
	case "TimeSig":
		r.readTimeSig()
	default:
		if k, ok := score.ParseSpannerKind(r.name); ok {
			r.readOldSpanner(k, nil)
			return nil
		}
		if annotationKinds[r.name] {
			r.readAnnotation()
			return nil
		}
		r.unknown()
	}
	return nil
}

// origin is the document position that <move> offsets count from.
func (r *Reader) origin() fraction.Fraction {
	if r.pasteMode || r.measure == nil {
		return r.fragmentTick
	}
	return r.measure.Tick
}

// scaleTicks converts a tick count in the document's division.
func (r *Reader) scaleTicks(t int) fraction.Fraction {
	if d := r.score.Division; d > 0 && d != fraction.Division {
		return fraction.New(t, 4*d)
	}
	return fraction.FromTicks(t)
}

func (r *Reader) readTuplet() {
	r.readTupletBody()
}

// readTupletBody reads a tuplet definition at the current position and
// registers it.
func (r *Reader) readTupletBody() *score.Tuplet {
	t := score.NewTuplet()
	t.Id = r.IntAttribute("id", -1)
	t.Tick, t.Track = r.Tick(), r.Track()
	for r.ReadNextStartElement() {
		switch r.name {
		case "normalNotes":
			t.Normal = r.ReadInt()
		case "actualNotes":
			t.Actual = r.ReadInt()
		case "baseNote":
			s := strings.TrimSpace(r.ReadElementText())
			if d, ok := score.ParseDurationType(s); ok {
				t.BaseLen = d
			} else {
				r.diag(DiagUnresolvedReference, "unknown duration type %q", s)
			}
		case "baseDots":
			t.BaseLen.Dots = min(max(r.ReadInt(), 0), score.MaxDots)
		case "Tuplet":
			id := r.ReadInt()
			if p := r.FindTuplet(id); p != nil {
				p.Add(t)
			} else {
				r.diag(DiagUnresolvedReference, "tuplet id %d not found", id)
			}
		case "Number", "numberType", "bracketType", "direction", "p1", "p2", "visible":
			t.Props[r.name] = r.ReadXML()
		default:
			r.unknown()
		}
	}
	t.Ticks = t.NominalTicks()
	r.AddTuplet(t)
	return t
}

// measureFor returns the measure new content at tick belongs to.
func (r *Reader) measureFor(tick fraction.Fraction) *score.Measure {
	if r.pasteMode || r.measure == nil {
		return r.score.MeasureAt(tick)
	}
	return r.measure
}

func (r *Reader) readBeam() {
	b := &score.Beam{
		Id:    r.IntAttribute("id", -1),
		Track: r.Track(),
		Props: map[string]string{},
	}
	r.readProps(b.Props)
	r.AddBeam(b)
	if m := r.measureFor(r.Tick()); m != nil {
		m.AddBeam(b)
	}
}

// readProps stores every child of the current element as markup.
func (r *Reader) readProps(props map[string]string) {
	for r.ReadNextStartElement() {
		props[r.name] = r.ReadXML()
	}
}

func (r *Reader) readTimeSig() {
	a := r.newAnnotation("TimeSig")
	num, den := 0, 0
	for r.ReadNextStartElement() {
		switch r.name {
		case "sigN":
			num = r.ReadInt()
		case "sigD":
			den = r.ReadInt()
		default:
			a.Props[r.name] = r.ReadXML()
		}
	}
	if num > 0 && den > 0 {
		a.Text = fraction.New(num, den).String()
		r.setTimeSig(num, den)
	}
	r.placeElement(a)
}

// setTimeSig makes num/den the running time signature. On the first
// staff at the start of a measure it also sets that measure's length.
func (r *Reader) setTimeSig(num, den int) {
	r.timeSigNum, r.timeSigDen = num, den
	m := r.measure
	if m == nil || r.pasteMode || r.Track()/score.VOICES != 0 || !r.RTick().IsZero() {
		return
	}
	m.TimeSigNum, m.TimeSigDen = num, den
	if !m.Irregular {
		m.Len = fraction.New(num, den)
	}
}

func (r *Reader) newAnnotation(kind string) *score.Annotation {
	return &score.Annotation{
		ElemBase: score.ElemBase{Tick: r.Tick(), Track: r.Track()},
		Kind:     kind,
		Props:    map[string]string{},
	}
}

func (r *Reader) readAnnotation() {
	a := r.newAnnotation(r.name)
	for r.ReadNextStartElement() {
		switch r.name {
		case "text":
			a.Text = r.ReadXML()
		case "subtype":
			a.Subtype = strings.TrimSpace(r.ReadElementText())
		case "style":
			a.Style = r.textStyle(strings.TrimSpace(r.ReadElementText()))
		case "offset":
			a.Offset = r.ReadPoint()
		case "color":
			a.Color = r.ReadColor()
		case "size":
			a.Size = r.ReadSize()
		case "scale":
			a.Scale = r.ReadScale()
		case "bbox":
			a.Bbox = r.ReadRect()
		default:
			a.Props[r.name] = r.ReadXML()
		}
	}
	r.placeElement(a)
}

// ReadFragment imports a clipboard fragment (a <StaffList> element) into
// the reader's score, placing its start at tick on staff. Positions in
// the fragment are absolute; they are shifted by the difference between
// the destination and the fragment's recorded source position.
func (r *Reader) ReadFragment(tick fraction.Fraction, staff int) error {
	r.SetPasteMode(true)
	err := r.readFragment(tick, staff)
	r.finish()
	if err != nil {
		return err
	}
	return r.err
}

func (r *Reader) readFragment(dstTick fraction.Fraction, dstStaff int) error {
	for r.ReadNextStartElement() {
		if r.name != "StaffList" {
			r.unknown()
			continue
		}
		src := fraction.Zero
		if v, ok := r.attr("tick"); ok {
			f, err := fraction.Parse(v)
			if err != nil {
				r.diag(DiagMissingAttribute, "<StaffList>: bad tick %q", v)
			} else {
				src = f
			}
		}
		srcStaff := r.IntAttribute("staff", 0)
		r.fragmentTick = src
		r.SetTickOffset(dstTick.Sub(src))
		r.SetTrackOffset((dstStaff - srcStaff) * score.VOICES)
		r.log.Debug("pasting fragment",
			zap.Stringer("from", src), zap.Stringer("to", dstTick),
			zap.Int("srcStaff", srcStaff), zap.Int("dstStaff", dstStaff))

		for r.ReadNextStartElement() {
			if r.name != "Staff" {
				r.unknown()
				continue
			}
			if !r.HasAttribute("id") {
				r.missing("id")
				continue
			}
			s := r.IntAttribute("id", 0)
			if s+dstStaff-srcStaff < 0 {
				r.diag(DiagUnresolvedReference, "staff %d pastes before the first staff", s)
				r.SkipCurrentElement()
				continue
			}
			r.score.Staff(s - srcStaff + dstStaff)
			if err := r.readFragmentStaff(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) readFragmentStaff(staff int) error {
	r.measure = nil
	r.SetTrack(staff * score.VOICES)
	r.SetTick(r.fragmentTick)
	voice := 0
	for r.ReadNextStartElement() {
		var err error
		if r.name == "voice" {
			r.SetTrack(staff*score.VOICES + voice)
			r.SetTick(r.fragmentTick)
			err = r.readVoice()
			voice++
		} else {
			err = r.readVoiceElement()
		}
		if err != nil {
			return err
		}
	}
	r.CheckTuplets()
	r.clearMeasureRegistries()
	return nil
}
