package mscx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-mscx/score"
)

func TestSpannerRegistry(t *testing.T) {
	r := newTestReader(t, "", 1)
	a := score.NewSpanner(score.KindSlur)
	b := score.NewSpanner(score.KindHairPin)
	c := score.NewSpanner(score.KindSlur)
	r.AddSpanner(1, a)
	r.AddSpanner(1, b)
	r.AddSpanner(2, c)

	assert.Same(t, a, r.FindSpanner(1))
	assert.Equal(t, 2, r.SpannerID(c))

	r.RemoveSpanner(a)
	assert.Same(t, b, r.FindSpanner(1))
	assert.Equal(t, -1, r.SpannerID(a))
	assert.Nil(t, r.FindSpanner(3))

	r.RemoveSpanner(a)
	assert.Same(t, b, r.FindSpanner(1))
}

func TestSpannerValues(t *testing.T) {
	r := newTestReader(t, "", 1)
	r.AddSpannerValues(SpannerValues{ID: 3, Tick2: q(2), Track2: 1})
	r.AddSpannerValues(SpannerValues{ID: 3, Tick2: q(3), Track2: 2})

	v := r.SpannerValues(3)
	if assert.NotNil(t, v) {
		assert.Equal(t, 1, v.Track2)
	}
	assert.Nil(t, r.SpannerValues(4))

	r.removeSpannerValues(3)
	v = r.SpannerValues(3)
	if assert.NotNil(t, v) {
		assert.Equal(t, 2, v.Track2)
	}

	r.Close()
	assert.Equal(t, 1, r.CountDiagnostics(DiagUnresolvedReference))
	assert.Nil(t, r.SpannerValues(3))
}

func TestDuplicateIDs(t *testing.T) {
	r := newTestReader(t, "", 1)
	b1 := &score.Beam{Id: 1}
	b2 := &score.Beam{Id: 1}
	r.AddBeam(b1)
	r.AddBeam(b2)
	assert.Same(t, b2, r.FindBeam(1))

	t1, t2 := score.NewTuplet(), score.NewTuplet()
	t1.Id, t2.Id = 4, 4
	r.AddTuplet(t1)
	r.AddTuplet(t2)
	assert.Same(t, t2, r.FindTuplet(4))
	assert.Equal(t, []*score.Tuplet{t1, t2}, r.Tuplets())
	assert.Equal(t, 2, r.CountDiagnostics(DiagDuplicateID))

	r.clearMeasureRegistries()
	assert.Nil(t, r.FindBeam(1))
	assert.Nil(t, r.FindTuplet(4))
	assert.Empty(t, r.Tuplets())
}

func TestUserTextStyles(t *testing.T) {
	r := newTestReader(t, "", 1)
	for i := 0; i < maxUserTextStyles; i++ {
		ss := r.AddUserTextStyle(fmt.Sprintf("style %d", i))
		assert.Equal(t, score.StyleUser1+score.TextStyleType(i), ss)
	}
	assert.Equal(t, score.StyleUser3, r.AddUserTextStyle("style 2"))
	assert.Equal(t, score.StyleUser3, r.LookupUserTextStyle("style 2"))
	assert.Empty(t, r.Diagnostics())

	assert.Equal(t, score.StyleNone, r.AddUserTextStyle("one too many"))
	assert.Equal(t, 1, r.CountDiagnostics(DiagTextStyleOverflow))
	assert.Equal(t, score.StyleNone, r.LookupUserTextStyle("one too many"))
	assert.Equal(t, 12, maxUserTextStyles)
}
