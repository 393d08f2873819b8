package prg

import (
	"testing"

	"github.com/sachaservan/pir/block"
)

func TestExpandIsDeterministic(t *testing.T) {
	p := New()
	seed := block.New(0x1, 0x2)
	a := p.Expand(seed, Left)
	b := p.Expand(seed, Left)
	if !a.Equal(b) {
		t.Fatalf("Expand should be a deterministic function of (seed, side)")
	}
}

func TestExpandLeftRightDiffer(t *testing.T) {
	p := New()
	seed := block.New(0xabc, 0xdef)
	l := p.Expand(seed, Left)
	r := p.Expand(seed, Right)
	if l.Equal(r) {
		t.Fatalf("left and right expansions must use distinct keys")
	}
}

func TestDoubleExpandMatchesExpand(t *testing.T) {
	p := New()
	seed := block.New(7, 9)
	d := p.DoubleExpand(seed)
	if !d[Left].Equal(p.Expand(seed, Left)) {
		t.Fatalf("DoubleExpand[Left] mismatch")
	}
	if !d[Right].Equal(p.Expand(seed, Right)) {
		t.Fatalf("DoubleExpand[Right] mismatch")
	}
}

func TestValueChannelDistinctFromSeedChannel(t *testing.T) {
	p := New()
	seed := block.New(42, 42)
	if p.Expand(seed, Left).Equal(p.ExpandValue(seed, Left)) {
		t.Fatalf("seed and value channels must use different AES keys")
	}
}

func TestExpandBatch8MatchesExpand(t *testing.T) {
	p := New()
	var in [8]block.Block
	for i := range in {
		in[i] = block.New(uint64(i), uint64(i*31+1))
	}
	out := p.ExpandBatch8(in, Right)
	for i := range in {
		want := p.Expand(in[i], Right)
		if !out[i].Equal(want) {
			t.Fatalf("batch element %d mismatch", i)
		}
	}
}
