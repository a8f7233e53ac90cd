package entities

import "testing"

func TestCorpus_Questions(t *testing.T) {
	c := &Corpus{Entries: []FAQEntry{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}}

	qs := c.Questions()
	if len(qs) != 2 || qs[0] != "q1" || qs[1] != "q2" {
		t.Errorf("Questions() = %v", qs)
	}
}

func TestCorpus_LenNilSafe(t *testing.T) {
	var c *Corpus
	if c.Len() != 0 {
		t.Error("nil corpus should have length 0")
	}
	if (&Corpus{}).Len() != 0 {
		t.Error("empty corpus should have length 0")
	}
}
