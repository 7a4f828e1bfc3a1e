package similarity

import (
	"context"
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-9

func TestTokenize(t *testing.T) {
	got := Tokenize("  Hello, world! 123 This is Go.  ")
	want := []string{"Hello", "world", "This", "is", "Go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %q, want %q", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("empty input should produce no tokens, got %q", got)
	}
	if got := Tokenize("123 !@#$%^&*()_+"); len(got) != 0 {
		t.Errorf("non-alphabetic input should produce no tokens, got %q", got)
	}
}

func TestTokenize_UnicodeLetters(t *testing.T) {
	got := Tokenize("naïve café—日本")
	want := []string{"naïve", "café", "日本"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %q, want %q", got, want)
	}
}

func TestTermFrequency(t *testing.T) {
	tokens := []string{"a", "b", "a", "c", "a"}
	tf := TermFrequency(tokens)

	var sum float64
	for _, v := range tf {
		sum += v
	}
	if sum != float64(len(tokens)) {
		t.Errorf("sum of frequencies = %v, want %d", sum, len(tokens))
	}
	if len(tf) != 3 {
		t.Errorf("unique terms = %d, want 3", len(tf))
	}
	if tf["a"] != 3 {
		t.Errorf("tf[a] = %v, want 3", tf["a"])
	}
}

func TestDocumentFrequencyAndIDF(t *testing.T) {
	tfs := []Vector{
		TermFrequency([]string{"common", "rare"}),
		TermFrequency([]string{"common", "common"}),
		TermFrequency([]string{"common"}),
	}
	df := DocumentFrequency(tfs)
	if df["common"] != 3 || df["rare"] != 1 {
		t.Fatalf("df = %v", df)
	}

	idf := IDF(df, len(tfs))
	for term, w := range idf {
		if w < 1 {
			t.Errorf("idf[%s] = %v, should be >= 1", term, w)
		}
	}
	if idf["rare"] <= idf["common"] {
		t.Errorf("rarer terms should weigh more: rare=%v common=%v", idf["rare"], idf["common"])
	}

	want := math.Log(4.0/2.0) + 1
	if math.Abs(idf["rare"]-want) > epsilon {
		t.Errorf("idf[rare] = %v, want %v", idf["rare"], want)
	}
}

func TestTFIDF_KeepsTokens(t *testing.T) {
	tfs := []Vector{
		TermFrequency([]string{"x", "y"}),
		TermFrequency([]string{"y", "z", "z"}),
	}
	idf := IDF(DocumentFrequency(tfs), len(tfs))
	out := TFIDF(tfs, idf)

	if len(out) != len(tfs) {
		t.Fatalf("got %d vectors, want %d", len(out), len(tfs))
	}
	for i := range tfs {
		if len(out[i]) != len(tfs[i]) {
			t.Errorf("doc %d: %d terms, want %d", i, len(out[i]), len(tfs[i]))
		}
		for term, w := range out[i] {
			if w <= 0 {
				t.Errorf("doc %d term %s: weight %v should be positive", i, term, w)
			}
			if math.Abs(w-tfs[i][term]*idf[term]) > epsilon {
				t.Errorf("doc %d term %s: weight %v, want tf*idf", i, term, w)
			}
		}
	}
}

func TestCosine(t *testing.T) {
	a := Vector{"go": 2, "fast": 1}
	b := Vector{"go": 1, "slow": 3}

	if s := Cosine(a, a); math.Abs(s-1) > epsilon {
		t.Errorf("self-similarity = %v, want 1", s)
	}
	if ab, ba := Cosine(a, b), Cosine(b, a); math.Abs(ab-ba) > epsilon {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}
	if s := Cosine(a, Vector{"other": 5}); s != 0 {
		t.Errorf("orthogonal vectors = %v, want 0", s)
	}

	scaled := Vector{"go": 10, "slow": 30}
	if math.Abs(Cosine(a, b)-Cosine(a, scaled)) > epsilon {
		t.Error("similarity should not change under positive scaling")
	}
}

func TestCosine_ZeroVectors(t *testing.T) {
	empty := Vector{}
	if s := Cosine(empty, empty); s != 0 {
		t.Errorf("empty vs empty = %v, want 0", s)
	}
	if s := Cosine(empty, Vector{"hello": 1}); s != 0 {
		t.Errorf("empty vs non-empty = %v, want 0", s)
	}
}

func TestMatrix(t *testing.T) {
	docs := []string{
		"the quick brown fox jumps over the lazy dog",
		"the quick brown fox leaps over the lazy dog",
		"quantum physics and mathematics",
		"",
	}
	m, err := Matrix(context.Background(), docs)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}

	if len(m) != len(docs) {
		t.Fatalf("rows = %d, want %d", len(m), len(docs))
	}
	for i := range m {
		for j := range m[i] {
			if math.Abs(m[i][j]-m[j][i]) > epsilon {
				t.Errorf("m[%d][%d]=%v differs from m[%d][%d]=%v", i, j, m[i][j], j, i, m[j][i])
			}
			if m[i][j] < 0 || m[i][j] > 1+epsilon {
				t.Errorf("m[%d][%d]=%v outside [0,1]", i, j, m[i][j])
			}
		}
	}

	for i := 0; i < 3; i++ {
		if math.Abs(m[i][i]-1) > epsilon {
			t.Errorf("m[%d][%d] = %v, want 1", i, i, m[i][i])
		}
	}
	if m[3][3] != 0 {
		t.Errorf("empty document self-similarity = %v, want 0", m[3][3])
	}
	if m[0][1] <= m[0][2] {
		t.Errorf("near-duplicates should score higher than unrelated text: %v <= %v", m[0][1], m[0][2])
	}
	if m[0][2] != 0 {
		t.Errorf("documents without shared terms = %v, want 0", m[0][2])
	}
}

func TestMatrix_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Matrix(ctx, []string{"a", "b"}); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
