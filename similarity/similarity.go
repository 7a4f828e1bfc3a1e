// Package similarity scores how alike already-extracted texts are using
// TF-IDF vectors and cosine similarity.
package similarity

import (
	"context"
	"math"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// Vector is a sparse term → weight map.
type Vector map[string]float64

// Tokenize splits text on every non-letter rune. Tokens keep their case.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
}

// TermFrequency counts occurrences of each token.
func TermFrequency(tokens []string) Vector {
	tf := make(Vector, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// DocumentFrequency counts, for each term, how many documents contain it.
func DocumentFrequency(tfs []Vector) map[string]int {
	df := make(map[string]int)
	for _, tf := range tfs {
		for term := range tf {
			df[term]++
		}
	}
	return df
}

// IDF converts document frequencies over numDocs documents to smoothed
// inverse document frequencies, ln((N+1)/(df+1)) + 1. Every weight is at
// least 1.
func IDF(df map[string]int, numDocs int) Vector {
	idf := make(Vector, len(df))
	for term, n := range df {
		idf[term] = math.Log(float64(numDocs+1)/float64(n+1)) + 1
	}
	return idf
}

// TFIDF weights each term frequency by its IDF.
func TFIDF(tfs []Vector, idf Vector) []Vector {
	out := make([]Vector, len(tfs))
	for i, tf := range tfs {
		v := make(Vector, len(tf))
		for term, f := range tf {
			if w, ok := idf[term]; ok {
				v[term] = f * w
			}
		}
		out[i] = v
	}
	return out
}

// Cosine returns the cosine similarity of two sparse vectors, or 0 when
// either has zero magnitude.
func Cosine(a, b Vector) float64 {
	normA, normB := norm(a), norm(b)
	denom := normA * normB
	if denom == 0 {
		return 0
	}

	short, long := a, b
	if len(b) < len(a) {
		short, long = b, a
	}
	var dot float64
	for term, x := range short {
		if y, ok := long[term]; ok {
			dot += x * y
		}
	}
	return dot / denom
}

func norm(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Vectorize builds TF-IDF vectors for docs. Term frequencies are computed
// in parallel; ctx cancellation stops outstanding work.
func Vectorize(ctx context.Context, docs []string) ([]Vector, error) {
	tfs := make([]Vector, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tfs[i] = TermFrequency(Tokenize(doc))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return TFIDF(tfs, IDF(DocumentFrequency(tfs), len(tfs))), nil
}

// Matrix returns the pairwise cosine similarity of the TF-IDF vectors of
// docs. The matrix is symmetric; the diagonal is 1 for any document with
// at least one token.
func Matrix(ctx context.Context, docs []string) ([][]float64, error) {
	vecs, err := Vectorize(ctx, docs)
	if err != nil {
		return nil, err
	}

	m := make([][]float64, len(vecs))
	for i := range m {
		m[i] = make([]float64, len(vecs))
	}
	for i := range vecs {
		for j := i; j < len(vecs); j++ {
			s := Cosine(vecs[i], vecs[j])
			m[i][j], m[j][i] = s, s
		}
	}
	return m, nil
}
