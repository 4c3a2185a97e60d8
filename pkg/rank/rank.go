// Package rank computes cosine-distance rankings over a stored document
// collection. Every query is a brute-force scan; the collection is assumed
// small enough that no index structure is maintained.
package rank

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"docstore/pkg/storage"
)

// Result is one ranked document. Lower distance means more similar.
type Result struct {
	ID       int64   `json:"id"`
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

// CosineDistance returns 1 - cosineSimilarity(a, b). It fails with
// storage.ErrDimensionMismatch when the vectors differ in length. A
// zero-magnitude vector ranks as similarity 0 (distance 1) rather than
// failing the whole query.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.WithMessagef(storage.ErrDimensionMismatch, "got %d, want %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}

	if na == 0 || nb == 0 {
		return 1, nil
	}

	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb)), nil
}

// TopK ranks every document against the query vector and returns the k
// closest in ascending distance order. Equal distances tie-break by ascending
// id, so output is deterministic for identical inputs. An empty collection
// yields an empty result; k larger than the collection returns everything.
func TopK(query []float32, docs []storage.Document, k int) ([]Result, error) {
	if k <= 0 {
		return nil, errors.New("k must be positive")
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		distance, err := CosineDistance(query, doc.Embedding)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			ID:       doc.ID,
			Content:  doc.Content,
			Distance: distance,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if k < len(results) {
		results = results[:k]
	}

	return results, nil
}
