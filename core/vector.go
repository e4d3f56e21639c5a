package core

import "math"

// CosineSimilarity returns the cosine of the angle between a and b.
// Vectors of mismatched length are compared over the shorter prefix;
// a zero vector yields 0.
func CosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// L2Distance returns the Euclidean distance between a and b.
// Vectors of mismatched length are compared over the shorter prefix.
func L2Distance(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var sum float64
	for i := 0; i < minLen; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

// DistanceToSimilarity converts a raw distance into a normalized
// relevance score in (0, 1], larger = more similar.
func DistanceToSimilarity(distance float32) float32 {
	return 1 / (1 + distance)
}
