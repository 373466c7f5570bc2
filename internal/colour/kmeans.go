package colour

import (
	"cmp"
	"math"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/muesli/clusters"
)

// KMeansQuantizer implements colour quantization using weighted k-means
// clustering in the Oklab colour space.
type KMeansQuantizer struct {
	convergence   float64
	maxIterations int
	logger        hclog.Logger
}

// NewKMeansQuantizer creates a KMeansQuantizer. Iteration stops when no
// centroid moves further than convergence (Oklab distance) or after
// maxIterations rounds.
func NewKMeansQuantizer(convergence float64, maxIterations int, logger hclog.Logger) *KMeansQuantizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansQuantizer{
		convergence:   convergence,
		maxIterations: maxIterations,
		logger:        logger.Named("kmeans"),
	}
}

// bucketBits is the per-channel resolution of the grid colours are merged
// into before clustering.
const bucketBits = 5

// oklabPoint is a grid bucket in Oklab: the weighted mean of the pixel
// colours that fall into it, and their pixel count.
type oklabPoint struct {
	coords clusters.Coordinates
	weight float64
}

// Quantize returns up to k cluster centroids ordered from darkest seed to
// lightest seed.
func (q *KMeansQuantizer) Quantize(buf PixelBuffer, k int) []Color {
	if k < 1 {
		return nil
	}

	hist := histogram(buf)
	if len(hist) == 0 {
		return nil
	}

	// Not enough distinct colours to cluster.
	if len(hist) <= k {
		return exactColors(hist)
	}

	points := oklabPoints(hist)

	// Seeding order is by lightness, so sort once and work in that order.
	slices.SortStableFunc(points, func(a, b oklabPoint) int {
		return cmp.Compare(a.coords[0], b.coords[0])
	})

	if len(points) <= k {
		colors := make([]Color, len(points))
		for i, p := range points {
			colors[i] = FromOklab(p.coords[0], p.coords[1], p.coords[2], 1.0)
		}
		return colors
	}

	centroids := seedCentroids(points, k)
	assignments := make([]int, len(points))

	iterations := 0
	converged := false
	for iterations < q.maxIterations {
		iterations++
		assign(points, centroids, assignments)

		next, _ := recalculateCentroids(points, assignments, centroids)
		reseedEmpty(points, assignments, next)

		movement := 0.0
		for i := range centroids {
			movement = math.Max(movement, math.Sqrt(centroids[i].Distance(next[i])))
		}
		centroids = next

		if movement < q.convergence {
			converged = true
			break
		}
	}

	assign(points, centroids, assignments)
	centroids, weights := recalculateCentroids(points, assignments, centroids)

	q.logger.Debug("clustering finished",
		"colors", len(hist),
		"points", len(points),
		"k", k,
		"iterations", iterations,
		"converged", converged,
	)

	colors := make([]Color, 0, k)
	for i, c := range centroids {
		if weights[i] == 0 {
			q.logger.Trace("dropping empty cluster", "cluster", i)
			continue
		}
		colors = append(colors, FromOklab(c[0], c[1], c[2], 1.0))
	}
	return colors
}

// exactColors returns every histogram colour, darkest first. Equal
// lightness keeps histogram order.
func exactColors(hist []weightedRGB) []Color {
	type entry struct {
		color     Color
		lightness float64
	}
	entries := make([]entry, len(hist))
	for i, h := range hist {
		c := FromRGB(h.R, h.G, h.B)
		l, _, _ := c.Oklab()
		entries[i] = entry{color: c, lightness: l}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Compare(a.lightness, b.lightness)
	})

	colors := make([]Color, len(entries))
	for i, e := range entries {
		colors[i] = e.color
	}
	return colors
}

// oklabPoints merges the histogram into a (1<<bucketBits)^3 RGB grid and
// returns one weighted Oklab point per occupied cell, in cell order. The
// point count is bounded by the grid, not the image size.
func oklabPoints(hist []weightedRGB) []oklabPoint {
	const shift = 8 - bucketBits

	index := make(map[uint32]int)
	var points []oklabPoint
	var sums [][3]float64
	for _, h := range hist {
		key := packRGB(h.R>>shift, h.G>>shift, h.B>>shift)
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, oklabPoint{})
			sums = append(sums, [3]float64{})
		}

		l, a, b := FromRGB(h.R, h.G, h.B).Oklab()
		w := float64(h.Count)
		sums[i][0] += l * w
		sums[i][1] += a * w
		sums[i][2] += b * w
		points[i].weight += w
	}

	for i := range points {
		w := points[i].weight
		points[i].coords = clusters.Coordinates{sums[i][0] / w, sums[i][1] / w, sums[i][2] / w}
	}
	return points
}

// seedCentroids picks k distinct points spread evenly across the weighted
// lightness range. points must be sorted by lightness and hold more than k
// entries.
func seedCentroids(points []oklabPoint, k int) []clusters.Coordinates {
	total := 0.0
	for _, p := range points {
		total += p.weight
	}

	used := make([]bool, len(points))
	centroids := make([]clusters.Coordinates, 0, k)

	idx := 0
	cumulative := points[0].weight
	for j := range k {
		target := (float64(j) + 0.5) / float64(k) * total
		for idx < len(points)-1 && cumulative < target {
			idx++
			cumulative += points[idx].weight
		}

		// Take the next unused point, wrapping to the darkest end.
		pick := idx
		for used[pick] {
			pick = (pick + 1) % len(points)
		}
		used[pick] = true
		centroids = append(centroids, slices.Clone(points[pick].coords))
	}
	return centroids
}

// assign sets each point's cluster to its nearest centroid. Ties go to the
// lowest centroid index.
func assign(points []oklabPoint, centroids []clusters.Coordinates, assignments []int) {
	for i, p := range points {
		nearest := 0
		best := math.MaxFloat64
		for j, c := range centroids {
			if d := sqDistance(p.coords, c); d < best {
				best = d
				nearest = j
			}
		}
		assignments[i] = nearest
	}
}

// sqDistance is clusters.Coordinates.Distance for three dimensions without
// math.Pow; assign calls it points×k times per iteration.
func sqDistance(a, b clusters.Coordinates) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return d0*d0 + d1*d1 + d2*d2
}

// recalculateCentroids returns the weighted mean of each cluster and its
// total weight. Empty clusters keep their previous position.
func recalculateCentroids(points []oklabPoint, assignments []int, previous []clusters.Coordinates) ([]clusters.Coordinates, []float64) {
	k := len(previous)
	sums := make([][3]float64, k)
	weights := make([]float64, k)

	for i, p := range points {
		c := assignments[i]
		for d := range 3 {
			sums[c][d] += p.coords[d] * p.weight
		}
		weights[c] += p.weight
	}

	centroids := make([]clusters.Coordinates, k)
	for i := range k {
		if weights[i] == 0 {
			centroids[i] = slices.Clone(previous[i])
			continue
		}
		centroids[i] = clusters.Coordinates{
			sums[i][0] / weights[i],
			sums[i][1] / weights[i],
			sums[i][2] / weights[i],
		}
	}
	return centroids, weights
}

// reseedEmpty moves every cluster that received no points onto the point
// farthest from its own centroid. A point used for re-seeding is not used
// again in the same pass.
func reseedEmpty(points []oklabPoint, assignments []int, centroids []clusters.Coordinates) {
	populated := make([]bool, len(centroids))
	for _, a := range assignments {
		populated[a] = true
	}

	var taken []bool
	for c := range centroids {
		if populated[c] {
			continue
		}
		if taken == nil {
			taken = make([]bool, len(points))
		}

		farthest := -1
		best := -1.0
		for i, p := range points {
			if taken[i] {
				continue
			}
			if d := p.coords.Distance(centroids[assignments[i]]); d > best {
				best = d
				farthest = i
			}
		}
		if farthest < 0 {
			return
		}
		taken[farthest] = true
		centroids[c] = slices.Clone(points[farthest].coords)
	}
}
