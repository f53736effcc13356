package uavenv

// Segment-rectangle intersection used for line-of-sight checks. Touching the
// rectangle boundary counts as an intersection, matching the geometry the
// rate field was derived with.

type point struct{ x, y float64 }

type rect struct {
	minX, minY float64
	maxX, maxY float64
}

func (r rect) contains(p point) bool {
	return p.x >= r.minX && p.x <= r.maxX && p.y >= r.minY && p.y <= r.maxY
}

// segmentIntersectsRect reports whether the segment a-b touches r.
func segmentIntersectsRect(a, b point, r rect) bool {
	if r.contains(a) || r.contains(b) {
		return true
	}
	corners := [4]point{
		{r.minX, r.minY},
		{r.maxX, r.minY},
		{r.maxX, r.maxY},
		{r.minX, r.maxY},
	}
	for i := 0; i < 4; i++ {
		if segmentsIntersect(a, b, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segments p1-p2 and p3-p4 share a point,
// endpoints and collinear overlap included.
func segmentsIntersect(p1, p2, p3, p4 point) bool {
	d1 := cross(p3, p4, p1)
	d2 := cross(p3, p4, p2)
	d3 := cross(p1, p2, p3)
	d4 := cross(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

// cross returns the cross product of vectors a->b and a->p.
func cross(a, b, p point) float64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// onSegment reports whether p, known to be collinear with a-b, lies on it.
func onSegment(a, b, p point) bool {
	return min(a.x, b.x) <= p.x && p.x <= max(a.x, b.x) &&
		min(a.y, b.y) <= p.y && p.y <= max(a.y, b.y)
}
