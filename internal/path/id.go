package path

import "fmt"

// EntityID identifies a selectable element: a point in a path or a guide.
//
// IDs are comparable and totally ordered. Point IDs are stable for the
// lifetime of their path; inserting or removing other points never changes
// them.
type EntityID struct {
	parent uint64
	point  uint32
	guide  bool
}

// PointID returns the ID of a point belonging to the path with the given ID.
func PointID(parent uint64, point uint32) EntityID {
	return EntityID{parent: parent, point: point}
}

// GuideID returns the ID of a guide.
func GuideID(id uint64) EntityID {
	return EntityID{parent: id, guide: true}
}

// Parent returns the owning path ID, or the guide ID for guides.
func (id EntityID) Parent() uint64 {
	return id.parent
}

// Point returns the per-path point number. It is zero for guides.
func (id EntityID) Point() uint32 {
	return id.point
}

// IsGuide returns true if the ID refers to a guide.
func (id EntityID) IsGuide() bool {
	return id.guide
}

// Compare orders IDs: all point IDs sort before guide IDs, then by parent,
// then by point number. It returns -1, 0 or 1.
func (id EntityID) Compare(other EntityID) int {
	switch {
	case id.guide != other.guide:
		if !id.guide {
			return -1
		}
		return 1
	case id.parent != other.parent:
		if id.parent < other.parent {
			return -1
		}
		return 1
	case id.point != other.point:
		if id.point < other.point {
			return -1
		}
		return 1
	}
	return 0
}

// String returns a short representation like "p3.7" or "g2".
func (id EntityID) String() string {
	if id.guide {
		return fmt.Sprintf("g%d", id.parent)
	}
	return fmt.Sprintf("p%d.%d", id.parent, id.point)
}
