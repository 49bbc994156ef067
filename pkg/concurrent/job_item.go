package concurrent

import (
	"lintang/mapview/pkg/feature"
)

type SaveMarkersJobItem struct {
	KeyStr  string
	Markers []feature.Marker
}

type JobI interface {
	SaveMarkersJobItem | []int64
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

type JobFunc[T JobI, G any] func(job T) G
