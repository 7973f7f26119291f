package network

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/street-orientation/internal/domain"
)

// WayNode - узел пути с координатами
type WayNode struct {
	ID  int64
	Lat float64
	Lon float64
}

// Way - путь OSM с уже разрешенными координатами узлов
type Way struct {
	ID    int64
	Nodes []WayNode
	Tags  map[string]string
}

// Builder собирает направленный уличный граф из путей OSM:
// пути режутся на ребра в перекрестках и концах, каждое ребро
// получает длину и азимут от первого узла к последнему.
type Builder struct {
	region orb.MultiPolygon
	ways   []Way
}

// NewBuilder создает Builder. Непустой region обрезает сеть по полигону.
func NewBuilder(region orb.MultiPolygon) *Builder {
	return &Builder{region: region}
}

// AddWay добавляет путь, если он проезжий и содержит хотя бы два узла
func (b *Builder) AddWay(way Way) bool {
	if len(way.Nodes) < 2 || !IsDrivable(way.Tags) {
		return false
	}
	b.ways = append(b.ways, way)
	return true
}

// Ways возвращает число принятых путей
func (b *Builder) Ways() int {
	return len(b.ways)
}

// Build строит сеть. Порядок ребер повторяет порядок добавления путей.
func (b *Builder) Build(place string) *domain.StreetNetwork {
	// Узел становится вершиной, если он - конец пути или встречается повторно
	seen := make(map[int64]int)
	for _, way := range b.ways {
		for _, node := range way.Nodes {
			seen[node.ID]++
		}
	}

	network := &domain.StreetNetwork{
		Place: place,
		Nodes: []domain.Node{},
		Edges: []domain.Edge{},
		BBox:  domain.EmptyBoundingBox(),
	}
	added := make(map[int64]struct{})
	inside := make(map[int64]bool)

	addNode := func(n WayNode) {
		if _, ok := added[n.ID]; ok {
			return
		}
		added[n.ID] = struct{}{}
		network.Nodes = append(network.Nodes, domain.Node{ID: n.ID, Lat: n.Lat, Lon: n.Lon})
	}

	for _, way := range b.ways {
		direction := Oneway(way.Tags)
		start := 0
		for i := 1; i < len(way.Nodes); i++ {
			last := i == len(way.Nodes)-1
			if !last && seen[way.Nodes[i].ID] < 2 {
				continue
			}

			piece := way.Nodes[start : i+1]
			start = i

			from, to := piece[0], piece[len(piece)-1]
			if !b.contains(from, inside) || !b.contains(to, inside) {
				continue
			}

			addNode(from)
			addNode(to)
			geometry := make([]domain.Point, len(piece))
			for j, n := range piece {
				geometry[j] = domain.Point{Lat: n.Lat, Lon: n.Lon}
				network.BBox.Extend(n.Lat, n.Lon)
			}

			length := pieceLength(piece)
			forward := pieceBearing(from, to)
			backward := pieceBearing(to, from)
			highway := way.Tags["highway"]

			if direction != DirectionBackward {
				network.Edges = append(network.Edges, domain.Edge{
					From: from.ID, To: to.ID, OSMWayID: way.ID, Highway: highway,
					Bearing: forward, Length: length, Geometry: geometry,
				})
			}
			if direction != DirectionForward {
				edge := domain.Edge{
					From: to.ID, To: from.ID, OSMWayID: way.ID, Highway: highway,
					Bearing: backward, Length: length,
				}
				// геометрию хранит одно ребро на отрезок
				if direction == DirectionBackward {
					edge.Geometry = reversed(geometry)
				}
				network.Edges = append(network.Edges, edge)
			}
		}
	}

	return network
}

func (b *Builder) contains(n WayNode, cache map[int64]bool) bool {
	if len(b.region) == 0 {
		return true
	}
	if v, ok := cache[n.ID]; ok {
		return v
	}
	v := planar.MultiPolygonContains(b.region, orb.Point{n.Lon, n.Lat})
	cache[n.ID] = v
	return v
}

func pieceLength(piece []WayNode) float64 {
	var length float64
	for i := 1; i < len(piece); i++ {
		length += Distance(piece[i-1].Lat, piece[i-1].Lon, piece[i].Lat, piece[i].Lon)
	}
	return length
}

// pieceBearing возвращает 0.0 для вырожденного ребра (начало совпадает с концом)
func pieceBearing(from, to WayNode) float64 {
	if from.Lat == to.Lat && from.Lon == to.Lon {
		return 0
	}
	return Bearing(from.Lat, from.Lon, to.Lat, to.Lon)
}

func reversed(points []domain.Point) []domain.Point {
	out := make([]domain.Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}
