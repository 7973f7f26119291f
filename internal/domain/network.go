package domain

// Node - узел уличного графа (перекресток или конец улицы)
type Node struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Edge - направленное ребро уличного графа.
// Bearing - азимут от From к To в градусах [0, 360), Length - длина в метрах.
type Edge struct {
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	OSMWayID int64   `json:"osm_way_id"`
	Highway  string  `json:"highway,omitempty"`
	Bearing  float64 `json:"bearing"`
	Length   float64 `json:"length"`
	// Geometry - промежуточные точки ребра (только у прямого направления)
	Geometry []Point `json:"geometry,omitempty"`
}

// StreetNetwork - снимок уличной сети одного места. Порядок Edges детерминирован.
type StreetNetwork struct {
	Place string      `json:"place"`
	Nodes []Node      `json:"nodes"`
	Edges []Edge      `json:"edges"`
	BBox  BoundingBox `json:"bbox"`
}

// NodeIndex строит индекс узлов по ID
func (n *StreetNetwork) NodeIndex() map[int64]Node {
	index := make(map[int64]Node, len(n.Nodes))
	for _, node := range n.Nodes {
		index[node.ID] = node
	}
	return index
}
