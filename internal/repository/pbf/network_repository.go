package pbf

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/spf13/afero"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/domain/repository"
	"github.com/street-orientation/internal/network"
	pkgerrors "github.com/street-orientation/internal/pkg/errors"
	"go.uber.org/zap"
)

type pass int

const (
	passWays pass = iota
	passNodes
)

type networkRepository struct {
	fs     afero.Fs
	path   string
	clip   bool
	logger *zap.Logger
}

// NewNetworkRepository создает провайдер уличной сети из локальной выгрузки OSM
// (.osm.pbf, либо .osm XML для небольших файлов)
func NewNetworkRepository(fs afero.Fs, path string, clip bool, logger *zap.Logger) repository.NetworkRepository {
	return &networkRepository{
		fs:     fs,
		path:   path,
		clip:   clip,
		logger: logger,
	}
}

type pendingWay struct {
	id   int64
	refs []int64
	tags map[string]string
}

// FetchNetwork читает файл в два прохода: проезжие пути, затем их узлы
func (r *networkRepository) FetchNetwork(ctx context.Context, place domain.Place, region orb.MultiPolygon) (*domain.StreetNetwork, error) {
	if r.path == "" {
		return nil, pkgerrors.Wrap(pkgerrors.ErrNetworkUnavailable, fmt.Errorf("PBF_FILE is not configured"))
	}

	var ways []pendingWay
	needed := make(map[int64]struct{})

	err := r.scan(ctx, passWays, func(obj osm.Object) {
		w, ok := obj.(*osm.Way)
		if !ok || len(w.Nodes) < 2 {
			return
		}
		tags := w.Tags.Map()
		if !network.IsDrivable(tags) {
			return
		}

		refs := make([]int64, len(w.Nodes))
		for i, n := range w.Nodes {
			refs[i] = int64(n.ID)
			needed[int64(n.ID)] = struct{}{}
		}
		ways = append(ways, pendingWay{id: int64(w.ID), refs: refs, tags: tags})
	})
	if err != nil {
		return nil, err
	}

	coords := make(map[int64]orb.Point, len(needed))
	err = r.scan(ctx, passNodes, func(obj osm.Object) {
		n, ok := obj.(*osm.Node)
		if !ok {
			return
		}
		if _, want := needed[int64(n.ID)]; want {
			coords[int64(n.ID)] = orb.Point{n.Lon, n.Lat}
		}
	})
	if err != nil {
		return nil, err
	}

	var clipRegion orb.MultiPolygon
	if r.clip {
		clipRegion = region
	}
	builder := network.NewBuilder(clipRegion)
	bound := region.Bound()

	var missing int
	for _, pw := range ways {
		pieces, gaps := splitAtMissing(pw.refs, coords)
		missing += gaps
		for _, nodes := range pieces {
			if len(region) > 0 && !touchesBound(nodes, bound) {
				continue
			}
			builder.AddWay(network.Way{ID: pw.id, Nodes: nodes, Tags: pw.tags})
		}
	}

	result := builder.Build(place.Name)
	if len(result.Edges) == 0 {
		return nil, pkgerrors.Wrap(pkgerrors.ErrNetworkUnavailable, fmt.Errorf("no drivable edges for %s in %s", place.Name, r.path))
	}

	r.logger.Debug("street network loaded from extract",
		zap.String("place", place.Name),
		zap.String("file", r.path),
		zap.Int("candidate_ways", len(ways)),
		zap.Int("ways", builder.Ways()),
		zap.Int("missing_nodes", missing),
		zap.Int("edges", len(result.Edges)))

	return result, nil
}

func (r *networkRepository) scan(ctx context.Context, p pass, fn func(osm.Object)) error {
	f, err := r.fs.Open(r.path)
	if err != nil {
		r.logger.Error("failed to open osm extract", zap.String("file", r.path), zap.Error(err))
		return pkgerrors.Wrap(pkgerrors.ErrNetworkUnavailable, err)
	}
	defer f.Close()

	var scanner osm.Scanner
	if strings.HasSuffix(strings.ToLower(r.path), ".pbf") {
		s := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
		s.SkipRelations = true
		s.SkipNodes = p == passWays
		s.SkipWays = p == passNodes
		scanner = s
	} else {
		scanner = osmxml.New(ctx, f)
	}
	defer scanner.Close()

	for scanner.Scan() {
		fn(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		r.logger.Error("failed to scan osm extract", zap.String("file", r.path), zap.Error(err))
		return pkgerrors.Wrap(pkgerrors.ErrNetworkUnavailable, err)
	}
	return nil
}

// splitAtMissing режет путь на участки там, где в выгрузке нет координат узла,
// чтобы соседние известные узлы не соединялись ребром через разрыв.
// Возвращает участки из двух и более узлов и число пропущенных ссылок.
func splitAtMissing(refs []int64, coords map[int64]orb.Point) ([][]network.WayNode, int) {
	var (
		pieces  [][]network.WayNode
		current []network.WayNode
		missing int
	)
	flush := func() {
		if len(current) >= 2 {
			pieces = append(pieces, current)
		}
		current = nil
	}

	for _, ref := range refs {
		p, ok := coords[ref]
		if !ok {
			missing++
			flush()
			continue
		}
		current = append(current, network.WayNode{ID: ref, Lat: p.Lat(), Lon: p.Lon()})
	}
	flush()

	return pieces, missing
}

func touchesBound(nodes []network.WayNode, bound orb.Bound) bool {
	for _, n := range nodes {
		if bound.Contains(orb.Point{n.Lon, n.Lat}) {
			return true
		}
	}
	return false
}
