package bento

import "go.uber.org/zap"

// PoolStats reports outstanding versus total instances for one pool.
type PoolStats struct {
	Used int
	Free int
	Size int
}

func poolStats[T any](p *Pool[T]) PoolStats {
	return PoolStats{Used: p.TotalUsed(), Free: p.TotalFree(), Size: p.TotalSize()}
}

// WorldStats is a read-only snapshot of the world's indexes and pools.
type WorldStats struct {
	NumEntities int
	EntityPool  PoolStats
	// Queries maps each cached query's canonical key to its match count.
	Queries map[string]int
	// ComponentPools maps component-type names to their pool counters.
	// Unpooled types are absent.
	ComponentPools map[string]PoolStats
	// Systems lists registered systems in execution order.
	Systems []string
}

// Stats collects a diagnostics snapshot. It never mutates world state.
func (self *World) Stats() WorldStats {
	s := WorldStats{
		NumEntities:    len(self.entities.list),
		EntityPool:     poolStats(self.entities.pool),
		Queries:        make(map[string]int, len(self.queries.list)),
		ComponentPools: make(map[string]PoolStats),
	}
	for _, q := range self.queries.list {
		s.Queries[q.key] = len(q.entities)
	}
	for _, t := range self.components.byID {
		if t == nil {
			continue
		}
		if p := self.components.pools[t.id]; p != nil {
			s.ComponentPools[t.name] = poolStats(p)
		}
	}
	for _, sys := range self.scheduler.Systems() {
		s.Systems = append(s.Systems, systemName(sys))
	}
	return s
}

// LogStats emits the current snapshot through the world's logger.
func (self *World) LogStats() {
	s := self.Stats()
	self.logger.Info("world stats",
		zap.Int("entities", s.NumEntities),
		zap.Int("entity_pool_used", s.EntityPool.Used),
		zap.Int("entity_pool_size", s.EntityPool.Size),
		zap.Int("queries", len(s.Queries)),
		zap.Int("systems", len(s.Systems)),
	)
	for key, count := range s.Queries {
		self.logger.Debug("query stats", zap.String("key", key), zap.Int("entities", count))
	}
	for name, ps := range s.ComponentPools {
		self.logger.Debug("component pool stats", zap.String("component", name),
			zap.Int("used", ps.Used), zap.Int("size", ps.Size))
	}
}
