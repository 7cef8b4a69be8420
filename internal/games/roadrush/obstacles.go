package roadrush

import (
	"math/rand"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
)

// compactAt is the number of dead slots tolerated before the backing slice
// is compacted.
const compactAt = 32

// ObstacleManager handles spawning, movement, and removal of obstacles.
//
// Obstacles all fall at the same speed and are appended in spawn order, so
// the oldest obstacle is always the lowest one. Culling therefore only ever
// happens at the front, which is tracked by head.
type ObstacleManager struct {
	items   []Entity
	head    int
	rng     *rand.Rand
	cfg     config.ObstacleConfig
	field   Field
	color   core.Color
	spawned int
	culled  int
}

// NewObstacleManager creates a new obstacle manager with the given RNG seed.
func NewObstacleManager(seed int64, cfg config.ObstacleConfig, field Field) *ObstacleManager {
	color, ok := core.ParseColor(cfg.Color)
	if !ok {
		color = core.ColorRed
	}
	return &ObstacleManager{
		items: make([]Entity, 0, 16),
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg,
		field: field,
		color: color,
	}
}

// Update moves every obstacle down and drops the ones below the field.
func (om *ObstacleManager) Update() {
	for i := om.head; i < len(om.items); i++ {
		om.items[i].Advance(om.field)
	}

	for om.head < len(om.items) && om.items[om.head].Top() > om.field.Height {
		om.items[om.head] = Entity{}
		om.head++
		om.culled++
	}

	if om.head == len(om.items) {
		om.items = om.items[:0]
		om.head = 0
	} else if om.head >= compactAt && om.head*2 >= len(om.items) {
		n := copy(om.items, om.items[om.head:])
		om.items = om.items[:n]
		om.head = 0
	}
}

// Draw renders the live obstacles in spawn order.
func (om *ObstacleManager) Draw(s core.Surface) {
	for _, o := range om.Obstacles() {
		o.Draw(s, om.field)
	}
}

// MaybeSpawn spawns one obstacle when frame is a multiple of the spawn cadence.
// Returns whether an obstacle was spawned.
func (om *ObstacleManager) MaybeSpawn(frame int) bool {
	if frame <= 0 || frame%om.cfg.SpawnEvery != 0 {
		return false
	}
	om.spawn()
	return true
}

// spawn creates a new obstacle at the top of the field.
func (om *ObstacleManager) spawn() {
	minW := om.cfg.MinWidth
	maxW := om.cfg.MaxWidth

	width := minW
	if maxW > minW {
		width = minW + om.rng.Intn(maxW-minW+1)
	}

	minX := om.cfg.Margin
	maxX := int(om.field.Width) - om.cfg.Margin - width
	if maxX < minX {
		maxX = minX // Edge case for very narrow fields
	}

	x := minX
	if maxX > minX {
		x = minX + om.rng.Intn(maxX-minX+1)
	}

	om.add(Entity{
		Kind:  KindObstacle,
		Rect:  core.NewRect(float64(x), 0, float64(width), om.cfg.Height),
		Speed: om.cfg.Speed,
		Color: om.color,
	})
	om.spawned++
}

func (om *ObstacleManager) add(e Entity) {
	om.items = append(om.items, e)
}

// Obstacles returns the live obstacles in spawn order.
// The slice is only valid until the next Update or spawn.
func (om *ObstacleManager) Obstacles() []Entity {
	return om.items[om.head:]
}

// Len returns the number of live obstacles.
func (om *ObstacleManager) Len() int {
	return len(om.items) - om.head
}

// Spawned returns how many obstacles have been spawned.
func (om *ObstacleManager) Spawned() int {
	return om.spawned
}

// Culled returns how many obstacles have left the field.
func (om *ObstacleManager) Culled() int {
	return om.culled
}

// CheckCollision tests if the given rectangle overlaps any live obstacle.
func (om *ObstacleManager) CheckCollision(r core.Rect) bool {
	for _, o := range om.Obstacles() {
		if r.Overlaps(o.Rect) {
			return true
		}
	}
	return false
}
