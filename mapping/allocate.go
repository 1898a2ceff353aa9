package mapping

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/c360studio/m0convert/storage"
)

// DefaultTypes is the type processing order. It must not change between
// runs: allocation is order-sensitive.
var DefaultTypes = []storage.EntityType{
	storage.EntityFamily,
	storage.EntitySeries,
	storage.EntityOperation,
	storage.EntityIndicator,
}

// AllocationInput holds everything Allocate needs.
type AllocationInput struct {
	// Types in processing order.
	Types []storage.EntityType
	// Fixed maps a type to its M0 id to target URI table.
	Fixed map[storage.EntityType]map[int]string
	// MaxIDs is the highest M0 id of each type.
	MaxIDs map[storage.EntityType]int
	// Exists reports whether a record has at least one statement.
	Exists func(storage.RecordID) bool
	// Reserved is the headroom removed from the pool after each type's pass.
	Reserved map[storage.EntityType]int
	// Exempt types reuse their M0 id instead of drawing from the pool.
	Exempt map[storage.EntityType]bool
	// PoolStart and PoolEnd bound the shared pool, inclusive.
	PoolStart int
	PoolEnd   int
	// URI builds the target URI of a type and numeric id.
	URI func(storage.EntityType, int) string

	Logger *slog.Logger
}

// Allocate assigns a target URI to every existing record of the input types.
//
// Fixed mappings are registered first and their ids removed from the pool.
// Then, type by type, each existing record without a fixed mapping takes the
// smallest remaining pool id (exempt types take their own id), and the
// type's reservation is removed from the front of the pool.
func Allocate(in AllocationInput) (*Mapping, error) {
	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pool := make([]int, 0, max(0, in.PoolEnd-in.PoolStart+1))
	for n := in.PoolStart; n <= in.PoolEnd; n++ {
		pool = append(pool, n)
	}

	targets := make(map[string]string)
	logger.Info("Starting URI mappings creation", "types", len(in.Types), "pool", len(pool))

	for _, t := range in.Types {
		fixed := in.Fixed[t]
		if len(fixed) == 0 {
			logger.Info("No fixed mappings", "type", t)
			continue
		}
		logger.Info("Registering fixed mappings", "type", t, "count", len(fixed))
		for _, id := range sortedIDs(fixed) {
			target := fixed[id]
			n, err := TargetNumber(target)
			if err != nil {
				return nil, err
			}
			targets[storage.NewRecordID(t, id).URI()] = target
			pool = slices.DeleteFunc(pool, func(p int) bool { return p == n })
		}
	}
	logger.Info("Fixed mappings registered", "count", len(targets))

	for _, t := range in.Types {
		reserve := in.Reserved[t]
		created := 0
		for id := 1; id <= in.MaxIDs[t]; id++ {
			rec := storage.NewRecordID(t, id)
			if _, ok := targets[rec.URI()]; ok {
				continue
			}
			if in.Exists != nil && !in.Exists(rec) {
				continue
			}
			n := id
			if !in.Exempt[t] {
				if len(pool) == 0 {
					return nil, fmt.Errorf("%w: allocating %s %d after %d new mappings", ErrPoolExhausted, t, id, created)
				}
				n, pool = pool[0], pool[1:]
			}
			targets[rec.URI()] = in.URI(t, n)
			created++
			if reserve > 0 {
				reserve--
			}
		}
		logger.Info("New mappings created", "type", t, "count", created)

		if reserve > 0 {
			if reserve > len(pool) {
				return nil, fmt.Errorf("%w: reserving %d ids for %s with %d left", ErrPoolExhausted, reserve, t, len(pool))
			}
			logger.Debug("Reserving identifiers", "type", t, "count", reserve)
			pool = pool[reserve:]
		}
		logger.Info("Remaining identifiers", "count", len(pool))
		if len(pool) > 0 {
			logger.Debug("Next available identifier", "id", pool[0])
		}
	}

	m, err := New(targets)
	if err != nil {
		return nil, err
	}
	logger.Info("URI mappings created", "count", m.Len())
	return m, nil
}

// TargetNumber extracts the numeric id of a target URI: the last path
// segment without its one-letter prefix ("s1241" gives 1241).
func TargetNumber(target string) (int, error) {
	seg := target[strings.LastIndex(target, "/")+1:]
	if len(seg) < 2 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}
	n, err := strconv.Atoi(seg[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTarget, target)
	}
	return n, nil
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
