package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/config"
)

// The cache holds large objects that should only be built once per process,
// such as lexicons. A shell or a solver service can answer many puzzles
// against the same word list without reading it again.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(cfg *config.Config, key string, loadFunc loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(cfg, key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func (c *cache) evict(key string) bool {
	c.Lock()
	defer c.Unlock()
	_, ok := c.objects[key]
	delete(c.objects, key)
	return ok
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

func ensure() {
	createOnce.Do(func() {
		if GlobalObjectCache == nil {
			CreateGlobalObjectCache()
		}
	})
}

// Load returns the object stored under name, calling loadFunc to build it
// the first time. A failed load is not cached.
func Load(cfg *config.Config, name string, loadFunc loadFunc) (any, error) {
	ensure()
	return GlobalObjectCache.get(cfg, name, loadFunc)
}

// Evict drops the object stored under name, so the next Load rebuilds it.
// It returns whether anything was dropped.
func Evict(name string) bool {
	ensure()
	return GlobalObjectCache.evict(name)
}
