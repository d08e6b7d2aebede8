package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordsearch/config"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	calls := 0
	lf := func(cfg *config.Config, key string) (any, error) {
		calls++
		return "value-for-" + key, nil
	}

	obj, err := Load(cfg, "test:once", lf)
	is.NoErr(err)
	is.Equal(obj, "value-for-test:once")

	obj, err = Load(cfg, "test:once", lf)
	is.NoErr(err)
	is.Equal(obj, "value-for-test:once")
	is.Equal(calls, 1)

	is.True(Evict("test:once"))
	is.True(!Evict("test:once"))
	_, err = Load(cfg, "test:once", lf)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadNotCached(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	boom := errors.New("boom")
	_, err := Load(cfg, "test:fail", func(cfg *config.Config, key string) (any, error) {
		return nil, boom
	})
	is.Equal(err, boom)

	obj, err := Load(cfg, "test:fail", func(cfg *config.Config, key string) (any, error) {
		return 42, nil
	})
	is.NoErr(err)
	is.Equal(obj, 42)
}
