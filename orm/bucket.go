package orm

import (
	"regexp"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	custody.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
}

var _ custody.QueryHandler = ModelBucket{}

// NewModelBucket returns a bucket storing models under given name. It panics
// if the name is not a valid bucket name.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
func (b ModelBucket) DBKey(key []byte) []byte {
	// Always copy, appending to the prefix could reuse its backing array.
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// One query the database for a single model instance. Lookup is done by the
// primary key. Result is loaded into given destination model.
// This method returns ErrNotFound if the entity does not exist.
func (b ModelBucket) One(db custody.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot read from the database")
	}
	return ok, nil
}

// Put saves given model in the database. The model is validated first.
func (b ModelBucket) Put(db custody.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db custody.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s entity", b.name)
	}
	return db.Delete(b.DBKey(key))
}

// Register registers this bucket for queries. You can define a name here
// for queries, which is different than the bucket name used to prefix the
// data.
func (b ModelBucket) Register(name string, r custody.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter.
func (b ModelBucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []custody.Model{{Key: key, Value: value}}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// Iterate calls fn for every model stored in this bucket whose key starts
// with given prefix, in ascending key order. Keys are passed without the
// bucket prefix. Returning an error from fn stops the iteration.
func (b ModelBucket) Iterate(db custody.ReadOnlyKVStore, prefix []byte, fn func(key, value []byte) error) error {
	full := b.DBKey(prefix)
	it, err := db.Iterator(full, prefixRangeEnd(full))
	if err != nil {
		return errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return nil
		case err != nil:
			return errors.Wrap(err, "iterator")
		}
		if err := fn(key[len(b.prefix):], value); err != nil {
			return err
		}
	}
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	it, err := db.Iterator(prefix, prefixRangeEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []custody.Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, custody.Pair(key, value))
	}
}

// prefixRangeEnd returns the exclusive end of the range that contains all
// keys starting with prefix. It returns nil when no such end exists (prefix
// is all 0xFF).
func prefixRangeEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
