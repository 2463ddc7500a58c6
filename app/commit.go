package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining different
// CacheWraps for Deliver and Check, and returning useful state info.
type CommitStore struct {
	committed custody.CommitKVStore
	deliver   custody.KVCacheWrap
	check     custody.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up the
// deliver and check caches.
func NewCommitStore(store custody.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (custody.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it to disk.
// It then regenerates new deliver and check caches.
func (cs *CommitStore) Commit() (custody.CommitID, error) {
	// flush deliver to store and discard check
	if err := cs.deliver.Write(); err != nil {
		return custody.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() custody.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() custody.CacheableKVStore {
	return cs.deliver
}

// _cs: is a prefix for ledger internal data
const (
	chainIDKey   = "_cs:chainID"
	programIDKey = "_cs:programID"
)

// mustLoadChainID returns the chain id stored if any
// panics on db error
func mustLoadChainID(kv custody.ReadOnlyKVStore) string {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		panic(err)
	}
	return string(v)
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv custody.KVStore, chainID string) error {
	if !custody.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	return saveOnce(kv, chainIDKey, []byte(chainID))
}

// mustLoadProgramID returns the program identity stored if any
// panics on db error
func mustLoadProgramID(kv custody.ReadOnlyKVStore) custody.Address {
	v, err := kv.Get([]byte(programIDKey))
	if err != nil {
		panic(err)
	}
	if len(v) == 0 {
		return nil
	}
	return custody.Address(v)
}

func saveProgramID(kv custody.KVStore, programID custody.Address) error {
	if err := programID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	return saveOnce(kv, programIDKey, programID)
}

func saveOnce(kv custody.KVStore, key string, value []byte) error {
	k := []byte(key)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrapf(err, "load %s", key)
	}
	if exists {
		return errors.Wrapf(errors.ErrUnauthorized, "can't modify %s after genesis init", key)
	}
	if err := kv.Set(k, value); err != nil {
		return errors.Wrapf(err, "save %s", key)
	}
	return nil
}
