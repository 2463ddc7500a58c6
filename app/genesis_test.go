package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts custody.Options, params custody.GenesisParams, kv custody.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called  int
	deriver custody.Deriver
}

func (c *countInit) FromGenesis(opts custody.Options, params custody.GenesisParams, kv custody.KVStore) error {
	c.called++
	c.deriver = params.Deriver
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		parseError   bool
		initErr      bool
		expectChain  string
		expectCalled int
		expectValue  []byte
	}{
		"no such file": {
			file:       "bad_file.json",
			parseError: true,
			initErr:    true,
		},
		"proper parse": {
			file:         "testdata/genesis.json",
			expectChain:  "test-chain-67",
			expectCalled: 1,
			expectValue:  []byte("secret"),
		},
		"bad init": {
			file:        "testdata/bad_genesis.json",
			initErr:     true,
			expectChain: "super-chain-22",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if tc.parseError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectChain, gen.ChainID)
			pid, err := gen.ProgramID()
			require.NoError(t, err)
			assert.Equal(t, custodytest.ProgramID, pid)

			c := new(countInit)
			init := custody.MultiInitializer{dummyInit{}, c}
			s := NewStoreApp("foo", iavl.NewMemCommitStore(), custody.NewQueryRouter(), context.Background())
			assert.Equal(t, "", s.GetChainID())

			err = s.LoadGenesis(tc.file, init)
			if tc.initErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectChain, s.GetChainID())
			assert.Equal(t, tc.expectCalled, c.called)
			if c.called > 0 {
				assert.Equal(t, custodytest.ProgramID, c.deriver.ProgramID())
			}
			val, err := s.DeliverStore().Get([]byte(dummyKey))
			require.NoError(t, err)
			assert.Equal(t, tc.expectValue, val)
		})
	}
}

func TestGenesisProgramIDMismatch(t *testing.T) {
	s := NewStoreApp("foo", iavl.NewMemCommitStore(), custody.NewQueryRouter(), context.Background())
	s.WithProgramID(custodytest.SequenceAddress(7))
	err := s.LoadGenesis("testdata/genesis.json", dummyInit{})
	assert.Error(t, err)
	assert.Equal(t, "", s.GetChainID())
}
