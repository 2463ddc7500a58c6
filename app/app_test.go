package app

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/log"
)

// kvQuery returns the raw value stored under the queried key.
type kvQuery struct{}

func (kvQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	val, err := db.Get(data)
	if err != nil || val == nil {
		return nil, err
	}
	return []custody.Model{custody.Pair(data, val)}, nil
}

// decodePath builds a transaction whose message path is the raw input.
func decodePath(raw []byte) (custody.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: string(raw)}}, nil
}

func TestBaseApp(t *testing.T) {
	router := NewRouter()
	router.Handle(&custodytest.Msg{RoutePath: "test/write"}, &custodytest.WriteHandler{
		Key:   []byte("written"),
		Value: []byte("yes"),
	})
	router.Handle(&custodytest.Msg{RoutePath: "test/fail"}, &custodytest.WriteHandler{
		Key:        []byte("failed"),
		Value:      []byte("no"),
		DeliverErr: errors.ErrAmount,
	})
	handler := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

	qr := custody.NewQueryRouter()
	qr.Register("/kv", kvQuery{})

	var logs bytes.Buffer
	store := NewStoreApp("test-app", iavl.NewMemCommitStore(), qr, context.Background()).
		WithLogger(log.NewTMLogger(log.NewSyncWriter(&logs))).
		WithInit(dummyInit{}).
		WithProgramID(custodytest.ProgramID)
	myApp := NewBaseApp(store, decodePath, handler, false)

	appState := []byte(`{
		"program_id": "0C057A113DE6429B8F016CD25590AA137E28C409F13B640D925EB720486FE317",
		"dummy": "hello"
	}`)
	myApp.InitChain(abci.RequestInitChain{ChainId: "base-app-test", AppStateBytes: appState})
	assert.Equal(t, "base-app-test", myApp.GetChainID())
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "base-app-test", AppStateBytes: appState})
	})

	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})
	h, ok := custody.GetHeight(myApp.BlockContext())
	require.True(t, ok)
	assert.Equal(t, int64(1), h)

	chk := myApp.CheckTx([]byte("test/write"))
	assert.Equal(t, uint32(errors.SuccessABCICode), chk.Code, chk.Log)

	dres := myApp.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(errors.SuccessABCICode), dres.Code, dres.Log)

	assert.NotContains(t, logs.String(), "tx rejected")

	dres = myApp.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrAmount.ABCICode(), dres.Code)
	// Rejections are logged under the tendermint hash of the transaction.
	assert.Contains(t, logs.String(), "tx rejected")
	assert.Contains(t, logs.String(), fmt.Sprintf("tx=%X", tmhash.Sum([]byte("test/fail"))))
	assert.Contains(t, logs.String(), "path=test/fail")
	assert.Contains(t, logs.String(), fmt.Sprintf("code=%d", errors.ErrAmount.ABCICode()))

	dres = myApp.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), dres.Code)

	dres = myApp.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), dres.Code)

	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)

	query := func(key string) []custody.Model {
		t.Helper()
		qres := myApp.Query(abci.RequestQuery{Path: "/kv", Data: []byte(key)})
		require.Equal(t, uint32(errors.SuccessABCICode), qres.Code, qres.Log)
		assert.Equal(t, int64(1), qres.Height)
		var keys, values ResultSet
		require.NoError(t, keys.Unmarshal(qres.Key))
		require.NoError(t, values.Unmarshal(qres.Value))
		models, err := JoinResults(&keys, &values)
		require.NoError(t, err)
		return models
	}

	assert.Equal(t, []custody.Model{custody.Pair([]byte("written"), []byte("yes"))}, query("written"))
	assert.Equal(t, []custody.Model{custody.Pair([]byte(dummyKey), []byte("hello"))}, query(dummyKey))
	// The failed transaction was rolled back.
	assert.Empty(t, query("failed"))

	qres := myApp.Query(abci.RequestQuery{Path: "/nope"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)
}
