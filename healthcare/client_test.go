package healthcare

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/bindings/healthcare"
	"github.com/ruteri/healthcare-contract-client/chain/chaintest"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

var testContractAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func setupClient(t *testing.T) (*OnchainHealthcareClient, *chaintest.Backend) {
	t.Helper()

	parsed, err := healthcare.HealthcareMetaData.GetAbi()
	require.NoError(t, err)

	backend := chaintest.NewBackend(parsed)
	client, err := NewOnchainHealthcareClient(backend, backend, testContractAddr)
	require.NoError(t, err)
	return client, backend
}

func TestGetHealthcareInfo_Decodes(t *testing.T) {
	client, backend := setupClient(t)
	hash, err := interfaces.ParseRecordHash("health1")
	require.NoError(t, err)

	backend.HandleCall("GetHealthcareInfo", func(args []interface{}) ([]interface{}, error) {
		require.Equal(t, [32]byte(hash), args[0].([32]byte))
		return []interface{}{
			big.NewInt(1700000000),
			big.NewInt(0),
			"010-1234-5678",
			"General Hospital",
			uint8(interfaces.HealthcareRegistered),
			uint8(interfaces.HealthcareReport),
		}, nil
	})

	record, err := client.GetHealthcareInfo(context.Background(), hash)
	require.NoError(t, err)
	assert.Equal(t, interfaces.HealthcareRecord{
		RegisteredDate: 1700000000,
		PhoneNumber:    "010-1234-5678",
		Hospital:       "General Hospital",
		Status:         interfaces.HealthcareRegistered,
		Type:           interfaces.HealthcareReport,
	}, record)
}

func TestGetHealthcareInfo_NullRecord(t *testing.T) {
	client, backend := setupClient(t)

	backend.HandleCall("GetHealthcareInfo", func(args []interface{}) ([]interface{}, error) {
		return []interface{}{big.NewInt(0), big.NewInt(0), "", "", uint8(0), uint8(0)}, nil
	})

	record, err := client.GetHealthcareInfo(context.Background(), interfaces.HashFromText("null-test"))
	require.NoError(t, err)
	assert.False(t, record.Exists())
	assert.Equal(t, interfaces.HealthcareRecord{}, record)
}

func TestWritesRequireTransactOpts(t *testing.T) {
	client, _ := setupClient(t)
	hash := interfaces.HashFromText("h1")

	_, err := client.RegisterHealthcare(context.Background(), hash, "010", interfaces.HealthcareData, "X")
	assert.ErrorIs(t, err, ErrNoTransactOpts)

	_, err = client.DeleteHealthcare(context.Background(), hash)
	assert.ErrorIs(t, err, ErrNoTransactOpts)
}

func TestRegisterHealthcare_EncodesCall(t *testing.T) {
	client, backend := setupClient(t)
	auth, _, err := chaintest.NewTransactor()
	require.NoError(t, err)
	client.SetTransactOpts(auth)

	hash, err := interfaces.ParseRecordHash("h1")
	require.NoError(t, err)

	tx, err := client.RegisterHealthcare(context.Background(), hash, "010-1111-2222", interfaces.DataToHospital, "X")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, testContractAddr, *tx.To())

	method, args, err := backend.DecodeSent(tx)
	require.NoError(t, err)
	assert.Equal(t, "RegisterHealthcare", method)
	assert.Equal(t, [32]byte(hash), args[0])
	assert.Equal(t, "010-1111-2222", args[1])
	assert.Equal(t, uint8(interfaces.DataToHospital), args[2])
	assert.Equal(t, "X", args[3])

	receipt, err := client.WaitMined(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), receipt.TxHash)
}

func TestDeleteHealthcare_FailedReceipt(t *testing.T) {
	client, backend := setupClient(t)
	auth, _, err := chaintest.NewTransactor()
	require.NoError(t, err)
	client.SetTransactOpts(auth)
	backend.FailReceipts = true

	tx, err := client.DeleteHealthcare(context.Background(), interfaces.HashFromText("h1"))
	require.NoError(t, err)

	method, _, err := backend.DecodeSent(tx)
	require.NoError(t, err)
	assert.Equal(t, "DeleteHealthcare", method)

	_, err = client.WaitMined(context.Background(), tx)
	assert.ErrorIs(t, err, interfaces.ErrTransactionFailed)
}

func TestRegisterHealthcare_RevertAtEstimation(t *testing.T) {
	client, backend := setupClient(t)
	auth, _, err := chaintest.NewTransactor()
	require.NoError(t, err)
	client.SetTransactOpts(auth)
	backend.EstimateErr = &chaintest.RevertError{Reason: RevertDuplicate}

	_, err = client.RegisterHealthcare(context.Background(), interfaces.HashFromText("h1"), "010", interfaces.HealthcareData, "")
	require.Error(t, err)

	var revert *chaintest.RevertError
	assert.True(t, errors.As(err, &revert))
	assert.Empty(t, backend.Sent())
}

func TestCheckDeployed(t *testing.T) {
	client, backend := setupClient(t)
	assert.NoError(t, client.CheckDeployed(context.Background()))

	backend.SetCode(nil)
	assert.ErrorIs(t, client.CheckDeployed(context.Background()), interfaces.ErrNoCode)
}

func TestEvents_OrderedAcrossKinds(t *testing.T) {
	client, backend := setupClient(t)
	h1 := interfaces.HashFromText("h1")
	h2 := interfaces.HashFromText("h2")

	for _, l := range []struct {
		name  string
		block uint64
		hash  interfaces.RecordHash
	}{
		{"LogRegisterHealthcare", 1, h1},
		{"LogDeleteHealthcare", 3, h1},
		{"LogRegisterHealthcare", 2, h2},
	} {
		log, err := backend.EventLog(l.name, l.block, [32]byte(l.hash))
		require.NoError(t, err)
		backend.AddLog(log)
	}

	events, err := client.Events(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "LogRegisterHealthcare", events[0].Name)
	assert.Equal(t, h1, events[0].Hash)
	assert.Equal(t, "LogRegisterHealthcare", events[1].Name)
	assert.Equal(t, h2, events[1].Hash)
	assert.Equal(t, "LogDeleteHealthcare", events[2].Name)
	assert.Equal(t, uint64(3), events[2].BlockNumber)

	events, err = client.Events(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestHealthcareFactory(t *testing.T) {
	parsed, err := healthcare.HealthcareMetaData.GetAbi()
	require.NoError(t, err)
	backend := chaintest.NewBackend(parsed)

	addr, err := interfaces.NewContractAddressFromHex("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.NoError(t, err)

	readOnly, err := NewHealthcareFactory(backend, backend, nil).HealthcareFor(addr)
	require.NoError(t, err)
	assert.Equal(t, testContractAddr, readOnly.Address())
	_, err = readOnly.DeleteHealthcare(context.Background(), interfaces.HashFromText("h1"))
	assert.ErrorIs(t, err, ErrNoTransactOpts)

	auth, _, err := chaintest.NewTransactor()
	require.NoError(t, err)
	writer, err := NewHealthcareFactory(backend, backend, auth).HealthcareFor(addr)
	require.NoError(t, err)
	_, err = writer.DeleteHealthcare(context.Background(), interfaces.HashFromText("h1"))
	assert.NoError(t, err)
}
