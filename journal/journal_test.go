package journal

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteri/healthcare-contract-client/common"
	"github.com/ruteri/healthcare-contract-client/interfaces"
)

var _ interfaces.TxJournal = (*Journal)(nil)

func openMemory(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(":memory:", common.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_Lifecycle(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	h1 := interfaces.HashFromText("h1")
	tx1 := ethcommon.HexToHash("0x01")

	id, err := j.RecordSubmitted(ctx, "healthcare", "RegisterHealthcare", h1, tx1)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := j.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, StatusPending, entries[0].Status)
	assert.Equal(t, h1.String(), entries[0].RecordHash)
	assert.Equal(t, tx1.Hex(), entries[0].TxHash)

	require.NoError(t, j.RecordOutcome(ctx, id, 12, nil))

	id2, err := j.RecordSubmitted(ctx, "healthcare", "DeleteHealthcare", h1, ethcommon.HexToHash("0x02"))
	require.NoError(t, err)
	require.NoError(t, j.RecordOutcome(ctx, id2, 13, errors.New("transaction failed")))

	entries, err = j.List(ctx, Filter{Contract: "healthcare"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id2, entries[0].ID)
	assert.Equal(t, StatusFailed, entries[0].Status)
	assert.Equal(t, "transaction failed", entries[0].Error)
	assert.Equal(t, StatusConfirmed, entries[1].Status)
	assert.Equal(t, uint64(12), entries[1].Block)
	assert.Empty(t, entries[1].Error)
}

func TestJournal_Filters(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)

	for i, c := range []string{"healthcare", "prescription", "healthcare"} {
		_, err := j.RecordSubmitted(ctx, c, "op", interfaces.HashFromText(c), ethcommon.BigToHash(big.NewInt(int64(i+1))))
		require.NoError(t, err)
	}

	entries, err := j.List(ctx, Filter{Contract: "prescription"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = j.List(ctx, Filter{Hash: interfaces.HashFromText("healthcare")})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = j.List(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJournal_UnknownEntry(t *testing.T) {
	j := openMemory(t)
	assert.Error(t, j.RecordOutcome(context.Background(), "missing", 1, nil))
}

func TestJournal_PersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "journal.db")

	j, err := Open(path, common.DiscardLogger())
	require.NoError(t, err)
	id, err := j.RecordSubmitted(ctx, "prescription", "UsePrescription", interfaces.HashFromText("rx"), ethcommon.HexToHash("0xaa"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(path, common.DiscardLogger())
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", common.DiscardLogger())
	assert.Error(t, err)
}
