package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/brandedtoken-go/internal/mocks"
	"github.com/theblitlabs/brandedtoken-go/pkg/txsender"
)

func TestSessionWriteMetrics(t *testing.T) {
	s := &session{registry: prometheus.NewRegistry(), log: zerolog.Nop()}

	next := &mocks.MockSender{}
	next.On("SendTransaction", mock.Anything, mock.Anything, []byte{0x01}, mock.Anything).
		Return(types.NewTx(&types.LegacyTx{}), nil).Once()
	next.On("SendTransaction", mock.Anything, mock.Anything, []byte{0x02}, mock.Anything).
		Return(nil, errors.New("rpc down")).Once()

	sender := txsender.NewMetricsSender(next, s.registry)
	to := common.HexToAddress("0xb1")
	_, err := sender.SendTransaction(context.Background(), to, []byte{0x01}, &txsender.TxOptions{})
	require.NoError(t, err)
	_, err = sender.SendTransaction(context.Background(), to, []byte{0x02}, &txsender.TxOptions{})
	require.Error(t, err)

	t.Run("disabled without a path", func(t *testing.T) {
		metricsFile = ""
		assert.NoError(t, s.writeMetrics())
	})

	t.Run("written to the path", func(t *testing.T) {
		metricsFile = filepath.Join(t.TempDir(), "brandedtoken.prom")
		t.Cleanup(func() { metricsFile = "" })

		require.NoError(t, s.writeMetrics())

		data, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), `brandedtoken_transactions_total{status="success"} 1`)
		assert.Contains(t, string(data), `brandedtoken_transactions_total{status="error"} 1`)
		assert.Contains(t, string(data), "brandedtoken_transaction_duration_seconds_count 2")
	})

	t.Run("unwritable path", func(t *testing.T) {
		metricsFile = filepath.Join(t.TempDir(), "missing", "brandedtoken.prom")
		t.Cleanup(func() { metricsFile = "" })

		assert.Error(t, s.writeMetrics())
	})
}
