package mongo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsWriteConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"write conflict code", mongo.CommandError{Code: codeWriteConflict, Name: "WriteConflict"}, true},
		{"transient label", mongo.CommandError{Code: 251, Labels: []string{"TransientTransactionError"}}, true},
		{"wrapped", fmt.Errorf("update: %w", mongo.CommandError{Code: codeWriteConflict}), true},
		{"write exception", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: codeWriteConflict}}}, true},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, false},
		{"plain error", errors.New("network down"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isWriteConflict(tt.err))
		})
	}
}

func TestTxCommitTwice(t *testing.T) {
	tx := &txStore{done: true}
	require.ErrorIs(t, tx.Commit(), errTxDone)
	require.NoError(t, tx.Rollback())
}
