// Package mongo is the MongoDB store driver. Uniqueness of admin emails and
// invite tokens is enforced by unique indexes, and expired invites are also
// purged by a TTL index.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collAdmins   = "admins"
	collInvites  = "admin_invites"
	collRequests = "requests"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and uses the named database.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Tx starts a multi-document transaction. Transactions need a replica set
// or sharded cluster.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("mongo: start session: %w", err)
	}
	if err := sess.StartTransaction(); err != nil {
		sess.EndSession(ctx)
		return nil, fmt.Errorf("mongo: start transaction: %w", err)
	}
	return &txStore{db: s.db, sess: sess}, nil
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback. Transient transaction errors are not retried.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Admins() store.Admins     { return &adminsRepo{c: s.db.Collection(collAdmins)} }
func (s *Store) Invites() store.Invites   { return &invitesRepo{c: s.db.Collection(collInvites)} }
func (s *Store) Requests() store.Requests { return &requestsRepo{c: s.db.Collection(collRequests)} }

type txStore struct {
	db   *mongo.Database
	sess mongo.Session
	done bool
}

func (t *txStore) Commit() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.sess.EndSession(context.Background())
	return t.sess.CommitTransaction(context.Background())
}

func (t *txStore) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.sess.EndSession(context.Background())
	return t.sess.AbortTransaction(context.Background())
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Admins() store.Admins {
	return &adminsRepo{c: t.db.Collection(collAdmins), sess: t.sess}
}
func (t *txStore) Invites() store.Invites {
	return &invitesRepo{c: t.db.Collection(collInvites), sess: t.sess}
}
func (t *txStore) Requests() store.Requests {
	return &requestsRepo{c: t.db.Collection(collRequests), sess: t.sess}
}

var (
	errNestedTx = errors.New("mongo: nested transactions are not supported")
	errTxDone   = errors.New("mongo: transaction already committed or rolled back")
)

// bind attaches the transaction session, if any, to ctx.
func bind(ctx context.Context, sess mongo.Session) context.Context {
	if sess == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, sess)
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// codeWriteConflict is the server code for a write that lost a race with
// another transaction on the same document.
const codeWriteConflict = 112

// isWriteConflict reports whether err is a transaction write conflict.
func isWriteConflict(err error) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.HasErrorCode(codeWriteConflict) || se.HasErrorLabel("TransientTransactionError")
}

func mapDuplicate(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	}
	return err
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}
