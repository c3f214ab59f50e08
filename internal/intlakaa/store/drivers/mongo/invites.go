package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/domain"
	"github.com/aussiebroadwan/intlakaa/internal/intlakaa/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type inviteDoc struct {
	ID         string     `bson:"_id"`
	Email      string     `bson:"email"`
	TokenHash  string     `bson:"token_hash"`
	Role       string     `bson:"role"`
	InvitedBy  string     `bson:"invited_by,omitempty"`
	ExpiresAt  time.Time  `bson:"expires_at"`
	Accepted   bool       `bson:"accepted"`
	AcceptedAt *time.Time `bson:"accepted_at"`
	CreatedAt  time.Time  `bson:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at"`
}

func (d inviteDoc) domain() domain.AdminInvite {
	inv := domain.AdminInvite{
		ID:        d.ID,
		Email:     d.Email,
		TokenHash: d.TokenHash,
		Role:      d.Role,
		InvitedBy: d.InvitedBy,
		ExpiresAt: d.ExpiresAt.UTC(),
		Accepted:  d.Accepted,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if d.AcceptedAt != nil {
		at := d.AcceptedAt.UTC()
		inv.AcceptedAt = &at
	}
	return inv
}

type invitesRepo struct {
	c    *mongo.Collection
	sess mongo.Session
}

func (r *invitesRepo) UpsertInvite(ctx context.Context, inv domain.AdminInvite) error {
	_, err := r.c.UpdateOne(bind(ctx, r.sess),
		bson.D{{Key: "email", Value: inv.Email}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "token_hash", Value: inv.TokenHash},
				{Key: "role", Value: inv.Role},
				{Key: "invited_by", Value: inv.InvitedBy},
				{Key: "expires_at", Value: inv.ExpiresAt.UTC()},
				{Key: "accepted", Value: false},
				{Key: "accepted_at", Value: nil},
				{Key: "updated_at", Value: inv.UpdatedAt.UTC()},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "_id", Value: inv.ID},
				{Key: "created_at", Value: inv.CreatedAt.UTC()},
			}},
		},
		options.Update().SetUpsert(true),
	)
	return mapDuplicate(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.AdminInvite, error) {
	var doc inviteDoc
	err := r.c.FindOne(bind(ctx, r.sess), bson.D{{Key: "token_hash", Value: hash}}).Decode(&doc)
	if err != nil {
		return domain.AdminInvite{}, mapNotFound(err)
	}
	return doc.domain(), nil
}

func (r *invitesRepo) MarkInviteAccepted(ctx context.Context, id string, at time.Time) error {
	res, err := r.c.UpdateOne(bind(ctx, r.sess),
		bson.D{{Key: "_id", Value: id}, {Key: "accepted", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "accepted", Value: true},
			{Key: "accepted_at", Value: at.UTC()},
			{Key: "updated_at", Value: at.UTC()},
		}}},
	)
	if err != nil {
		// A concurrent transaction already updated this invite.
		if isWriteConflict(err) {
			return store.ErrNotFound
		}
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.DeleteMany(bind(ctx, r.sess), bson.D{
		{Key: "accepted", Value: false},
		{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now.UTC()}}},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
