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

type adminDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d adminDoc) domain() domain.Admin {
	return domain.Admin{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type adminsRepo struct {
	c    *mongo.Collection
	sess mongo.Session
}

func (r *adminsRepo) findOne(ctx context.Context, filter bson.D) (domain.Admin, error) {
	var doc adminDoc
	if err := r.c.FindOne(bind(ctx, r.sess), filter).Decode(&doc); err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return doc.domain(), nil
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *adminsRepo) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	ctx = bind(ctx, r.sess)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []adminDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Admin, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := r.c.InsertOne(bind(ctx, r.sess), adminDoc{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt.UTC(),
		UpdatedAt:    a.UpdatedAt.UTC(),
	})
	return mapDuplicate(err)
}

func (r *adminsRepo) UpdateAdmin(ctx context.Context, a domain.Admin) error {
	res, err := r.c.UpdateOne(bind(ctx, r.sess),
		bson.D{{Key: "_id", Value: a.ID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: a.Name},
			{Key: "role", Value: a.Role},
			{Key: "updated_at", Value: a.UpdatedAt.UTC()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *adminsRepo) DeleteAdmin(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(bind(ctx, r.sess), bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *adminsRepo) CountByRole(ctx context.Context, role string) (int, error) {
	n, err := r.c.CountDocuments(bind(ctx, r.sess), bson.D{{Key: "role", Value: role}})
	return int(n), err
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.c.CountDocuments(bind(ctx, r.sess), bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
