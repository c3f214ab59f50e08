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

type requestDoc struct {
	ID            string    `bson:"_id"`
	Name          string    `bson:"name"`
	Phone         string    `bson:"phone"`
	StoreURL      string    `bson:"store_url"`
	MonthlySalary string    `bson:"monthly_salary"`
	Status        string    `bson:"status"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (d requestDoc) domain() domain.Request {
	return domain.Request{
		ID:            d.ID,
		Name:          d.Name,
		Phone:         d.Phone,
		StoreURL:      d.StoreURL,
		MonthlySalary: d.MonthlySalary,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

type requestsRepo struct {
	c    *mongo.Collection
	sess mongo.Session
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.Request) error {
	_, err := r.c.InsertOne(bind(ctx, r.sess), requestDoc{
		ID:            req.ID,
		Name:          req.Name,
		Phone:         req.Phone,
		StoreURL:      req.StoreURL,
		MonthlySalary: req.MonthlySalary,
		Status:        req.Status,
		CreatedAt:     req.CreatedAt.UTC(),
		UpdatedAt:     req.UpdatedAt.UTC(),
	})
	return mapDuplicate(err)
}

func (r *requestsRepo) GetRequestByID(ctx context.Context, id string) (domain.Request, error) {
	var doc requestDoc
	if err := r.c.FindOne(bind(ctx, r.sess), bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return domain.Request{}, mapNotFound(err)
	}
	return doc.domain(), nil
}

func (r *requestsRepo) ListRequests(ctx context.Context, status string) ([]domain.Request, error) {
	ctx = bind(ctx, r.sess)
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []requestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Request, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.domain())
	}
	return out, nil
}

func (r *requestsRepo) UpdateRequestStatus(ctx context.Context, id, status string, at time.Time) error {
	res, err := r.c.UpdateOne(bind(ctx, r.sess),
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "updated_at", Value: at.UTC()},
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

func (r *requestsRepo) DeleteRequest(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(bind(ctx, r.sess), bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
