package resources

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// Collection names of the guarded resources.
const (
	CoursesCollection = "courses"
	ReviewsCollection = "reviews"
)

// Mongo reads owning fields from, and deletes documents in, one collection.
type Mongo struct {
	coll *mongo.Collection
}

// NewMongo looks resources up in coll, e.g.
// db.Collection(resources.CoursesCollection).
func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll}
}

var _ rbac.ResourceLookup = (*Mongo)(nil)

// ownerDocument accepts owners stored as ObjectIDs or plain strings.
type ownerDocument struct {
	Instructor any `bson:"instructor,omitempty"`
	User       any `bson:"user,omitempty"`
}

func (d ownerDocument) toResource() rbac.Resource {
	return rbac.Resource{
		Instructor: ownerID(d.Instructor),
		User:       ownerID(d.User),
	}
}

func ownerID(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, errors.Join(rbac.ErrInvalidResourceID, err)
	}
	return oid, nil
}

// LookupResource implements rbac.ResourceLookup.
func (m *Mongo) LookupResource(ctx context.Context, id string) (rbac.Resource, error) {
	oid, err := objectID(id)
	if err != nil {
		return rbac.Resource{}, err
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "instructor", Value: 1}, {Key: "user", Value: 1}})

	var doc ownerDocument
	if err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return rbac.Resource{}, rbac.ErrResourceNotFound
		}
		return rbac.Resource{}, fmt.Errorf("failed to load %s/%s: %w", m.coll.Name(), id, err)
	}
	return doc.toResource(), nil
}

// Delete removes the document with the given id.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", m.coll.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return rbac.ErrResourceNotFound
	}
	return nil
}
