package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

// UsersCollection is the collection Mongo stores users in.
const UsersCollection = "users"

type userDocument struct {
	ID                bson.ObjectID   `bson:"_id,omitempty"`
	Name              string          `bson:"name"`
	Email             string          `bson:"email"`
	Role              string          `bson:"role"`
	PasswordHash      []byte          `bson:"passwordHash"`
	PasswordChangedAt *time.Time      `bson:"passwordChangedAt,omitempty"`
	ResetTokenHash    string          `bson:"resetTokenHash,omitempty"`
	ResetExpiresAt    *time.Time      `bson:"resetExpiresAt,omitempty"`
	LastLoginAt       *time.Time      `bson:"lastLoginAt,omitempty"`
	EnrolledCourses   []bson.ObjectID `bson:"enrolledCourses,omitempty"`
	CreatedAt         time.Time       `bson:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt"`
}

func toDocument(u *auth.User) userDocument {
	doc := userDocument{
		Name:              u.Name,
		Email:             u.Email,
		Role:              string(u.Role),
		PasswordHash:      u.PasswordHash,
		PasswordChangedAt: u.PasswordChangedAt,
		ResetTokenHash:    u.ResetTokenHash,
		ResetExpiresAt:    u.ResetExpiresAt,
		LastLoginAt:       u.LastLoginAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
	for _, c := range u.EnrolledCourses {
		if oid, err := bson.ObjectIDFromHex(c); err == nil {
			doc.EnrolledCourses = append(doc.EnrolledCourses, oid)
		}
	}
	return doc
}

func (d userDocument) toUser() *auth.User {
	u := &auth.User{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		Role:              rbac.Role(d.Role),
		PasswordHash:      d.PasswordHash,
		PasswordChangedAt: d.PasswordChangedAt,
		ResetTokenHash:    d.ResetTokenHash,
		ResetExpiresAt:    d.ResetExpiresAt,
		LastLoginAt:       d.LastLoginAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, c := range d.EnrolledCourses {
		u.EnrolledCourses = append(u.EnrolledCourses, c.Hex())
	}
	return u
}

// Mongo is an auth.Storage backed by a MongoDB collection.
type Mongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongo stores users in db's users collection.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{coll: db.Collection(UsersCollection), now: time.Now}
}

var _ auth.Storage = (*Mongo)(nil)

// EnsureIndexes creates the unique email index. Run once at startup.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

// objectID parses a hex id. Malformed ids cannot match any user.
func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, auth.ErrUserNotFound
	}
	return oid, nil
}

func (m *Mongo) findOne(ctx context.Context, filter any) (*auth.User, error) {
	var doc userDocument
	if err := m.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toUser(), nil
}

// GetUserByID returns the user; malformed ids are auth.ErrUserNotFound.
func (m *Mongo) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return m.findOne(ctx, bson.M{"_id": oid})
}

// GetUserByEmail looks the user up by normalized email.
func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

// CreateUser inserts user and sets its generated id. A duplicate key on
// email is auth.ErrEmailAlreadyExists.
func (m *Mongo) CreateUser(ctx context.Context, user *auth.User) error {
	doc := toDocument(user)
	doc.ID = bson.NewObjectID()

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

// DeleteUser hard deletes the user.
func (m *Mongo) DeleteUser(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// ListUsers returns users newest first without credential fields.
func (m *Mongo) ListUsers(ctx context.Context, f auth.ListFilter) ([]*auth.User, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"passwordHash": 0, "resetTokenHash": 0, "resetExpiresAt": 0})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Skip > 0 {
		opts.SetSkip(int64(f.Skip))
	}

	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*auth.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toUser())
	}
	return users, nil
}

// updateOne applies update to one user and reports ErrUserNotFound when
// the filter matches nothing.
func (m *Mongo) updateOne(ctx context.Context, id string, update bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin sets lastLoginAt and nothing else.
func (m *Mongo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.updateOne(ctx, id, bson.M{"$set": bson.M{"lastLoginAt": at}})
}

// UpdateRole sets the role and returns the document after the update.
func (m *Mongo) UpdateRole(ctx context.Context, id string, role rbac.Role) (*auth.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	err = m.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": string(role), "updatedAt": m.now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return doc.toUser(), nil
}

// UpdatePasswordHash sets the hash and passwordChangedAt.
func (m *Mongo) UpdatePasswordHash(ctx context.Context, id string, hash []byte, changedAt time.Time) error {
	return m.updateOne(ctx, id, bson.M{"$set": bson.M{
		"passwordHash":      hash,
		"passwordChangedAt": changedAt,
		"updatedAt":         changedAt,
	}})
}

// SetResetToken stores the mirror, replacing any pending one.
func (m *Mongo) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	return m.updateOne(ctx, id, bson.M{"$set": bson.M{
		"resetTokenHash": tokenHash,
		"resetExpiresAt": expiresAt,
	}})
}

// ClearResetToken is conditional on the stored hash so a failed delivery
// never wipes a newer token.
func (m *Mongo) ClearResetToken(ctx context.Context, id, tokenHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	_, err = m.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "resetTokenHash": tokenHash},
		bson.M{"$unset": bson.M{"resetTokenHash": "", "resetExpiresAt": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// CompleteReset is a compare-and-swap on the stored reset hash. When no
// document matches, the reset was already consumed or superseded and the
// result is auth.ErrResetNotPending.
func (m *Mongo) CompleteReset(ctx context.Context, id, expectedHash string, newHash []byte, changedAt time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if expectedHash == "" {
		return auth.ErrResetNotPending
	}

	res, err := m.coll.UpdateOne(ctx,
		bson.M{
			"_id":            oid,
			"resetTokenHash": expectedHash,
			"resetExpiresAt": bson.M{"$gt": changedAt},
		},
		bson.M{
			"$set": bson.M{
				"passwordHash":      newHash,
				"passwordChangedAt": changedAt,
				"updatedAt":         changedAt,
			},
			"$unset": bson.M{"resetTokenHash": "", "resetExpiresAt": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to complete reset: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrResetNotPending
	}
	return nil
}
