package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/coursehub/pkg/rbac"
)

func TestOwnerDocument(t *testing.T) {
	t.Parallel()

	oid := bson.NewObjectID()
	tests := []struct {
		name string
		doc  ownerDocument
		want rbac.Resource
	}{
		{"object id instructor", ownerDocument{Instructor: oid}, rbac.Resource{Instructor: oid.Hex()}},
		{"string user", ownerDocument{User: "u1"}, rbac.Resource{User: "u1"}},
		{"unknown type", ownerDocument{User: 42}, rbac.Resource{}},
		{"empty", ownerDocument{}, rbac.Resource{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.doc.toResource())
		})
	}
}

func TestOwnerDocument_DecodesBSON(t *testing.T) {
	t.Parallel()

	oid := bson.NewObjectID()
	raw, err := bson.Marshal(bson.D{{Key: "instructor", Value: oid}, {Key: "title", Value: "Go"}})
	require.NoError(t, err)

	var doc ownerDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, oid.Hex(), doc.toResource().Owner())
}

func TestObjectID(t *testing.T) {
	t.Parallel()

	_, err := objectID("not-hex")
	assert.ErrorIs(t, err, rbac.ErrInvalidResourceID)

	oid := bson.NewObjectID()
	got, err := objectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	_, err := m.LookupResource(ctx, "c1")
	assert.ErrorIs(t, err, rbac.ErrResourceNotFound)

	m.Put("c1", rbac.Resource{Instructor: "u1"})
	res, err := m.LookupResource(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.Owner())

	require.NoError(t, m.Delete(ctx, "c1"))
	assert.ErrorIs(t, m.Delete(ctx, "c1"), rbac.ErrResourceNotFound)
}
