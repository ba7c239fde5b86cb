package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gameguild-gg/guildkit/pkg/grants"
	"github.com/gameguild-gg/guildkit/pkg/permissions"
)

const (
	tenantGrantsCollection      = "tenant_grants"
	contentTypeGrantsCollection = "content_type_grants"
)

// grantDoc is the shared BSON layout for all three grant kinds; unused
// fields stay at their zero values and are omitted on write.
type grantDoc struct {
	UserID      string     `bson:"user_id"`
	TenantID    string     `bson:"tenant_id"`
	ContentType string     `bson:"content_type,omitempty"`
	ResourceID  string     `bson:"resource_id,omitempty"`
	Flags       int64      `bson:"flags"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

// upsertGrant OR-combines flags into the matching document, inserting it
// when absent. extra carries kind-specific fields to set on every write
// (e.g. the replaced expiry on resource grants).
func upsertGrant(ctx context.Context, coll *mongo.Collection, filter bson.M, flags permissions.Flag, extra bson.M) error {
	now := time.Now()

	set := bson.M{"updated_at": now}
	for k, v := range extra {
		set[k] = v
	}

	update := bson.M{
		"$bit":         bson.M{"flags": bson.M{"or": int64(flags)}},
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}

	// Concurrent upserts for the same new key race: the unique index makes
	// the loser fail with a duplicate key error instead of inserting a
	// second document. One retry then matches the winner's document.
	var err error
	for range 2 {
		_, err = coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
		if err == nil || !mongo.IsDuplicateKeyError(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("upsert grant: %w", err)
	}
	return nil
}

// ensureUniqueIndex creates the unique compound key index the upsert
// contract relies on: without it, concurrent first-grants for the same key
// can both insert and leave duplicate documents. Safe to call on every
// startup; index creation is idempotent.
func ensureUniqueIndex(ctx context.Context, coll *mongo.Collection, fields ...string) error {
	keys := make(bson.D, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create grant index on %s: %w", coll.Name(), err)
	}
	return nil
}

func getGrant(ctx context.Context, coll *mongo.Collection, filter bson.M) (*grantDoc, error) {
	var doc grantDoc
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, grants.ErrGrantNotFound
		}
		return nil, fmt.Errorf("find grant: %w", err)
	}
	return &doc, nil
}

// revokeGrant clears bits with a $bit and-mask, then removes the document
// once no flags remain.
func revokeGrant(ctx context.Context, coll *mongo.Collection, filter bson.M, flags permissions.Flag) error {
	update := bson.M{
		"$bit": bson.M{"flags": bson.M{"and": int64(^flags)}},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res := coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var doc grantDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return grants.ErrGrantNotFound
		}
		return fmt.Errorf("revoke grant: %w", err)
	}

	if doc.Flags != 0 {
		return nil
	}
	return deleteGrant(ctx, coll, filter)
}

func deleteGrant(ctx context.Context, coll *mongo.Collection, filter bson.M) error {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	if res.DeletedCount == 0 {
		return grants.ErrGrantNotFound
	}
	return nil
}

// TenantStore implements grants.TenantStore over MongoDB.
type TenantStore struct {
	coll *mongo.Collection
}

// NewTenantStore constructs a tenant grant store in the given database.
func NewTenantStore(db *mongo.Database) *TenantStore {
	return &TenantStore{coll: db.Collection(tenantGrantsCollection)}
}

// EnsureIndexes creates the unique (user_id, tenant_id) index.
func (s *TenantStore) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.coll, "user_id", "tenant_id")
}

func (s *TenantStore) Get(ctx context.Context, userID, tenantID uuid.UUID) (*grants.TenantGrant, error) {
	doc, err := getGrant(ctx, s.coll, bson.M{"user_id": userID.String(), "tenant_id": tenantID.String()})
	if err != nil {
		return nil, err
	}

	return &grants.TenantGrant{
		UserID:    userID,
		TenantID:  tenantID,
		Flags:     permissions.Flag(doc.Flags),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (s *TenantStore) Grant(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return grants.ErrNilID
	}
	return upsertGrant(ctx, s.coll,
		bson.M{"user_id": userID.String(), "tenant_id": tenantID.String()}, flags, nil)
}

func (s *TenantStore) Revoke(ctx context.Context, userID, tenantID uuid.UUID, flags permissions.Flag) error {
	return revokeGrant(ctx, s.coll,
		bson.M{"user_id": userID.String(), "tenant_id": tenantID.String()}, flags)
}

func (s *TenantStore) Delete(ctx context.Context, userID, tenantID uuid.UUID) error {
	return deleteGrant(ctx, s.coll,
		bson.M{"user_id": userID.String(), "tenant_id": tenantID.String()})
}

// ContentTypeStore implements grants.ContentTypeStore over MongoDB.
type ContentTypeStore struct {
	coll *mongo.Collection
}

// NewContentTypeStore constructs a content-type grant store in the given database.
func NewContentTypeStore(db *mongo.Database) *ContentTypeStore {
	return &ContentTypeStore{coll: db.Collection(contentTypeGrantsCollection)}
}

// EnsureIndexes creates the unique (user_id, tenant_id, content_type) index.
func (s *ContentTypeStore) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.coll, "user_id", "tenant_id", "content_type")
}

func (s *ContentTypeStore) Get(ctx context.Context, userID, tenantID uuid.UUID, contentType string) (*grants.ContentTypeGrant, error) {
	if contentType == "" {
		return nil, grants.ErrEmptyContentType
	}

	doc, err := getGrant(ctx, s.coll, bson.M{
		"user_id":      userID.String(),
		"tenant_id":    tenantID.String(),
		"content_type": contentType,
	})
	if err != nil {
		return nil, err
	}

	return &grants.ContentTypeGrant{
		UserID:      userID,
		TenantID:    tenantID,
		ContentType: contentType,
		Flags:       permissions.Flag(doc.Flags),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (s *ContentTypeStore) Grant(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return grants.ErrNilID
	}
	if contentType == "" {
		return grants.ErrEmptyContentType
	}
	return upsertGrant(ctx, s.coll, bson.M{
		"user_id":      userID.String(),
		"tenant_id":    tenantID.String(),
		"content_type": contentType,
	}, flags, nil)
}

func (s *ContentTypeStore) Revoke(ctx context.Context, userID, tenantID uuid.UUID, contentType string, flags permissions.Flag) error {
	if contentType == "" {
		return grants.ErrEmptyContentType
	}
	return revokeGrant(ctx, s.coll, bson.M{
		"user_id":      userID.String(),
		"tenant_id":    tenantID.String(),
		"content_type": contentType,
	}, flags)
}

func (s *ContentTypeStore) Delete(ctx context.Context, userID, tenantID uuid.UUID, contentType string) error {
	if contentType == "" {
		return grants.ErrEmptyContentType
	}
	return deleteGrant(ctx, s.coll, bson.M{
		"user_id":      userID.String(),
		"tenant_id":    tenantID.String(),
		"content_type": contentType,
	})
}

// ResourceStore implements grants.ResourceStore over MongoDB for a single
// resource kind; the collection name is fixed at construction.
type ResourceStore struct {
	coll *mongo.Collection
}

// NewResourceStore constructs a resource grant store over the named
// collection, e.g. "product_grants".
func NewResourceStore(db *mongo.Database, collection string) *ResourceStore {
	return &ResourceStore{coll: db.Collection(collection)}
}

// EnsureIndexes creates the unique (user_id, tenant_id, resource_id) index.
func (s *ResourceStore) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.coll, "user_id", "tenant_id", "resource_id")
}

func (s *ResourceStore) Get(ctx context.Context, userID, tenantID, resourceID uuid.UUID) (*grants.ResourceGrant, error) {
	doc, err := getGrant(ctx, s.coll, bson.M{
		"user_id":     userID.String(),
		"tenant_id":   tenantID.String(),
		"resource_id": resourceID.String(),
	})
	if err != nil {
		return nil, err
	}

	return &grants.ResourceGrant{
		UserID:     userID,
		TenantID:   tenantID,
		ResourceID: resourceID,
		Flags:      permissions.Flag(doc.Flags),
		ExpiresAt:  doc.ExpiresAt,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

func (s *ResourceStore) Grant(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag, expiresAt *time.Time) error {
	if userID == uuid.Nil || tenantID == uuid.Nil || resourceID == uuid.Nil {
		return grants.ErrNilID
	}
	return upsertGrant(ctx, s.coll, bson.M{
		"user_id":     userID.String(),
		"tenant_id":   tenantID.String(),
		"resource_id": resourceID.String(),
	}, flags, bson.M{"expires_at": expiresAt})
}

func (s *ResourceStore) Revoke(ctx context.Context, userID, tenantID, resourceID uuid.UUID, flags permissions.Flag) error {
	return revokeGrant(ctx, s.coll, bson.M{
		"user_id":     userID.String(),
		"tenant_id":   tenantID.String(),
		"resource_id": resourceID.String(),
	}, flags)
}

func (s *ResourceStore) Delete(ctx context.Context, userID, tenantID, resourceID uuid.UUID) error {
	return deleteGrant(ctx, s.coll, bson.M{
		"user_id":     userID.String(),
		"tenant_id":   tenantID.String(),
		"resource_id": resourceID.String(),
	})
}

func (s *ResourceStore) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	// Cleanup after resource deletion; zero matches is not an error.
	if _, err := s.coll.DeleteMany(ctx, bson.M{"resource_id": resourceID.String()}); err != nil {
		return fmt.Errorf("delete resource grants: %w", err)
	}
	return nil
}

var (
	_ grants.TenantStore      = (*TenantStore)(nil)
	_ grants.ContentTypeStore = (*ContentTypeStore)(nil)
	_ grants.ResourceStore    = (*ResourceStore)(nil)
)
