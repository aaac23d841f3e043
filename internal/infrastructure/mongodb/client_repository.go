package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/martijn/clientsapi/internal/core/domain"
	"github.com/martijn/clientsapi/internal/core/repository"
)

// clientDocument is the stored shape of a client.
type clientDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Nom            string             `bson:"nom"`
	Prenom         string             `bson:"prenom"`
	Telephone      string             `bson:"telephone"`
	Email          string             `bson:"email"`
	PointsFidelite int                `bson:"pointsFidelite"`
}

func (d *clientDocument) toDomain() *domain.Client {
	return &domain.Client{
		ID:             d.ID.Hex(),
		Nom:            d.Nom,
		Prenom:         d.Prenom,
		Telephone:      d.Telephone,
		Email:          d.Email,
		PointsFidelite: d.PointsFidelite,
	}
}

type clientRepository struct {
	db         *DB
	collection *mongo.Collection
}

func NewClientRepository(db *DB, collection string) repository.ClientRepository {
	return &clientRepository{
		db:         db,
		collection: db.Collection(collection),
	}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	doc := clientDocument{
		Nom:            client.Nom,
		Prenom:         client.Prenom,
		Telephone:      client.Telephone,
		Email:          client.Email,
		PointsFidelite: client.PointsFidelite,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	client.ID = oid.Hex()
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc clientDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *clientRepository) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := updateDocument(patch)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc clientDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc clientDocument
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete client: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	var docs []clientDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}

	clients := make([]*domain.Client, len(docs))
	for i := range docs {
		clients[i] = docs[i].toDomain()
	}
	return clients, nil
}

func (r *clientRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *clientRepository) Close(ctx context.Context) error {
	return r.db.Close(ctx)
}

// updateDocument builds the $set document for the non-nil fields of patch.
func updateDocument(patch domain.ClientPatch) bson.M {
	set := bson.M{}
	if patch.Nom != nil {
		set["nom"] = *patch.Nom
	}
	if patch.Prenom != nil {
		set["prenom"] = *patch.Prenom
	}
	if patch.Telephone != nil {
		set["telephone"] = *patch.Telephone
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PointsFidelite != nil {
		set["pointsFidelite"] = *patch.PointsFidelite
	}
	return set
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", repository.ErrInvalidID, id)
	}
	return oid, nil
}
