package database

import (
	"context"
	"fmt"
	"time"

	"tourlms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contactsCollection = "contacts"

// ConnectMongo connects, pings and returns the contacts collection
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(dbName).Collection(contactsCollection), nil
}

type contactDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Subject   string             `bson:"subject"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

func (d contactDocument) toModel() models.ContactMessage {
	return models.ContactMessage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoContactStore struct {
	coll *mongo.Collection
}

// NewMongoContactStore stores contact messages as documents
func NewMongoContactStore(coll *mongo.Collection) ContactStore {
	return &mongoContactStore{coll: coll}
}

func (s *mongoContactStore) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.Status == "" {
		msg.Status = models.ContactUnread
	}
	doc := contactDocument{
		ID:        primitive.NewObjectID(),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		Status:    msg.Status,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	msg.ID = doc.ID.Hex()
	msg.CreatedAt = doc.CreatedAt
	return nil
}

func (s *mongoContactStore) List(ctx context.Context, status string) ([]models.ContactMessage, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer cur.Close(ctx)

	var docs []contactDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contact messages: %w", err)
	}

	messages := make([]models.ContactMessage, len(docs))
	for i, d := range docs {
		messages[i] = d.toModel()
	}
	return messages, nil
}

func (s *mongoContactStore) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrContactNotFound
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update contact message %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (s *mongoContactStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return total, nil
}
