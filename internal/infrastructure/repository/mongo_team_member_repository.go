package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/niklvrr/teammembers/internal/domain"
	"github.com/niklvrr/teammembers/internal/infrastructure/models/dto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const memberIdUniqueIndex = "id_unique"

// teamMemberDocument документ коллекции: поля записи плюс _id, который выдаёт хранилище
type teamMemberDocument struct {
	Id                primitive.ObjectID `bson:"_id,omitempty"`
	domain.TeamMember `bson:",inline"`
}

func (d *teamMemberDocument) toDomain() *domain.TeamMemberInDB {
	return &domain.TeamMemberInDB{
		StorageId:  d.Id.Hex(),
		TeamMember: d.TeamMember,
	}
}

type MongoTeamMemberRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewMongoTeamMemberRepository(coll *mongo.Collection, log *zap.Logger) *MongoTeamMemberRepository {
	return &MongoTeamMemberRepository{
		coll: coll,
		log:  log,
	}
}

// EnsureIndexes создаёт уникальный индекс по бизнес-идентификатору id.
// Закрывает гонку между проверкой существования и вставкой
func (r *MongoTeamMemberRepository) EnsureIndexes(ctx context.Context) error {
	name, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(memberIdUniqueIndex),
	})
	if err != nil {
		return handleMongoError(err)
	}
	r.log.Debug("mongo index ensured", zap.String("index", name))
	return nil
}

func (r *MongoTeamMemberRepository) Exists(ctx context.Context, d *dto.MemberExistsDTO) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"id": d.Id}).Err()
	if err != nil {
		err = handleMongoError(err)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *MongoTeamMemberRepository) Create(ctx context.Context, d *dto.CreateTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	doc := &teamMemberDocument{TeamMember: *d.Member}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, handleMongoError(err)
	}

	oid, err := insertedObjectID(res.InsertedID)
	if err != nil {
		return nil, err
	}
	doc.Id = oid

	r.log.Debug("team member inserted",
		zap.String("_id", oid.Hex()),
		zap.Int64("id", d.Member.Id),
	)

	return doc.toDomain(), nil
}

// insertedObjectID достаёт _id вставленного документа.
// Ошибка здесь не связана с вводом клиента
func insertedObjectID(id any) (primitive.ObjectID, error) {
	oid, ok := id.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted _id type %T", id)
	}
	return oid, nil
}

func (r *MongoTeamMemberRepository) List(ctx context.Context) ([]*domain.TeamMemberInDB, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, handleMongoError(err)
	}

	var docs []teamMemberDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, handleMongoError(err)
	}

	members := make([]*domain.TeamMemberInDB, 0, len(docs))
	for i := range docs {
		members = append(members, docs[i].toDomain())
	}
	return members, nil
}

func (r *MongoTeamMemberRepository) Get(ctx context.Context, d *dto.GetTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	oid, err := parseObjectId(d.StorageId)
	if err != nil {
		return nil, err
	}
	return r.findById(ctx, oid)
}

func (r *MongoTeamMemberRepository) Update(ctx context.Context, d *dto.UpdateTeamMemberDTO) (*domain.TeamMemberInDB, error) {
	oid, err := parseObjectId(d.StorageId)
	if err != nil {
		return nil, err
	}

	// $set всех полей: пропущенный photo перезаписывается null
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": d.Member},
	)
	if err != nil {
		return nil, handleMongoError(err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return r.findById(ctx, oid)
}

func (r *MongoTeamMemberRepository) Delete(ctx context.Context, d *dto.DeleteTeamMemberDTO) error {
	oid, err := parseObjectId(d.StorageId)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return handleMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTeamMemberRepository) findById(ctx context.Context, oid primitive.ObjectID) (*domain.TeamMemberInDB, error) {
	var doc teamMemberDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, handleMongoError(err)
	}
	return doc.toDomain(), nil
}

func parseObjectId(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
