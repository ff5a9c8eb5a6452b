// -----------------------------------------------------------------------------
// Person Mongo Repository
// -----------------------------------------------------------------------------
// PersonRepository'nin MongoDB karşılığı. Dokümanlar camelCase alan
// adlarıyla saklanır:
//
//	persons:       { personId, firstName, lastName, email }
//	person_phones: { personId, phone }
//
// Her doküman rowmapper.Row'a çevrilir ve PersonMapper'ın case-insensitive
// kopyası ile Person'a dönüştürülür. Stored procedure'lerin yerini
// aggregation pipeline'ları alır.
// -----------------------------------------------------------------------------

package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

const (
	personsCollection      = "persons"
	personPhonesCollection = "person_phones"
)

var mongoPersonMapper = models.PersonMapper.CaseInsensitive()

type PersonMongoRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewPersonMongoRepository(db *mongo.Database, logger *slog.Logger) *PersonMongoRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonMongoRepository{db: db, logger: logger}
}

func (r *PersonMongoRepository) persons() *mongo.Collection {
	return r.db.Collection(personsCollection)
}

// ListProjected, personId/firstName/lastName projeksiyonunu okur.
func (r *PersonMongoRepository) ListProjected(ctx context.Context) ([]models.Person, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "personId", Value: 1}, {Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}})

	cursor, err := r.persons().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return r.mapCursor(ctx, cursor)
}

// ListSwitched, firstName'e göre sıralı listeyi okur; alanlar adına göre
// switch ile yazılır.
func (r *PersonMongoRepository) ListSwitched(ctx context.Context) ([]models.Person, error) {
	opts := options.Find().SetSort(bson.D{{Key: "firstName", Value: 1}})

	cursor, err := r.persons().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	var persons []models.Person
	err = eachDocument(ctx, cursor, func(row rowmapper.Row) error {
		var p models.Person
		for _, col := range row {
			if rowmapper.IsNull(col.Value) {
				continue
			}

			var err error
			switch strings.ToLower(col.Name) {
			case "personid":
				p.PersonID, err = rowmapper.ConvertInt(col.Value)
			case "firstname":
				p.FirstName, err = rowmapper.ConvertString(col.Value)
			case "lastname":
				p.LastName, err = rowmapper.ConvertString(col.Value)
			case "email":
				p.Email, err = rowmapper.ConvertString(col.Value)
			}
			if err != nil {
				return &rowmapper.ConversionError{Column: col.Name, Value: col.Value, Target: "person field", Err: err}
			}
		}
		persons = append(persons, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read persons: %w", err)
	}
	return persons, nil
}

// ListTop, personId sırasına göre ilk n kişi.
func (r *PersonMongoRepository) ListTop(ctx context.Context, n int) ([]models.Person, error) {
	if n <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", n)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "personId", Value: 1}}).
		SetLimit(int64(n))

	cursor, err := r.persons().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return r.mapCursor(ctx, cursor)
}

// ListByProcedure, Persons_Get karşılığı pipeline.
func (r *PersonMongoRepository) ListByProcedure(ctx context.Context) ([]models.Person, error) {
	return r.aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "personId", Value: 1}}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}}}},
	})
}

// ListWithPhones, Persons_PhonesCsv karşılığı pipeline.
func (r *PersonMongoRepository) ListWithPhones(ctx context.Context) ([]models.Person, error) {
	return r.aggregate(ctx, phonesPipeline(nil))
}

// FindByEmail, Person_ByEmail karşılığı. Son eşleşen doküman kazanır.
func (r *PersonMongoRepository) FindByEmail(ctx context.Context, email string) (models.Person, error) {
	cursor, err := r.persons().Aggregate(ctx, phonesPipeline(bson.D{{Key: "email", Value: email}}))
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to find person by email: %w", err)
	}

	last := lastPerson{mapper: mongoPersonMapper}
	if err := eachDocument(ctx, cursor, last.add); err != nil {
		return models.Person{}, fmt.Errorf("failed to find person by email: %w", err)
	}
	return last.result()
}

// Ping, MongoDB bağlantısını kontrol eder.
func (r *PersonMongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

// EnsureSeed, persons koleksiyonu boşsa verilen kişileri ekler.
func (r *PersonMongoRepository) EnsureSeed(ctx context.Context, seed []models.Person) (int, error) {
	count, err := r.persons().CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return 0, nil
	}

	var persons, phones []any
	for _, p := range seed {
		var lastName any // boş soyad null olarak saklanır
		if p.LastName != "" {
			lastName = p.LastName
		}
		persons = append(persons, bson.D{
			{Key: "personId", Value: p.PersonID},
			{Key: "firstName", Value: p.FirstName},
			{Key: "lastName", Value: lastName},
			{Key: "email", Value: p.Email},
		})

		for _, phone := range p.PhoneList() {
			phones = append(phones, bson.D{{Key: "personId", Value: p.PersonID}, {Key: "phone", Value: phone}})
		}
	}

	if _, err := r.persons().InsertMany(ctx, persons); err != nil {
		return 0, fmt.Errorf("failed to seed persons: %w", err)
	}
	if len(phones) > 0 {
		if _, err := r.db.Collection(personPhonesCollection).InsertMany(ctx, phones); err != nil {
			return 0, fmt.Errorf("failed to seed phones: %w", err)
		}
	}

	r.logger.Info("✅ MongoDB seed tamamlandı", "persons", len(persons), "phones", len(phones))
	return len(persons), nil
}

func (r *PersonMongoRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Person, error) {
	cursor, err := r.persons().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate persons: %w", err)
	}
	return r.mapCursor(ctx, cursor)
}

func (r *PersonMongoRepository) mapCursor(ctx context.Context, cursor *mongo.Cursor) ([]models.Person, error) {
	persons := make([]models.Person, 0)
	err := eachDocument(ctx, cursor, func(row rowmapper.Row) error {
		var err error
		persons, err = mongoPersonMapper.MapIntoList(row, persons)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to map persons: %w", err)
	}
	return persons, nil
}

// phonesPipeline, kişileri telefonlarıyla birleştirir. match nil ise tüm
// kişiler döner.
func phonesPipeline(match bson.D) mongo.Pipeline {
	var pipeline mongo.Pipeline
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: personPhonesCollection},
			{Key: "localField", Value: "personId"},
			{Key: "foreignField", Value: "personId"},
			{Key: "as", Value: "phones"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "personId", Value: 1}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "personId", Value: 1},
			{Key: "firstName", Value: 1},
			{Key: "lastName", Value: 1},
			{Key: "email", Value: 1},
			{Key: "phones", Value: "$phones.phone"},
		}}},
	)
}

// eachDocument, cursor'daki her dokümanı Row olarak fn'e verir ve cursor'ı
// kapatır.
func eachDocument(ctx context.Context, cursor *mongo.Cursor, fn func(rowmapper.Row) error) error {
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		if err := fn(documentToRow(doc)); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// documentToRow, bson.D'yi alan sırası korunarak Row'a çevirir. _id atlanır,
// dizi değerleri sıralanıp virgülle birleştirilir, boş dizi NULL sayılır.
func documentToRow(doc bson.D) rowmapper.Row {
	row := make(rowmapper.Row, 0, len(doc))
	for _, elem := range doc {
		if elem.Key == "_id" {
			continue
		}
		row = append(row, rowmapper.Column{Name: elem.Key, Value: bsonValue(elem.Value)})
	}
	return row
}

func bsonValue(v any) any {
	switch val := v.(type) {
	case bson.A:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, err := rowmapper.ConvertString(bsonValue(item)); err == nil && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		sort.Strings(parts)
		return strings.Join(parts, ",")
	case bson.ObjectID:
		return val.Hex()
	case bson.Null, bson.Undefined:
		return nil
	case bson.DateTime:
		return val.Time()
	}
	return v
}
