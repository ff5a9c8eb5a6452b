// -----------------------------------------------------------------------------
// Person Repository
// -----------------------------------------------------------------------------
// Kişi sorgularının veri erişim katmanı. Aynı listeyi farklı yollarla
// okuyan metotlar içerir:
//
//   - ListProjected: inline SQL, kolonlar pozisyonla okunur
//   - ListSwitched: inline SQL, kolon adına göre switch
//   - ListTop: query builder + PersonMapper
//   - ListByProcedure / ListWithPhones / FindByEmail: stored procedure + PersonMapper
//
// PersonSQLRepository her SQL sürücüsüyle (mysql, postgres, sqlite)
// çalışır; MongoDB için PersonMongoRepository kullanılır.
// -----------------------------------------------------------------------------

package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/biyonik/person-directory/internal/migrations"
	"github.com/biyonik/person-directory/internal/models"
	"github.com/biyonik/person-directory/pkg/database"
	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// ErrPersonNotFound, aranan kişi bulunamadığında döner.
var ErrPersonNotFound = errors.New("person not found")

// PersonRepository, kişi okuma işlemlerini tanımlar.
type PersonRepository interface {
	ListProjected(ctx context.Context) ([]models.Person, error)
	ListSwitched(ctx context.Context) ([]models.Person, error)
	ListTop(ctx context.Context, n int) ([]models.Person, error)
	ListByProcedure(ctx context.Context) ([]models.Person, error)
	ListWithPhones(ctx context.Context) ([]models.Person, error)
	FindByEmail(ctx context.Context, email string) (models.Person, error)
	Ping(ctx context.Context) error
}

const personTable = "Person"

type PersonSQLRepository struct {
	db     *database.DB
	logger *slog.Logger

	projectedSQL string
	switchedSQL  string
}

// NewPersonSQLRepository, inline sorguları sürücünün lehçesiyle bir kere
// derler ve repository'yi döndürür.
func NewPersonSQLRepository(db *database.DB, logger *slog.Logger) (*PersonSQLRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	g := db.Grammar()
	wrap := func(ids ...string) ([]any, error) {
		out := make([]any, len(ids))
		for i, id := range ids {
			w, err := g.Wrap(id)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	}

	projected, err := wrap(models.ColPersonID, models.ColFirstName, models.ColLastName, personTable)
	if err != nil {
		return nil, err
	}
	switched, err := wrap(models.ColPersonID, models.ColFirstName, models.ColLastName, models.ColEmail, personTable, models.ColFirstName)
	if err != nil {
		return nil, err
	}

	return &PersonSQLRepository{
		db:           db,
		logger:       logger,
		projectedSQL: fmt.Sprintf("SELECT %s, %s, %s FROM %s", projected...),
		switchedSQL:  fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s", switched...),
	}, nil
}

// ListProjected, üç kolonluk projeksiyonu okur. Kolonlar sabit
// pozisyondadır: 0 PersonId, 1 FirstName, 2 LastName.
func (r *PersonSQLRepository) ListProjected(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, r.projectedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	var persons []models.Person
	err = database.ForEachRow(rows, func(row rowmapper.Row) error {
		if len(row) < 3 {
			return fmt.Errorf("expected 3 columns, got %d", len(row))
		}

		var p models.Person
		id, err := rowmapper.ConvertInt(row[0].Value)
		if err != nil {
			return &rowmapper.ConversionError{Column: row[0].Name, Value: row[0].Value, Target: "int", Err: err}
		}
		p.PersonID = id

		if p.FirstName, err = optionalString(row[1]); err != nil {
			return err
		}
		if p.LastName, err = optionalString(row[2]); err != nil {
			return err
		}

		persons = append(persons, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read persons: %w", err)
	}
	return persons, nil
}

// ListSwitched, FirstName'e göre sıralı listeyi okur ve her kolonu adına
// göre ilgili alana yazar. Bilinmeyen kolonlar atlanır.
func (r *PersonSQLRepository) ListSwitched(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, r.switchedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	var persons []models.Person
	err = database.ForEachRow(rows, func(row rowmapper.Row) error {
		var p models.Person
		for _, col := range row {
			if rowmapper.IsNull(col.Value) {
				continue
			}

			var err error
			target := "string"
			switch col.Name {
			case models.ColPersonID:
				target = "int"
				p.PersonID, err = rowmapper.ConvertInt(col.Value)
			case models.ColFirstName:
				p.FirstName, err = rowmapper.ConvertString(col.Value)
			case models.ColLastName:
				p.LastName, err = rowmapper.ConvertString(col.Value)
			case models.ColEmail:
				p.Email, err = rowmapper.ConvertString(col.Value)
			}
			if err != nil {
				return &rowmapper.ConversionError{Column: col.Name, Value: col.Value, Target: target, Err: err}
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

// ListTop, PersonId sırasına göre ilk n kişiyi döndürür.
func (r *PersonSQLRepository) ListTop(ctx context.Context, n int) ([]models.Person, error) {
	if n <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", n)
	}

	rows, err := r.db.Builder().
		Table(personTable).
		Select(models.ColPersonID, models.ColFirstName, models.ColLastName, models.ColEmail).
		OrderBy(models.ColPersonID, "ASC").
		Limit(n).
		Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	persons, err := database.MapRows(rows, models.PersonMapper)
	if err != nil {
		return nil, fmt.Errorf("failed to map persons: %w", err)
	}
	return persons, nil
}

// ListByProcedure, Persons_Get sonucunu döndürür.
func (r *PersonSQLRepository) ListByProcedure(ctx context.Context) ([]models.Person, error) {
	return r.callList(ctx, database.Procedure{Name: migrations.ProcPersonsGet})
}

// ListWithPhones, Persons_PhonesCsv sonucunu döndürür. Phones alanı
// virgülle ayrılmış telefon listesidir.
func (r *PersonSQLRepository) ListWithPhones(ctx context.Context) ([]models.Person, error) {
	return r.callList(ctx, database.Procedure{Name: migrations.ProcPersonsPhonesCsv})
}

// FindByEmail, Person_ByEmail procedure'ünü çağırır. Birden fazla satır
// dönerse son satır kazanır; hiç satır yoksa ErrPersonNotFound döner.
func (r *PersonSQLRepository) FindByEmail(ctx context.Context, email string) (models.Person, error) {
	last := lastPerson{mapper: models.PersonMapper}

	err := r.db.EachCall(ctx, database.Procedure{
		Name:   migrations.ProcPersonByEmail,
		Params: []database.Param{{Name: "Email", Value: email}},
	}, last.add)
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to find person by email: %w", err)
	}
	return last.result()
}

// Ping, veritabanı bağlantısını kontrol eder.
func (r *PersonSQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PersonSQLRepository) callList(ctx context.Context, proc database.Procedure) ([]models.Person, error) {
	rows, err := r.db.Call(ctx, proc)
	if err != nil {
		return nil, err
	}

	persons, err := database.MapRows(rows, models.PersonMapper)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s result: %w", proc.Name, err)
	}

	r.logger.Debug("procedure sonucu okundu", "procedure", proc.Name, "count", len(persons))
	return persons, nil
}

// lastPerson, satırları sırayla okur. Her satır yeni bir Person'a
// map edilir ve öncekinin yerini tamamen alır; NULL kolonlar önceki
// satırdan değer taşımaz.
type lastPerson struct {
	mapper *rowmapper.Mapper[models.Person]
	person models.Person
	found  bool
}

func (l *lastPerson) add(row rowmapper.Row) error {
	p, err := l.mapper.MapNew(row)
	if err != nil {
		return err
	}
	l.person, l.found = p, true
	return nil
}

func (l *lastPerson) result() (models.Person, error) {
	if !l.found {
		return models.Person{}, ErrPersonNotFound
	}
	return l.person, nil
}

// optionalString, NULL değeri boş string olarak okur.
func optionalString(col rowmapper.Column) (string, error) {
	if rowmapper.IsNull(col.Value) {
		return "", nil
	}
	s, err := rowmapper.ConvertString(col.Value)
	if err != nil {
		return "", &rowmapper.ConversionError{Column: col.Name, Value: col.Value, Target: "string", Err: err}
	}
	return s, nil
}
