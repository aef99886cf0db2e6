package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintner/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockManufacturerRepository creates a GormManufacturerRepository with a mocked SQL connection
func newMockManufacturerRepository(t *testing.T) (*GormManufacturerRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormManufacturerRepository(gormDB), mock, mockDB
}

func TestNewGormManufacturerRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormManufacturerRepository_SearchByName(t *testing.T) {
	t.Run("matches name prefix case-insensitively ordered by name", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "slug", "position"}).
			AddRow(id, "Banfi", "banfi", 1)

		mock.ExpectQuery(`SELECT \* FROM "manufacturers" WHERE name ILIKE \$1 ORDER BY name ASC LIMIT .*`).
			WithArgs("banfi%", 10).
			WillReturnRows(rows)

		manufacturers, err := repo.SearchByName(context.Background(), "banfi", 10)

		assert.NoError(t, err)
		require.Len(t, manufacturers, 1)
		assert.Equal(t, "Banfi", manufacturers[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("strips surrounding whitespace from the query", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "manufacturers" WHERE name ILIKE \$1 ORDER BY name ASC LIMIT .*`).
			WithArgs("cha%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.SearchByName(context.Background(), "  cha ", 10)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "manufacturers" WHERE name ILIKE \$1 ORDER BY name ASC LIMIT .*`).
			WithArgs("zzz%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		manufacturers, err := repo.SearchByName(context.Background(), "zzz", 10)

		assert.NoError(t, err)
		assert.Empty(t, manufacturers)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormManufacturerRepository_ExistsBySlug(t *testing.T) {
	t.Run("counts other manufacturers with the slug", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		excludeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "manufacturers" WHERE slug = \$1 AND id <> \$2`).
			WithArgs("castello-banfi", excludeID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsBySlug(context.Background(), "castello-banfi", excludeID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("omits exclusion clause for nil ID", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "manufacturers" WHERE slug = \$1`).
			WithArgs("new-slug").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsBySlug(context.Background(), "new-slug", uuid.Nil)

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormManufacturerRepository_MaxPosition(t *testing.T) {
	t.Run("returns highest position", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) FROM "manufacturers"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

		max, err := repo.MaxPosition(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 7, max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for empty table", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) FROM "manufacturers"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		max, err := repo.MaxPosition(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormManufacturerRepository_UpdatePositions(t *testing.T) {
	t.Run("updates positions inside a transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "manufacturers" SET "position"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(3, sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdatePositions(context.Background(), map[uuid.UUID]int{id: 3})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a manufacturer is missing", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "manufacturers" SET "position"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs(3, sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdatePositions(context.Background(), map[uuid.UUID]int{id: 3})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockManufacturerRepository(t)
		defer mockDB.Close()

		err := repo.UpdatePositions(context.Background(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
