package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/booktime/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productColumns() []string {
	return []string{"id", "name", "description", "price", "slug", "active", "in_stock"}
}

func TestGormProductRepository_FindActive(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	firstID := uuid.New()
	secondID := uuid.New()

	// Three products in the table, one of them inactive. The active
	// filter runs in SQL, so only two rows come back.
	rows := sqlmock.NewRows(productColumns()).
		AddRow(firstID, "The Cathedral and the Bazaar", "", "10.00", "cathedral-bazaar", true, true).
		AddRow(secondID, "A Tale of Two Cities", "", "2.00", "tale-two-cities", true, true)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1`).
		WithArgs(true).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "product_images" WHERE .*product_id.*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "image", "thumbnail"}))

	products, err := repo.FindActive(context.Background(), shared.Filter{})

	assert.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, firstID, products[0].ID)
	assert.Equal(t, secondID, products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_FindActiveByTag(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	tagID := uuid.New()
	productID := uuid.New()

	rows := sqlmock.NewRows(productColumns()).
		AddRow(productID, "The Cathedral and the Bazaar", "", "10.00", "cathedral-bazaar", true, true)

	mock.ExpectQuery(`SELECT .* FROM "products" JOIN product_product_tags ppt ON ppt\.product_id = products\.id WHERE ppt\.product_tag_id = \$1 AND products\.active = \$2`).
		WithArgs(tagID, true).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "product_images" WHERE .*product_id.*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "image", "thumbnail"}))

	products, err := repo.FindActiveByTag(context.Background(), tagID, shared.Filter{})

	assert.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, productID, products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
