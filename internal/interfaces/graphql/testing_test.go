package graphql

import (
	"database/sql"
	"testing"

	"github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
)

// newTestSchema builds the schema over an in-memory database. The returned
// *sql.DB lets tests break the datastore.
func newTestSchema(t *testing.T) (graphql.Schema, *sql.DB) {
	t.Helper()

	db, err := persistence.Open(sqlite.Open(":memory:"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	log := zaptest.NewLogger(t)
	scope := persistence.NewGormTransactionScope(db)
	customers, products, orders := persistence.NewCRMRepositories(db)

	resolver := NewResolver(
		crm.NewMutationService(scope, crm.WithLogger(log)),
		crm.NewBulkImporter(scope, crm.WithLogger(log)),
		crm.NewQueryService(customers, products, orders),
		crm.NewReplenishmentEngine(scope, crm.WithReplenishLogger(log)),
		log,
	)
	schema, err := NewSchema(resolver)
	require.NoError(t, err)
	return schema, sqlDB
}

// exec runs a request and fails the test on GraphQL errors
func exec(t *testing.T, schema graphql.Schema, query string, vars map[string]any) map[string]any {
	t.Helper()
	res := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        t.Context(),
	})
	require.False(t, res.HasErrors(), "graphql errors: %v", res.Errors)
	return res.Data.(map[string]any)
}

func field(data map[string]any, path ...string) any {
	var cur any = data
	for _, key := range path {
		cur = cur.(map[string]any)[key]
	}
	return cur
}
