package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"

	"github.com/fieldtrack/geomatch/store"
)

type SQLiteStoreTestSuite struct {
	suite.Suite

	path  string
	store *store.SQLiteStore
}

func (suite *SQLiteStoreTestSuite) SetupTest() {
	suite.path = filepath.Join(suite.T().TempDir(), "venues.db")

	db, err := sql.Open("sqlite3", suite.path)
	suite.Require().NoError(err)

	_, err = db.Exec(`CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hospital_name TEXT,
		region TEXT
	)`)
	suite.Require().NoError(err)

	_, err = db.Exec(`INSERT INTO projects (id, name, hospital_name, region) VALUES
		('p1', '三院项目', '北京大学第三医院', '北京'),
		('p2', '瑞金项目', NULL, '上海'),
		('p3', '未命名', NULL, NULL)`)
	suite.Require().NoError(err)

	suite.Require().NoError(db.Close())

	suite.store, err = store.NewSQLiteStore(suite.path)
	suite.Require().NoError(err)
}

func (suite *SQLiteStoreTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

func (suite *SQLiteStoreTestSuite) TestVenues() {
	venues, err := suite.store.Venues(context.Background())

	suite.NoError(err)
	suite.Require().Len(venues, 3)

	suite.Equal("p1", venues[0].ID)
	suite.Equal("三院项目", venues[0].DisplayName)
	suite.Equal("北京大学第三医院", venues[0].HospitalName)
	suite.Equal("北京", venues[0].CityHint)

	// NULL columns come back as empty strings
	suite.Equal("", venues[1].HospitalName)
	suite.Equal("", venues[2].CityHint)
}

func (suite *SQLiteStoreTestSuite) TestMissingDatabase() {
	_, err := store.NewSQLiteStore(filepath.Join(suite.T().TempDir(), "nope", "venues.db"))

	suite.Error(err)
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &SQLiteStoreTestSuite{})
}
