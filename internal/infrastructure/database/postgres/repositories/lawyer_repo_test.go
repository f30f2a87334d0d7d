package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/LexConnect/pkg/errors"
)

var lawyerRowColumns = []string{
	"id", "name", "specialization", "sub_specialty", "experience", "location", "fee", "about", "email", "phone", "created_at",
}

type LawyerRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo lawyer.Repository
}

func (s *LawyerRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.Require().NoError(err)

	log := logging.NewNopLogger()
	s.repo = NewPostgresLawyerRepo(postgres.NewConnectionWithDB(s.db, log), log)
}

func (s *LawyerRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *LawyerRepoTestSuite) TestList() {
	now := time.Now()
	s.mock.ExpectQuery("SELECT id, name, .* FROM lawyers ORDER BY seq").
		WillReturnRows(sqlmock.NewRows(lawyerRowColumns).
			AddRow("1", "Anil", "Property", "Landlord-Tenant Disputes", 15, "Dehradun", 1000.0, "", "", "", now).
			AddRow("2", "Priya", "Family", "", 12, "Mumbai", 2000.0, "", "", "", now))

	roster, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(roster, 2)
	s.Equal("Anil", roster[0].Name)
	s.Equal(1000.0, roster[0].Fee)
	s.Equal("", roster[1].SubSpecialty)
}

func (s *LawyerRepoTestSuite) TestList_QueryError() {
	s.mock.ExpectQuery("SELECT .* FROM lawyers").WillReturnError(errors.New("boom"))

	_, err := s.repo.List(context.Background())
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func (s *LawyerRepoTestSuite) TestGetByID_NotFound() {
	s.mock.ExpectQuery("SELECT .* FROM lawyers WHERE id = \\$1").
		WithArgs("404").
		WillReturnRows(sqlmock.NewRows(lawyerRowColumns))

	_, err := s.repo.GetByID(context.Background(), "404")
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeLawyerNotFound))
}

func (s *LawyerRepoTestSuite) TestCreate_AssignsID() {
	s.mock.ExpectExec("INSERT INTO lawyers").WillReturnResult(sqlmock.NewResult(0, 1))

	l := &lawyer.Lawyer{Name: "New", Specialization: "Cyber", Location: "Pune", Fee: 500}
	s.Require().NoError(s.repo.Create(context.Background(), l))
	s.NotEmpty(l.ID)
	s.False(l.CreatedAt.IsZero())
}

func (s *LawyerRepoTestSuite) TestCreate_Duplicate() {
	s.mock.ExpectExec("INSERT INTO lawyers").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "lawyers_pkey"})

	err := s.repo.Create(context.Background(), &lawyer.Lawyer{ID: "1", Name: "Dup"})
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeConflict))
}

func TestLawyerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(LawyerRepoTestSuite))
}

//Personal.AI order the ending
