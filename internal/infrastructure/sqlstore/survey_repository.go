// Package sqlstore stores surveys in a relational database through database/sql.
//
// Tables:
//
//	surveys(id, first_name, ..., comments)           PRIMARY KEY (id)
//	survey_liked_most(survey_id, position, value)    PRIMARY KEY (survey_id, position)
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	Name string
	// IDColumn is the DDL for the auto-incrementing primary key.
	IDColumn string
	// Numbered placeholders ($1, $2...) instead of "?".
	Numbered bool
	// Serialize guards every statement with the repository lock.
	Serialize bool
}

var (
	SQLite = Dialect{
		Name:      "sqlite3",
		IDColumn:  "id INTEGER PRIMARY KEY AUTOINCREMENT",
		Serialize: true,
	}
	Postgres = Dialect{
		Name:     "postgres",
		IDColumn: "id BIGSERIAL PRIMARY KEY",
		Numbered: true,
	}
)

const surveyColumns = `first_name, last_name, street_address, city, state, zip, telephone, email,
	date_of_survey, interest_source, recommend_likelihood, comments`

// SurveyRepository implements the survey store on top of *sql.DB.
type SurveyRepository struct {
	mu      sync.RWMutex
	db      *sql.DB
	dialect Dialect
}

// NewSurveyRepository creates the tables when missing and returns the repository.
func NewSurveyRepository(ctx context.Context, db *sql.DB, dialect Dialect) (*SurveyRepository, error) {
	r := &SurveyRepository{db: db, dialect: dialect}
	if err := r.migrate(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SurveyRepository) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS surveys (
			` + r.dialect.IDColumn + `,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			street_address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip TEXT NOT NULL,
			telephone TEXT NOT NULL,
			email TEXT NOT NULL,
			date_of_survey TEXT NOT NULL,
			interest_source TEXT NOT NULL,
			recommend_likelihood TEXT NOT NULL,
			comments VARCHAR(2000) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS survey_liked_most (
			survey_id BIGINT NOT NULL REFERENCES surveys(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (survey_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", r.dialect.Name, err)
		}
	}
	return nil
}

func (r *SurveyRepository) lock() func() {
	if !r.dialect.Serialize {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *SurveyRepository) rlock() func() {
	if !r.dialect.Serialize {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

// rebind rewrites "?" placeholders for dialects with numbered parameters.
func (r *SurveyRepository) rebind(query string) string {
	if !r.dialect.Numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (r *SurveyRepository) FindAll(ctx context.Context) ([]domain.Survey, error) {
	defer r.rlock()()

	rows, err := r.db.QueryContext(ctx, "SELECT id, "+surveyColumns+" FROM surveys ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	surveys := make([]domain.Survey, 0)
	index := make(map[int64]int)
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		index[survey.ID] = len(surveys)
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	likedRows, err := r.db.QueryContext(ctx, "SELECT survey_id, value FROM survey_liked_most ORDER BY survey_id, position")
	if err != nil {
		return nil, err
	}
	defer likedRows.Close()
	for likedRows.Next() {
		var surveyID int64
		var value string
		if err := likedRows.Scan(&surveyID, &value); err != nil {
			return nil, err
		}
		if i, ok := index[surveyID]; ok {
			surveys[i].LikedMost = append(surveys[i].LikedMost, value)
		}
	}
	return surveys, likedRows.Err()
}

func (r *SurveyRepository) FindByID(ctx context.Context, id int64) (*domain.Survey, error) {
	defer r.rlock()()

	row := r.db.QueryRowContext(ctx, r.rebind("SELECT id, "+surveyColumns+" FROM surveys WHERE id = ?"), id)
	survey, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	liked, err := r.loadLikedMost(ctx, id)
	if err != nil {
		return nil, err
	}
	survey.LikedMost = liked
	return &survey, nil
}

func (r *SurveyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	defer r.rlock()()

	var one int
	err := r.db.QueryRowContext(ctx, r.rebind("SELECT 1 FROM surveys WHERE id = ?"), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SurveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	defer r.lock()()

	return r.inTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, r.rebind(`INSERT INTO surveys (`+surveyColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`), surveyArgs(survey)...).Scan(&id)
		if err != nil {
			return err
		}
		if err := r.insertLikedMost(ctx, tx, id, survey.LikedMost); err != nil {
			return err
		}
		survey.ID = id
		return nil
	})
}

// Update replaces the stored row and its likedMost rows. An unknown id yields
// domain.ErrSurveyNotFound.
func (r *SurveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	if survey.ID == 0 {
		return errors.New("survey id is required")
	}
	defer r.lock()()

	return r.inTx(ctx, func(tx *sql.Tx) error {
		args := append(surveyArgs(survey), survey.ID)
		res, err := tx.ExecContext(ctx, r.rebind(`UPDATE surveys SET
			first_name = ?, last_name = ?, street_address = ?, city = ?, state = ?, zip = ?,
			telephone = ?, email = ?, date_of_survey = ?, interest_source = ?,
			recommend_likelihood = ?, comments = ?
			WHERE id = ?`), args...)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrSurveyNotFound
		}
		if _, err := tx.ExecContext(ctx, r.rebind("DELETE FROM survey_liked_most WHERE survey_id = ?"), survey.ID); err != nil {
			return err
		}
		return r.insertLikedMost(ctx, tx, survey.ID, survey.LikedMost)
	})
}

func (r *SurveyRepository) DeleteByID(ctx context.Context, id int64) error {
	defer r.lock()()

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, r.rebind("DELETE FROM survey_liked_most WHERE survey_id = ?"), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, r.rebind("DELETE FROM surveys WHERE id = ?"), id)
		return err
	})
}

func (r *SurveyRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SurveyRepository) Close(_ context.Context) error {
	return r.db.Close()
}

func (r *SurveyRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SurveyRepository) insertLikedMost(ctx context.Context, tx *sql.Tx, surveyID int64, values []string) error {
	if len(values) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, r.rebind("INSERT INTO survey_liked_most (survey_id, position, value) VALUES (?, ?, ?)"))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, value := range values {
		if _, err := stmt.ExecContext(ctx, surveyID, i, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *SurveyRepository) loadLikedMost(ctx context.Context, surveyID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind("SELECT value FROM survey_liked_most WHERE survey_id = ? ORDER BY position"), surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (domain.Survey, error) {
	var s domain.Survey
	var date, interestSource, recommendLikelihood string
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.StreetAddress,
		&s.City,
		&s.State,
		&s.Zip,
		&s.Telephone,
		&s.Email,
		&date,
		&interestSource,
		&recommendLikelihood,
		&s.Comments,
	)
	if err != nil {
		return domain.Survey{}, err
	}
	s.DateOfSurvey, err = domain.ParseDate(date)
	if err != nil {
		return domain.Survey{}, err
	}
	s.InterestSource = domain.InterestSource(interestSource)
	s.RecommendLikelihood = domain.RecommendLikelihood(recommendLikelihood)
	return s, nil
}

func surveyArgs(s *domain.Survey) []any {
	return []any{
		s.FirstName,
		s.LastName,
		s.StreetAddress,
		s.City,
		s.State,
		s.Zip,
		s.Telephone,
		s.Email,
		s.DateOfSurvey.String(),
		s.InterestSource.String(),
		s.RecommendLikelihood.String(),
		s.Comments,
	}
}
