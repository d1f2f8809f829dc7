// Package reviewstore persists crawl runs and their review records to
// sqlite.
package reviewstore

import (
	"context"
	"database/sql"
	"time"

	_ "embed"

	"reviewharvest/lib/scrapers/reviews"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Crawl describes one stored crawl run.
type Crawl struct {
	Id        int64
	Company   string
	Source    reviews.Source
	StartedAt time.Time
	Collected int
}

// Push stores the results of one crawl run in a single transaction and
// returns the crawl's id.
func (s Store) Push(ctx context.Context, company string, source reviews.Source, startedAt time.Time, records []reviews.ReviewRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`insert into crawls (company, source, started_at, collected) values (?, ?, ?, ?)`,
		company, string(source), startedAt.Unix(), len(records),
	)
	if err != nil {
		return 0, err
	}
	crawlId, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, record := range records {
		var rating sql.NullFloat64
		if record.Rating != nil {
			rating = sql.NullFloat64{Float64: *record.Rating, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`insert into reviews
			(crawl_id, title, description, date, rating, reviewer_name, reviewer_info, pros, cons, source)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			crawlId, record.Title, record.Body, record.Date, rating,
			record.ReviewerName, record.ReviewerContext, record.Pros, record.Cons,
			string(record.Source),
		)
		if err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return crawlId, nil
}

// Pull returns the records stored for one crawl run.
func (s Store) Pull(ctx context.Context, crawlId int64) ([]reviews.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`select title, description, date, rating, reviewer_name, reviewer_info, pros, cons, source
		from reviews where crawl_id = ? order by id`,
		crawlId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []reviews.ReviewRecord
	for rows.Next() {
		var record reviews.ReviewRecord
		var rating sql.NullFloat64
		var source string
		err := rows.Scan(
			&record.Title, &record.Body, &record.Date, &rating,
			&record.ReviewerName, &record.ReviewerContext,
			&record.Pros, &record.Cons, &source,
		)
		if err != nil {
			return nil, err
		}
		if rating.Valid {
			v := rating.Float64
			record.Rating = &v
		}
		record.Source = reviews.Source(source)
		records = append(records, record)
	}
	return records, rows.Err()
}

// Crawls lists stored crawl runs, most recent first.
func (s Store) Crawls(ctx context.Context) ([]Crawl, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, company, source, started_at, collected from crawls order by started_at desc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []Crawl
	for rows.Next() {
		var c Crawl
		var source string
		var startedAt int64
		if err := rows.Scan(&c.Id, &c.Company, &source, &startedAt, &c.Collected); err != nil {
			return nil, err
		}
		c.Source = reviews.Source(source)
		c.StartedAt = time.Unix(startedAt, 0)
		crawls = append(crawls, c)
	}
	return crawls, rows.Err()
}
